// Package tracehook provides CLI commands for managing the process panic
// trace hook of the host binary.
package tracehook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devfoundry/devkit/pkg/logger"
	"github.com/devfoundry/devkit/tracehook"
)

// InstallFunc installs a trace formatter style.
type InstallFunc func(style string, opts ...tracehook.Option) tracehook.Status

// Deps holds the injectable dependencies for tracehook commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// Install installs the hook.
	// Default: tracehook.Install
	Install InstallFunc

	// Styles lists the available style names.
	// Default: tracehook.Styles
	Styles func() []string
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.Install == nil {
		d.Install = tracehook.Install
	}
	if d.Styles == nil {
		d.Styles = tracehook.Styles
	}
}

// Config holds configuration for the tracehook commands.
type Config struct {
	// Logger for command diagnostics. Defaults to a no-op logger.
	Logger logger.Logger

	// Deps are the injectable dependencies; nil uses production defaults.
	Deps *Deps
}

func (c *Config) deps() {
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
	if c.Deps == nil {
		c.Deps = &Deps{}
	}
	c.Deps.applyDefaults()
}

// NewCommand creates the tracehook command group. Host CLIs typically run
// "install" from a persistent pre-run so the hook covers the rest of the
// invocation.
func NewCommand(cfg Config) *cobra.Command {
	cfg.deps()

	cmd := &cobra.Command{
		Use:   "tracehook",
		Short: "Panic trace hook commands",
	}

	cmd.AddCommand(newInstallCmd(cfg), newStylesCmd(cfg))

	return cmd
}

func newInstallCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the panic trace formatter for this process",
		RunE: func(cmd *cobra.Command, _ []string) error {
			style, err := cmd.Flags().GetString("style")
			if err != nil {
				return err
			}

			switch status := cfg.Deps.Install(style, tracehook.WithLogger(cfg.Logger)); status {
			case tracehook.StatusInstalled:
				cfg.Logger.Infow("trace hook installed", "style", style)
				return nil
			case tracehook.StatusUnavailable:
				return errors.New("no trace formatter styles are available")
			case tracehook.StatusUnknownStyle:
				return fmt.Errorf("unknown trace style %q (available: %s)",
					style, strings.Join(cfg.Deps.Styles(), ", "))
			default:
				return fmt.Errorf("unexpected install status: %s", status)
			}
		},
	}

	cmd.Flags().String("style", "color", "Trace formatter style")

	return cmd
}

func newStylesCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List available trace formatter styles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range cfg.Deps.Styles() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}
