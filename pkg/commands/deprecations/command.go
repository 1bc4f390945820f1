package deprecations

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devfoundry/devkit/deprecation"
	"github.com/devfoundry/devkit/exceptions"
	"github.com/devfoundry/devkit/pkg/logger"
)

const dateLayout = "2006-01-02"

// Config holds configuration for the deprecations commands.
type Config struct {
	// Logger for command diagnostics. Defaults to a no-op logger.
	Logger logger.Logger

	// Registry to inspect. Defaults to deprecation.DefaultRegistry().
	Registry *deprecation.Registry

	// Deps are the injectable dependencies; nil uses production defaults.
	Deps *Deps
}

// deps applies defaults for optional configuration.
func (c *Config) deps() {
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
	if c.Registry == nil {
		c.Registry = deprecation.DefaultRegistry()
	}
	if c.Deps == nil {
		c.Deps = &Deps{}
	}
	c.Deps.applyDefaults()
}

// NewCommand creates the deprecations command group.
//
// Usage:
//
//	rootCmd.AddCommand(deprecations.NewCommand(deprecations.Config{
//	    Logger: lggr,
//	}))
func NewCommand(cfg Config) *cobra.Command {
	cfg.deps()

	cmd := &cobra.Command{
		Use:   "deprecations",
		Short: "Deprecation registry commands",
	}

	cmd.AddCommand(newListCmd(cfg), newCheckCmd(cfg))

	return cmd
}

// newListCmd prints every registered marker with its removal schedule.
func newListCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered deprecations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, m := range cfg.Registry.Markers() {
				s := m.Spec()
				fmt.Fprintf(out, "%s", s.Name)
				if !s.Deadline.IsZero() {
					fmt.Fprintf(out, "\tremove-by=%s", s.Deadline.Format(dateLayout))
				}
				if s.RemovedIn != nil {
					fmt.Fprintf(out, "\tremoved-in=v%s", s.RemovedIn)
				}
				if s.Replacement != nil {
					fmt.Fprintf(out, "\treplacement=%s", s.Replacement.Name)
					if s.Replacement.Scope != "" {
						fmt.Fprintf(out, " (%s)", s.Replacement.Scope)
					}
				}
				fmt.Fprintln(out)
			}

			return nil
		},
	}
}

// newCheckCmd fails when any registered marker is past its removal deadline
// and not allowlisted. Intended as the CI gate for the owning repository.
func newCheckCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail when a registered deprecation is past its removal deadline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			exceptionsPath, err := cmd.Flags().GetString("exceptions")
			if err != nil {
				return err
			}

			var allow *exceptions.Exceptions
			if exceptionsPath != "" {
				allow, err = cfg.Deps.ExceptionsLoader(exceptionsPath)
				if err != nil {
					return fmt.Errorf("load exceptions: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			overdue := 0
			for _, m := range cfg.Registry.Overdue(cfg.Deps.Now()) {
				if allow != nil {
					if ok, reason := allow.IsExpected(m.Name(), exceptions.ExceptionTypeDeprecated); ok {
						cfg.Logger.Infow("overdue deprecation allowlisted",
							"name", m.Name(), "reason", reason)
						continue
					}
				}
				deadline, _ := m.Deadline()
				fmt.Fprintf(out, "%s should have been removed on %s\n",
					m.Name(), deadline.Format(dateLayout))
				overdue++
			}

			if overdue > 0 {
				return fmt.Errorf("%d deprecation(s) past removal deadline", overdue)
			}

			return nil
		},
	}

	cmd.Flags().String("exceptions", "", "Path to the deprecation exceptions allowlist")

	return cmd
}
