// Package commands provides modular CLI command packages for host CLIs.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	cmds := commands.New(lggr)
//	app.AddCommand(
//	    cmds.Deprecations(commands.DeprecationsConfig{}),
//	    cmds.Tracehook(),
//	)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/devfoundry/devkit/pkg/commands/deprecations"
//
//	app.AddCommand(deprecations.NewCommand(deprecations.Config{
//	    Logger: lggr,
//	    Deps:   &deprecations.Deps{...}, // inject mocks for testing
//	}))
package commands

import (
	"github.com/spf13/cobra"

	"github.com/devfoundry/devkit/deprecation"
	"github.com/devfoundry/devkit/pkg/commands/deprecations"
	tracehookcmd "github.com/devfoundry/devkit/pkg/commands/tracehook"
	"github.com/devfoundry/devkit/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared
// configuration. This allows setting the logger once and reusing it across
// all commands created by this factory.
type Commands struct {
	lggr logger.Logger
}

// New creates a new Commands factory with the given logger.
// The logger will be shared across all commands created by this factory.
func New(lggr logger.Logger) *Commands {
	return &Commands{lggr: lggr}
}

// DeprecationsConfig holds configuration for deprecations commands.
type DeprecationsConfig struct {
	// Registry to inspect; nil uses the process default registry.
	Registry *deprecation.Registry
}

// Deprecations creates the deprecations command group for inspecting and
// gating the markers registered in the host binary.
func (c *Commands) Deprecations(cfg DeprecationsConfig) *cobra.Command {
	return deprecations.NewCommand(deprecations.Config{
		Logger:   c.lggr,
		Registry: cfg.Registry,
	})
}

// Tracehook creates the tracehook command group for managing the process
// panic trace hook.
func (c *Commands) Tracehook() *cobra.Command {
	return tracehookcmd.NewCommand(tracehookcmd.Config{
		Logger: c.lggr,
	})
}
