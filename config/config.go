// Package config loads the deprecation policy file: which warning categories
// are silenced, whether deadline escalation is enabled, and where the
// exceptions allowlist lives. Any format viper understands works; YAML and
// TOML are the expected ones.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/devfoundry/devkit/deprecation"
	"github.com/devfoundry/devkit/exceptions"
	"github.com/devfoundry/devkit/pkg/logger"
)

// WarningMode controls whether a warning category is delivered.
type WarningMode string

const (
	ModeAlways WarningMode = "always"
	ModeSilent WarningMode = "silent"
)

// EscalationConfig controls the deadline escalation check.
type EscalationConfig struct {
	// Enabled toggles escalation; defaults to on when no policy is loaded.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// OwnerRepo overrides the GITHUB_REPOSITORY owner identity.
	OwnerRepo string `mapstructure:"ownerRepo" yaml:"ownerRepo,omitempty"`
}

// Policy represents the parsed and validated policy configuration.
type Policy struct {
	// Warnings maps a category name to its delivery mode. Unlisted
	// categories are delivered.
	Warnings map[string]WarningMode `mapstructure:"warnings" yaml:"warnings,omitempty"`

	Escalation EscalationConfig `mapstructure:"escalation" yaml:"escalation"`

	// ExceptionsFile is the path of the deprecation exceptions allowlist.
	ExceptionsFile string `mapstructure:"exceptionsFile" yaml:"exceptionsFile,omitempty"`
}

// Load loads and validates a policy from the file at the given path.
func Load(filePath string) (*Policy, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Policy{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Validate validates the policy configuration.
func (p *Policy) Validate() error {
	for cat, mode := range p.Warnings {
		if !deprecation.Category(cat).Valid() {
			return fmt.Errorf("unknown warning category: %s", cat)
		}
		if mode != ModeAlways && mode != ModeSilent {
			return fmt.Errorf("invalid warning mode %q for category %s (must be 'always' or 'silent')", mode, cat)
		}
	}

	return nil
}

// MarkerOptions translates the policy into options to apply when building
// markers: escalation toggling, the owner-repository override, and the
// exceptions allowlist.
func (p *Policy) MarkerOptions() ([]deprecation.Option, error) {
	var opts []deprecation.Option

	switch {
	case !p.Escalation.Enabled:
		opts = append(opts, deprecation.WithOwnerCheck(func() bool { return false }))
	case p.Escalation.OwnerRepo != "":
		opts = append(opts, deprecation.WithOwnerRepo(p.Escalation.OwnerRepo))
	}

	if p.ExceptionsFile != "" {
		allow, err := exceptions.Load(p.ExceptionsFile)
		if err != nil {
			return nil, fmt.Errorf("load exceptions: %w", err)
		}
		opts = append(opts, deprecation.WithExceptions(allow))
	}

	return opts, nil
}

// Silenced reports whether the policy silences the given category.
func (p *Policy) Silenced(cat deprecation.Category) bool {
	return p.Warnings[string(cat)] == ModeSilent
}

// Emitter builds a deprecation emitter that applies this policy's filters in
// front of a log-backed emitter writing to lggr.
func (p *Policy) Emitter(lggr logger.Logger) deprecation.Emitter {
	return &filteredEmitter{policy: p, next: deprecation.NewLogEmitter(lggr)}
}

type filteredEmitter struct {
	policy *Policy
	next   deprecation.Emitter
}

func (e *filteredEmitter) Emit(w deprecation.Warning) {
	if e.policy.Silenced(w.Category) {
		return
	}
	e.next.Emit(w)
}
