// Package exceptions loads the allowlist of resources that are tolerated in
// violation of a repository convention, with a recorded reason. Deprecation
// escalation consults it so acknowledged overdue items do not fail CI.
package exceptions

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ExceptionType defines the type of exception.
type ExceptionType string

const (
	ExceptionTypeRateLimit  ExceptionType = "RateLimit"
	ExceptionTypeDeprecated ExceptionType = "Deprecated"
)

// Exception represents a single exception entry.
type Exception struct {
	// Resource is the name of the excepted item, e.g. a function name.
	Resource string `yaml:"resource"`
	// Scope narrows the resource to a package or module. Empty matches any.
	Scope  string        `yaml:"scope,omitempty"`
	Reason string        `yaml:"reason"`
	Type   ExceptionType `yaml:"type"`
}

// Exceptions holds the recorded exception entries.
type Exceptions struct {
	Exceptions []Exception `yaml:"exceptions"`
}

// Load loads exceptions from a YAML file at the specified path.
func Load(filePath string) (*Exceptions, error) {
	d, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var e Exceptions
	if err := yaml.Unmarshal(d, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

// IsExpected checks if the given resource is an expected exception of the
// given type, returning the recorded reason when it is.
func (e *Exceptions) IsExpected(resource string, exceptionType ExceptionType) (bool, string) {
	return e.IsExpectedIn(resource, "", exceptionType)
}

// IsExpectedIn is IsExpected restricted to a scope. An entry with an empty
// scope matches any scope.
func (e *Exceptions) IsExpectedIn(resource, scope string, exceptionType ExceptionType) (bool, string) {
	for _, exception := range e.Exceptions {
		if exception.Resource != resource || exception.Type != exceptionType {
			continue
		}
		if exception.Scope == "" || scope == "" || exception.Scope == scope {
			return true, exception.Reason
		}
	}

	return false, ""
}
