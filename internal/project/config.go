package project

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// maxNameLength matches the npm package name limit.
const maxNameLength = 214

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Config describes the project to create. It is passed by value so that
// fields resolved during a run (credentials) cannot change underneath later
// steps.
type Config struct {
	Name     string // project directory and package name
	Path     string // parent directory the project is created in
	Template string // optional template identifier

	AccountSID string
	AuthToken  string

	SkipCredentials   bool
	ImportCredentials bool

	// KeepOnFailure leaves a partially scaffolded directory in place when a
	// step after directory creation fails.
	KeepOnFailure bool
}

// Dir returns the project directory, <path>/<name>.
func (c Config) Dir() string {
	return filepath.Join(c.Path, c.Name)
}

// HasCredentials reports whether both credential fields are set.
func (c Config) HasCredentials() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

// WithCredentials returns a copy of c with the given values filled in.
// Fields already set on c are never replaced.
func (c Config) WithCredentials(accountSID, authToken string) Config {
	if c.AccountSID == "" {
		c.AccountSID = accountSID
	}
	if c.AuthToken == "" {
		c.AuthToken = authToken
	}
	return c
}

// ValidateName checks that name is usable both as a directory and as an
// npm package name.
func ValidateName(name string) error {
	if len(name) > maxNameLength {
		return fmt.Errorf("invalid name %q: must be at most %d characters", name, maxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must match pattern [a-z0-9][a-z0-9._-]*", name)
	}
	return nil
}
