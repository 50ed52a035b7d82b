package creator

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/twilio-labs/create-twilio-function/internal/credentials"
	"github.com/twilio-labs/create-twilio-function/internal/installer"
	"github.com/twilio-labs/create-twilio-function/internal/logging"
	"github.com/twilio-labs/create-twilio-function/internal/project"
	"github.com/twilio-labs/create-twilio-function/internal/report"
	"github.com/twilio-labs/create-twilio-function/internal/scaffold"
)

// ErrAborted is returned when the project directory could not be created.
// The reason has already been printed; nothing was written.
var ErrAborted = errors.New("project creation aborted")

// Step names used in StepError and failure messages.
const (
	StepCredentials = "resolving credentials"
	StepScaffold    = "creating project files"
	StepGitignore   = "downloading .gitignore"
	StepInstall     = "installing dependencies"
)

// Progress titles shown while a step runs.
const (
	titleScaffold  = "Creating project directories and files"
	titleGitignore = "Downloading .gitignore file"
	titleInstall   = "Installing dependencies"
)

// StepError reports a failure after the project directory was created.
type StepError struct {
	Step    string
	Dir     string
	Removed bool // the partial project directory was deleted
	Err     error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// CredentialResolver yields the credentials for a project.
type CredentialResolver interface {
	Resolve(cfg project.Config) (credentials.Credentials, error)
}

// Scaffolder writes the starter files into an existing project directory.
type Scaffolder interface {
	Scaffold(ctx context.Context, cfg project.Config) (*scaffold.Result, error)
}

// IgnoreWriter writes .gitignore into a directory.
type IgnoreWriter interface {
	Write(ctx context.Context, fsys afero.Fs, dir string) error
}

// Console receives everything the user sees.
type Console interface {
	Step(title string)
	Succeed(title string)
	Fail(title string)
	Files(n int, dir string)
	Warn(msg string)
	Error(msg string)
	Success(msg string)
}

// Creator holds the capabilities a run needs.
type Creator struct {
	Fs          afero.Fs
	Credentials CredentialResolver
	Scaffolder  Scaffolder
	Gitignore   IgnoreWriter
	Installer   installer.Installer
	Console     Console

	// PackageManager names the installer in the success message.
	PackageManager string
}

// Run creates the project described by cfg. It returns ErrAborted (wrapping
// the directory error) when the directory could not be created and a
// *StepError when a later step failed. The success message is printed only
// when every step succeeded.
func (c *Creator) Run(ctx context.Context, cfg project.Config) error {
	if err := project.CreateDirectory(c.Fs, cfg.Path, cfg.Name); err != nil {
		c.Console.Error(err.Error())
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	dir := cfg.Dir()
	logging.Debug().Str("dir", dir).Msg("project directory created")

	creds, err := c.Credentials.Resolve(cfg)
	if err != nil {
		return c.fail(cfg, StepCredentials, err)
	}
	cfg = cfg.WithCredentials(creds.AccountSID, creds.AuthToken)

	c.Console.Step(titleScaffold)
	result, err := c.Scaffolder.Scaffold(ctx, cfg)
	if err != nil {
		c.Console.Fail(titleScaffold)
		return c.fail(cfg, StepScaffold, err)
	}
	c.Console.Succeed(titleScaffold)
	c.Console.Files(len(result.Files), dir)
	for _, w := range result.Warnings {
		c.Console.Warn(w)
	}

	c.Console.Step(titleGitignore)
	if err := c.Gitignore.Write(ctx, c.Fs, dir); err != nil {
		c.Console.Fail(titleGitignore)
		return c.fail(cfg, StepGitignore, err)
	}
	c.Console.Succeed(titleGitignore)

	c.Console.Step(titleInstall)
	if err := c.Installer.Install(ctx, dir); err != nil {
		c.Console.Fail(titleInstall)
		return c.fail(cfg, StepInstall, err)
	}
	c.Console.Succeed(titleInstall)

	c.Console.Success(report.SuccessMessage(cfg, c.PackageManager))
	return nil
}

// fail reports a step failure once and removes the partial project unless
// cfg.KeepOnFailure is set.
func (c *Creator) fail(cfg project.Config, step string, err error) error {
	dir := cfg.Dir()
	stepErr := &StepError{Step: step, Dir: dir, Err: err}

	note := fmt.Sprintf("The partially created project was left at %s.", dir)
	if !cfg.KeepOnFailure {
		if rmErr := c.Fs.RemoveAll(dir); rmErr != nil {
			logging.Warn().Err(rmErr).Str("dir", dir).Msg("could not remove partial project")
			note = fmt.Sprintf("Could not remove the partially created project at %s: %v", dir, rmErr)
		} else {
			stepErr.Removed = true
			note = fmt.Sprintf("Removed the partially created project at %s.", dir)
		}
	}

	c.Console.Error(fmt.Sprintf("%s\n%s", stepErr.Error(), note))
	return stepErr
}
