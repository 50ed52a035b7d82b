package installer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/twilio-labs/create-twilio-function/internal/logging"
)

// Installer installs a project's declared dependencies.
type Installer interface {
	// Install runs the install operation with dir as the working directory.
	Install(ctx context.Context, dir string) error
}

// Supported package managers.
const (
	ManagerNPM  = "npm"
	ManagerYarn = "yarn"
	ManagerPNPM = "pnpm"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// PackageManager runs `<binary> install` in the project directory.
type PackageManager struct {
	Name string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Install implements Installer.
func (p *PackageManager) Install(ctx context.Context, dir string) error {
	bin, err := lookPath(p.Name)
	if err != nil {
		return fmt.Errorf("%s is required to install dependencies: %w", p.Name, err)
	}

	args := installArgs(p.Name)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	stdout := p.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := p.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// The last stderr line is included in the failure message.
	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	logging.Debug().Str("dir", dir).Str("cmd", bin+" "+strings.Join(args, " ")).Msg("installing dependencies")

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("%s install exited with code %d%s", p.Name, exitErr.ExitCode(), lastLine(stderrBuf.String()))
		}
		return fmt.Errorf("running %s install: %w", p.Name, err)
	}
	return nil
}

func installArgs(manager string) []string {
	switch manager {
	case ManagerNPM:
		return []string{"install", "--no-fund", "--no-audit"}
	default:
		return []string{"install"}
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	return ": " + strings.TrimSpace(lines[len(lines)-1])
}

// Dispatch returns the Installer for the given package manager name.
func Dispatch(name string) Installer {
	switch name {
	case "", ManagerNPM:
		return &PackageManager{Name: ManagerNPM}
	case ManagerYarn, ManagerPNPM:
		return &PackageManager{Name: name}
	default:
		return &unknownManager{name: name}
	}
}

// unknownManager is returned when the package manager is not recognized.
type unknownManager struct {
	name string
}

func (u *unknownManager) Install(context.Context, string) error {
	return fmt.Errorf("unknown package manager %q: supported managers are %q, %q, and %q", u.name, ManagerNPM, ManagerYarn, ManagerPNPM)
}
