package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twilio-labs/create-twilio-function/internal/project"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1)

// SuccessMessage returns the next-steps text for a created project. manager
// is the package manager used to install dependencies; empty means npm.
func SuccessMessage(cfg project.Config, manager string) string {
	if manager == "" {
		manager = "npm"
	}
	start := manager + " start"
	deploy := manager + " run deploy"

	var b strings.Builder
	fmt.Fprintf(&b, "Success!\n\n")
	fmt.Fprintf(&b, "Created %s at %s\n", cfg.Name, cfg.Dir())
	if cfg.Template != "" {
		fmt.Fprintf(&b, "using the %q template.\n", cfg.Template)
	}
	fmt.Fprintf(&b, "\nInside that directory, you can run the following commands:\n\n")
	fmt.Fprintf(&b, "%s\n  Serves all your functions and assets for local development\n\n", start)
	fmt.Fprintf(&b, "%s\n  Deploys your functions and assets to your account\n\n", deploy)
	if !cfg.HasCredentials() {
		fmt.Fprintf(&b, "Add your ACCOUNT_SID and AUTH_TOKEN to .env before deploying.\n\n")
	}
	fmt.Fprintf(&b, "Get started by running:\n\n")
	fmt.Fprintf(&b, "  cd %s\n", cfg.Dir())
	fmt.Fprintf(&b, "  %s", start)
	return b.String()
}

// Box frames msg in a rounded border with one cell of padding.
func Box(msg string) string {
	return boxStyle.Render(msg)
}
