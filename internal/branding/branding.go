// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded into the binary; edit it to rename the tool or
// point it at a different template repository.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GitHubRepo   string `yaml:"github_repo"`
	TemplateRepo string `yaml:"template_repo"`
	TemplateRef  string `yaml:"template_ref"`
	GitignoreURL string `yaml:"gitignore_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "create-twilio-function",
			DisplayName:  "Twilio Functions",
			Description:  "Creates a new Twilio Function project",
			HomeDir:      ".create-twilio-function",
			EnvPrefix:    "CREATE_TWILIO_FUNCTION",
			GitHubRepo:   "twilio-labs/create-twilio-function",
			TemplateRepo: "twilio-labs/function-templates",
			TemplateRef:  "next",
			GitignoreURL: "https://raw.githubusercontent.com/github/gitignore/main/Node.gitignore",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-twilio-function").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix for CLI settings.
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string of the CLI itself.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// TemplateRepo returns the "owner/repo" hosting function templates.
func TemplateRepo() string { load(); return defaults.TemplateRepo }

// TemplateRef returns the branch or tag templates are read from.
func TemplateRef() string { load(); return defaults.TemplateRef }

// GitignoreURL returns the default location of the Node .gitignore.
func GitignoreURL() string { load(); return defaults.GitignoreURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("log_level") → "CREATE_TWILIO_FUNCTION_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
