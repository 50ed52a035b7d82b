package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/twilio-labs/create-twilio-function/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyTemplateRepo   = "template_repo"
	KeyTemplateRef    = "template_ref"
	KeyTemplatesAPI   = "templates_api"
	KeyGitignoreURL   = "gitignore_url"
	KeyNodeVersion    = "node_version"
	KeyPackageManager = "package_manager"
	KeyGitHubToken    = "github_token"
	KeyLogLevel       = "log_level"
	KeyUpdateCheck    = "update_check"
)

// Keys lists every recognized setting, in display order.
var Keys = []string{
	KeyTemplateRepo,
	KeyTemplateRef,
	KeyTemplatesAPI,
	KeyGitignoreURL,
	KeyNodeVersion,
	KeyPackageManager,
	KeyGitHubToken,
	KeyLogLevel,
	KeyUpdateCheck,
}

// Settings is the resolved view of all keys after defaults, file, and env.
type Settings struct {
	TemplateRepo   string
	TemplateRef    string
	TemplatesAPI   string
	GitignoreURL   string
	NodeVersion    string
	PackageManager string
	GitHubToken    string
	LogLevel       string
	UpdateCheck    bool
}

// Dir returns the path to the config directory (~/.create-twilio-function/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyTemplateRepo, branding.TemplateRepo())
	viper.SetDefault(KeyTemplateRef, branding.TemplateRef())
	viper.SetDefault(KeyTemplatesAPI, "https://api.github.com")
	viper.SetDefault(KeyGitignoreURL, branding.GitignoreURL())
	viper.SetDefault(KeyNodeVersion, "18")
	viper.SetDefault(KeyPackageManager, "npm")
	viper.SetDefault(KeyGitHubToken, "")
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyUpdateCheck, true)
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	setDefaults()

	// GITHUB_TOKEN is honored without the prefix, as the GitHub tooling does.
	_ = viper.BindEnv(KeyGitHubToken, branding.EnvVar(KeyGitHubToken), "GITHUB_TOKEN")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns all settings as a struct.
func Current() Settings {
	return Settings{
		TemplateRepo:   viper.GetString(KeyTemplateRepo),
		TemplateRef:    viper.GetString(KeyTemplateRef),
		TemplatesAPI:   viper.GetString(KeyTemplatesAPI),
		GitignoreURL:   viper.GetString(KeyGitignoreURL),
		NodeVersion:    viper.GetString(KeyNodeVersion),
		PackageManager: viper.GetString(KeyPackageManager),
		GitHubToken:    viper.GetString(KeyGitHubToken),
		LogLevel:       viper.GetString(KeyLogLevel),
		UpdateCheck:    viper.GetBool(KeyUpdateCheck),
	}
}

// IsKnownKey reports whether key is a recognized setting.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
