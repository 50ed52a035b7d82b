package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GITHUB_TOKEN", "")
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	Load()

	s := Current()
	if s.TemplateRepo != "twilio-labs/function-templates" {
		t.Errorf("TemplateRepo = %q", s.TemplateRepo)
	}
	if s.TemplateRef != "next" {
		t.Errorf("TemplateRef = %q, want %q", s.TemplateRef, "next")
	}
	if s.PackageManager != "npm" {
		t.Errorf("PackageManager = %q, want %q", s.PackageManager, "npm")
	}
	if s.NodeVersion != "18" {
		t.Errorf("NodeVersion = %q, want %q", s.NodeVersion, "18")
	}
	if !strings.HasSuffix(s.GitignoreURL, "/Node.gitignore") {
		t.Errorf("GitignoreURL = %q", s.GitignoreURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CREATE_TWILIO_FUNCTION_PACKAGE_MANAGER", "pnpm")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	Load()

	if got := Get(KeyPackageManager); got != "pnpm" {
		t.Errorf("package_manager = %q, want %q", got, "pnpm")
	}
	if got := Current().GitHubToken; got != "ghp_test" {
		t.Errorf("github_token = %q, want %q", got, "ghp_test")
	}
}

func TestSetWritesFile(t *testing.T) {
	home := isolate(t)
	Load()

	if err := Set(KeyTemplateRef, "main"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".create-twilio-function", "config.yaml"))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.Contains(string(data), "template_ref: main") {
		t.Errorf("config file missing key, got:\n%s", data)
	}

	viper.Reset()
	Load()
	if got := Get(KeyTemplateRef); got != "main" {
		t.Errorf("template_ref after reload = %q, want %q", got, "main")
	}
}

func TestSetUnknownKey(t *testing.T) {
	isolate(t)
	Load()

	if err := Set("colour", "blue"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestUpdateCheckToggle(t *testing.T) {
	isolate(t)
	Load()
	if !Current().UpdateCheck {
		t.Error("update_check should default to true")
	}

	t.Setenv("CREATE_TWILIO_FUNCTION_UPDATE_CHECK", "false")
	if Current().UpdateCheck {
		t.Error("update_check should follow the environment")
	}
}
