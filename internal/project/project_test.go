package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"my-function", false},
		{"fn2", false},
		{"hello_world.v2", false},
		{"", true},
		{"-leading", true},
		{"Upper", true},
		{"has space", true},
		{"../escape", true},
		{strings.Repeat("a", 215), true},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestWithCredentials(t *testing.T) {
	t.Run("fills empty fields", func(t *testing.T) {
		c := Config{Name: "x"}.WithCredentials("ACabc", "token")
		if c.AccountSID != "ACabc" || c.AuthToken != "token" {
			t.Errorf("got %+v", c)
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		c := Config{AccountSID: "ACflag"}.WithCredentials("ACenv", "token")
		if c.AccountSID != "ACflag" {
			t.Errorf("AccountSID = %q, want %q", c.AccountSID, "ACflag")
		}
		if c.AuthToken != "token" {
			t.Errorf("AuthToken = %q, want %q", c.AuthToken, "token")
		}
	})

	t.Run("empty resolved values keep explicit ones", func(t *testing.T) {
		c := Config{AccountSID: "ACflag", AuthToken: "tok"}.WithCredentials("", "")
		if !c.HasCredentials() {
			t.Errorf("credentials lost: %+v", c)
		}
	})
}

func TestDir(t *testing.T) {
	c := Config{Name: "demo", Path: "/tmp/work"}
	if got := c.Dir(); got != filepath.Join("/tmp/work", "demo") {
		t.Errorf("Dir() = %q", got)
	}
}

func TestCreateDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/work", 0755); err != nil {
		t.Fatal(err)
	}

	if err := CreateDirectory(fsys, "/work", "demo"); err != nil {
		t.Fatalf("CreateDirectory() error: %v", err)
	}
	info, err := fsys.Stat("/work/demo")
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist, stat err = %v", err)
	}
}

func TestCreateDirectory_Exists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/work/demo", 0755); err != nil {
		t.Fatal(err)
	}

	err := CreateDirectory(fsys, "/work", "demo")
	var exists *DirectoryExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected DirectoryExistsError, got %T: %v", err, err)
	}
	want := "A directory called 'demo' already exists. Please create your function in a new directory."
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestCreateDirectory_Permission(t *testing.T) {
	base := afero.NewMemMapFs()
	if err := base.MkdirAll("/work", 0755); err != nil {
		t.Fatal(err)
	}

	err := CreateDirectory(afero.NewReadOnlyFs(base), "/work", "demo")
	var perm *PermissionError
	if !errors.As(err, &perm) {
		t.Fatalf("expected PermissionError, got %T: %v", err, err)
	}
	want := "You do not have permission to create files or directories in the path '/work'."
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestCreateDirectory_PermissionOnDisk(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	parent := t.TempDir()
	if err := os.Chmod(parent, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(parent, 0755) })

	err := CreateDirectory(afero.NewOsFs(), parent, "demo")
	var perm *PermissionError
	if !errors.As(err, &perm) {
		t.Fatalf("expected PermissionError, got %T: %v", err, err)
	}
}

func TestCreateDirectory_MissingParent(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "missing")

	err := CreateDirectory(afero.NewOsFs(), parent, "demo")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %T: %v", err, err)
	}
}
