package gitignore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestWrite(t *testing.T) {
	body := "# Logs\n*.log\nnode_modules/\n.env\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/github/gitignore/main/Node.gitignore" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	fsys := afero.NewMemMapFs()
	fsys.MkdirAll("/work/demo", 0o755)

	f := New(WithHTTPClient(srv.Client()), WithURL(srv.URL+"/github/gitignore/main/Node.gitignore"))
	if err := f.Write(context.Background(), fsys, "/work/demo"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := afero.ReadFile(fsys, "/work/demo/.gitignore")
	if err != nil {
		t.Fatalf("reading .gitignore: %v", err)
	}
	if string(got) != body {
		t.Errorf(".gitignore = %q, want verbatim %q", got, body)
	}
}

func TestWrite_HTTPError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	fsys := afero.NewMemMapFs()
	f := New(WithHTTPClient(srv.Client()), WithURL(srv.URL))
	err := f.Write(context.Background(), fsys, "/work/demo")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("error should mention status, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one request (no retry), got %d", calls)
	}
	if exists, _ := afero.Exists(fsys, "/work/demo/.gitignore"); exists {
		t.Error(".gitignore should not be written on failure")
	}
}

func TestNewDefaultURL(t *testing.T) {
	f := New(WithURL(""))
	if !strings.HasSuffix(f.URL(), "/Node.gitignore") {
		t.Errorf("URL() = %q", f.URL())
	}
}
