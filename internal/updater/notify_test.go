package updater

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func releaseServer(t *testing.T, tag string, calls *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if !strings.HasSuffix(r.URL.Path, "/releases/latest") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name": "` + tag + `", "html_url": "https://example.com/` + tag + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNotify_PrintsBannerAndCaches(t *testing.T) {
	calls := 0
	srv := releaseServer(t, "v1.3.0", &calls)
	fsys := afero.NewMemMapFs()
	u := New("1.2.0", WithHTTPClient(srv.Client()), WithAPIBase(srv.URL), WithFs(fsys))

	var out bytes.Buffer
	u.Notify(context.Background(), &out, "/cfg")

	if !strings.Contains(out.String(), "1.2.0 -> v1.3.0") {
		t.Errorf("banner = %q", out.String())
	}
	if !strings.Contains(out.String(), "https://example.com/v1.3.0") {
		t.Errorf("banner should include release URL, got %q", out.String())
	}

	// A fresh cache answers the second check without a request.
	out.Reset()
	u.Notify(context.Background(), &out, "/cfg")
	if calls != 1 {
		t.Errorf("expected 1 request, got %d", calls)
	}
	if !strings.Contains(out.String(), "Update available") {
		t.Errorf("cached banner missing, got %q", out.String())
	}
}

func TestNotify_UpToDate(t *testing.T) {
	calls := 0
	srv := releaseServer(t, "v1.2.0", &calls)
	u := New("1.2.0", WithHTTPClient(srv.Client()), WithAPIBase(srv.URL), WithFs(afero.NewMemMapFs()))

	var out bytes.Buffer
	u.Notify(context.Background(), &out, "/cfg")
	if out.Len() != 0 {
		t.Errorf("expected no banner, got %q", out.String())
	}
}

func TestNotify_DevBuildSkipsCheck(t *testing.T) {
	calls := 0
	srv := releaseServer(t, "v9.9.9", &calls)
	u := New("dev", WithHTTPClient(srv.Client()), WithAPIBase(srv.URL), WithFs(afero.NewMemMapFs()))

	var out bytes.Buffer
	u.Notify(context.Background(), &out, "/cfg")
	if calls != 0 || out.Len() != 0 {
		t.Errorf("dev build should not check, calls=%d out=%q", calls, out.String())
	}
}

func TestNotify_IgnoresCacheFromOtherVersion(t *testing.T) {
	calls := 0
	srv := releaseServer(t, "v1.2.0", &calls)
	fsys := afero.NewMemMapFs()
	SaveCache(fsys, "/cfg", &VersionCache{
		LatestVersion:   "v1.2.0",
		CurrentVersion:  "1.0.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: true,
	})

	u := New("1.2.0", WithHTTPClient(srv.Client()), WithAPIBase(srv.URL), WithFs(fsys))
	var out bytes.Buffer
	u.Notify(context.Background(), &out, "/cfg")

	if calls != 1 {
		t.Errorf("expected a refresh, got %d requests", calls)
	}
	if out.Len() != 0 {
		t.Errorf("stale banner printed: %q", out.String())
	}
}

func TestNotify_ServerErrorIsSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	u := New("1.0.0", WithHTTPClient(srv.Client()), WithAPIBase(srv.URL), WithFs(afero.NewMemMapFs()))
	var out bytes.Buffer
	u.Notify(context.Background(), &out, "/cfg")
	if out.Len() != 0 {
		t.Errorf("expected silence on error, got %q", out.String())
	}

	if _, err := u.LatestRelease(context.Background()); err == nil || !strings.Contains(err.Error(), "GITHUB_TOKEN") {
		t.Errorf("LatestRelease() error = %v", err)
	}
}
