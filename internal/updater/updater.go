package updater

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"

	"github.com/twilio-labs/create-twilio-function/internal/branding"
)

// Release is the part of a GitHub release the notifier needs.
type Release struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Updater checks for newer releases of the running binary.
type Updater struct {
	currentVersion string
	httpClient     *http.Client
	apiBase        string
	repo           string
	token          string
	fs             afero.Fs
	maxAge         time.Duration
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithAPIBase points release lookups at a different GitHub API host.
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		if base != "" {
			u.apiBase = strings.TrimRight(base, "/")
		}
	}
}

// WithToken authenticates release lookups.
func WithToken(token string) Option {
	return func(u *Updater) {
		u.token = token
	}
}

// WithFs sets the filesystem holding the version cache.
func WithFs(fsys afero.Fs) Option {
	return func(u *Updater) {
		u.fs = fsys
	}
}

// New creates an Updater with the given current version and options.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		httpClient:     http.DefaultClient,
		apiBase:        "https://api.github.com",
		repo:           branding.GitHubRepo(),
		fs:             afero.NewOsFs(),
		maxAge:         DefaultCacheMaxAge,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CompareVersions compares two version strings using semver.
// Returns -1 if current < latest, 0 if equal, 1 if current > latest.
// A leading "v" is accepted on either side.
func CompareVersions(current, latest string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseSemver(latest)
	if err != nil {
		return 0, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.Compare(lv), nil
}

// IsUpdateAvailable returns true if latest is newer than current.
func IsUpdateAvailable(current, latest string) (bool, error) {
	cmp, err := CompareVersions(current, latest)
	if err != nil {
		return false, err
	}
	return cmp == -1, nil
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
