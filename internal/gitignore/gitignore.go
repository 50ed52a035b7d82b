// Package gitignore downloads the canonical Node.js .gitignore and writes it
// into a project directory.
package gitignore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/twilio-labs/create-twilio-function/internal/branding"
)

// FileName is the name of the written file.
const FileName = ".gitignore"

// Fetcher downloads an ignore file from a fixed URL.
type Fetcher struct {
	url        string
	httpClient *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

// WithURL overrides the download location.
func WithURL(url string) Option {
	return func(f *Fetcher) {
		if url != "" {
			f.url = url
		}
	}
}

// New creates a Fetcher for the branding default URL.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		url:        branding.GitignoreURL(),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the location the ignore file is fetched from.
func (f *Fetcher) URL() string { return f.url }

// Fetch downloads the ignore file. It does not retry.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "create-twilio-function")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", f.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

// Write fetches the ignore file and writes it verbatim to dir/.gitignore.
func (f *Fetcher) Write(ctx context.Context, fsys afero.Fs, dir string) error {
	content, err := f.Fetch(ctx)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, FileName)
	if err := afero.WriteFile(fsys, path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
