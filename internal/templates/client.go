package templates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/twilio-labs/create-twilio-function/internal/branding"
	"github.com/twilio-labs/create-twilio-function/internal/logging"
)

const (
	defaultAPIBase = "https://api.github.com"
	userAgent      = "create-twilio-function"

	// DefaultMaxRetries bounds retries of transient failures per request.
	DefaultMaxRetries = 3
	// DefaultRetryInterval is the first backoff interval.
	DefaultRetryInterval = 500 * time.Millisecond
)

// ErrTemplateNotFound is returned when the template id has no directory in
// the template repository.
var ErrTemplateNotFound = errors.New("template not found")

var errStatusNotFound = errors.New("status 404")

// DefaultInclude lists the paths copied out of a template.
var DefaultInclude = []string{"functions/**", "assets/**", ".env"}

// Client fetches templates from a GitHub repository through the contents API.
type Client struct {
	httpClient    *http.Client
	apiBase       string
	repo          string
	ref           string
	token         string
	include       []string
	maxRetries    uint64
	retryInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithAPIBase overrides the GitHub API base URL.
func WithAPIBase(base string) Option {
	return func(cl *Client) { cl.apiBase = strings.TrimRight(base, "/") }
}

// WithRepo sets the "owner/repo" templates are read from.
func WithRepo(repo string) Option {
	return func(cl *Client) { cl.repo = repo }
}

// WithRef sets the branch or tag templates are read from.
func WithRef(ref string) Option {
	return func(cl *Client) { cl.ref = ref }
}

// WithToken sets a GitHub token for higher rate limits.
func WithToken(token string) Option {
	return func(cl *Client) { cl.token = token }
}

// WithInclude replaces the include globs.
func WithInclude(patterns ...string) Option {
	return func(cl *Client) { cl.include = patterns }
}

// WithRetry sets how many times transient failures are retried.
func WithRetry(maxRetries uint64, initial time.Duration) Option {
	return func(cl *Client) {
		cl.maxRetries = maxRetries
		cl.retryInterval = initial
	}
}

// New creates a Client with branding defaults and the given options.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:    http.DefaultClient,
		apiBase:       defaultAPIBase,
		repo:          branding.TemplateRepo(),
		ref:           branding.TemplateRef(),
		include:       DefaultInclude,
		maxRetries:    DefaultMaxRetries,
		retryInterval: DefaultRetryInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// contentsURL returns the contents API URL for p at the configured ref.
func (c *Client) contentsURL(p string) string {
	var escaped []string
	for _, seg := range strings.Split(strings.Trim(p, "/"), "/") {
		if seg != "" {
			escaped = append(escaped, url.PathEscape(seg))
		}
	}
	return fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s",
		c.apiBase, c.repo, strings.Join(escaped, "/"), url.QueryEscape(c.ref))
}

func (c *Client) newBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxInterval = 10 * c.retryInterval
	b.RandomizationFactor = 0.5
	b.Multiplier = 2.0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)
}

// get performs a GET and returns the body. Transport errors and 5xx
// responses are retried; a 404 wraps errStatusNotFound.
func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Accept", accept)
		req.Header.Set("User-Agent", userAgent)
		if c.token != "" {
			req.Header.Set("Authorization", "token "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("fetching %s: %w", rawURL, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(fmt.Errorf("fetching %s: %w", rawURL, errStatusNotFound))
		case resp.StatusCode == http.StatusForbidden:
			return backoff.Permanent(fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits"))
		case resp.StatusCode >= 500:
			return fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response body: %w", err)
		}
		body = data
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logging.Debug().Err(err).Dur("wait", wait).Str("url", rawURL).Msg("retrying template request")
	}
	if err := backoff.RetryNotify(op, c.newBackoff(ctx), notify); err != nil {
		return nil, err
	}
	return body, nil
}

// validateID rejects ids that would escape the repository root.
func validateID(id string) error {
	if id == "" {
		return errors.New("template id is empty")
	}
	clean := path.Clean("/" + id)
	if clean != "/"+strings.Trim(id, "/") || strings.Contains(id, "..") {
		return fmt.Errorf("invalid template id %q", id)
	}
	return nil
}
