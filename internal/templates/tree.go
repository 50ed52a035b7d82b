package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/twilio-labs/create-twilio-function/internal/logging"
)

// Tree maps slash-separated paths relative to the template root to file
// contents.
type Tree map[string][]byte

// Paths returns the tree's paths in sorted order.
func (t Tree) Paths() []string {
	paths := make([]string, 0, len(t))
	for p := range t {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// entry is one item of a contents API directory listing.
type entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// isDir treats entries without a download URL as directories; listings
// served by mirrors sometimes omit the type field.
func (e entry) isDir() bool {
	return e.Type == "dir" || e.DownloadURL == ""
}

// Fetch downloads the template with the given id. Directories are walked
// through the contents API and files are fetched by their download URL.
func (c *Client) Fetch(ctx context.Context, id string) (Tree, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	tree := Tree{}
	if err := c.walk(ctx, strings.Trim(id, "/"), "", tree); err != nil {
		return nil, fmt.Errorf("fetching template %q: %w", id, err)
	}
	logging.Debug().Str("template", id).Int("files", len(tree)).Msg("template fetched")
	return tree, nil
}

func (c *Client) walk(ctx context.Context, id, rel string, tree Tree) error {
	entries, err := c.list(ctx, path.Join(id, rel))
	if rel == "" && errors.Is(err, errStatusNotFound) {
		return ErrTemplateNotFound
	}
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.Name == "" || strings.Contains(e.Name, "/") || e.Name == ".." || e.Name == "." {
			continue
		}
		p := path.Join(rel, e.Name)
		if e.isDir() {
			if !c.wantDir(p) {
				continue
			}
			if err := c.walk(ctx, id, p, tree); err != nil {
				return err
			}
			continue
		}
		if !c.wantFile(p) {
			logging.Debug().Str("path", p).Msg("skipping template file")
			continue
		}
		data, err := c.get(ctx, e.DownloadURL, "*/*")
		if err != nil {
			return fmt.Errorf("downloading %s: %w", p, err)
		}
		tree[p] = data
	}
	return nil
}

func (c *Client) list(ctx context.Context, dir string) ([]entry, error) {
	body, err := c.get(ctx, c.contentsURL(dir), "application/vnd.github+json")
	if err != nil {
		return nil, err
	}
	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parsing listing of %s: %w", dir, err)
	}
	return entries, nil
}

func (c *Client) wantFile(p string) bool {
	for _, pattern := range c.include {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

// wantDir reports whether any include pattern can match below dir.
func (c *Client) wantDir(dir string) bool {
	for _, pattern := range c.include {
		if strings.HasPrefix(pattern, "**") || strings.HasPrefix(pattern, dir+"/") {
			return true
		}
		if ok, _ := doublestar.Match(pattern, dir); ok {
			return true
		}
	}
	return false
}

// Info describes one entry of the repository's templates.json.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// List returns the templates advertised by the repository's templates.json.
func (c *Client) List(ctx context.Context) ([]Info, error) {
	body, err := c.get(ctx, c.contentsURL("templates.json"), "application/vnd.github.raw")
	if err != nil {
		return nil, fmt.Errorf("fetching template list: %w", err)
	}
	var doc struct {
		Templates []Info `json:"templates"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing template list: %w", err)
	}
	sort.Slice(doc.Templates, func(i, j int) bool { return doc.Templates[i].ID < doc.Templates[j].ID })
	return doc.Templates, nil
}
