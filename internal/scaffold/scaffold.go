package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/afero"

	"github.com/twilio-labs/create-twilio-function/internal/branding"
	"github.com/twilio-labs/create-twilio-function/internal/logging"
	"github.com/twilio-labs/create-twilio-function/internal/manifest"
	"github.com/twilio-labs/create-twilio-function/internal/project"
	"github.com/twilio-labs/create-twilio-function/internal/templates"
)

// DefaultNodeVersion is written to .nvmrc when none is configured.
const DefaultNodeVersion = "18"

// Directories every project gets, even when a template leaves them empty.
var projectDirs = []string{"functions", "assets"}

// TemplateFetcher retrieves the file tree of a named template.
type TemplateFetcher interface {
	Fetch(ctx context.Context, id string) (templates.Tree, error)
}

// Data holds the variables available to the embedded example templates.
type Data struct {
	Name        string // e.g., "my-project"
	DisplayName string // e.g., "Twilio Functions"
}

// Result holds the outcome of scaffolding a project.
type Result struct {
	Dir      string
	Files    []string // slash-separated, relative to Dir, in write order
	Warnings []string
}

// Scaffolder writes starter files below an existing project directory.
type Scaffolder struct {
	Fs          afero.Fs
	NodeVersion string
	Templates   TemplateFetcher
}

// New returns a Scaffolder. An empty nodeVersion means DefaultNodeVersion.
func New(fsys afero.Fs, fetcher TemplateFetcher, nodeVersion string) *Scaffolder {
	nodeVersion = strings.TrimSpace(nodeVersion)
	if nodeVersion == "" {
		nodeVersion = DefaultNodeVersion
	}
	return &Scaffolder{Fs: fsys, NodeVersion: nodeVersion, Templates: fetcher}
}

// Scaffold writes .env, .nvmrc, the example files or the files of
// cfg.Template, and package.json into cfg.Dir(), in that order.
func (s *Scaffolder) Scaffold(ctx context.Context, cfg project.Config) (*Result, error) {
	dir := cfg.Dir()
	result := &Result{Dir: dir}

	if err := s.writeEnv(dir, cfg, result); err != nil {
		return nil, err
	}
	if err := s.writeNvmrc(dir, result); err != nil {
		return nil, err
	}

	if cfg.Template == "" {
		data := Data{Name: cfg.Name, DisplayName: branding.DisplayName()}
		if err := s.writeExamples(dir, data, result); err != nil {
			return nil, err
		}
	} else {
		if err := s.writeTemplate(ctx, dir, cfg.Template, result); err != nil {
			return nil, err
		}
	}

	if err := s.writePackageJSON(dir, cfg.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Scaffolder) writeEnv(dir string, cfg project.Config, result *Result) error {
	return s.writeFile(dir, ".env", renderEnv(cfg.AccountSID, cfg.AuthToken), 0o600, result)
}

func (s *Scaffolder) writeNvmrc(dir string, result *Result) error {
	version := s.NodeVersion
	if err := manifest.ValidateNodeVersion(version); err != nil {
		return err
	}
	return s.writeFile(dir, ".nvmrc", []byte(version+"\n"), 0o644, result)
}

// writeExamples renders every file under examples/ in the embedded FS.
// The .tmpl extension is stripped from output names.
func (s *Scaffolder) writeExamples(dir string, data Data, result *Result) error {
	return fs.WalkDir(scaffoldFS, "examples", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		tmplBytes, err := fs.ReadFile(scaffoldFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}

		tmpl, err := template.New(d.Name()).Funcs(sprig.TxtFuncMap()).Parse(string(tmplBytes))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", d.Name(), err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", d.Name(), err)
		}

		rel := strings.TrimSuffix(strings.TrimPrefix(p, "examples/"), ".tmpl")
		return s.writeFile(dir, rel, buf.Bytes(), 0o644, result)
	})
}

// writeTemplate creates the empty project directories and then writes the
// fetched template tree over them. A template .env is merged into the
// project's .env so resolved credentials survive.
func (s *Scaffolder) writeTemplate(ctx context.Context, dir, id string, result *Result) error {
	if s.Templates == nil {
		return fmt.Errorf("no template source configured for template %q", id)
	}

	for _, name := range projectDirs {
		if err := s.Fs.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			return fmt.Errorf("creating %s directory: %w", name, err)
		}
	}

	tree, err := s.Templates.Fetch(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching template %q: %w", id, err)
	}

	for _, rel := range tree.Paths() {
		if rel == ".env" {
			if err := s.mergeTemplateEnv(dir, tree[rel], result); err != nil {
				return err
			}
			continue
		}
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			return fmt.Errorf("template %q contains path %q outside the project", id, rel)
		}
		if err := s.writeFile(dir, rel, tree[rel], 0o644, result); err != nil {
			return err
		}
	}

	logging.Debug().Str("template", id).Int("files", len(tree)).Msg("template written")
	return nil
}

func (s *Scaffolder) mergeTemplateEnv(dir string, incoming []byte, result *Result) error {
	envPath := filepath.Join(dir, ".env")
	existing, err := afero.ReadFile(s.Fs, envPath)
	if err != nil {
		return fmt.Errorf("reading .env: %w", err)
	}

	merged, added, err := mergeEnv(existing, incoming)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		return nil
	}
	if err := afero.WriteFile(s.Fs, envPath, merged, 0o600); err != nil {
		return fmt.Errorf("writing .env: %w", err)
	}
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("Template variables added to .env: %s. Fill in their values before running the project.", strings.Join(added, ", ")))
	return nil
}

// writePackageJSON writes package.json and validates it; validation issues
// become warnings rather than failures.
func (s *Scaffolder) writePackageJSON(dir, name string, result *Result) error {
	data, err := manifest.Marshal(manifest.NewPackageJSON(name, s.NodeVersion))
	if err != nil {
		return err
	}
	if err := s.writeFile(dir, "package.json", data, 0o644, result); err != nil {
		return err
	}

	valResult, valErr := manifest.ValidateFile(s.Fs, filepath.Join(dir, "package.json"))
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate package.json: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, "package.json "+issue.String())
		}
	}
	return nil
}

// writeFile writes data to the slash-separated rel below dir, creating
// parent directories, and records rel in result.
func (s *Scaffolder) writeFile(dir, rel string, data []byte, perm fs.FileMode, result *Result) error {
	outPath := filepath.Join(dir, filepath.FromSlash(rel))
	if parent := path.Dir(rel); parent != "." {
		if err := s.Fs.MkdirAll(filepath.Join(dir, filepath.FromSlash(parent)), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", rel, err)
		}
	}
	if err := afero.WriteFile(s.Fs, outPath, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	result.Files = append(result.Files, rel)
	return nil
}
