package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/twilio-labs/create-twilio-function/internal/config"
	"github.com/twilio-labs/create-twilio-function/internal/creator"
	"github.com/twilio-labs/create-twilio-function/internal/credentials"
	"github.com/twilio-labs/create-twilio-function/internal/gitignore"
	"github.com/twilio-labs/create-twilio-function/internal/installer"
	"github.com/twilio-labs/create-twilio-function/internal/logging"
	"github.com/twilio-labs/create-twilio-function/internal/project"
	"github.com/twilio-labs/create-twilio-function/internal/report"
	"github.com/twilio-labs/create-twilio-function/internal/scaffold"
	"github.com/twilio-labs/create-twilio-function/internal/templates"
)

// createOptions holds the root command's flags.
type createOptions struct {
	accountSID        string
	authToken         string
	skipCredentials   bool
	importCredentials bool
	template          string
	path              string
	keepOnFailure     bool
	packageManager    string
}

var createOpts createOptions

// workflow runs one project creation.
type workflow interface {
	Run(ctx context.Context, cfg project.Config) error
}

// newWorkflow is swapped in tests.
var newWorkflow = func(out, errOut io.Writer, s config.Settings, manager string) workflow {
	fsys := afero.NewOsFs()

	source := templates.New(
		templates.WithAPIBase(s.TemplatesAPI),
		templates.WithRepo(s.TemplateRepo),
		templates.WithRef(s.TemplateRef),
		templates.WithToken(s.GitHubToken),
	)

	inst := installer.Dispatch(manager)
	if pm, ok := inst.(*installer.PackageManager); ok {
		// Install chatter is only shown when debugging; failures still
		// carry the last stderr line.
		pm.Stdout, pm.Stderr = io.Discard, io.Discard
		if logging.Logger.GetLevel() <= logging.DebugLevel {
			pm.Stdout, pm.Stderr = errOut, errOut
		}
	}

	return &creator.Creator{
		Fs: fsys,
		Credentials: &credentials.Resolver{
			Env:         credentials.OSEnv{},
			Prompter:    credentials.HuhPrompter{},
			Interactive: credentials.StdinIsTerminal,
		},
		Scaffolder:     scaffold.New(fsys, source, s.NodeVersion),
		Gitignore:      gitignore.New(gitignore.WithURL(s.GitignoreURL)),
		Installer:      inst,
		Console:        report.NewConsole(out, errOut),
		PackageManager: manager,
	}
}

func registerCreateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&createOpts.accountSID, "account-sid", "a", "", "The Account SID for your Twilio account")
	f.StringVarP(&createOpts.authToken, "auth-token", "t", "", "Your Twilio account Auth Token")
	f.BoolVar(&createOpts.skipCredentials, "skip-credentials", false, "Don't ask for Twilio account credentials or import them from the environment")
	f.BoolVar(&createOpts.importCredentials, "import-credentials", false, "Import credentials from the environment variables TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN")
	f.StringVar(&createOpts.template, "template", "", "Create the project from a function template instead of the examples (see 'templates')")
	f.StringVar(&createOpts.path, "path", "", "Directory to create the project in (default: current directory)")
	f.BoolVar(&createOpts.keepOnFailure, "keep-on-failure", false, "Leave the partially created project in place if a step fails")
	f.StringVar(&createOpts.packageManager, "package-manager", "", "Package manager used to install dependencies: npm, yarn, or pnpm (default from config)")
}

// projectConfig builds the project configuration from positional args and
// flags. The optional second argument and --path are equivalent.
func (o createOptions) projectConfig(args []string) (project.Config, error) {
	name := args[0]
	if err := project.ValidateName(name); err != nil {
		return project.Config{}, err
	}

	path := o.path
	if len(args) > 1 {
		if path != "" && path != args[1] {
			return project.Config{}, fmt.Errorf("project path given twice: %q and --path %q", args[1], path)
		}
		path = args[1]
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return project.Config{}, fmt.Errorf("resolving current directory: %w", err)
		}
		path = wd
	}

	return project.Config{
		Name:              name,
		Path:              path,
		Template:          o.template,
		AccountSID:        o.accountSID,
		AuthToken:         o.authToken,
		SkipCredentials:   o.skipCredentials,
		ImportCredentials: o.importCredentials,
		KeepOnFailure:     o.keepOnFailure,
	}, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := createOpts.projectConfig(args)
	if err != nil {
		return err
	}

	settings := config.Current()
	manager := createOpts.packageManager
	if manager == "" {
		manager = settings.PackageManager
	}
	logging.Debug().Str("dir", cfg.Dir()).Str("template", cfg.Template).Str("package_manager", manager).Msg("creating project")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newWorkflow(cmd.OutOrStdout(), cmd.ErrOrStderr(), settings, manager).Run(ctx, cfg)
}
