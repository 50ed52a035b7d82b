package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twilio-labs/create-twilio-function/internal/branding"
	"github.com/twilio-labs/create-twilio-function/internal/config"
	"github.com/twilio-labs/create-twilio-function/internal/creator"
	"github.com/twilio-labs/create-twilio-function/internal/logging"
	"github.com/twilio-labs/create-twilio-function/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var logLevel string

// updateCheckTimeout bounds the release lookup done after a successful run.
const updateCheckTimeout = 2 * time.Second

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <name> [path]",
	Short: branding.Description(),
	Long: branding.Description() + `.

Creates <path>/<name> containing .env, .nvmrc, package.json, .gitignore,
functions/ and assets/, then installs the project's dependencies. Without
--template the project gets an example Function and asset.

Credentials are taken from --account-sid/--auth-token, imported from
TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN, or asked for interactively.`,
	Example: `  ` + branding.CLIName() + ` my-project
  ` + branding.CLIName() + ` my-project ~/code --template blank
  ` + branding.CLIName() + ` my-project --import-credentials`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := logLevel
		if level == "" {
			level = config.Current().LogLevel
		}
		cfg := logging.DefaultConfig()
		cfg.Level = logging.ParseLevel(level)
		cfg.Output = cmd.ErrOrStderr()
		logging.Init(cfg)
	},
	RunE: runCreate,
	PostRun: func(cmd *cobra.Command, args []string) {
		if !config.Current().UpdateCheck {
			return
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), updateCheckTimeout)
		defer cancel()
		u := updater.New(buildVersion, updater.WithToken(config.Current().GitHubToken))
		u.Notify(ctx, cmd.ErrOrStderr(), config.Dir())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	registerCreateFlags(rootCmd)
}

// Execute runs the root command with build info injected via ldflags.
// Failures the create workflow already reported are not printed again.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !alreadyReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func alreadyReported(err error) bool {
	var stepErr *creator.StepError
	return errors.Is(err, creator.ErrAborted) || errors.As(err, &stepErr)
}
