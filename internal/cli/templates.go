package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/twilio-labs/create-twilio-function/internal/config"
	"github.com/twilio-labs/create-twilio-function/internal/templates"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates available to --template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		client := templates.New(
			templates.WithAPIBase(s.TemplatesAPI),
			templates.WithRepo(s.TemplateRepo),
			templates.WithRef(s.TemplateRef),
			templates.WithToken(s.GitHubToken),
		)

		list, err := client.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing templates: %w", err)
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, t := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Description)
		}
		return w.Flush()
	},
}
