package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newPreviewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <issue-key>",
		Short: "Fetch a story and generate test cases without commenting",
		Long: `Run the pipeline up to test-case generation and print the result.
The Jira issue is left untouched; no comment is posted.

Useful for checking prompt and model output before committing to a run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueKey := args[0]
			app.Printer.Banner(issueKey)

			start := time.Now()
			state, err := app.sequencer().RunPreview(cmd.Context(), issueKey)
			if err != nil {
				app.Printer.Failure(err)
				return NewExitError(1)
			}

			app.Printer.Story(state.Story)
			app.Printer.TestCases(state.TestCases)
			app.Printer.Success("preview complete, no comment posted", time.Since(start))
			return nil
		},
	}
}
