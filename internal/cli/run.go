package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run <issue-key>",
		Short: "Run the full test-case generation pipeline",
		Long: `Run the full pipeline for a Jira issue:
  1. fetch-story     - Fetch the story and extract acceptance criteria
  2. generate-cases  - Generate test cases with the local model
  3. update-jira     - Post the test cases back as a comment`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issueKey := args[0]
			app.Printer.Banner(issueKey)

			start := time.Now()
			state, err := app.sequencer().Run(cmd.Context(), issueKey)
			if err != nil {
				app.Printer.Failure(err)
				return NewExitError(1)
			}

			app.Printer.TestCases(state.TestCases)
			app.Printer.Success(state.Status, time.Since(start))
			return nil
		},
	}
}
