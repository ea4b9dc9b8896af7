package cli

import (
	"time"

	"github.com/spf13/cobra"

	"testgen/internal/output"
)

func newQueueCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "queue <issue-key> [issue-key...]",
		Short: "Run the full pipeline on multiple issues",
		Long: `Run the full pipeline on multiple Jira issues in sequence.
The queue stops on the first failure.

Example:
  testgen queue PROJ-41 PROJ-42 PROJ-43`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queueStart := time.Now()
			app.Printer.QueueHeader(len(args))

			var results []output.QueueResult
			failed := false

			for i, issueKey := range args {
				app.Printer.QueueItem(i+1, len(args), issueKey)

				start := time.Now()
				state, err := app.sequencer().Run(cmd.Context(), issueKey)
				result := output.QueueResult{
					IssueKey: issueKey,
					Success:  err == nil,
					Duration: time.Since(start),
				}
				results = append(results, result)

				if err != nil {
					app.Printer.Failure(err)
					failed = true
					break
				}
				app.Printer.Success(state.Status, result.Duration)
			}

			app.Printer.QueueSummary(results, args, time.Since(queueStart))

			if failed {
				return NewExitError(1)
			}
			return nil
		},
	}
}
