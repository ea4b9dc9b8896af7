package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"testgen/internal/pipeline"
)

func newRawCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "raw <prompt>",
		Short: "Send an arbitrary prompt to the model",
		Long: `Send an arbitrary prompt directly to the completion endpoint and
print the returned lines. Useful for testing model connectivity and
prompt wording.

Example:
  testgen raw "Generate test cases for a login form"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")

			text, err := app.Completer.Complete(cmd.Context(), prompt)
			if err != nil {
				app.Printer.Failure(err)
				return NewExitError(1)
			}

			app.Printer.TestCases(pipeline.ParseTestCases(text))
			return nil
		},
	}
}
