// Package cli provides the cobra command-line interface for testgen.
//
// The CLI wires real collaborators (Jira HTTP client, Ollama completion
// client) into the pipeline and exposes one command per operation:
//
//	testgen run <issue-key>       Full pipeline: fetch, generate, comment
//	testgen preview <issue-key>   Fetch and generate without commenting
//	testgen queue <issue-key>...  Full pipeline per issue, stop on failure
//	testgen raw "<prompt>"        Send an arbitrary prompt to the model
//
// Commands receive their dependencies through [App], so tests can substitute
// [jira.MockClient] and [llm.MockCompleter] without touching the network.
// Failures are signaled with [ExitError] rather than os.Exit, keeping command
// behavior assertable in tests.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"testgen/internal/config"
	"testgen/internal/jira"
	"testgen/internal/llm"
	"testgen/internal/output"
	"testgen/internal/pipeline"
)

// App holds the dependencies shared by all commands.
//
// Construct one with real collaborators via [Execute], or by hand with mocks
// in tests, then pass it to [NewRootCommand].
type App struct {
	Config    *config.Config
	Tracker   jira.Client
	Completer llm.Completer
	Printer   *output.Printer
}

// sequencer builds a pipeline sequencer over the app's collaborators with
// stage progress wired to the printer.
func (a *App) sequencer() *pipeline.Sequencer {
	sq := pipeline.NewSequencer(a.Tracker, a.Completer, a.Config)
	sq.SetProgressCallback(a.Printer.StageProgress)
	return sq
}

// NewRootCommand creates the root cobra command with all subcommands attached.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "testgen",
		Short: "Generate test cases for Jira stories with a local LLM",
		Long: `testgen fetches a user story from Jira, asks a locally hosted
language model to generate test cases for it, and posts the result back to
the issue as a comment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand(app))
	root.AddCommand(newPreviewCommand(app))
	root.AddCommand(newQueueCommand(app))
	root.AddCommand(newRawCommand(app))

	return root
}

// Execute loads configuration, builds the production collaborators and runs
// the root command. It returns the process exit code.
//
// Configuration and credential errors are reported before any command runs.
// Command failures surface as [ExitError] and are mapped to their exit codes.
func Execute() int {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "testgen: %v\n", err)
		return 1
	}

	if err := cfg.Jira.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "testgen: %v\n", err)
		return 1
	}

	printer := output.NewPrinter()
	printer.SetTruncateLength(cfg.Output.TruncateLength)

	app := &App{
		Config:    cfg,
		Tracker:   jira.NewHTTPClient(cfg.Jira.ServerURL, cfg.Jira.Email, cfg.Jira.APIToken),
		Completer: llm.NewOllamaClient(cfg.Model.Endpoint, cfg.Model.Name, cfg.Model.MaxTokens, cfg.Model.Temperature),
		Printer:   printer,
	}

	if err := NewRootCommand(app).Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return code
		}
		fmt.Fprintf(os.Stderr, "testgen: %v\n", err)
		return 1
	}

	return 0
}
