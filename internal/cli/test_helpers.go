package cli

import (
	"bytes"

	"testgen/internal/config"
	"testgen/internal/jira"
	"testgen/internal/llm"
	"testgen/internal/output"
)

// newTestApp builds an [App] backed by mock collaborators and a buffered
// printer for command tests.
//
// The mock tracker serves one issue, PROJ-42, and the mock completer returns
// two test-case lines. Tests adjust the mocks to force failures.
func newTestApp() (*App, *jira.MockClient, *llm.MockCompleter, *bytes.Buffer) {
	tracker := &jira.MockClient{
		Issues: map[string]jira.Issue{
			"PROJ-42": {
				Key:         "PROJ-42",
				Summary:     "Reset password",
				Description: "Intro\n- step one\n- step two",
			},
		},
	}
	completer := &llm.MockCompleter{Response: "Case A\nCase B\n"}
	buf := &bytes.Buffer{}

	app := &App{
		Config:    config.DefaultConfig(),
		Tracker:   tracker,
		Completer: completer,
		Printer:   output.NewPrinterWithWriter(buf),
	}
	return app, tracker, completer, buf
}
