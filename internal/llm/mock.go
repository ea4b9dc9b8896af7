package llm

import "context"

// MockCompleter implements [Completer] for testing without network access.
//
// Configure Response with the completion text to return and Err to force a
// failure. RecordedPrompts captures every prompt passed to Complete, in order.
type MockCompleter struct {
	// Response is the completion text returned by Complete.
	Response string

	// Err, when set, is returned by every Complete call.
	Err error

	// RecordedPrompts records the prompts passed to Complete, in order.
	RecordedPrompts []string
}

// Complete records the prompt and returns the configured response or error.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.RecordedPrompts = append(m.RecordedPrompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
