package pipeline

import (
	"context"
	"fmt"
	"strings"

	"testgen/internal/config"
	"testgen/internal/story"
)

// Stage names, in execution order. Exposed for progress reporting and the
// preview command.
const (
	StageStart         = "start"
	StageFetchStory    = "fetch-story"
	StageGenerateCases = "generate-cases"
	StageUpdateJira    = "update-jira"
)

// StageFunc is one step of the pipeline: a function from accumulated state to
// a partial state update. A returned error aborts the run; the update is
// discarded in that case.
type StageFunc func(ctx context.Context, s State) (Update, error)

// Stage pairs a stage name with its function for sequencing and progress
// reporting.
type Stage struct {
	Name string
	Fn   StageFunc
}

// start passes the issue key through unchanged. It exists so the pipeline's
// entry is an explicit stage rather than implicit initialization.
func (sq *Sequencer) start(ctx context.Context, s State) (Update, error) {
	key := s.IssueKey
	return Update{IssueKey: &key}, nil
}

// fetchStory retrieves the issue from the tracker and builds the validated
// story model, extracting acceptance criteria from the description.
func (sq *Sequencer) fetchStory(ctx context.Context, s State) (Update, error) {
	issue, err := sq.tracker.FetchIssue(ctx, s.IssueKey)
	if err != nil {
		return Update{}, err
	}

	st, err := story.New(issue.Key, issue.Summary, issue.Description)
	if err != nil {
		return Update{}, err
	}

	return Update{Story: &st}, nil
}

// generateCases renders the prompt from the story, asks the model for a
// completion, and splits the result into individual test cases.
func (sq *Sequencer) generateCases(ctx context.Context, s State) (Update, error) {
	prompt, err := sq.cfg.RenderPrompt(config.PromptData{
		Summary:            s.Story.Summary,
		Description:        s.Story.Description,
		AcceptanceCriteria: strings.Join(s.Story.AcceptanceCriteria, ", "),
	})
	if err != nil {
		return Update{}, err
	}

	text, err := sq.completer.Complete(ctx, prompt)
	if err != nil {
		return Update{}, err
	}

	return Update{TestCases: ParseTestCases(text)}, nil
}

// updateJira posts the generated test cases back to the issue as a markdown
// comment and records the confirmation status. Terminal stage.
func (sq *Sequencer) updateJira(ctx context.Context, s State) (Update, error) {
	body := FormatComment(s.TestCases)
	if err := sq.tracker.AddComment(ctx, s.IssueKey, body); err != nil {
		return Update{}, err
	}

	status := fmt.Sprintf("Test cases added to JIRA issue %s", s.IssueKey)
	return Update{Status: &status}, nil
}

// ParseTestCases splits model output into individual test cases.
//
// The text is split on newlines, each line is whitespace-trimmed, and empty
// lines are dropped. Order is preserved. Output consisting only of blank
// lines yields an empty slice.
func ParseTestCases(text string) []string {
	cases := []string{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			cases = append(cases, trimmed)
		}
	}
	return cases
}

// FormatComment renders test cases as a markdown bullet list under the fixed
// comment heading, one bullet per case in order.
func FormatComment(testCases []string) string {
	var b strings.Builder
	b.WriteString(config.CommentHeading)
	for _, tc := range testCases {
		b.WriteString("\n- ")
		b.WriteString(tc)
	}
	return b.String()
}
