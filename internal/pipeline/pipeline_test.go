package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testgen/internal/config"
	"testgen/internal/jira"
	"testgen/internal/llm"
)

func setupSequencer() (*Sequencer, *jira.MockClient, *llm.MockCompleter) {
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
	sq := NewSequencer(tracker, completer, config.DefaultConfig())
	return sq, tracker, completer
}

func TestSequencer_Run(t *testing.T) {
	sq, tracker, _ := setupSequencer()

	state, err := sq.Run(context.Background(), "PROJ-42")

	require.NoError(t, err)
	assert.Equal(t, "PROJ-42", state.IssueKey)
	require.NotNil(t, state.Story)
	assert.Equal(t, []string{"- step one", "- step two"}, state.Story.AcceptanceCriteria)
	assert.Equal(t, []string{"Case A", "Case B"}, state.TestCases)
	assert.Equal(t, "Test cases added to JIRA issue PROJ-42", state.Status)

	require.Len(t, tracker.Comments, 1)
	assert.Equal(t, "PROJ-42", tracker.Comments[0].Key)
	assert.Equal(t, "### Generated Test Cases:\n- Case A\n- Case B", tracker.Comments[0].Body)
}

func TestSequencer_Run_PromptContainsStoryFields(t *testing.T) {
	sq, _, completer := setupSequencer()

	_, err := sq.Run(context.Background(), "PROJ-42")

	require.NoError(t, err)
	require.Len(t, completer.RecordedPrompts, 1)
	prompt := completer.RecordedPrompts[0]
	assert.Contains(t, prompt, "Reset password")
	assert.Contains(t, prompt, "Intro\n- step one\n- step two")
	assert.Contains(t, prompt, "- step one, - step two")
}

func TestSequencer_Run_IssueNotFound(t *testing.T) {
	sq, tracker, completer := setupSequencer()

	_, err := sq.Run(context.Background(), "MISSING-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, jira.ErrNotFound)
	var trackerErr *jira.TrackerError
	assert.True(t, errors.As(err, &trackerErr))
	assert.Contains(t, err.Error(), StageFetchStory)

	// Later stages never run on failure
	assert.Empty(t, completer.RecordedPrompts)
	assert.Empty(t, tracker.Comments)
}

func TestSequencer_Run_ModelFailure(t *testing.T) {
	sq, tracker, completer := setupSequencer()
	completer.Err = &llm.ModelError{StatusCode: 500, Err: errors.New("boom")}

	_, err := sq.Run(context.Background(), "PROJ-42")

	require.Error(t, err)
	var modelErr *llm.ModelError
	assert.True(t, errors.As(err, &modelErr))
	assert.Contains(t, err.Error(), StageGenerateCases)

	// No comment attempt is made when generation fails
	assert.Empty(t, tracker.Comments)
}

func TestSequencer_Run_CommentFailure(t *testing.T) {
	sq, tracker, _ := setupSequencer()
	tracker.CommentErr = errors.New("server unreachable")

	state, err := sq.Run(context.Background(), "PROJ-42")

	require.Error(t, err)
	assert.Contains(t, err.Error(), StageUpdateJira)

	// The failed run surfaces no partial state
	assert.Empty(t, state.Status)
	assert.Nil(t, state.Story)
}

func TestSequencer_Run_ValidationFailure(t *testing.T) {
	sq, tracker, completer := setupSequencer()
	tracker.Issues["PROJ-43"] = jira.Issue{Key: "PROJ-43", Summary: ""}

	_, err := sq.Run(context.Background(), "PROJ-43")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing summary")
	assert.Empty(t, completer.RecordedPrompts)
}

func TestSequencer_Run_BlankModelOutput(t *testing.T) {
	sq, tracker, completer := setupSequencer()
	completer.Response = "\n\n   \n"

	state, err := sq.Run(context.Background(), "PROJ-42")

	require.NoError(t, err)
	assert.Empty(t, state.TestCases)
	require.Len(t, tracker.Comments, 1)
	assert.Equal(t, config.CommentHeading, tracker.Comments[0].Body)
}

func TestSequencer_RunPreview(t *testing.T) {
	sq, tracker, _ := setupSequencer()

	state, err := sq.RunPreview(context.Background(), "PROJ-42")

	require.NoError(t, err)
	assert.Equal(t, []string{"Case A", "Case B"}, state.TestCases)
	assert.Empty(t, state.Status)
	assert.Empty(t, tracker.Comments, "preview must not post a comment")
}

func TestSequencer_ProgressCallback(t *testing.T) {
	sq, _, _ := setupSequencer()

	var seen []string
	sq.SetProgressCallback(func(index, total int, name string) {
		assert.Equal(t, 4, total)
		seen = append(seen, name)
	})

	_, err := sq.Run(context.Background(), "PROJ-42")

	require.NoError(t, err)
	assert.Equal(t, []string{StageStart, StageFetchStory, StageGenerateCases, StageUpdateJira}, seen)
}

func TestSequencer_StageNames(t *testing.T) {
	sq, _, _ := setupSequencer()

	assert.Equal(t,
		[]string{StageStart, StageFetchStory, StageGenerateCases, StageUpdateJira},
		sq.StageNames())
}

func TestParseTestCases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lines trimmed and ordered",
			text: "Case A\n  Case B  \nCase C",
			want: []string{"Case A", "Case B", "Case C"},
		},
		{
			name: "blank lines dropped",
			text: "Case A\n\n\nCase B\n",
			want: []string{"Case A", "Case B"},
		},
		{
			name: "only blank lines yields empty slice",
			text: "\n  \n\t\n",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTestCases(tt.text))
		})
	}
}

func TestFormatComment(t *testing.T) {
	body := FormatComment([]string{"Case A", "Case B"})

	assert.Equal(t, "### Generated Test Cases:\n- Case A\n- Case B", body)
}

func TestFormatComment_Empty(t *testing.T) {
	assert.Equal(t, config.CommentHeading, FormatComment(nil))
}

func TestState_Apply(t *testing.T) {
	state := State{IssueKey: "PROJ-1"}

	status := "done"
	state.apply(Update{Status: &status})

	assert.Equal(t, "PROJ-1", state.IssueKey, "unset update fields leave state untouched")
	assert.Equal(t, "done", state.Status)
}
