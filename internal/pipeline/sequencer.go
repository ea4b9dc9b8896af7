package pipeline

import (
	"context"
	"fmt"

	"testgen/internal/config"
	"testgen/internal/jira"
	"testgen/internal/llm"
)

// ProgressCallback is invoked before each stage begins execution.
//
// The callback receives stageIndex (1-based), totalStages count, and the
// stage name. This enables progress reporting in the UI. The callback is
// optional and can be set via [Sequencer.SetProgressCallback].
type ProgressCallback func(stageIndex, totalStages int, stageName string)

// Sequencer executes the pipeline stages in fixed order, threading the
// accumulated [State] through them.
//
// Sequencer uses dependency injection for testability: the tracker
// ([jira.Client]) and the model ([llm.Completer]) are passed in at
// construction, so tests can substitute [jira.MockClient] and
// [llm.MockCompleter]. Use [NewSequencer] to create an instance and
// [Sequencer.Run] to execute a full run.
//
// Transitions are unconditional and linear; there is no branching, no retry
// edges and no conditional routing. A stage failure aborts the remaining
// stages and surfaces to the caller wrapped with the stage name.
type Sequencer struct {
	tracker   jira.Client
	completer llm.Completer
	cfg       *config.Config
	progress  ProgressCallback
	stages    []Stage
}

// NewSequencer creates a Sequencer with the required collaborators.
//
// tracker performs the issue fetch and comment append, completer performs the
// text generation, and cfg supplies the prompt template. The progress
// callback is not set by default; use [Sequencer.SetProgressCallback] to
// enable progress reporting.
func NewSequencer(tracker jira.Client, completer llm.Completer, cfg *config.Config) *Sequencer {
	sq := &Sequencer{
		tracker:   tracker,
		completer: completer,
		cfg:       cfg,
	}
	sq.stages = []Stage{
		{Name: StageStart, Fn: sq.start},
		{Name: StageFetchStory, Fn: sq.fetchStory},
		{Name: StageGenerateCases, Fn: sq.generateCases},
		{Name: StageUpdateJira, Fn: sq.updateJira},
	}
	return sq
}

// SetProgressCallback configures an optional progress callback.
//
// The callback receives the stage index (1-based), total stage count, and
// stage name before each stage begins. This is typically used to display
// progress information in the terminal.
func (sq *Sequencer) SetProgressCallback(cb ProgressCallback) {
	sq.progress = cb
}

// StageNames returns the pipeline's stage names in execution order.
//
// Useful for displaying the planned execution path without running anything.
func (sq *Sequencer) StageNames() []string {
	names := make([]string, len(sq.stages))
	for i, st := range sq.stages {
		names[i] = st.Name
	}
	return names
}

// Run executes the full pipeline for the given issue key and returns the
// final state.
//
// The state starts with only the issue key set; each stage's partial update
// is merged before the next stage runs. Run is fail-fast: the first stage
// error aborts the run and is returned wrapped with the stage name, and the
// partially populated state is discarded. Errors retain their taxonomy
// ([*jira.TrackerError], [*llm.ModelError], [*story.ValidationError]) through
// the wrapping.
func (sq *Sequencer) Run(ctx context.Context, issueKey string) (State, error) {
	return sq.run(ctx, issueKey, sq.stages)
}

// RunPreview executes the pipeline up to and including generate-cases,
// skipping the terminal comment post.
//
// This provides dry-run behavior: the returned state carries the fetched
// story and generated test cases, but the tracker issue is left untouched
// and Status remains empty.
func (sq *Sequencer) RunPreview(ctx context.Context, issueKey string) (State, error) {
	return sq.run(ctx, issueKey, sq.stages[:len(sq.stages)-1])
}

// run threads the state through the given stage slice in order.
func (sq *Sequencer) run(ctx context.Context, issueKey string, stages []Stage) (State, error) {
	state := State{IssueKey: issueKey}

	for i, st := range stages {
		if sq.progress != nil {
			sq.progress(i+1, len(stages), st.Name)
		}

		update, err := st.Fn(ctx, state)
		if err != nil {
			return State{}, fmt.Errorf("stage %s: %w", st.Name, err)
		}
		state.apply(update)
	}

	return state, nil
}
