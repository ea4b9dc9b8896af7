// Package pipeline implements the four-stage test-case generation pipeline.
//
// A run threads a [State] through a fixed linear sequence of stages:
// start, fetch-story, generate-cases, update-jira. Each stage consumes the
// accumulated state and returns a partial [Update] that the [Sequencer]
// merges before invoking the next stage. Stage fields are populated
// monotonically: no stage reads a field a later stage owns, and no stage
// mutates a field another stage has written.
//
// Any collaborator failure aborts the run; there are no retries, no branching
// and no partial state persisted across a failed run.
//
// Key types:
//   - [State] - The accumulated pipeline record for one run
//   - [Update] - A stage's partial contribution to the state
//   - [Sequencer] - Executes the stages in fixed order
package pipeline

import "testgen/internal/story"

// State is the record threaded through one pipeline run.
//
// It is created with only IssueKey set and populated stage by stage; later
// fields remain zero until their owning stage runs. A State is owned by a
// single run and discarded after the terminal stage.
type State struct {
	// IssueKey is the tracker issue key the run operates on. Set at start.
	IssueKey string

	// Story is the fetched and validated user story. Set by fetch-story.
	Story *story.Story

	// TestCases are the generated test cases, one per line of model output.
	// Set by generate-cases.
	TestCases []string

	// Status is the human-readable confirmation of the posted comment.
	// Set by update-jira, the terminal stage.
	Status string
}

// Update is a stage's partial contribution to the running [State].
//
// Nil fields leave the corresponding state field untouched; non-nil fields
// overwrite it. This makes the merge semantics of each stage explicit rather
// than letting stages mutate shared state directly.
type Update struct {
	IssueKey  *string
	Story     *story.Story
	TestCases []string
	Status    *string
}

// apply merges an [Update] into the state, overwriting only the fields the
// update carries.
func (s *State) apply(u Update) {
	if u.IssueKey != nil {
		s.IssueKey = *u.IssueKey
	}
	if u.Story != nil {
		s.Story = u.Story
	}
	if u.TestCases != nil {
		s.TestCases = u.TestCases
	}
	if u.Status != nil {
		s.Status = *u.Status
	}
}
