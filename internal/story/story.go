// Package story provides the data model for a Jira user story.
//
// A [Story] is constructed once per pipeline run from raw tracker fields and
// is immutable afterwards. Acceptance criteria are extracted from the free-text
// description: every line whose trimmed form starts with a dash marker is kept
// as a criterion, in document order.
//
// Key types:
//   - [Story] - The structured user story (key, summary, description, criteria)
//   - [ValidationError] - Returned by [New] when required fields are missing
package story

import (
	"fmt"
	"strings"
)

// Story is a structured representation of a tracked user story.
//
// Construct with [New]; the zero value is not meaningful. AcceptanceCriteria
// holds the dash-prefixed lines of the description (dash retained), in source
// order, duplicates allowed.
type Story struct {
	// Key is the tracker issue key, e.g. "PROJ-42". Never empty.
	Key string

	// Summary is the issue title. Never empty.
	Summary string

	// Description is the free-text issue description. May be empty.
	Description string

	// AcceptanceCriteria are the trimmed dash-prefixed lines of Description.
	AcceptanceCriteria []string
}

// ValidationError indicates a story could not be built from raw tracker fields.
//
// Field names the missing required field ("key" or "summary"). Use [errors.As]
// to detect validation failures distinct from tracker or model failures.
type ValidationError struct {
	// Field is the name of the missing required field.
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid story: missing %s", e.Field)
}

// New builds a [Story] from raw tracker fields.
//
// Returns a [*ValidationError] if key or summary is empty. Description is
// optional; an empty description yields empty acceptance criteria.
func New(key, summary, description string) (Story, error) {
	if key == "" {
		return Story{}, &ValidationError{Field: "key"}
	}
	if summary == "" {
		return Story{}, &ValidationError{Field: "summary"}
	}

	return Story{
		Key:                key,
		Summary:            summary,
		Description:        description,
		AcceptanceCriteria: ParseAcceptanceCriteria(description),
	}, nil
}

// ParseAcceptanceCriteria extracts acceptance criteria from a description.
//
// The description is split into lines, each line is whitespace-trimmed, and
// only lines starting with "-" are kept (dash included), preserving source
// order. No nested-bullet or numbering parsing is attempted. A description
// with no dash-prefixed lines yields an empty slice.
func ParseAcceptanceCriteria(description string) []string {
	criteria := []string{}
	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") {
			criteria = append(criteria, trimmed)
		}
	}
	return criteria
}
