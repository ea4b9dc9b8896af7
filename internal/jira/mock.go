package jira

import "context"

// MockClient implements [Client] for testing without network access.
//
// Configure Issues with the issues to serve and FetchErr/CommentErr to force
// failures. Comments records every AddComment call in order.
type MockClient struct {
	// Issues maps issue keys to the issues FetchIssue returns.
	Issues map[string]Issue

	// FetchErr, when set, is returned by every FetchIssue call.
	FetchErr error

	// CommentErr, when set, is returned by every AddComment call.
	CommentErr error

	// FetchedKeys records the keys passed to FetchIssue, in order.
	FetchedKeys []string

	// Comments records every AddComment call, in order.
	Comments []MockComment
}

// MockComment is a recorded AddComment call.
type MockComment struct {
	Key  string
	Body string
}

// FetchIssue returns the configured issue for key, or a [*TrackerError]
// wrapping [ErrNotFound] if the key is not in Issues.
func (m *MockClient) FetchIssue(ctx context.Context, key string) (Issue, error) {
	m.FetchedKeys = append(m.FetchedKeys, key)

	if m.FetchErr != nil {
		return Issue{}, &TrackerError{Op: "fetch issue", Key: key, Err: m.FetchErr}
	}

	issue, ok := m.Issues[key]
	if !ok {
		return Issue{}, &TrackerError{Op: "fetch issue", Key: key, Err: ErrNotFound}
	}
	return issue, nil
}

// AddComment records the comment, or returns a [*TrackerError] if CommentErr
// is set.
func (m *MockClient) AddComment(ctx context.Context, key, body string) error {
	if m.CommentErr != nil {
		return &TrackerError{Op: "add comment", Key: key, Err: m.CommentErr}
	}
	m.Comments = append(m.Comments, MockComment{Key: key, Body: body})
	return nil
}
