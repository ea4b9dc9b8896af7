// Package jira provides a minimal Jira REST API v2 client.
//
// The client covers the two operations the pipeline needs: fetching an issue's
// summary and description, and appending a comment. Authentication is HTTP
// basic auth with the account email and an API token.
//
// Key types:
//   - [Client] - Interface for tracker operations, enabling test doubles
//   - [HTTPClient] - Production implementation against the REST API
//   - [TrackerError] - Wrapper for every tracker failure
//
// For testing, use [MockClient] which implements [Client] without network access.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Sentinel errors for tracker failures. Both are always wrapped in a
// [*TrackerError]; check with [errors.Is].
var (
	// ErrNotFound indicates the issue key does not exist on the server.
	ErrNotFound = errors.New("issue not found")

	// ErrAuth indicates the credentials were rejected by the server.
	ErrAuth = errors.New("authentication failed")
)

// TrackerError wraps any failure from the issue tracker.
//
// Op names the attempted operation ("fetch issue" or "add comment") and Key
// is the issue key involved. Err carries the underlying cause and may be
// [ErrNotFound] or [ErrAuth]; Unwrap makes both reachable via [errors.Is].
type TrackerError struct {
	Op  string
	Key string
	Err error
}

// Error implements the error interface.
func (e *TrackerError) Error() string {
	return fmt.Sprintf("jira: %s %s: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TrackerError) Unwrap() error {
	return e.Err
}

// Issue holds the raw tracker fields the pipeline consumes.
//
// This is the wire-level contract; the story package turns it into a
// validated model with extracted acceptance criteria.
type Issue struct {
	// Key is the issue key as reported by the server.
	Key string

	// Summary is the issue title.
	Summary string

	// Description is the free-text issue description. May be empty.
	Description string
}

// Client is the interface for issue-tracker operations.
//
// FetchIssue retrieves an issue's key, summary and description. AddComment
// appends a comment body to an issue. Both return a [*TrackerError] on failure.
// [HTTPClient] is the production implementation; [MockClient] serves tests.
type Client interface {
	FetchIssue(ctx context.Context, key string) (Issue, error)
	AddComment(ctx context.Context, key, body string) error
}

// HTTPClient implements [Client] against the Jira REST API v2.
//
// Create instances with [NewHTTPClient]. The client uses basic auth with the
// account email and API token and relies on the default http.Client timeout
// behavior; there is no retry logic.
type HTTPClient struct {
	serverURL string
	email     string
	apiToken  string
	client    *http.Client
}

// NewHTTPClient creates an [HTTPClient] for the given Jira server.
//
// serverURL is the base URL of the Jira instance (e.g.
// "https://example.atlassian.net"); a trailing slash is tolerated. email and
// apiToken are the basic auth credentials.
func NewHTTPClient(serverURL, email, apiToken string) *HTTPClient {
	return &HTTPClient{
		serverURL: strings.TrimRight(serverURL, "/"),
		email:     email,
		apiToken:  apiToken,
		client:    &http.Client{},
	}
}

// issueResponse mirrors the GET /rest/api/2/issue/{key} response body,
// restricted to the fields the pipeline reads.
type issueResponse struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// commentRequest is the POST /rest/api/2/issue/{key}/comment request body.
type commentRequest struct {
	Body string `json:"body"`
}

// FetchIssue retrieves an issue's summary and description.
//
// Returns a [*TrackerError] wrapping [ErrNotFound] for a 404 response and
// [ErrAuth] for 401/403. Any other non-2xx status or transport failure is
// wrapped with the server's status and body excerpt.
func (c *HTTPClient) FetchIssue(ctx context.Context, key string) (Issue, error) {
	reqURL := fmt.Sprintf("%s/rest/api/2/issue/%s?fields=summary,description", c.serverURL, url.PathEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Issue{}, &TrackerError{Op: "fetch issue", Key: key, Err: err}
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Issue{}, &TrackerError{Op: "fetch issue", Key: key, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return Issue{}, &TrackerError{Op: "fetch issue", Key: key, Err: err}
	}

	var body issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Issue{}, &TrackerError{Op: "fetch issue", Key: key, Err: fmt.Errorf("decoding response: %w", err)}
	}

	return Issue{
		Key:         body.Key,
		Summary:     body.Fields.Summary,
		Description: body.Fields.Description,
	}, nil
}

// AddComment appends a comment to an issue.
//
// Returns a [*TrackerError] on any failure, wrapping [ErrNotFound] or
// [ErrAuth] for the corresponding HTTP statuses.
func (c *HTTPClient) AddComment(ctx context.Context, key, body string) error {
	reqURL := fmt.Sprintf("%s/rest/api/2/issue/%s/comment", c.serverURL, url.PathEscape(key))

	payload, err := json.Marshal(commentRequest{Body: body})
	if err != nil {
		return &TrackerError{Op: "add comment", Key: key, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return &TrackerError{Op: "add comment", Key: key, Err: err}
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &TrackerError{Op: "add comment", Key: key, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return &TrackerError{Op: "add comment", Key: key, Err: err}
	}

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	return nil
}

// checkStatus maps non-2xx responses to errors. 404 becomes [ErrNotFound],
// 401 and 403 become [ErrAuth]; anything else carries the status and a body
// excerpt for diagnostics.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	}

	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
}
