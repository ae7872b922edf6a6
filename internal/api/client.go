// Package api is the HTTP client for the task API.
//
// Every method issues exactly one request. Any failure, whether transport
// or a non-2xx status, is returned as an *errors.RequestError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/taskboard/internal/errors"
	"github.com/Iron-Ham/taskboard/internal/logging"
)

// Version is reported in the User-Agent header. Set by cmd at startup.
var Version = "dev"

// RequestIDHeader carries a per-request id for correlating client and
// server logs.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 * 1024

// Client talks to the task API rooted at baseURL (e.g. http://host:5000/api).
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *logging.Logger
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.WithComponent("api")
		}
	}
}

// NewClient creates a Client. A trailing slash on baseURL is ignored.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  "taskboard/" + Version,
		logger:     logging.NopLogger(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks returns every task, each with its comments, in server order.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// GetTask returns one task with its comments.
func (c *Client) GetTask(ctx context.Context, id int) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &task)
	return task, err
}

// CreateTask creates a task and returns it as stored.
func (c *Client) CreateTask(ctx context.Context, in TaskInput) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPost, "/tasks", in, &task)
	return task, err
}

// UpdateTask replaces the title and description of task id.
func (c *Client) UpdateTask(ctx context.Context, id int, in TaskInput) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), in, &task)
	return task, err
}

// DeleteTask deletes task id. The server removes its comments with it.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// ListComments returns the comments of task taskID in server order.
func (c *Client) ListComments(ctx context.Context, taskID int) ([]Comment, error) {
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/comments", taskID), nil, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, nil
}

// CreateComment adds a comment to task taskID.
func (c *Client) CreateComment(ctx context.Context, taskID int, text string) (Comment, error) {
	var comment Comment
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/comments", taskID), commentInput{Text: text}, &comment)
	return comment, err
}

// UpdateComment replaces the text of comment id.
func (c *Client) UpdateComment(ctx context.Context, id int, text string) (Comment, error) {
	var comment Comment
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", id), commentInput{Text: text}, &comment)
	return comment, err
}

// DeleteComment deletes comment id.
func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), nil, nil)
}

// do sends one request. in, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	requestID := c.newID()
	fail := func(cause error) *errors.RequestError {
		return errors.NewRequestError(method, path, cause).WithRequestID(requestID)
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fail(fmt.Errorf("failed to marshal request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error(),
		)
		return fail(err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := fail(nil).WithStatus(resp.StatusCode)
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			reqErr.WithServerMessage(eb.Error)
		}
		return reqErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(fmt.Errorf("failed to decode response: %w", err)).WithStatus(resp.StatusCode)
	}
	return nil
}
