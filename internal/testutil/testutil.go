// Package testutil provides a fake task API for tests.
//
// Server implements the HTTP contract of the real API in memory: tasks with
// embedded comments, server-assigned ids, zone-less ISO timestamps, 201 on
// create, 204 on delete, {"error": "..."} bodies on validation failures and
// an HTML 404 page for unknown ids. Tests can inject failures and inspect
// the requests that were made.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Request is a request the fake server received.
type Request struct {
	Method    string
	Path      string
	Body      string
	RequestID string
	UserAgent string
}

type comment struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Comments    []comment `json:"comments"`
}

type failure struct {
	method string
	path   string
	status int
	once   bool
}

// Server is an in-memory task API served over httptest.
type Server struct {
	srv *httptest.Server

	mu            sync.Mutex
	tasks         []*task
	nextTaskID    int
	nextCommentID int
	failures      []failure
	requests      []Request
	now           func() time.Time
}

// NewServer starts a fake API that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		nextTaskID:    1,
		nextCommentID: 1,
		now:           time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", s.listTasks)
	mux.HandleFunc("POST /api/tasks", s.createTask)
	mux.HandleFunc("GET /api/tasks/{id}", s.getTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.updateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	mux.HandleFunc("GET /api/tasks/{id}/comments", s.listComments)
	mux.HandleFunc("POST /api/tasks/{id}/comments", s.createComment)
	mux.HandleFunc("PUT /api/comments/{id}", s.updateComment)
	mux.HandleFunc("DELETE /api/comments/{id}", s.deleteComment)

	s.srv = httptest.NewServer(s.intercept(mux))
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL is the API root to hand to api.NewClient.
func (s *Server) BaseURL() string {
	return s.srv.URL + "/api"
}

// Close shuts the server down so later requests fail at the transport level.
func (s *Server) Close() {
	s.srv.Close()
}

// SetClock fixes the time used for new comments.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddTask stores a task with the given comments and returns its id.
func (s *Server) AddTask(title, description string, comments ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	tk := &task{ID: s.nextTaskID, Title: title, Description: description, Comments: []comment{}}
	s.nextTaskID++
	for _, text := range comments {
		tk.Comments = append(tk.Comments, s.newComment(text))
	}
	s.tasks = append(s.tasks, tk)
	return tk.ID
}

// TaskTitle returns the stored title of task id.
func (s *Server) TaskTitle(id int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tk := s.find(id); tk != nil {
		return tk.Title, true
	}
	return "", false
}

// TaskCount returns the number of stored tasks.
func (s *Server) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// CommentIDs returns the ids of the comments of task id, in order.
func (s *Server) CommentIDs(taskID int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	tk := s.find(taskID)
	if tk == nil {
		return nil
	}
	ids := make([]int, len(tk.Comments))
	for i, c := range tk.Comments {
		ids[i] = c.ID
	}
	return ids
}

// Fail makes every request matching method and path answer with status
// until Heal is called. path is relative to the API root, e.g. "/tasks/3".
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status})
}

// FailOnce makes only the next matching request answer with status.
func (s *Server) FailOnce(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status, once: true})
}

// Heal removes every injected failure.
func (s *Server) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = nil
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Calls returns "METHOD /path" for every request, in arrival order.
func (s *Server) Calls() []string {
	var out []string
	for _, r := range s.Requests() {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

// ResetRequests forgets the recorded requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		path := strings.TrimPrefix(r.URL.Path, "/api")

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      path,
			Body:      string(body),
			RequestID: r.Header.Get("X-Request-ID"),
			UserAgent: r.Header.Get("User-Agent"),
		})
		status := 0
		for i, f := range s.failures {
			if f.method == r.Method && f.path == path {
				status = f.status
				if f.once {
					s.failures = append(s.failures[:i], s.failures[i+1:]...)
				}
				break
			}
		}
		s.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// newComment allocates a comment. The caller must hold the mutex.
func (s *Server) newComment(text string) comment {
	c := comment{
		ID:        s.nextCommentID,
		Text:      text,
		CreatedAt: s.now().UTC().Format("2006-01-02T15:04:05.000000"),
	}
	s.nextCommentID++
	return c
}

// find returns task id or nil. The caller must hold the mutex.
func (s *Server) find(id int) *task {
	for _, tk := range s.tasks {
		if tk.ID == id {
			return tk
		}
	}
	return nil
}

// findComment returns the owning task and index. The caller must hold the mutex.
func (s *Server) findComment(id int) (*task, int) {
	for _, tk := range s.tasks {
		for i, c := range tk.Comments {
			if c.ID == id {
				return tk, i
			}
		}
	}
	return nil, -1
}

func (s *Server) listTasks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task, 0, len(s.tasks))
	for _, tk := range s.tasks {
		out = append(out, *tk)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Title is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tk := &task{ID: s.nextTaskID, Title: in.Title, Description: in.Description, Comments: []comment{}}
	s.nextTaskID++
	s.tasks = append(s.tasks, tk)
	writeJSON(w, http.StatusCreated, tk)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tk := s.find(pathID(r))
	if tk == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, tk)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var in map[string]*string
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tk := s.find(pathID(r))
	if tk == nil {
		notFound(w)
		return
	}
	if v, ok := in["title"]; ok && v != nil {
		tk.Title = *v
	}
	if v, ok := in["description"]; ok && v != nil {
		tk.Description = *v
	}
	writeJSON(w, http.StatusOK, tk)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for i, tk := range s.tasks {
		if tk.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	notFound(w)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tk := s.find(pathID(r))
	if tk == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, tk.Comments)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	decodeErr := json.NewDecoder(r.Body).Decode(&in)

	s.mu.Lock()
	defer s.mu.Unlock()
	tk := s.find(pathID(r))
	if tk == nil {
		notFound(w)
		return
	}
	if decodeErr != nil || in.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Comment text is required"})
		return
	}
	c := s.newComment(in.Text)
	tk.Comments = append(tk.Comments, c)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	decodeErr := json.NewDecoder(r.Body).Decode(&in)

	s.mu.Lock()
	defer s.mu.Unlock()
	tk, i := s.findComment(pathID(r))
	if tk == nil {
		notFound(w)
		return
	}
	if decodeErr != nil || in.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Comment text is required"})
		return
	}
	tk.Comments[i].Text = in.Text
	writeJSON(w, http.StatusOK, tk.Comments[i])
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tk, i := s.findComment(pathID(r))
	if tk == nil {
		notFound(w)
		return
	}
	tk.Comments = append(tk.Comments[:i], tk.Comments[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) int {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return -1
	}
	return id
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = fmt.Fprint(w, "<!doctype html><title>404 Not Found</title><h1>Not Found</h1>")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
