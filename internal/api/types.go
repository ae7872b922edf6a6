package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Task is a work item as returned by the API, with its comments embedded
// in server order.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Comments    []Comment `json:"comments"`
}

// Clone returns a deep copy so callers can hold a snapshot that later
// list reloads cannot alter.
func (t Task) Clone() Task {
	c := t
	if t.Comments != nil {
		c.Comments = make([]Comment, len(t.Comments))
		copy(c.Comments, t.Comments)
	}
	return c
}

// CommentCount is the number of comments in the last fetched payload.
func (t Task) CommentCount() int {
	return len(t.Comments)
}

// Comment is a note attached to exactly one task.
type Comment struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	CreatedAt Timestamp `json:"created_at"`
}

// TaskInput is the body of task create and update requests.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type commentInput struct {
	Text string `json:"text"`
}

// errorBody is the shape of API error responses: {"error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}

// Timestamp accepts RFC 3339 as well as the zone-less ISO 8601 form
// ("2026-01-02T15:04:05.123456") that the API emits. Zone-less values are
// taken as UTC.
type Timestamp struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses s in any of the accepted forms.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{t}, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// UnmarshalJSON implements json.Unmarshaler. null leaves the zero time.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON writes RFC 3339 in UTC, or null for the zero time.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339Nano))
}

// Display formats the timestamp in the local time zone using layout.
// The zero time renders as "".
func (ts Timestamp) Display(layout string) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(layout)
}
