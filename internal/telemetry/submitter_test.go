package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gesturelab/gesture-arcade/internal/tracking"
)

// staticAuth is a fixed-value AuthProvider for tests.
type staticAuth struct {
	token string
	url   string
}

func (a staticAuth) Token() string  { return a.token }
func (a staticAuth) APIURL() string { return a.url }

// capture records requests received by the test server.
type capture struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
}

type capturedRequest struct {
	path    string
	auth    string
	payload tracking.Payload
}

func (c *capture) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var p tracking.Payload
		_ = json.Unmarshal(body, &p)

		c.mu.Lock()
		c.requests = append(c.requests, capturedRequest{
			path:    r.URL.Path,
			auth:    r.Header.Get("Authorization"),
			payload: p,
		})
		status := c.status
		c.mu.Unlock()

		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		w.Write([]byte(`{"ok":true}`))
	}
}

func (c *capture) all() []capturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]capturedRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

func testPayload() tracking.Payload {
	return tracking.Payload{
		GameID: "DINO",
		Progress: tracking.Progress{
			Gesture: "ThreeFinger",
			Actions: []tracking.ActionEntry{
				{Action: "jump", Time: 0.2},
				{Action: "jump", Time: 1.1},
			},
		},
		Result: "lose",
		Score:  150,
	}
}

func closeAndWait(t *testing.T, s *Submitter) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))
}

func TestSubmitPostsPayload(t *testing.T) {
	cap := &capture{}
	server := httptest.NewServer(cap.handler())
	defer server.Close()

	s := NewSubmitter(staticAuth{token: "tok", url: server.URL}, Options{Logger: log.New(io.Discard)})
	s.Submit(testPayload())
	closeAndWait(t, s)

	reqs := cap.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, SubmitPath, reqs[0].path)
	assert.Equal(t, "Bearer tok", reqs[0].auth)
	assert.Equal(t, "DINO", reqs[0].payload.GameID)
	assert.Equal(t, "ThreeFinger", reqs[0].payload.Progress.Gesture)
	assert.Equal(t, "lose", reqs[0].payload.Result)
	assert.Equal(t, 150, reqs[0].payload.Score)
	require.Len(t, reqs[0].payload.Progress.Actions, 2)
	assert.Equal(t, "jump", reqs[0].payload.Progress.Actions[0].Action)
	assert.InDelta(t, 0.2, reqs[0].payload.Progress.Actions[0].Time, 1e-9)
}

func TestSubmitWireFormat(t *testing.T) {
	var raw []byte
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		raw = body
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewSubmitter(staticAuth{token: "tok", url: server.URL}, Options{Logger: log.New(io.Discard)})
	s.Submit(testPayload())
	closeAndWait(t, s)

	mu.Lock()
	defer mu.Unlock()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	// Field names are part of the API contract.
	assert.Contains(t, doc, "game_id")
	assert.Contains(t, doc, "game_progress")
	assert.Contains(t, doc, "game_result")
	assert.Contains(t, doc, "game_score")

	progress, ok := doc["game_progress"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, progress, "gesture")
	assert.Contains(t, progress, "actions")

	actions, ok := progress["actions"].([]any)
	require.True(t, ok)
	require.Len(t, actions, 2)
	first, ok := actions[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, first, "action")
	assert.Contains(t, first, "time")
}

func TestSubmitAbortsWithoutToken(t *testing.T) {
	cap := &capture{}
	server := httptest.NewServer(cap.handler())
	defer server.Close()

	s := NewSubmitter(staticAuth{token: "", url: server.URL}, Options{Logger: log.New(io.Discard)})
	s.Submit(testPayload())
	closeAndWait(t, s)

	assert.Empty(t, cap.all(), "submission without a token must be aborted")
}

func TestSubmitUsesDevTokenFallback(t *testing.T) {
	cap := &capture{}
	server := httptest.NewServer(cap.handler())
	defer server.Close()

	s := NewSubmitter(staticAuth{token: "", url: server.URL}, Options{
		DevToken: "dev-tok",
		Logger:   log.New(io.Discard),
	})
	s.Submit(testPayload())
	closeAndWait(t, s)

	reqs := cap.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer dev-tok", reqs[0].auth)
}

func TestSubmitAbortsWithoutURL(t *testing.T) {
	s := NewSubmitter(staticAuth{token: "tok", url: ""}, Options{Logger: log.New(io.Discard)})
	s.Submit(testPayload())
	closeAndWait(t, s) // must not hang or panic
}

func TestSubmitRejectedResponseIsNotRetried(t *testing.T) {
	cap := &capture{status: http.StatusInternalServerError}
	server := httptest.NewServer(cap.handler())
	defer server.Close()

	s := NewSubmitter(staticAuth{token: "tok", url: server.URL}, Options{Logger: log.New(io.Discard)})
	s.Submit(testPayload())
	closeAndWait(t, s)

	assert.Len(t, cap.all(), 1, "a rejected submission must not be retried")
}

func TestCloseTimesOutOnStuckRequest(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	s := NewSubmitter(staticAuth{token: "tok", url: server.URL}, Options{
		Timeout: 30 * time.Second,
		Logger:  log.New(io.Discard),
	})
	s.Submit(testPayload())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := s.Close(ctx)
	require.Error(t, err, "Close must give up when the flush deadline passes")
}
