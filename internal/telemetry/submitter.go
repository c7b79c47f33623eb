// Package telemetry delivers completed session payloads to the remote game
// API. Submission is fire-and-forget: each payload gets exactly one POST on
// a background goroutine, the outcome is logged, and failures are never
// retried or surfaced to gameplay code. A payload that cannot be delivered
// is lost; that is an accepted tradeoff for keeping the frame loop
// unblocked.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gesturelab/gesture-arcade/internal/tracking"
)

// SubmitPath is appended to the configured API base URL.
const SubmitPath = "/api/game/save"

// maxLoggedBody caps how much of a response body ends up in the log.
const maxLoggedBody = 2048

// AuthProvider supplies the bearer token and destination for each
// submission attempt. Both are re-read per attempt so a token set after
// startup is picked up.
type AuthProvider interface {
	Token() string
	APIURL() string
}

// Submitter posts session payloads to the game API.
//
// Token policy: when no token is available the submission is aborted with
// an error log. A development token may be configured explicitly
// (Options.DevToken); it is used only as a last resort and its use is
// logged as a warning. No token is ever built in.
type Submitter struct {
	auth     AuthProvider
	client   *http.Client
	logger   *log.Logger
	devToken string
	wg       sync.WaitGroup
}

// Options tunes a Submitter. The zero value is usable.
type Options struct {
	// Timeout bounds each HTTP request. Defaults to 10 seconds.
	Timeout time.Duration

	// DevToken, if non-empty, is used when neither a runtime nor a
	// persisted token exists. Intended for development setups only.
	DevToken string

	// Logger receives submission outcomes. Defaults to a stderr logger.
	Logger *log.Logger
}

// NewSubmitter creates a submitter that reads credentials from auth.
func NewSubmitter(auth AuthProvider, opts Options) *Submitter {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "telemetry"})
	}
	return &Submitter{
		auth:     auth,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		devToken: opts.DevToken,
	}
}

// Submit dispatches the payload on a background goroutine and returns
// immediately. The outcome is logged only.
func (s *Submitter) Submit(p tracking.Payload) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.send(p)
	}()
}

// Close waits for in-flight submissions to finish, bounded by ctx. Called
// at shutdown so a final "exit" report gets a best-effort chance to leave
// the process.
func (s *Submitter) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("telemetry: shutdown flush interrupted: %w", ctx.Err())
	}
}

// send performs the single POST attempt for one payload.
func (s *Submitter) send(p tracking.Payload) {
	url := s.auth.APIURL()
	if url == "" {
		s.logger.Error("no API URL configured; session report dropped",
			"game", p.GameID, "result", p.Result)
		return
	}

	token := s.auth.Token()
	if token == "" {
		if s.devToken == "" {
			s.logger.Error("no auth token available; session report dropped",
				"game", p.GameID, "result", p.Result)
			return
		}
		s.logger.Warn("no user token found; using configured development token",
			"game", p.GameID)
		token = s.devToken
	}

	body, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("cannot encode session payload", "game", p.GameID, "error", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, url+SubmitPath, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("cannot build submission request", "url", url, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("session submission failed", "game", p.GameID, "error", err)
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		s.logger.Info("session submitted",
			"game", p.GameID, "result", p.Result, "score", p.Score,
			"status", resp.StatusCode, "response", string(respBody))
		return
	}

	s.logger.Error("session submission rejected",
		"game", p.GameID, "status", resp.StatusCode, "response", string(respBody))
}
