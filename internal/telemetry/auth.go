package telemetry

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/gesturelab/gesture-arcade/internal/storage"
)

// Auth holds the credentials and endpoint the submitter needs. Values set
// at runtime (by a host integration or the auth CLI) take precedence over
// values persisted in the settings store; the store keeps them across
// process restarts. The submitter only reads; writing is the host's job.
type Auth struct {
	mu    sync.RWMutex
	token string
	url   string
	store *storage.Store
	log   *log.Logger
}

// NewAuth creates an auth context backed by the given settings store.
// The store may be nil, in which case nothing is persisted.
func NewAuth(store *storage.Store, logger *log.Logger) *Auth {
	if logger == nil {
		logger = log.Default()
	}
	return &Auth{store: store, log: logger}
}

// SetToken records the bearer token for this process and persists it when
// a settings store is available.
func (a *Auth) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.SetAuthToken(token); err != nil {
			a.log.Warn("could not persist auth token", "error", err)
		}
	}
}

// SetAPIURL records the API base URL for this process and persists it when
// a settings store is available.
func (a *Auth) SetAPIURL(url string) {
	a.mu.Lock()
	a.url = url
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.SetAPIURL(url); err != nil {
			a.log.Warn("could not persist API URL", "error", err)
		}
	}
}

// SetRuntimeAPIURL records the API base URL for this process only.
// Used for flag and config-file overrides that should not be persisted.
func (a *Auth) SetRuntimeAPIURL(url string) {
	a.mu.Lock()
	a.url = url
	a.mu.Unlock()
}

// Token returns the bearer token: the runtime value if set, otherwise the
// persisted one, otherwise "".
func (a *Auth) Token() string {
	a.mu.RLock()
	token := a.token
	a.mu.RUnlock()
	if token != "" {
		return token
	}

	if a.store != nil {
		stored, err := a.store.AuthToken()
		if err != nil {
			a.log.Warn("could not read persisted auth token", "error", err)
			return ""
		}
		return stored
	}
	return ""
}

// APIURL returns the API base URL: the runtime value if set, otherwise the
// persisted one, otherwise "".
func (a *Auth) APIURL() string {
	a.mu.RLock()
	url := a.url
	a.mu.RUnlock()
	if url != "" {
		return url
	}

	if a.store != nil {
		stored, err := a.store.APIURL()
		if err != nil {
			a.log.Warn("could not read persisted API URL", "error", err)
			return ""
		}
		return stored
	}
	return ""
}
