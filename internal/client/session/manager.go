// Package session owns the authenticated state of the client: who is signed
// in, the bearer credential, the inactivity watchdog, and the lifecycle
// transitions between logged-out and authenticated. All other components
// read session state through the Manager; none of them mutate it.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/nishant0207/online-filesharing/internal/client/api"
	"github.com/nishant0207/online-filesharing/internal/client/models"
	"github.com/nishant0207/online-filesharing/internal/logging"
)

// Reason says why a session ended. Each reason produces a distinguishable
// user-visible notice.
type Reason string

const (
	ReasonExplicit           Reason = "logout"
	ReasonInactivity         Reason = "inactivity"
	ReasonExternalRevocation Reason = "revoked"
)

// Notice is the message shown to the user when a session ends for this reason.
func (r Reason) Notice() string {
	switch r {
	case ReasonInactivity:
		return "You have been logged out due to inactivity."
	case ReasonExternalRevocation:
		return "Your session was ended elsewhere. Please log in again."
	default:
		return "You have been logged out."
	}
}

// CredentialStore persists the credential for the lifetime of the browsing
// context. credstore.Store is the concrete implementation.
type CredentialStore interface {
	Save(ctx context.Context, identity, token string) error
	Load(ctx context.Context) (identity, token string, err error)
	Clear(ctx context.Context) error
}

// Manager is the session lifecycle owner.
//
// State machine: LoggedOut → Authenticate → Authenticated → EndSession(any
// reason) → LoggedOut. EndSession is idempotent. Concurrent Authenticate
// calls are not de-duplicated; the last response wins.
type Manager struct {
	api     api.Client
	creds   CredentialStore
	log     logging.Logger
	wd      *watchdog
	timeout time.Duration

	mu    sync.Mutex
	sess  models.Session
	onEnd []func(Reason)
}

func NewManager(apiClient api.Client, creds CredentialStore, timeout time.Duration, log logging.Logger) *Manager {
	m := &Manager{api: apiClient, creds: creds, log: log, timeout: timeout}
	m.wd = newWatchdog(timeout, func() {
		m.EndSession(context.Background(), ReasonInactivity)
	})
	return m
}

// OnEnd registers a hook invoked after a session ends, with the reason.
// The catalog store registers its reset here; the UI registers its notice.
func (m *Manager) OnEnd(fn func(Reason)) {
	m.mu.Lock()
	m.onEnd = append(m.onEnd, fn)
	m.mu.Unlock()
}

// Authenticate exchanges credentials for a session and starts the
// inactivity watchdog. The identity is taken from the token's subject
// claim, falling back to the email the user typed.
func (m *Manager) Authenticate(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	identity := email
	if sub, _, cerr := tokenClaims(token); cerr == nil && sub != "" {
		identity = sub
	}

	m.mu.Lock()
	m.sess = models.Session{Identity: identity, Token: token}
	m.mu.Unlock()

	if err := m.creds.Save(ctx, identity, token); err != nil {
		m.log.Warn(ctx, "could not persist credential", "error", err)
	}

	m.wd.Reset()
	m.log.Info(ctx, "session started", "identity", identity)
	return nil
}

// Register creates an account on the server. It does not create a session;
// the user authenticates afterwards.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	return m.api.Signup(ctx, username, email, password)
}

// Restore resumes a session from a credential still present in the store
// for this browsing context. Returns true if a usable session was adopted.
// An expired token is discarded rather than resumed.
func (m *Manager) Restore(ctx context.Context) bool {
	identity, token, err := m.creds.Load(ctx)
	if err != nil || token == "" {
		return false
	}

	if sub, expiresAt, cerr := tokenClaims(token); cerr == nil {
		if !expiresAt.IsZero() && time.Now().After(expiresAt) {
			_ = m.creds.Clear(ctx)
			return false
		}
		if sub != "" {
			identity = sub
		}
	}

	m.mu.Lock()
	m.sess = models.Session{Identity: identity, Token: token}
	m.mu.Unlock()

	m.api.SetToken(token)
	m.wd.Reset()
	m.log.Info(ctx, "session restored", "identity", identity)
	return true
}

// EndSession clears the session, the persisted credential, and the bearer
// token on the API client, then notifies the registered hooks. Ending an
// already-ended session is a no-op.
func (m *Manager) EndSession(ctx context.Context, reason Reason) {
	m.mu.Lock()
	if !m.sess.Active() {
		m.mu.Unlock()
		return
	}
	identity := m.sess.Identity
	m.sess = models.Session{}
	hooks := make([]func(Reason), len(m.onEnd))
	copy(hooks, m.onEnd)
	m.mu.Unlock()

	m.wd.Stop()
	m.api.SetToken("")
	if err := m.creds.Clear(ctx); err != nil {
		m.log.Warn(ctx, "could not clear persisted credential", "error", err)
	}

	m.log.Info(ctx, "session ended", "identity", identity, "reason", string(reason))
	for _, fn := range hooks {
		fn(reason)
	}
}

// Activity records a qualifying user activity signal, pushing the
// inactivity deadline out. Ignored while logged out.
func (m *Manager) Activity() {
	if m.Active() {
		m.wd.Reset()
	}
}

// Session returns a copy of the current session.
func (m *Manager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess
}

// Active reports whether a session is in progress.
func (m *Manager) Active() bool {
	return m.Session().Active()
}

// StartRevocationWatcher polls the credential store and ends the session
// with ReasonExternalRevocation when another context has cleared it. Blocks
// until ctx is cancelled; run it on its own goroutine.
func (m *Manager) StartRevocationWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !m.Active() {
				continue
			}
			checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			_, token, err := m.creds.Load(checkCtx)
			cancel()
			if err != nil {
				m.log.Warn(ctx, "credential check failed", "error", err)
				continue
			}
			if token == "" {
				m.EndSession(ctx, ReasonExternalRevocation)
			}

		case <-ctx.Done():
			return
		}
	}
}
