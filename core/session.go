package core

import (
	"sync"
	"time"
)

// SessionState is the lifecycle phase of the client session.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// SessionConfig holds the product-level session policies.
type SessionConfig struct {
	// AutoLoginAfterRegister controls whether a successful registration
	// immediately authenticates the session. When false the caller must
	// direct the user to an explicit login.
	AutoLoginAfterRegister bool
	// ExpireOnUnauthorized controls whether a 401 on any request clears
	// the stored credential and resets the session to anonymous.
	ExpireOnUnauthorized bool
	// RestoreTimeout bounds the startup restoration round-trip so the
	// session always settles.
	RestoreTimeout time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		AutoLoginAfterRegister: true,
		ExpireOnUnauthorized:   true,
		RestoreTimeout:         10 * time.Second,
	}
}

// Session is the process-wide authentication state: who is signed in and
// whether the answer is still being determined. The transport reads the
// token from here on every request; the session manager owns all
// transitions. Safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	state SessionState
	user  *User
	token string
}

func NewSession() *Session {
	return &Session{state: StateUninitialized}
}

// State returns the current lifecycle phase.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether the session has not yet settled.
func (s *Session) Loading() bool {
	st := s.State()
	return st == StateUninitialized || st == StateLoading
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// User returns the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the current credential, or "" when anonymous.
// Used by the transport as its token source.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetLoading marks the session as being resolved. The token, when already
// known, stays readable so the restoration request can carry it.
func (s *Session) SetLoading(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading
	s.token = token
	s.user = nil
}

// SetAuthenticated settles the session with a signed-in user.
func (s *Session) SetAuthenticated(user *User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.user = user
	s.token = token
}

// SetAnonymous settles the session with no user and drops the in-memory token.
func (s *Session) SetAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.user = nil
	s.token = ""
}

// SetUser replaces the cached user copy without touching state or token.
// Used after a profile update.
func (s *Session) SetUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAuthenticated {
		s.user = user
	}
}
