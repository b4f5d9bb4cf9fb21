package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/mireles/vecino/core"
)

// SessionManager owns the session lifecycle: restoring a persisted
// credential at startup, logging in and out, registering, and expiring
// the session when the backend stops accepting the credential.
type SessionManager struct {
	session *core.Session
	users   *UsersService
	http    core.Transport
	store   core.CredentialStore
	cache   core.QueryCache
	config  core.SessionConfig
	log     zerolog.Logger

	loginInFlight atomic.Bool
}

func NewSessionManager(
	session *core.Session,
	transport core.Transport,
	users *UsersService,
	store core.CredentialStore,
	cache core.QueryCache,
	config core.SessionConfig,
	log zerolog.Logger,
) *SessionManager {
	return &SessionManager{
		session: session,
		users:   users,
		http:    transport,
		store:   store,
		cache:   cache,
		config:  config,
		log:     log,
	}
}

// Session exposes the shared session state for views and the router.
func (m *SessionManager) Session() *core.Session {
	return m.session
}

// Restore resolves a previously persisted credential into a settled
// session. It always settles: every path ends in authenticated or
// anonymous, with the network round-trip bounded by RestoreTimeout.
// Called once at startup.
func (m *SessionManager) Restore(ctx context.Context) error {
	m.session.SetLoading("")

	token, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, core.ErrNoCredential) {
			m.log.Warn().Err(err).Msg("credential load failed")
		}
		m.session.SetAnonymous()
		return nil
	}

	// A credential that is provably expired is cleared without a
	// round-trip. Opaque (non-JWT) tokens pass through to the backend.
	if tokenExpired(token) {
		m.log.Debug().Msg("stored credential expired, clearing")
		_ = m.store.Clear()
		m.session.SetAnonymous()
		return nil
	}

	m.session.SetLoading(token)

	if m.config.RestoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.RestoreTimeout)
		defer cancel()
	}

	user, err := m.users.Me(ctx)
	if err != nil {
		// A rejected credential is gone for good; a transport failure
		// keeps the stored token for the next start. Either way this
		// session settles anonymous.
		if core.IsUnauthorized(err) {
			_ = m.store.Clear()
		}
		m.log.Debug().Err(err).Msg("session restoration failed")
		m.session.SetAnonymous()
		return nil
	}

	m.session.SetAuthenticated(user, token)
	m.log.Info().Str("username", user.Username).Msg("session restored")
	return nil
}

// Login exchanges credentials for a token, persists it, and settles the
// session authenticated. On failure the session stays anonymous and the
// backend's reason is wrapped in the returned error. Concurrent login
// attempts are rejected rather than queued.
func (m *SessionManager) Login(ctx context.Context, username, password string) error {
	if !m.loginInFlight.CompareAndSwap(false, true) {
		return core.ErrLoginInFlight
	}
	defer m.loginInFlight.Store(false)

	body := map[string]string{"username": username, "password": password}

	var tok core.TokenResponse
	if err := m.http.Post(ctx, pathLogin, nil, body, &tok); err != nil {
		m.session.SetAnonymous()
		if core.IsUnauthorized(err) {
			return fmt.Errorf("%w: %w", core.ErrInvalidCredentials, err)
		}
		return err
	}

	m.session.SetLoading(tok.AccessToken)

	user, err := m.users.Me(ctx)
	if err != nil {
		m.session.SetAnonymous()
		return fmt.Errorf("resolve user after login: %w", err)
	}

	if err := m.store.Store(tok.AccessToken); err != nil {
		// The session works for this run even when persistence fails.
		m.log.Warn().Err(err).Msg("credential persistence failed")
	}

	// Drop anything cached under the previous identity.
	m.cache.Clear()
	m.session.SetAuthenticated(user, tok.AccessToken)
	m.log.Info().Str("username", user.Username).Msg("logged in")
	return nil
}

// Logout clears the credential and settles the session anonymous. It is
// purely local and never fails from the caller's perspective; the
// backend learns about it when the token next goes unused or expires.
func (m *SessionManager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("credential clear failed")
	}
	m.session.SetAnonymous()
	m.cache.Clear()
	m.log.Info().Msg("logged out")
}

// Register creates a new account. With AutoLoginAfterRegister set the
// new user is logged in immediately; otherwise the session stays
// anonymous and the caller directs the user to Login.
func (m *SessionManager) Register(ctx context.Context, input core.RegisterInput) (*core.User, error) {
	var user core.User
	if err := m.http.Post(ctx, pathRegister, nil, input, &user); err != nil {
		return nil, err
	}

	if m.config.AutoLoginAfterRegister {
		if err := m.Login(ctx, input.Username, input.Password); err != nil {
			return &user, fmt.Errorf("registered but login failed: %w", err)
		}
	}
	return &user, nil
}

// HandleUnauthorized is the transport's 401 hook. Under the
// ExpireOnUnauthorized policy an authorization failure on any request
// means the credential is dead: clear it and settle anonymous.
func (m *SessionManager) HandleUnauthorized() {
	if !m.config.ExpireOnUnauthorized {
		return
	}
	if m.session.State() != core.StateAuthenticated {
		return
	}
	m.log.Info().Msg("credential rejected, expiring session")
	_ = m.store.Clear()
	m.session.SetAnonymous()
	m.cache.Clear()
}

// tokenExpired inspects a JWT's exp claim without verifying the
// signature; verification is the backend's job. Tokens that do not parse
// as JWTs are assumed live.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
