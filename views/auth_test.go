package views

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/pkg/cache"
	"github.com/mireles/vecino/services"
)

type authFixture struct {
	view      *AuthView
	session   *core.Session
	transport *services.FakeTransport
}

func newAuthFixture() *authFixture {
	transport := services.NewFakeTransport()
	session := core.NewSession()
	c := cache.NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 64})
	manager := services.NewSessionManager(
		session, transport, services.NewUsersService(transport),
		services.NewFakeCredentialStore(), c,
		core.DefaultSessionConfig(), zerolog.Nop(),
	)
	return &authFixture{view: NewAuthView(manager), session: session, transport: transport}
}

func TestSubmitLoginShouldValidateBeforeNetwork(t *testing.T) {
	f := newAuthFixture()
	f.view.Login.Username = "flor" // password missing

	err := f.view.SubmitLogin(context.Background())

	require.ErrorIs(t, err, core.ErrValidation)
	assert.Contains(t, f.view.Errors, "Password")
	assert.Empty(t, f.transport.Calls())
}

func TestSubmitLoginShouldAuthenticateAndResetForm(t *testing.T) {
	f := newAuthFixture()
	f.transport.Respond(http.MethodPost, "/api/auth/login", core.TokenResponse{AccessToken: "tok-123"})
	f.transport.Respond(http.MethodGet, "/api/users/me", core.User{ID: 7, Username: "flor"})
	f.view.Login = LoginForm{Username: "flor", Password: "hunter2"}

	err := f.view.SubmitLogin(context.Background())

	require.NoError(t, err)
	assert.True(t, f.session.Authenticated())
	assert.Zero(t, f.view.Login, "credentials are dropped from the form")
	assert.Empty(t, f.view.Message)
}

func TestSubmitLoginShouldSurfaceBackendReason(t *testing.T) {
	f := newAuthFixture()
	f.transport.Fail(http.MethodPost, "/api/auth/login",
		&core.APIError{Status: http.StatusUnauthorized, Detail: "Incorrect username or password"})
	f.view.Login = LoginForm{Username: "flor", Password: "wrong"}

	err := f.view.SubmitLogin(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Incorrect username or password", f.view.Message)
	assert.False(t, f.session.Authenticated())
}

func TestSubmitLoginShouldRejectWhilePending(t *testing.T) {
	f := newAuthFixture()
	f.view.Login = LoginForm{Username: "flor", Password: "hunter2"}
	f.view.Pending = true

	err := f.view.SubmitLogin(context.Background())

	require.ErrorIs(t, err, core.ErrSubmitInFlight)
	assert.Empty(t, f.transport.Calls())
}

func TestSubmitRegisterShouldValidateEmailAndPassword(t *testing.T) {
	f := newAuthFixture()
	f.view.Register = RegisterForm{
		Username: "nico",
		Email:    "not-an-email",
		FullName: "Nico Vega",
		Password: "short",
	}

	_, err := f.view.SubmitRegister(context.Background())

	require.ErrorIs(t, err, core.ErrValidation)
	assert.Contains(t, f.view.Errors, "Email")
	assert.Contains(t, f.view.Errors, "Password")
	assert.Empty(t, f.transport.Calls())
}

func TestSubmitRegisterShouldCreateAccountAndAutoLogin(t *testing.T) {
	f := newAuthFixture()
	f.transport.Respond(http.MethodPost, "/api/auth/register", core.User{ID: 9, Username: "nico"})
	f.transport.Respond(http.MethodPost, "/api/auth/login", core.TokenResponse{AccessToken: "tok-456"})
	f.transport.Respond(http.MethodGet, "/api/users/me", core.User{ID: 9, Username: "nico"})
	f.view.Register = RegisterForm{
		Username: "nico",
		Email:    "nico@example.com",
		FullName: "Nico Vega",
		Password: "hunter2",
	}

	user, err := f.view.SubmitRegister(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "nico", user.Username)
	assert.True(t, f.session.Authenticated())
}
