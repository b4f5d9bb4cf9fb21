// Package vecino is a Go client for the Community Hub API: session
// lifecycle, a query cache with mutation-driven invalidation, and thin
// typed modules over the backend's REST endpoints.
package vecino

import (
	"github.com/rs/zerolog"

	"github.com/mireles/vecino/adapters/fiberhttp"
	"github.com/mireles/vecino/adapters/keyfile"
	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/pkg/cache"
	"github.com/mireles/vecino/services"
)

// interfaces
type (
	Transport       = core.Transport
	CredentialStore = core.CredentialStore
	QueryCache      = core.QueryCache
)

// structs
type (
	Config        = core.Config
	Session       = core.Session
	SessionConfig = core.SessionConfig
	CacheConfig   = core.CacheConfig
	CacheStats    = core.CacheStats
	QueryKey      = core.QueryKey
	APIError      = core.APIError
)

type (
	User            = core.User
	Idea            = core.Idea
	Alert           = core.Alert
	MarketplaceItem = core.MarketplaceItem
	Expense         = core.Expense
	ExpenseSplit    = core.ExpenseSplit
)

// session states
const (
	StateUninitialized = core.StateUninitialized
	StateLoading       = core.StateLoading
	StateAuthenticated = core.StateAuthenticated
	StateAnonymous     = core.StateAnonymous
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache     = cache.NewInMemoryCache
	DefaultSessionConfig = core.DefaultSessionConfig
	IsUnauthorized       = core.IsUnauthorized
)

var (
	ErrNotAuthenticated   = core.ErrNotAuthenticated
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrNoCredential       = core.ErrNoCredential
	ErrValidation         = core.ErrValidation
)

var ErrBaseURLRequired = core.ErrBaseURLRequired

// Hub bundles everything a frontend needs: the session manager, the
// cached query client, and direct access to the domain modules for
// callers that want to bypass the cache.
type Hub struct {
	Sessions *services.SessionManager
	Queries  *services.QueryClient

	Ideas       *services.IdeasService
	Alerts      *services.AlertsService
	Marketplace *services.MarketplaceService
	Expenses    *services.ExpensesService
	Users       *services.UsersService
}

// Session returns the shared session state.
func (h *Hub) Session() *core.Session {
	return h.Sessions.Session()
}

// New wires a Hub from config. BaseURL is required unless a custom
// transport is supplied; every other port has a default.
func New(config Config) (*Hub, error) {
	if config.BaseURL == "" && config.HTTP == nil {
		return nil, ErrBaseURLRequired
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	// Set Defaults

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		defaults := core.DefaultSessionConfig()
		sessionConfig = &defaults
	}

	queryCache := config.Cache
	if queryCache == nil {
		cacheConfig := core.CacheConfig{}
		if config.CacheConfig != nil {
			cacheConfig = *config.CacheConfig
		}
		queryCache = cache.NewInMemoryCache(cacheConfig)
	}

	credentials := config.Credentials
	if credentials == nil {
		path, err := keyfile.DefaultPath()
		if err != nil {
			return nil, err
		}
		credentials = keyfile.New(path)
	}

	session := core.NewSession()

	// The transport reads the token from the session on every request;
	// its 401 hook feeds the manager's expiry policy. The manager is
	// assigned below, after the transport exists.
	var sessions *services.SessionManager

	transport := config.HTTP
	if transport == nil {
		transport = fiberhttp.New(fiberhttp.Options{
			BaseURL:     config.BaseURL,
			Timeout:     config.Timeout,
			TokenSource: session.Token,
			OnUnauthorized: func() {
				if sessions != nil {
					sessions.HandleUnauthorized()
				}
			},
			Logger: &logger,
		})
	}

	ideas := services.NewIdeasService(transport)
	alerts := services.NewAlertsService(transport)
	marketplace := services.NewMarketplaceService(transport)
	expenses := services.NewExpensesService(transport)
	users := services.NewUsersService(transport)

	sessions = services.NewSessionManager(session, transport, users, credentials, queryCache, *sessionConfig, logger)
	queries := services.NewQueryClient(queryCache, session, ideas, alerts, marketplace, expenses, users)

	return &Hub{
		Sessions:    sessions,
		Queries:     queries,
		Ideas:       ideas,
		Alerts:      alerts,
		Marketplace: marketplace,
		Expenses:    expenses,
		Users:       users,
	}, nil
}
