package views

import (
	"time"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/pkg/cache"
	"github.com/mireles/vecino/services"
)

type viewFixture struct {
	queries   *services.QueryClient
	session   *core.Session
	transport *services.FakeTransport
}

func newViewFixture() *viewFixture {
	transport := services.NewFakeTransport()
	c := cache.NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 64})
	session := core.NewSession()
	queries := services.NewQueryClient(c, session,
		services.NewIdeasService(transport),
		services.NewAlertsService(transport),
		services.NewMarketplaceService(transport),
		services.NewExpensesService(transport),
		services.NewUsersService(transport),
	)
	return &viewFixture{queries: queries, session: session, transport: transport}
}

func (f *viewFixture) signIn(id int64) *core.User {
	user := &core.User{ID: id, Username: "flor", FullName: "Flor Mireles"}
	f.session.SetAuthenticated(user, "tok")
	return user
}
