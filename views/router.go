package views

import "github.com/mireles/vecino/core"

// Route paths.
const (
	PathLogin       = "/login"
	PathRegister    = "/register"
	PathDashboard   = "/dashboard"
	PathIdeas       = "/ideas"
	PathAlerts      = "/alerts"
	PathMarketplace = "/marketplace"
	PathExpenses    = "/expenses"
	PathProfile     = "/profile"
)

// Route is one entry in the navigation table.
type Route struct {
	Path      string
	Name      string
	Protected bool
}

// Routes returns the full navigation table.
func Routes() []Route {
	return []Route{
		{Path: PathLogin, Name: "Login"},
		{Path: PathRegister, Name: "Register"},
		{Path: PathDashboard, Name: "Dashboard", Protected: true},
		{Path: PathIdeas, Name: "Ideas", Protected: true},
		{Path: PathAlerts, Name: "Alerts", Protected: true},
		{Path: PathMarketplace, Name: "Marketplace", Protected: true},
		{Path: PathExpenses, Name: "Expenses", Protected: true},
		{Path: PathProfile, Name: "Profile", Protected: true},
	}
}

// Resolution is the outcome of resolving a path against the session.
type Resolution struct {
	// Render is the path to show, when settled.
	Render string
	// Redirect is the path to navigate to instead, when non-empty.
	Redirect string
	// Pending means the session has not settled yet; show nothing and
	// resolve again once it has.
	Pending bool
}

// Router gates navigation on session state: protected routes need an
// authenticated session, and the auth pages bounce signed-in users back
// to the dashboard.
type Router struct {
	session *core.Session
}

func NewRouter(session *core.Session) *Router {
	return &Router{session: session}
}

// Resolve maps a requested path to what should happen, given the
// current session state.
func (r *Router) Resolve(path string) Resolution {
	if r.session.Loading() {
		return Resolution{Pending: true}
	}
	authed := r.session.Authenticated()

	if path == "/" || path == "" {
		if authed {
			return Resolution{Redirect: PathDashboard}
		}
		return Resolution{Redirect: PathLogin}
	}

	route, ok := r.lookup(path)
	if !ok {
		return Resolution{Redirect: PathDashboard}
	}

	if route.Protected && !authed {
		return Resolution{Redirect: PathLogin}
	}
	if !route.Protected && authed {
		// Signed-in users have no business on the auth pages.
		return Resolution{Redirect: PathDashboard}
	}
	return Resolution{Render: route.Path}
}

func (r *Router) lookup(path string) (Route, bool) {
	for _, route := range Routes() {
		if route.Path == path {
			return route, true
		}
	}
	return Route{}, false
}

// NavItems returns the routes shown in the navigation bar for the
// current session: the protected pages when signed in, nothing before.
func (r *Router) NavItems() []Route {
	if !r.session.Authenticated() {
		return nil
	}
	items := make([]Route, 0, 6)
	for _, route := range Routes() {
		if route.Protected {
			items = append(items, route)
		}
	}
	return items
}
