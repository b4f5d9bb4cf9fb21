package views

import (
	"context"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/services"
)

// dashboardLimit caps each summary slice.
const dashboardLimit = 5

// DashboardData is everything the dashboard renders in one pass.
type DashboardData struct {
	RecentIdeas    []core.Idea
	ActiveAlerts   []core.Alert
	RecentItems    []core.MarketplaceItem
	RecentExpenses []core.Expense
}

// DashboardStats are the headline counters.
type DashboardStats struct {
	IdeaCount           int
	ActiveAlertCount    int
	ItemCount           int
	PendingExpenseCount int
}

// DashboardView summarizes recent activity across all four domains.
// Its queries reuse the domain operations with a limit parameter, so
// any mutation that invalidates a domain refreshes the dashboard too.
type DashboardView struct {
	queries *services.QueryClient
}

func NewDashboardView(queries *services.QueryClient) *DashboardView {
	return &DashboardView{queries: queries}
}

// Watch subscribes fn to all four summary queries.
func (v *DashboardView) Watch(fn func()) func() {
	unsubs := []func(){
		v.queries.Subscribe(services.IdeasKey(services.IdeaListOptions{Limit: dashboardLimit}), fn),
		v.queries.Subscribe(services.ActiveAlertsKey(services.AlertListOptions{Limit: dashboardLimit}), fn),
		v.queries.Subscribe(services.ItemsKey(services.ItemListOptions{Limit: dashboardLimit}), fn),
		v.queries.Subscribe(services.ExpensesKey(services.ExpenseListOptions{Limit: dashboardLimit, MyExpensesOnly: true}), fn),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Load reads the four summary slices through the cache. Partial failure
// returns whatever loaded along with the first error.
func (v *DashboardView) Load(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	var firstErr error

	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	var err error
	data.RecentIdeas, err = v.queries.Ideas(ctx, services.IdeaListOptions{Limit: dashboardLimit})
	keep(err)
	data.ActiveAlerts, err = v.queries.ActiveAlerts(ctx, services.AlertListOptions{Limit: dashboardLimit})
	keep(err)
	data.RecentItems, err = v.queries.Items(ctx, services.ItemListOptions{Limit: dashboardLimit})
	keep(err)
	data.RecentExpenses, err = v.queries.Expenses(ctx, services.ExpenseListOptions{Limit: dashboardLimit, MyExpensesOnly: true})
	keep(err)

	return data, firstErr
}

// Stats derives the headline counters from already-loaded data.
func (d *DashboardData) Stats() DashboardStats {
	pending := 0
	for _, expense := range d.RecentExpenses {
		if expense.Status == core.ExpenseStatusPending {
			pending++
		}
	}
	return DashboardStats{
		IdeaCount:           len(d.RecentIdeas),
		ActiveAlertCount:    len(d.ActiveAlerts),
		ItemCount:           len(d.RecentItems),
		PendingExpenseCount: pending,
	}
}
