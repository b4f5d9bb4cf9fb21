package services

import (
	"context"
	"strconv"

	"github.com/mireles/vecino/core"
)

// QueryClient is the read/write surface the views use. Reads go through
// the query cache; mutations call the domain modules directly and then
// invalidate every operation their result can affect, before reporting
// success. A read issued after a mutation returns therefore never sees
// pre-mutation data.
type QueryClient struct {
	cache   core.QueryCache
	session *core.Session

	ideas    *IdeasService
	alerts   *AlertsService
	market   *MarketplaceService
	expenses *ExpensesService
	users    *UsersService
}

func NewQueryClient(
	cache core.QueryCache,
	session *core.Session,
	ideas *IdeasService,
	alerts *AlertsService,
	market *MarketplaceService,
	expenses *ExpensesService,
	users *UsersService,
) *QueryClient {
	return &QueryClient{
		cache:    cache,
		session:  session,
		ideas:    ideas,
		alerts:   alerts,
		market:   market,
		expenses: expenses,
		users:    users,
	}
}

// Subscribe registers fn to run after every refresh of key, returning
// the unsubscribe function. Views subscribe on mount and must
// unsubscribe on unmount so late fetches cannot touch dead views.
func (q *QueryClient) Subscribe(key core.QueryKey, fn func()) func() {
	return q.cache.Subscribe(key, fn)
}

// read narrows a cache read to T. A failed fetch with a cached value of
// the right type still yields that value alongside the error.
func read[T any](ctx context.Context, q *QueryClient, key core.QueryKey, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := q.cache.Read(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	typed, _ := v.(T)
	return typed, err
}

func (q *QueryClient) invalidate(mutation string) {
	for _, op := range core.AffectedOps(mutation) {
		q.cache.InvalidateOp(op)
	}
}

// ============================================
// QUERY KEYS
// ============================================

func IdeasKey(opts IdeaListOptions) core.QueryKey {
	return core.Key(core.OpIdeasList, "limit", core.LimitParam(opts.Limit))
}

func AlertsKey(opts AlertListOptions) core.QueryKey {
	return core.Key(core.OpAlertsList, "limit", core.LimitParam(opts.Limit))
}

func ActiveAlertsKey(opts AlertListOptions) core.QueryKey {
	return core.Key(core.OpAlertsActive, "limit", core.LimitParam(opts.Limit))
}

func ItemsKey(opts ItemListOptions) core.QueryKey {
	return core.Key(core.OpMarketList, "limit", core.LimitParam(opts.Limit))
}

func MyItemsKey() core.QueryKey { return core.Key(core.OpMarketMine) }

func BorrowedItemsKey() core.QueryKey { return core.Key(core.OpMarketBorrowed) }

func ExpensesKey(opts ExpenseListOptions) core.QueryKey {
	return core.Key(core.OpExpensesList,
		"limit", core.LimitParam(opts.Limit),
		"my_expenses_only", strconv.FormatBool(opts.MyExpensesOnly))
}

func MySplitsKey() core.QueryKey { return core.Key(core.OpExpensesSplits) }

func PendingPaymentsKey() core.QueryKey { return core.Key(core.OpExpensesPending) }

func UsersKey() core.QueryKey { return core.Key(core.OpUsersList) }

// ============================================
// QUERIES (cached reads)
// ============================================

func (q *QueryClient) Ideas(ctx context.Context, opts IdeaListOptions) ([]core.Idea, error) {
	return read(ctx, q, IdeasKey(opts), func(ctx context.Context) ([]core.Idea, error) {
		return q.ideas.List(ctx, opts)
	})
}

func (q *QueryClient) Alerts(ctx context.Context, opts AlertListOptions) ([]core.Alert, error) {
	return read(ctx, q, AlertsKey(opts), func(ctx context.Context) ([]core.Alert, error) {
		return q.alerts.List(ctx, opts)
	})
}

func (q *QueryClient) ActiveAlerts(ctx context.Context, opts AlertListOptions) ([]core.Alert, error) {
	return read(ctx, q, ActiveAlertsKey(opts), func(ctx context.Context) ([]core.Alert, error) {
		return q.alerts.Active(ctx, opts)
	})
}

func (q *QueryClient) Items(ctx context.Context, opts ItemListOptions) ([]core.MarketplaceItem, error) {
	return read(ctx, q, ItemsKey(opts), func(ctx context.Context) ([]core.MarketplaceItem, error) {
		return q.market.List(ctx, opts)
	})
}

func (q *QueryClient) MyItems(ctx context.Context) ([]core.MarketplaceItem, error) {
	return read(ctx, q, MyItemsKey(), func(ctx context.Context) ([]core.MarketplaceItem, error) {
		return q.market.Mine(ctx)
	})
}

func (q *QueryClient) BorrowedItems(ctx context.Context) ([]core.MarketplaceItem, error) {
	return read(ctx, q, BorrowedItemsKey(), func(ctx context.Context) ([]core.MarketplaceItem, error) {
		return q.market.Borrowed(ctx)
	})
}

func (q *QueryClient) Expenses(ctx context.Context, opts ExpenseListOptions) ([]core.Expense, error) {
	return read(ctx, q, ExpensesKey(opts), func(ctx context.Context) ([]core.Expense, error) {
		return q.expenses.List(ctx, opts)
	})
}

func (q *QueryClient) MySplits(ctx context.Context) ([]core.ExpenseSplit, error) {
	return read(ctx, q, MySplitsKey(), func(ctx context.Context) ([]core.ExpenseSplit, error) {
		return q.expenses.MySplits(ctx)
	})
}

func (q *QueryClient) PendingPayments(ctx context.Context) ([]core.ExpenseSplit, error) {
	return read(ctx, q, PendingPaymentsKey(), func(ctx context.Context) ([]core.ExpenseSplit, error) {
		return q.expenses.PendingPayments(ctx)
	})
}

func (q *QueryClient) Users(ctx context.Context) ([]core.User, error) {
	return read(ctx, q, UsersKey(), func(ctx context.Context) ([]core.User, error) {
		return q.users.List(ctx)
	})
}

// ============================================
// MUTATIONS (invalidate on success)
// ============================================

func (q *QueryClient) CreateIdea(ctx context.Context, input core.IdeaCreate) (*core.Idea, error) {
	idea, err := q.ideas.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	q.invalidate(core.MutIdeaCreate)
	return idea, nil
}

func (q *QueryClient) VoteIdea(ctx context.Context, id int64, vote core.VoteType) (*core.Idea, error) {
	idea, err := q.ideas.Vote(ctx, id, vote)
	if err != nil {
		return nil, err
	}
	q.invalidate(core.MutIdeaVote)
	return idea, nil
}

func (q *QueryClient) CreateAlert(ctx context.Context, input core.AlertCreate) (*core.Alert, error) {
	alert, err := q.alerts.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	q.invalidate(core.MutAlertCreate)
	return alert, nil
}

func (q *QueryClient) ResolveAlert(ctx context.Context, id int64) (*core.Alert, error) {
	alert, err := q.alerts.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	q.invalidate(core.MutAlertResolve)
	return alert, nil
}

func (q *QueryClient) CreateItem(ctx context.Context, input core.ItemCreate) (*core.MarketplaceItem, error) {
	item, err := q.market.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	q.invalidate(core.MutItemCreate)
	return item, nil
}

func (q *QueryClient) BorrowItem(ctx context.Context, id int64, days int) (*core.MarketplaceItem, error) {
	item, err := q.market.Borrow(ctx, id, days)
	if err != nil {
		return nil, err
	}
	q.invalidate(core.MutItemBorrow)
	return item, nil
}

func (q *QueryClient) ReturnItem(ctx context.Context, id int64) (*core.MarketplaceItem, error) {
	item, err := q.market.Return(ctx, id)
	if err != nil {
		return nil, err
	}
	q.invalidate(core.MutItemReturn)
	return item, nil
}

func (q *QueryClient) CreateExpense(ctx context.Context, input core.ExpenseCreate) (*core.Expense, error) {
	expense, err := q.expenses.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	q.invalidate(core.MutExpenseCreate)
	return expense, nil
}

func (q *QueryClient) PayExpense(ctx context.Context, id int64, amount float64) error {
	if err := q.expenses.Pay(ctx, id, amount); err != nil {
		return err
	}
	q.invalidate(core.MutExpensePay)
	return nil
}

// UpdateProfile writes the user's own fields and refreshes the session's
// cached user copy alongside the usual invalidation.
func (q *QueryClient) UpdateProfile(ctx context.Context, input core.ProfileUpdate) (*core.User, error) {
	user, err := q.users.UpdateProfile(ctx, input)
	if err != nil {
		return nil, err
	}
	q.session.SetUser(user)
	q.invalidate(core.MutProfileUpdate)
	return user, nil
}
