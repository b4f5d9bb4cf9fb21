package core

import (
	"sort"
	"strconv"
	"strings"
)

// Query operations. Every cached read is one of these; parameters
// distinguish variants of the same operation (e.g. a limited dashboard
// slice vs. the full list).
const (
	OpIdeasList       = "ideas.list"
	OpAlertsList      = "alerts.list"
	OpAlertsActive    = "alerts.active"
	OpMarketList      = "market.list"
	OpMarketMine      = "market.mine"
	OpMarketBorrowed  = "market.borrowed"
	OpExpensesList    = "expenses.list"
	OpExpensesSplits  = "expenses.splits"
	OpExpensesPending = "expenses.pending"
	OpUsersList       = "users.list"
	OpUsersMe         = "users.me"
)

// Mutations. Each one invalidates a fixed set of query operations,
// enumerated in AffectedOps.
const (
	MutIdeaCreate    = "ideas.create"
	MutIdeaVote      = "ideas.vote"
	MutAlertCreate   = "alerts.create"
	MutAlertResolve  = "alerts.resolve"
	MutItemCreate    = "market.create"
	MutItemBorrow    = "market.borrow"
	MutItemReturn    = "market.return"
	MutExpenseCreate = "expenses.create"
	MutExpensePay    = "expenses.pay"
	MutProfileUpdate = "users.update"
)

// AffectedOps returns the query operations whose cached data a mutation
// can change. Invalidation is per operation, so parameter variants (the
// dashboard's limited slices) are covered without being listed here.
func AffectedOps(mutation string) []string {
	switch mutation {
	case MutIdeaCreate, MutIdeaVote:
		return []string{OpIdeasList}
	case MutAlertCreate, MutAlertResolve:
		return []string{OpAlertsList, OpAlertsActive}
	case MutItemCreate:
		return []string{OpMarketList, OpMarketMine}
	case MutItemBorrow, MutItemReturn:
		return []string{OpMarketList, OpMarketBorrowed}
	case MutExpenseCreate, MutExpensePay:
		return []string{OpExpensesList, OpExpensesSplits, OpExpensesPending}
	case MutProfileUpdate:
		return []string{OpUsersMe, OpUsersList}
	default:
		return nil
	}
}

// QueryKey identifies a cached read: an operation plus its effective
// parameters. Two keys with the same operation and parameters always
// denote the same logical fetch.
type QueryKey struct {
	Op     string
	Params map[string]string
}

// Key builds a QueryKey. Params come as alternating name, value pairs;
// empty values are dropped so "no parameter" and "parameter absent"
// canonicalize identically.
func Key(op string, params ...string) QueryKey {
	k := QueryKey{Op: op}
	for i := 0; i+1 < len(params); i += 2 {
		if params[i+1] == "" {
			continue
		}
		if k.Params == nil {
			k.Params = make(map[string]string)
		}
		k.Params[params[i]] = params[i+1]
	}
	return k
}

// ID returns the canonical string form of the key, with parameters
// sorted by name. Used as the cache map key.
func (k QueryKey) ID() string {
	if len(k.Params) == 0 {
		return k.Op
	}

	names := make([]string, 0, len(k.Params))
	for name := range k.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(k.Op)
	b.WriteByte('?')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(k.Params[name])
	}
	return b.String()
}

// LimitParam formats a limit for use in Key. Zero means "no limit" and
// canonicalizes to the parameter being absent.
func LimitParam(limit int) string {
	if limit <= 0 {
		return ""
	}
	return strconv.Itoa(limit)
}
