package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mireles/vecino/core"
)

// ExpensesService maps shared-expense operations to backend requests.
type ExpensesService struct {
	http core.Transport
}

func NewExpensesService(transport core.Transport) *ExpensesService {
	return &ExpensesService{http: transport}
}

// ExpenseListOptions narrows a listing. Zero values mean "no filter".
type ExpenseListOptions struct {
	Limit          int
	MyExpensesOnly bool
}

func (s *ExpensesService) List(ctx context.Context, opts ExpenseListOptions) ([]core.Expense, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.MyExpensesOnly {
		query.Set("my_expenses_only", "true")
	}

	var expenses []core.Expense
	if err := s.http.Get(ctx, pathExpenses, query, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// MySplits lists the current user's splits across all expenses.
func (s *ExpensesService) MySplits(ctx context.Context) ([]core.ExpenseSplit, error) {
	var splits []core.ExpenseSplit
	if err := s.http.Get(ctx, pathExpensesSplits, nil, &splits); err != nil {
		return nil, err
	}
	return splits, nil
}

// PendingPayments lists the current user's unsettled splits.
func (s *ExpensesService) PendingPayments(ctx context.Context) ([]core.ExpenseSplit, error) {
	var splits []core.ExpenseSplit
	if err := s.http.Get(ctx, pathExpensesPending, nil, &splits); err != nil {
		return nil, err
	}
	return splits, nil
}

func (s *ExpensesService) Create(ctx context.Context, input core.ExpenseCreate) (*core.Expense, error) {
	var expense core.Expense
	if err := s.http.Post(ctx, pathExpenses, nil, input, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// Pay records a payment toward the current user's split of the expense.
// Range checking against the remaining balance happens in the views
// before this is ever called; the backend re-validates.
func (s *ExpensesService) Pay(ctx context.Context, id int64, amount float64) error {
	query := url.Values{}
	query.Set("amount", strconv.FormatFloat(amount, 'f', 2, 64))
	return s.http.Post(ctx, idPath(pathExpensePay, id), query, nil, nil)
}

func (s *ExpensesService) Delete(ctx context.Context, id int64) error {
	return s.http.Delete(ctx, idPath(pathExpense, id))
}
