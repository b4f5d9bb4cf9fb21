package views

import (
	"context"
	"fmt"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/services"
)

// ExpensesTab selects which query backs the page.
type ExpensesTab int

const (
	ExpensesTabMine ExpensesTab = iota
	ExpensesTabSplits
	ExpensesTabPending
)

// ExpenseCategories offered in the create form.
var ExpenseCategories = []string{
	"Utilities", "Maintenance", "Cleaning", "Security",
	"Events", "Supplies", "Repairs", "Other",
}

// ExpenseForm is the create-expense dialog state.
type ExpenseForm struct {
	Title          string  `validate:"required"`
	Description    string
	TotalAmount    float64 `validate:"gt=0"`
	Category       string  `validate:"required"`
	SplitType      string  `validate:"omitempty,oneof=equal custom"`
	ParticipantIDs []int64 `validate:"required,min=1"`
	CustomSplits   []core.SplitInput
}

// PayForm is the payment dialog state. The upper bound is dynamic, so it
// is checked against the selected split rather than by tag.
type PayForm struct {
	Amount float64 `validate:"gt=0"`
}

// ExpensesView drives the expenses page: three split-centric queries,
// participant selection from the user directory, a create dialog, and a
// payment dialog with a balance-bounded amount.
type ExpensesView struct {
	queries *services.QueryClient
	session *core.Session

	Tab           ExpensesTab
	DialogOpen    bool
	PayOpen       bool
	SelectedSplit *core.ExpenseSplit
	Form          ExpenseForm
	Pay           PayForm
	Errors        FieldErrors
	submitting    bool
}

func NewExpensesView(queries *services.QueryClient, session *core.Session) *ExpensesView {
	return &ExpensesView{queries: queries, session: session}
}

// Watch subscribes fn to every query the page renders.
func (v *ExpensesView) Watch(fn func()) func() {
	unsubs := []func(){
		v.queries.Subscribe(services.ExpensesKey(services.ExpenseListOptions{MyExpensesOnly: true}), fn),
		v.queries.Subscribe(services.MySplitsKey(), fn),
		v.queries.Subscribe(services.PendingPaymentsKey(), fn),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Expenses reads the current user's expenses through the cache.
func (v *ExpensesView) Expenses(ctx context.Context) ([]core.Expense, error) {
	return v.queries.Expenses(ctx, services.ExpenseListOptions{MyExpensesOnly: true})
}

// Splits reads the split list behind the active splits tab.
func (v *ExpensesView) Splits(ctx context.Context) ([]core.ExpenseSplit, error) {
	if v.Tab == ExpensesTabPending {
		return v.queries.PendingPayments(ctx)
	}
	return v.queries.MySplits(ctx)
}

// Participants reads the resident directory for the participant picker.
func (v *ExpensesView) Participants(ctx context.Context) ([]core.User, error) {
	return v.queries.Users(ctx)
}

// Progress is the paid fraction of a split in percent, for progress bars.
func Progress(split core.ExpenseSplit) float64 {
	if split.AmountOwed == 0 {
		return 0
	}
	return split.AmountPaid / split.AmountOwed * 100
}

func (v *ExpensesView) OpenDialog() {
	v.DialogOpen = true
	v.Form = ExpenseForm{SplitType: core.SplitTypeEqual}
	v.Errors = nil
}

func (v *ExpensesView) CloseDialog() {
	v.DialogOpen = false
	v.Errors = nil
}

// OpenPay readies the payment dialog for split.
func (v *ExpensesView) OpenPay(split core.ExpenseSplit) {
	v.PayOpen = true
	v.SelectedSplit = &split
	v.Pay = PayForm{}
	v.Errors = nil
}

func (v *ExpensesView) ClosePay() {
	v.PayOpen = false
	v.SelectedSplit = nil
	v.Errors = nil
}

// Submit validates the form and creates the expense. For custom splits
// the per-participant amounts must add up to the total.
func (v *ExpensesView) Submit(ctx context.Context) (*core.Expense, error) {
	if v.submitting {
		return nil, core.ErrSubmitInFlight
	}
	if v.Errors = validateStruct(v.Form); v.Errors != nil {
		return nil, core.ErrValidation
	}
	if v.Form.SplitType == core.SplitTypeCustom {
		var sum float64
		for _, split := range v.Form.CustomSplits {
			sum += split.AmountOwed
		}
		if len(v.Form.CustomSplits) != len(v.Form.ParticipantIDs) {
			v.Errors = FieldErrors{"CustomSplits": "every participant needs a split amount"}
			return nil, core.ErrValidation
		}
		if sum != v.Form.TotalAmount {
			v.Errors = FieldErrors{"CustomSplits": "split amounts must add up to the total"}
			return nil, core.ErrValidation
		}
	}

	v.submitting = true
	defer func() { v.submitting = false }()

	input := core.ExpenseCreate{
		Title:          v.Form.Title,
		TotalAmount:    v.Form.TotalAmount,
		Category:       v.Form.Category,
		SplitType:      v.Form.SplitType,
		ParticipantIDs: v.Form.ParticipantIDs,
		CustomSplits:   v.Form.CustomSplits,
	}
	if v.Form.Description != "" {
		input.Description = &v.Form.Description
	}

	expense, err := v.queries.CreateExpense(ctx, input)
	if err != nil {
		return nil, err
	}

	v.CloseDialog()
	v.Form = ExpenseForm{}
	return expense, nil
}

// SubmitPay validates the amount against the split's remaining balance
// and pays. An amount over the balance is rejected before any network
// call.
func (v *ExpensesView) SubmitPay(ctx context.Context) error {
	if v.SelectedSplit == nil {
		return core.ErrValidation
	}
	if v.Errors = validateStruct(v.Pay); v.Errors != nil {
		return core.ErrValidation
	}
	if remaining := v.SelectedSplit.Remaining(); v.Pay.Amount > remaining {
		v.Errors = FieldErrors{"Amount": fmt.Sprintf("cannot exceed remaining $%.2f", remaining)}
		return core.ErrValidation
	}

	if err := v.queries.PayExpense(ctx, v.SelectedSplit.ExpenseID, v.Pay.Amount); err != nil {
		return err
	}

	v.ClosePay()
	return nil
}
