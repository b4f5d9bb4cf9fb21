package views

import (
	"context"
	"fmt"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/services"
)

// MarketplaceTab selects which query backs the page.
type MarketplaceTab int

const (
	MarketplaceTabBrowse MarketplaceTab = iota
	MarketplaceTabMine
	MarketplaceTabBorrowed
)

// ItemConditions offered in the listing form.
var ItemConditions = []string{"new", "excellent", "good", "fair", "poor"}

// ItemForm is the list-item dialog state.
type ItemForm struct {
	Title       string  `validate:"required"`
	Description string  `validate:"required"`
	Category    string  `validate:"required"`
	ItemType    string  `validate:"required,oneof=lend borrow both"`
	Condition   string
	PricePerDay float64 `validate:"gte=0"`
	DurationMax int     `validate:"gte=0"`
}

// BorrowForm is the borrow dialog state.
type BorrowForm struct {
	Days int `validate:"gt=0"`
}

// MarketplaceView drives the marketplace page: three queries (one per
// tab), a listing dialog, and the borrow/return flow.
type MarketplaceView struct {
	queries *services.QueryClient
	session *core.Session

	Tab          MarketplaceTab
	DialogOpen   bool
	BorrowOpen   bool
	SelectedItem *core.MarketplaceItem
	Form         ItemForm
	Borrow       BorrowForm
	Errors       FieldErrors
	submitting   bool
}

func NewMarketplaceView(queries *services.QueryClient, session *core.Session) *MarketplaceView {
	return &MarketplaceView{queries: queries, session: session}
}

// Watch subscribes fn to all three item queries.
func (v *MarketplaceView) Watch(fn func()) func() {
	unsubs := []func(){
		v.queries.Subscribe(services.ItemsKey(services.ItemListOptions{}), fn),
		v.queries.Subscribe(services.MyItemsKey(), fn),
		v.queries.Subscribe(services.BorrowedItemsKey(), fn),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Load reads the query behind the active tab. Tab switching selects
// between cached queries; it never forces a fetch of fresh data.
func (v *MarketplaceView) Load(ctx context.Context) ([]core.MarketplaceItem, error) {
	switch v.Tab {
	case MarketplaceTabMine:
		return v.queries.MyItems(ctx)
	case MarketplaceTabBorrowed:
		return v.queries.BorrowedItems(ctx)
	default:
		return v.queries.Items(ctx, services.ItemListOptions{})
	}
}

// CanBorrow reports whether the borrow action applies to item for the
// current user: available, not their own, and actually offered for
// lending.
func (v *MarketplaceView) CanBorrow(item core.MarketplaceItem) bool {
	user := v.session.User()
	if user == nil || v.Tab != MarketplaceTabBrowse {
		return false
	}
	return item.Availability && item.OwnerID != user.ID && item.ItemType != core.ItemTypeBorrow
}

func (v *MarketplaceView) OpenDialog() {
	v.DialogOpen = true
	v.Form = ItemForm{Condition: "good"}
	v.Errors = nil
}

func (v *MarketplaceView) CloseDialog() {
	v.DialogOpen = false
	v.Errors = nil
}

// OpenBorrow readies the borrow dialog for item.
func (v *MarketplaceView) OpenBorrow(item core.MarketplaceItem) {
	v.BorrowOpen = true
	v.SelectedItem = &item
	v.Borrow = BorrowForm{Days: 1}
	v.Errors = nil
}

func (v *MarketplaceView) CloseBorrow() {
	v.BorrowOpen = false
	v.SelectedItem = nil
	v.Errors = nil
}

// Submit validates the listing form and creates the item.
func (v *MarketplaceView) Submit(ctx context.Context) (*core.MarketplaceItem, error) {
	if v.submitting {
		return nil, core.ErrSubmitInFlight
	}
	if v.Errors = validateStruct(v.Form); v.Errors != nil {
		return nil, core.ErrValidation
	}

	v.submitting = true
	defer func() { v.submitting = false }()

	input := core.ItemCreate{
		Title:       v.Form.Title,
		Description: v.Form.Description,
		Category:    v.Form.Category,
		ItemType:    v.Form.ItemType,
		Condition:   v.Form.Condition,
		PricePerDay: v.Form.PricePerDay,
	}
	if v.Form.DurationMax > 0 {
		input.DurationMax = &v.Form.DurationMax
	}

	item, err := v.queries.CreateItem(ctx, input)
	if err != nil {
		return nil, err
	}

	v.CloseDialog()
	v.Form = ItemForm{}
	return item, nil
}

// SubmitBorrow validates the day count against the item's bounds and
// borrows. Out-of-range days never reach the network.
func (v *MarketplaceView) SubmitBorrow(ctx context.Context) (*core.MarketplaceItem, error) {
	if v.SelectedItem == nil {
		return nil, core.ErrValidation
	}
	if v.Errors = validateStruct(v.Borrow); v.Errors != nil {
		return nil, core.ErrValidation
	}
	if maxDays := v.SelectedItem.DurationMax; maxDays != nil && v.Borrow.Days > *maxDays {
		v.Errors = FieldErrors{"Days": fmt.Sprintf("cannot exceed %d days", *maxDays)}
		return nil, core.ErrValidation
	}

	item, err := v.queries.BorrowItem(ctx, v.SelectedItem.ID, v.Borrow.Days)
	if err != nil {
		return nil, err
	}

	v.CloseBorrow()
	return item, nil
}

// Return gives a borrowed item back.
func (v *MarketplaceView) Return(ctx context.Context, id int64) (*core.MarketplaceItem, error) {
	return v.queries.ReturnItem(ctx, id)
}
