package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mireles/vecino/core"
)

func TestCanBorrowShouldGateOnOwnershipAndAvailability(t *testing.T) {
	f := newViewFixture()
	f.signIn(7)
	view := NewMarketplaceView(f.queries, f.session)

	tests := []struct {
		name     string
		item     core.MarketplaceItem
		expected bool
	}{
		{"available item from a neighbor", core.MarketplaceItem{Availability: true, OwnerID: 8, ItemType: core.ItemTypeLend}, true},
		{"own item", core.MarketplaceItem{Availability: true, OwnerID: 7, ItemType: core.ItemTypeLend}, false},
		{"unavailable item", core.MarketplaceItem{Availability: false, OwnerID: 8, ItemType: core.ItemTypeLend}, false},
		{"wanted listing", core.MarketplaceItem{Availability: true, OwnerID: 8, ItemType: core.ItemTypeBorrow}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, view.CanBorrow(tt.item))
		})
	}
}

func TestCanBorrowShouldOnlyApplyOnBrowseTab(t *testing.T) {
	f := newViewFixture()
	f.signIn(7)
	view := NewMarketplaceView(f.queries, f.session)
	item := core.MarketplaceItem{Availability: true, OwnerID: 8, ItemType: core.ItemTypeLend}

	view.Tab = MarketplaceTabBorrowed

	assert.False(t, view.CanBorrow(item))
}

func TestMarketplaceLoadShouldSelectQueryPerTab(t *testing.T) {
	f := newViewFixture()
	f.transport.Respond(http.MethodGet, "/api/marketplace/", []core.MarketplaceItem{{ID: 1}})
	f.transport.Respond(http.MethodGet, "/api/marketplace/my-items", []core.MarketplaceItem{{ID: 2}})
	f.transport.Respond(http.MethodGet, "/api/marketplace/borrowed", []core.MarketplaceItem{{ID: 3}})
	view := NewMarketplaceView(f.queries, f.session)

	tests := []struct {
		name     string
		tab      MarketplaceTab
		expected int64
	}{
		{"browse tab", MarketplaceTabBrowse, 1},
		{"mine tab", MarketplaceTabMine, 2},
		{"borrowed tab", MarketplaceTabBorrowed, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view.Tab = tt.tab

			items, err := view.Load(context.Background())

			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.expected, items[0].ID)
		})
	}
}

func TestMarketplaceTabSwitchShouldReuseCachedQueries(t *testing.T) {
	f := newViewFixture()
	f.transport.Respond(http.MethodGet, "/api/marketplace/", []core.MarketplaceItem{{ID: 1}})
	f.transport.Respond(http.MethodGet, "/api/marketplace/my-items", []core.MarketplaceItem{{ID: 2}})
	view := NewMarketplaceView(f.queries, f.session)

	for _, tab := range []MarketplaceTab{MarketplaceTabBrowse, MarketplaceTabMine, MarketplaceTabBrowse, MarketplaceTabMine} {
		view.Tab = tab
		_, err := view.Load(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, 1, f.transport.CallCount(http.MethodGet, "/api/marketplace/"))
	assert.Equal(t, 1, f.transport.CallCount(http.MethodGet, "/api/marketplace/my-items"))
}

func TestSubmitBorrowShouldRejectDaysOverItemMaximum(t *testing.T) {
	f := newViewFixture()
	f.signIn(7)
	maxDays := 7
	view := NewMarketplaceView(f.queries, f.session)
	view.OpenBorrow(core.MarketplaceItem{ID: 5, DurationMax: &maxDays})
	view.Borrow.Days = 10

	_, err := view.SubmitBorrow(context.Background())

	require.ErrorIs(t, err, core.ErrValidation)
	assert.Contains(t, view.Errors["Days"], "7")
	assert.Empty(t, f.transport.Calls(), "out-of-range days must not reach the network")
}

func TestSubmitBorrowShouldRejectNonPositiveDays(t *testing.T) {
	f := newViewFixture()
	view := NewMarketplaceView(f.queries, f.session)
	view.OpenBorrow(core.MarketplaceItem{ID: 5})
	view.Borrow.Days = 0

	_, err := view.SubmitBorrow(context.Background())

	require.ErrorIs(t, err, core.ErrValidation)
	assert.Contains(t, view.Errors, "Days")
}

func TestSubmitBorrowShouldBorrowAndCloseDialog(t *testing.T) {
	f := newViewFixture()
	f.transport.Respond(http.MethodPost, "/api/marketplace/5/borrow",
		core.MarketplaceItem{ID: 5, Availability: false})
	view := NewMarketplaceView(f.queries, f.session)
	view.OpenBorrow(core.MarketplaceItem{ID: 5})
	view.Borrow.Days = 3

	item, err := view.SubmitBorrow(context.Background())

	require.NoError(t, err)
	assert.False(t, item.Availability)
	assert.False(t, view.BorrowOpen)
	assert.Nil(t, view.SelectedItem)
}

func TestMarketplaceSubmitShouldValidateItemType(t *testing.T) {
	f := newViewFixture()
	view := NewMarketplaceView(f.queries, f.session)
	view.OpenDialog()
	view.Form.Title = "ladder"
	view.Form.Description = "6m aluminium ladder"
	view.Form.Category = "Tools"
	view.Form.ItemType = "rent" // not an offered type

	_, err := view.Submit(context.Background())

	require.ErrorIs(t, err, core.ErrValidation)
	assert.Contains(t, view.Errors, "ItemType")
	assert.Empty(t, f.transport.Calls())
}
