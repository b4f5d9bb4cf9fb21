package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mireles/vecino/core"
)

// MarketplaceService maps lending operations to backend requests.
type MarketplaceService struct {
	http core.Transport
}

func NewMarketplaceService(transport core.Transport) *MarketplaceService {
	return &MarketplaceService{http: transport}
}

// ItemListOptions narrows a listing. Zero values mean "no filter".
type ItemListOptions struct {
	Limit int
}

func (s *MarketplaceService) List(ctx context.Context, opts ItemListOptions) ([]core.MarketplaceItem, error) {
	return s.list(ctx, pathItems, opts)
}

// Mine lists items owned by the current user.
func (s *MarketplaceService) Mine(ctx context.Context) ([]core.MarketplaceItem, error) {
	return s.list(ctx, pathItemsMine, ItemListOptions{})
}

// Borrowed lists items the current user holds on loan.
func (s *MarketplaceService) Borrowed(ctx context.Context) ([]core.MarketplaceItem, error) {
	return s.list(ctx, pathItemsBorrowed, ItemListOptions{})
}

func (s *MarketplaceService) list(ctx context.Context, path string, opts ItemListOptions) ([]core.MarketplaceItem, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var items []core.MarketplaceItem
	if err := s.http.Get(ctx, path, query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MarketplaceService) Create(ctx context.Context, input core.ItemCreate) (*core.MarketplaceItem, error) {
	var item core.MarketplaceItem
	if err := s.http.Post(ctx, pathItems, nil, input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Borrow takes an item on loan for the given number of days. The backend
// flips availability to false and records the loan.
func (s *MarketplaceService) Borrow(ctx context.Context, id int64, days int) (*core.MarketplaceItem, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var item core.MarketplaceItem
	if err := s.http.Post(ctx, idPath(pathItemBorrow, id), query, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Return gives a borrowed item back, making it available again.
func (s *MarketplaceService) Return(ctx context.Context, id int64) (*core.MarketplaceItem, error) {
	var item core.MarketplaceItem
	if err := s.http.Post(ctx, idPath(pathItemReturn, id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MarketplaceService) Delete(ctx context.Context, id int64) error {
	return s.http.Delete(ctx, idPath(pathItem, id))
}
