package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mireles/vecino/core"
)

// AlertsService maps alert operations to backend requests.
type AlertsService struct {
	http core.Transport
}

func NewAlertsService(transport core.Transport) *AlertsService {
	return &AlertsService{http: transport}
}

// AlertListOptions narrows a listing. Zero values mean "no filter".
type AlertListOptions struct {
	Limit int
}

func (s *AlertsService) List(ctx context.Context, opts AlertListOptions) ([]core.Alert, error) {
	return s.list(ctx, pathAlerts, opts)
}

// Active lists only alerts with status active.
func (s *AlertsService) Active(ctx context.Context, opts AlertListOptions) ([]core.Alert, error) {
	return s.list(ctx, pathAlertsActive, opts)
}

func (s *AlertsService) list(ctx context.Context, path string, opts AlertListOptions) ([]core.Alert, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var alerts []core.Alert
	if err := s.http.Get(ctx, path, query, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (s *AlertsService) Create(ctx context.Context, input core.AlertCreate) (*core.Alert, error) {
	var alert core.Alert
	if err := s.http.Post(ctx, pathAlerts, nil, input, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// Resolve transitions an alert from active to resolved. The backend
// enforces that only the author may do this; the views hide the action
// from everyone else.
func (s *AlertsService) Resolve(ctx context.Context, id int64) (*core.Alert, error) {
	var alert core.Alert
	if err := s.http.Post(ctx, idPath(pathAlertResolve, id), nil, nil, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

func (s *AlertsService) Delete(ctx context.Context, id int64) error {
	return s.http.Delete(ctx, idPath(pathAlert, id))
}
