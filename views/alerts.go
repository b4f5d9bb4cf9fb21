package views

import (
	"context"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/services"
)

// AlertsTab selects the client-side filter over the fetched alert list.
type AlertsTab int

const (
	AlertsTabAll AlertsTab = iota
	AlertsTabActive
	AlertsTabResolved
	AlertsTabMine
)

// AlertTypes offered in the report form.
var AlertTypes = []string{
	"security", "maintenance", "weather", "traffic", "utility", "other",
}

// AlertForm is the report-alert dialog state.
type AlertForm struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	AlertType   string `validate:"required"`
	Location    string `validate:"required"`
	Severity    string `validate:"omitempty,oneof=low medium high critical"`
}

// AlertsView drives the alerts page.
type AlertsView struct {
	queries *services.QueryClient
	session *core.Session

	Tab        AlertsTab
	DialogOpen bool
	Form       AlertForm
	Errors     FieldErrors
	submitting bool
}

func NewAlertsView(queries *services.QueryClient, session *core.Session) *AlertsView {
	return &AlertsView{queries: queries, session: session}
}

func (v *AlertsView) Watch(fn func()) func() {
	return v.queries.Subscribe(services.AlertsKey(services.AlertListOptions{}), fn)
}

func (v *AlertsView) Load(ctx context.Context) ([]core.Alert, error) {
	return v.queries.Alerts(ctx, services.AlertListOptions{})
}

// Visible applies the active tab's filter over already-fetched alerts.
func (v *AlertsView) Visible(alerts []core.Alert) []core.Alert {
	user := v.session.User()

	filtered := make([]core.Alert, 0, len(alerts))
	for _, alert := range alerts {
		switch v.Tab {
		case AlertsTabActive:
			if alert.Status != core.AlertStatusActive {
				continue
			}
		case AlertsTabResolved:
			if alert.Status != core.AlertStatusResolved {
				continue
			}
		case AlertsTabMine:
			if user == nil || alert.AuthorID != user.ID {
				continue
			}
		}
		filtered = append(filtered, alert)
	}
	return filtered
}

// CanResolve reports whether the current user may resolve the alert:
// only the author of a still-active alert sees the action.
func (v *AlertsView) CanResolve(alert core.Alert) bool {
	user := v.session.User()
	return user != nil && alert.Status == core.AlertStatusActive && alert.AuthorID == user.ID
}

func (v *AlertsView) OpenDialog() {
	v.DialogOpen = true
	v.Form = AlertForm{Severity: core.SeverityMedium}
	v.Errors = nil
}

func (v *AlertsView) CloseDialog() {
	v.DialogOpen = false
	v.Errors = nil
}

// Submit validates the form and reports the alert.
func (v *AlertsView) Submit(ctx context.Context) (*core.Alert, error) {
	if v.submitting {
		return nil, core.ErrSubmitInFlight
	}
	if v.Errors = validateStruct(v.Form); v.Errors != nil {
		return nil, core.ErrValidation
	}

	v.submitting = true
	defer func() { v.submitting = false }()

	alert, err := v.queries.CreateAlert(ctx, core.AlertCreate{
		Title:       v.Form.Title,
		Description: v.Form.Description,
		AlertType:   v.Form.AlertType,
		Location:    v.Form.Location,
		Severity:    v.Form.Severity,
	})
	if err != nil {
		return nil, err
	}

	v.CloseDialog()
	v.Form = AlertForm{}
	return alert, nil
}

// Resolve marks an alert resolved. The authorship check is a UI guard;
// the backend enforces the real rule.
func (v *AlertsView) Resolve(ctx context.Context, id int64) (*core.Alert, error) {
	return v.queries.ResolveAlert(ctx, id)
}
