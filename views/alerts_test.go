package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mireles/vecino/core"
)

func sampleAlerts() []core.Alert {
	return []core.Alert{
		{ID: 1, Title: "gate broken", Status: core.AlertStatusActive, AuthorID: 7},
		{ID: 2, Title: "water cut", Status: core.AlertStatusResolved, AuthorID: 7},
		{ID: 3, Title: "loose dog", Status: core.AlertStatusActive, AuthorID: 8},
	}
}

func TestAlertsVisibleShouldFilterByTab(t *testing.T) {
	f := newViewFixture()
	f.signIn(7)
	view := NewAlertsView(f.queries, f.session)

	tests := []struct {
		name     string
		tab      AlertsTab
		expected []int64
	}{
		{"all tab", AlertsTabAll, []int64{1, 2, 3}},
		{"active tab", AlertsTabActive, []int64{1, 3}},
		{"resolved tab", AlertsTabResolved, []int64{2}},
		{"mine tab", AlertsTabMine, []int64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view.Tab = tt.tab

			visible := view.Visible(sampleAlerts())

			ids := make([]int64, 0, len(visible))
			for _, alert := range visible {
				ids = append(ids, alert.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestCanResolveShouldRequireAuthorOfActiveAlert(t *testing.T) {
	f := newViewFixture()
	f.signIn(7)
	view := NewAlertsView(f.queries, f.session)

	tests := []struct {
		name     string
		alert    core.Alert
		expected bool
	}{
		{"own active alert", core.Alert{Status: core.AlertStatusActive, AuthorID: 7}, true},
		{"someone else's active alert", core.Alert{Status: core.AlertStatusActive, AuthorID: 8}, false},
		{"own resolved alert", core.Alert{Status: core.AlertStatusResolved, AuthorID: 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, view.CanResolve(tt.alert))
		})
	}
}

func TestCanResolveShouldBeFalseWhenSignedOut(t *testing.T) {
	f := newViewFixture()
	view := NewAlertsView(f.queries, f.session)

	assert.False(t, view.CanResolve(core.Alert{Status: core.AlertStatusActive, AuthorID: 7}))
}

func TestAlertsOpenDialogShouldDefaultSeverityMedium(t *testing.T) {
	f := newViewFixture()
	view := NewAlertsView(f.queries, f.session)

	view.OpenDialog()

	assert.Equal(t, core.SeverityMedium, view.Form.Severity)
}

func TestAlertsSubmitShouldRejectMissingLocationWithoutNetwork(t *testing.T) {
	f := newViewFixture()
	view := NewAlertsView(f.queries, f.session)
	view.OpenDialog()
	view.Form.Title = "gate broken"
	view.Form.Description = "main gate stuck open"
	view.Form.AlertType = "maintenance"

	_, err := view.Submit(context.Background())

	require.ErrorIs(t, err, core.ErrValidation)
	assert.Contains(t, view.Errors, "Location")
	assert.Empty(t, f.transport.Calls())
}

func TestAlertsSubmitShouldReportAlert(t *testing.T) {
	f := newViewFixture()
	f.transport.Respond(http.MethodPost, "/api/alerts/", core.Alert{ID: 4, Title: "gate broken"})
	view := NewAlertsView(f.queries, f.session)
	view.OpenDialog()
	view.Form = AlertForm{
		Title: "gate broken", Description: "main gate stuck open",
		AlertType: "maintenance", Location: "main gate", Severity: core.SeverityHigh,
	}

	alert, err := view.Submit(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 4, alert.ID)
	assert.False(t, view.DialogOpen)
}
