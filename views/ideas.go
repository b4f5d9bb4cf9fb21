package views

import (
	"context"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/services"
)

// IdeasTab selects the client-side filter over the fetched idea list.
type IdeasTab int

const (
	IdeasTabAll IdeasTab = iota
	IdeasTabPending
	IdeasTabApproved
	IdeasTabMine
)

// IdeaCategories are the proposal categories offered in the create form.
var IdeaCategories = []string{
	"Environment", "Education", "Health", "Infrastructure",
	"Safety", "Technology", "Social", "Economic", "Other",
}

// IdeaForm is the create-idea dialog state.
type IdeaForm struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Category    string `validate:"required"`
}

// IdeasView drives the ideas page: one cached query, a create dialog,
// voting, and four derived tabs.
type IdeasView struct {
	queries *services.QueryClient
	session *core.Session

	Tab        IdeasTab
	DialogOpen bool
	Form       IdeaForm
	Errors     FieldErrors
	submitting bool
}

func NewIdeasView(queries *services.QueryClient, session *core.Session) *IdeasView {
	return &IdeasView{queries: queries, session: session}
}

// Watch subscribes fn to the view's query so refreshes re-render it.
// The caller must invoke the returned function on unmount.
func (v *IdeasView) Watch(fn func()) func() {
	return v.queries.Subscribe(services.IdeasKey(services.IdeaListOptions{}), fn)
}

// Load reads the idea list through the cache.
func (v *IdeasView) Load(ctx context.Context) ([]core.Idea, error) {
	return v.queries.Ideas(ctx, services.IdeaListOptions{})
}

// Visible applies the active tab's filter. Pure: switching tabs never
// triggers a fetch.
func (v *IdeasView) Visible(ideas []core.Idea) []core.Idea {
	user := v.session.User()

	filtered := make([]core.Idea, 0, len(ideas))
	for _, idea := range ideas {
		switch v.Tab {
		case IdeasTabPending:
			if idea.Status != core.IdeaStatusPending {
				continue
			}
		case IdeasTabApproved:
			if idea.Status != core.IdeaStatusApproved {
				continue
			}
		case IdeasTabMine:
			if user == nil || idea.AuthorID != user.ID {
				continue
			}
		}
		filtered = append(filtered, idea)
	}
	return filtered
}

func (v *IdeasView) OpenDialog() {
	v.DialogOpen = true
	v.Form = IdeaForm{}
	v.Errors = nil
}

func (v *IdeasView) CloseDialog() {
	v.DialogOpen = false
	v.Errors = nil
}

// Submit validates the form and creates the idea. Validation failures
// set Errors and return core.ErrValidation without touching the network.
func (v *IdeasView) Submit(ctx context.Context) (*core.Idea, error) {
	if v.submitting {
		return nil, core.ErrSubmitInFlight
	}
	if v.Errors = validateStruct(v.Form); v.Errors != nil {
		return nil, core.ErrValidation
	}

	v.submitting = true
	defer func() { v.submitting = false }()

	idea, err := v.queries.CreateIdea(ctx, core.IdeaCreate{
		Title:       v.Form.Title,
		Description: v.Form.Description,
		Category:    v.Form.Category,
	})
	if err != nil {
		return nil, err
	}

	v.CloseDialog()
	v.Form = IdeaForm{}
	return idea, nil
}

// Vote casts one vote. The backend owns vote bookkeeping; nothing here
// guards against the same user voting twice.
func (v *IdeasView) Vote(ctx context.Context, id int64, vote core.VoteType) (*core.Idea, error) {
	return v.queries.VoteIdea(ctx, id, vote)
}
