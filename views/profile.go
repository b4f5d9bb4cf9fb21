package views

import (
	"context"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/services"
)

// ProfileForm is the editable slice of the user's own record.
type ProfileForm struct {
	FullName string `validate:"required"`
	Phone    string
	Address  string
}

// ProfileView lets the signed-in user view and edit their own fields.
type ProfileView struct {
	queries *services.QueryClient
	session *core.Session

	Form       ProfileForm
	Errors     FieldErrors
	submitting bool
}

func NewProfileView(queries *services.QueryClient, session *core.Session) *ProfileView {
	v := &ProfileView{queries: queries, session: session}
	v.Reset()
	return v
}

// Reset reloads the form from the session's user copy.
func (v *ProfileView) Reset() {
	v.Errors = nil
	user := v.session.User()
	if user == nil {
		v.Form = ProfileForm{}
		return
	}
	v.Form = ProfileForm{FullName: user.FullName}
	if user.Phone != nil {
		v.Form.Phone = *user.Phone
	}
	if user.Address != nil {
		v.Form.Address = *user.Address
	}
}

// User returns the session's current user copy for display.
func (v *ProfileView) User() *core.User {
	return v.session.User()
}

// Submit validates and saves the profile. The session's user copy is
// refreshed by the mutation on success.
func (v *ProfileView) Submit(ctx context.Context) (*core.User, error) {
	if v.session.User() == nil {
		return nil, core.ErrNotAuthenticated
	}
	if v.submitting {
		return nil, core.ErrSubmitInFlight
	}
	if v.Errors = validateStruct(v.Form); v.Errors != nil {
		return nil, core.ErrValidation
	}

	v.submitting = true
	defer func() { v.submitting = false }()

	input := core.ProfileUpdate{FullName: &v.Form.FullName}
	if v.Form.Phone != "" {
		input.Phone = &v.Form.Phone
	}
	if v.Form.Address != "" {
		input.Address = &v.Form.Address
	}

	return v.queries.UpdateProfile(ctx, input)
}
