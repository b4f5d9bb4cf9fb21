package views

import (
	"context"
	"errors"

	"github.com/mireles/vecino/core"
	"github.com/mireles/vecino/services"
)

// LoginForm is the sign-in page state.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterForm is the sign-up page state.
type RegisterForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
	Phone    string
	Address  string
	Password string `validate:"required,min=6"`
}

// AuthView drives the login and register pages. Message holds the
// backend-provided failure reason for inline display; Pending blocks
// repeated submission while an exchange is in flight.
type AuthView struct {
	sessions *services.SessionManager

	Login    LoginForm
	Register RegisterForm
	Errors   FieldErrors
	Message  string
	Pending  bool
}

func NewAuthView(sessions *services.SessionManager) *AuthView {
	return &AuthView{sessions: sessions}
}

// SubmitLogin validates and attempts the login. On failure the session
// stays anonymous and Message carries the reason.
func (v *AuthView) SubmitLogin(ctx context.Context) error {
	if v.Pending {
		return core.ErrSubmitInFlight
	}
	v.Message = ""
	if v.Errors = validateStruct(v.Login); v.Errors != nil {
		return core.ErrValidation
	}

	v.Pending = true
	defer func() { v.Pending = false }()

	if err := v.sessions.Login(ctx, v.Login.Username, v.Login.Password); err != nil {
		v.Message = failureMessage(err)
		return err
	}

	v.Login = LoginForm{}
	return nil
}

// SubmitRegister validates and attempts the registration. Whether
// success authenticates immediately is the session manager's policy.
func (v *AuthView) SubmitRegister(ctx context.Context) (*core.User, error) {
	if v.Pending {
		return nil, core.ErrSubmitInFlight
	}
	v.Message = ""
	if v.Errors = validateStruct(v.Register); v.Errors != nil {
		return nil, core.ErrValidation
	}

	v.Pending = true
	defer func() { v.Pending = false }()

	input := core.RegisterInput{
		Username: v.Register.Username,
		Email:    v.Register.Email,
		FullName: v.Register.FullName,
		Password: v.Register.Password,
	}
	if v.Register.Phone != "" {
		input.Phone = &v.Register.Phone
	}
	if v.Register.Address != "" {
		input.Address = &v.Register.Address
	}

	user, err := v.sessions.Register(ctx, input)
	if err != nil {
		v.Message = failureMessage(err)
		return nil, err
	}

	v.Register = RegisterForm{}
	return user, nil
}

// failureMessage prefers the backend's own reason over wrapper text.
func failureMessage(err error) string {
	var apiErr *core.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
