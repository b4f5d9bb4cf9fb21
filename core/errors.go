package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Session errors
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoCredential       = errors.New("no stored credential")
	ErrLoginInFlight      = errors.New("a login attempt is already in progress")
)

// View errors
var (
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// Config errors (library misconfiguration)
var (
	ErrBaseURLRequired = errors.New("base URL is required when no transport is provided")
)

// ErrValidation marks an input rejected by client-side validation before
// any network call. Field-level detail travels alongside in the view state.
var ErrValidation = errors.New("validation failed")

// APIError is a non-success HTTP response from the backend.
// Detail carries whatever reason the backend gave, verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
