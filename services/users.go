package services

import (
	"context"

	"github.com/mireles/vecino/core"
)

// UsersService maps user operations to backend requests.
type UsersService struct {
	http core.Transport
}

func NewUsersService(transport core.Transport) *UsersService {
	return &UsersService{http: transport}
}

// List returns all residents, used for expense participant selection.
func (s *UsersService) List(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := s.http.Get(ctx, pathUsers, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Me resolves the current credential to its user.
func (s *UsersService) Me(ctx context.Context) (*core.User, error) {
	var user core.User
	if err := s.http.Get(ctx, pathMe, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the current user's own profile fields.
func (s *UsersService) UpdateProfile(ctx context.Context, input core.ProfileUpdate) (*core.User, error) {
	var user core.User
	if err := s.http.Put(ctx, pathMe, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
