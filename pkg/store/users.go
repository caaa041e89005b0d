package store

import (
	"context"
	"log/slog"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

// UserAPI is the part of the API client the user store uses.
type UserAPI interface {
	ListUsers(ctx context.Context, params types.PageParams) (*types.Page[types.User], error)
	CreateUser(ctx context.Context, req types.CreateUserRequest) (*types.User, error)
	UpdateUserStatus(ctx context.Context, id int64, status types.UserStatus) error
}

// DefaultUserParams is the first page of 20 users.
var DefaultUserParams = types.PageParams{Page: 1, Limit: 20}

// UserStore holds the administrator's current page of users.
type UserStore struct {
	*ListStore[int64, types.User, types.PageParams]
	api UserAPI
}

// NewUserStore creates a user store backed by api.
func NewUserStore(api UserAPI, persister persist.Persister, log *slog.Logger) *UserStore {
	return &UserStore{
		ListStore: NewListStore("users", types.User.EntityID, api.ListUsers,
			DefaultUserParams, persister, log),
		api: api,
	}
}

// ActiveUsers returns the held users that are enabled.
func (s *UserStore) ActiveUsers() []types.User {
	return s.Filter(func(u types.User) bool { return u.Status == types.UserEnabled })
}

// UserOptions projects the held users onto label/value pairs.
func (s *UserStore) UserOptions() []types.UserOption {
	items := s.Items()
	out := make([]types.UserOption, len(items))
	for i, u := range items {
		out[i] = types.UserOption{Label: u.Username, Value: u.ID}
	}
	return out
}

// SetStatus changes the status of a held user without calling the API.
func (s *UserStore) SetStatus(id int64, status types.UserStatus) bool {
	return s.Mutate(id, func(u *types.User) { u.Status = status })
}

// UpdateUserStatus changes a user's status on the server and, once that
// succeeds, in the store.
func (s *UserStore) UpdateUserStatus(ctx context.Context, id int64, status types.UserStatus) error {
	if err := s.api.UpdateUserStatus(ctx, id, status); err != nil {
		return err
	}
	s.SetStatus(id, status)
	return nil
}

// CreateUser creates a user and adds it to the store.
func (s *UserStore) CreateUser(ctx context.Context, req types.CreateUserRequest) (*types.User, error) {
	u, err := s.api.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	s.Add(*u)
	return u, nil
}
