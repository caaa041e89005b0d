package store

import (
	"context"
	"log/slog"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

// AccountAPI is the part of the API client the account store uses.
type AccountAPI interface {
	ListAccounts(ctx context.Context, params types.AccountListParams) (*types.Page[types.Account], error)
	CreateAccount(ctx context.Context, req types.AccountRequest) (*types.Account, error)
	UpdateAccountActiveStatus(ctx context.Context, id int64, status types.AccountActiveStatus) error
	UpdateAccountCurrentStatus(ctx context.Context, id int64, status types.AccountCurrentStatus) error
	DeleteAccount(ctx context.Context, id int64) error
}

// DefaultAccountParams is the first page of 20 accounts.
var DefaultAccountParams = types.AccountListParams{Page: 1, Limit: 20}

// AccountStore holds the current page of upstream accounts.
type AccountStore struct {
	*ListStore[int64, types.Account, types.AccountListParams]
	api AccountAPI
}

// NewAccountStore creates an account store backed by api.
func NewAccountStore(api AccountAPI, persister persist.Persister, log *slog.Logger) *AccountStore {
	return &AccountStore{
		ListStore: NewListStore("accounts", types.Account.EntityID, api.ListAccounts,
			DefaultAccountParams, persister, log),
		api: api,
	}
}

// ActiveAccounts returns the held accounts that are switched on.
func (s *AccountStore) ActiveAccounts() []types.Account {
	return s.Filter(func(a types.Account) bool { return a.ActiveStatus == types.AccountActive })
}

// SetActiveStatus changes the activation of a held account without calling the API.
func (s *AccountStore) SetActiveStatus(id int64, status types.AccountActiveStatus) bool {
	return s.Mutate(id, func(a *types.Account) { a.ActiveStatus = status })
}

// UpdateActiveStatus switches an account on the server and, once that
// succeeds, in the store.
func (s *AccountStore) UpdateActiveStatus(ctx context.Context, id int64, status types.AccountActiveStatus) error {
	if err := s.api.UpdateAccountActiveStatus(ctx, id, status); err != nil {
		return err
	}
	s.SetActiveStatus(id, status)
	return nil
}

// UpdateActiveStatuses applies UpdateActiveStatus to each id in turn and
// stops at the first failure.
func (s *AccountStore) UpdateActiveStatuses(ctx context.Context, status types.AccountActiveStatus, ids ...int64) error {
	return eachID("account", ids, func(id int64) error {
		return s.UpdateActiveStatus(ctx, id, status)
	})
}

// UpdateCurrentStatuses overrides the observed health of each account in
// turn, updating held copies as the server confirms. It stops at the
// first failure.
func (s *AccountStore) UpdateCurrentStatuses(ctx context.Context, status types.AccountCurrentStatus, ids ...int64) error {
	return eachID("account", ids, func(id int64) error {
		if err := s.api.UpdateAccountCurrentStatus(ctx, id, status); err != nil {
			return err
		}
		s.Mutate(id, func(a *types.Account) { a.CurrentStatus = status })
		return nil
	})
}

// CreateAccount creates an account and adds it to the store.
func (s *AccountStore) CreateAccount(ctx context.Context, req types.AccountRequest) (*types.Account, error) {
	a, err := s.api.CreateAccount(ctx, req)
	if err != nil {
		return nil, err
	}
	s.Add(*a)
	return a, nil
}

// DeleteAccounts deletes accounts one at a time, removing each from the
// store once the server confirms it. It stops at the first failure.
func (s *AccountStore) DeleteAccounts(ctx context.Context, ids ...int64) error {
	return eachID("account", ids, func(id int64) error {
		if err := s.api.DeleteAccount(ctx, id); err != nil {
			return err
		}
		s.Remove(id)
		return nil
	})
}
