package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

type fakeUserAPI struct {
	users []types.User
}

func (f *fakeUserAPI) ListUsers(context.Context, types.PageParams) (*types.Page[types.User], error) {
	return &types.Page[types.User]{Items: f.users, Total: len(f.users)}, nil
}

func (f *fakeUserAPI) CreateUser(_ context.Context, req types.CreateUserRequest) (*types.User, error) {
	return &types.User{ID: 50, Username: req.Username, Status: types.UserEnabled}, nil
}

func (f *fakeUserAPI) UpdateUserStatus(context.Context, int64, types.UserStatus) error { return nil }

func TestUserStore(t *testing.T) {
	api := &fakeUserAPI{users: []types.User{
		{ID: 1, Username: "root", Status: types.UserEnabled},
		{ID: 2, Username: "bob", Status: types.UserDisabled},
	}}
	s := NewUserStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	assert.Len(t, s.ActiveUsers(), 1)
	assert.Equal(t, []types.UserOption{{Label: "root", Value: 1}, {Label: "bob", Value: 2}}, s.UserOptions())

	require.NoError(t, s.UpdateUserStatus(context.Background(), 2, types.UserEnabled))
	assert.Len(t, s.ActiveUsers(), 2)

	u, err := s.CreateUser(context.Background(), types.CreateUserRequest{Username: "carol"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, s.Items()[0].ID)
	assert.Equal(t, 3, s.Total())
}

type fakeAccountAPI struct {
	accounts  []types.Account
	deleted   []int64
	healthIDs []int64
}

func (f *fakeAccountAPI) ListAccounts(context.Context, types.AccountListParams) (*types.Page[types.Account], error) {
	return &types.Page[types.Account]{Items: f.accounts, Total: len(f.accounts)}, nil
}

func (f *fakeAccountAPI) CreateAccount(_ context.Context, req types.AccountRequest) (*types.Account, error) {
	return &types.Account{ID: 9, Name: req.Name, ActiveStatus: types.AccountActive}, nil
}

func (f *fakeAccountAPI) UpdateAccountActiveStatus(context.Context, int64, types.AccountActiveStatus) error {
	return nil
}

func (f *fakeAccountAPI) DeleteAccount(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAccountAPI) UpdateAccountCurrentStatus(_ context.Context, id int64, _ types.AccountCurrentStatus) error {
	f.healthIDs = append(f.healthIDs, id)
	return nil
}

func TestAccountStore(t *testing.T) {
	api := &fakeAccountAPI{accounts: []types.Account{
		{ID: 1, ActiveStatus: types.AccountActive},
		{ID: 2, ActiveStatus: types.AccountDisabled},
	}}
	s := NewAccountStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	assert.Len(t, s.ActiveAccounts(), 1)
	require.NoError(t, s.UpdateActiveStatus(context.Background(), 1, types.AccountDisabled))
	assert.Empty(t, s.ActiveAccounts())

	_, err := s.CreateAccount(context.Background(), types.AccountRequest{Name: "new"})
	require.NoError(t, err)
	assert.Len(t, s.ActiveAccounts(), 1)

	require.NoError(t, s.UpdateCurrentStatuses(context.Background(), types.AccountRateLimited, 1, 2))
	assert.Equal(t, []int64{1, 2}, api.healthIDs)
	held, ok := s.Find(2)
	require.True(t, ok)
	assert.Equal(t, types.AccountRateLimited, held.CurrentStatus)

	require.NoError(t, s.UpdateActiveStatuses(context.Background(), types.AccountActive, 1, 2))
	assert.Len(t, s.ActiveAccounts(), 3)

	require.NoError(t, s.DeleteAccounts(context.Background(), 1, 2))
	assert.Equal(t, []int64{1, 2}, api.deleted)
	assert.Equal(t, 1, s.Total())
}

type fakeAPIKeyAPI struct {
	keys []types.APIKey
}

func (f *fakeAPIKeyAPI) ListAPIKeys(context.Context, types.APIKeyListParams) (*types.Page[types.APIKey], error) {
	return &types.Page[types.APIKey]{Items: f.keys, Total: len(f.keys)}, nil
}

func (f *fakeAPIKeyAPI) UpdateAPIKeyStatus(context.Context, int64, types.APIKeyStatus) error {
	return nil
}

func (f *fakeAPIKeyAPI) DeleteAPIKey(context.Context, int64) error { return nil }

func TestAPIKeyStore(t *testing.T) {
	api := &fakeAPIKeyAPI{keys: []types.APIKey{
		{ID: 1, Status: types.APIKeyEnabled},
		{ID: 2, Status: types.APIKeyEnabled},
	}}
	s := NewAPIKeyStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	require.NoError(t, s.UpdateKeyStatus(context.Background(), 2, types.APIKeyDisabled))
	assert.Len(t, s.EnabledKeys(), 1)

	require.NoError(t, s.DeleteKey(context.Background(), 1))
	assert.Empty(t, s.EnabledKeys())
	assert.Equal(t, 1, s.Total())
}

type fakeLogAPI struct {
	filter types.LogFilter
}

func (f *fakeLogAPI) MyLogs(_ context.Context, filter types.LogFilter) (*types.Page[types.Log], error) {
	f.filter = filter
	return &types.Page[types.Log]{Items: []types.Log{{ID: "b"}, {ID: "a"}}, Total: 2}, nil
}

func TestLogStore(t *testing.T) {
	api := &fakeLogAPI{}
	s := NewLogStore(api, nil, nil)

	require.NoError(t, s.FetchList(context.Background(), func(f *types.LogFilter) {
		f.ModelName = "claude-sonnet-4"
	}))
	assert.Equal(t, "claude-sonnet-4", api.filter.ModelName)
	assert.Equal(t, 20, api.filter.Limit)

	l, ok := s.Find("a")
	require.True(t, ok)
	assert.Equal(t, "a", l.ID)
	assert.Equal(t, 1, s.Remove("b"))
}
