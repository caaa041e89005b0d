package store

import (
	"context"
	"log/slog"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

// APIKeyAPI is the part of the API client the API key store uses.
type APIKeyAPI interface {
	ListAPIKeys(ctx context.Context, params types.APIKeyListParams) (*types.Page[types.APIKey], error)
	UpdateAPIKeyStatus(ctx context.Context, id int64, status types.APIKeyStatus) error
	DeleteAPIKey(ctx context.Context, id int64) error
}

// DefaultAPIKeyParams is the first page of 20 keys.
var DefaultAPIKeyParams = types.APIKeyListParams{Page: 1, Limit: 20}

// APIKeyStore holds the current page of the caller's API keys.
type APIKeyStore struct {
	*ListStore[int64, types.APIKey, types.APIKeyListParams]
	api APIKeyAPI
}

// NewAPIKeyStore creates an API key store backed by api.
func NewAPIKeyStore(api APIKeyAPI, persister persist.Persister, log *slog.Logger) *APIKeyStore {
	return &APIKeyStore{
		ListStore: NewListStore("api-keys", types.APIKey.EntityID, api.ListAPIKeys,
			DefaultAPIKeyParams, persister, log),
		api: api,
	}
}

// EnabledKeys returns the held keys that are enabled.
func (s *APIKeyStore) EnabledKeys() []types.APIKey {
	return s.Filter(func(k types.APIKey) bool { return k.Status == types.APIKeyEnabled })
}

// SetStatus changes the status of a held key without calling the API.
func (s *APIKeyStore) SetStatus(id int64, status types.APIKeyStatus) bool {
	return s.Mutate(id, func(k *types.APIKey) { k.Status = status })
}

// UpdateKeyStatus changes a key's status on the server and, once that
// succeeds, in the store.
func (s *APIKeyStore) UpdateKeyStatus(ctx context.Context, id int64, status types.APIKeyStatus) error {
	if err := s.api.UpdateAPIKeyStatus(ctx, id, status); err != nil {
		return err
	}
	s.SetStatus(id, status)
	return nil
}

// DeleteKey deletes a key on the server and removes it from the store.
func (s *APIKeyStore) DeleteKey(ctx context.Context, id int64) error {
	if err := s.api.DeleteAPIKey(ctx, id); err != nil {
		return err
	}
	s.Remove(id)
	return nil
}
