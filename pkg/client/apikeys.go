package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

const apiKeysPath = apiPrefix + "/api-keys"

// ListAPIKeys returns one page of the caller's API keys.
func (c *Client) ListAPIKeys(ctx context.Context, params types.APIKeyListParams) (*types.Page[types.APIKey], error) {
	q := pageQuery(params.Page, params.Limit)
	if params.GroupID > 0 {
		q.Set("group_id", itoa(params.GroupID))
	}
	resp, err := c.get(ctx, "list_api_keys", apiKeysPath+"/list", q)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	return decodeList[types.APIKey](resp, "api_keys", "api key list")
}

// GetAPIKey returns an API key by ID.
func (c *Client) GetAPIKey(ctx context.Context, id int64) (*types.APIKey, error) {
	resp, err := c.get(ctx, "get_api_key", apiKeysPath+"/detail/"+itoa(id), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var key types.APIKey
	if err := decode(resp, &key, "api key"); err != nil {
		return nil, err
	}
	return &key, nil
}

// CreateAPIKey creates an API key and returns its secret value. The secret
// is only ever returned here.
func (c *Client) CreateAPIKey(ctx context.Context, req types.CreateAPIKeyRequest) (*types.CreatedAPIKey, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: api key status %d", ErrInvalidStatus, int(*req.Status))
	}
	resp, err := c.post(ctx, "create_api_key", apiKeysPath+"/create", req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var created types.CreatedAPIKey
	if err := decode(resp, &created, "api key"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAPIKey updates an API key and returns the stored record.
func (c *Client) UpdateAPIKey(ctx context.Context, id int64, req types.UpdateAPIKeyRequest) (*types.APIKey, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: api key status %d", ErrInvalidStatus, int(*req.Status))
	}
	resp, err := c.put(ctx, "update_api_key", apiKeysPath+"/update/"+itoa(id), req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var key types.APIKey
	if err := decode(resp, &key, "api key"); err != nil {
		return nil, err
	}
	return &key, nil
}

// UpdateAPIKeyStatus enables or disables an API key.
func (c *Client) UpdateAPIKeyStatus(ctx context.Context, id int64, status types.APIKeyStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: api key status %d", ErrInvalidStatus, int(status))
	}
	resp, err := c.put(ctx, "update_api_key_status", apiKeysPath+"/update-status/"+itoa(id),
		map[string]types.APIKeyStatus{"status": status})
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "api key")
}

// DeleteAPIKey deletes an API key by ID.
func (c *Client) DeleteAPIKey(ctx context.Context, id int64) error {
	resp, err := c.delete(ctx, "delete_api_key", apiKeysPath+"/delete/"+itoa(id), nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "api key")
}

// APIKeyStats looks up the usage of a key by its secret value. The endpoint
// is public; no session is required.
func (c *Client) APIKeyStats(ctx context.Context, params types.APIKeyStatsParams) (*types.APIKeyStats, error) {
	if params.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	q := pageQuery(params.Page, params.Limit)
	q.Set("api_key", params.APIKey)
	resp, err := c.get(ctx, "api_key_stats", apiPrefix+"/auth/api-key", q)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var stats types.APIKeyStats
	if err := decode(resp, &stats, "api key stats"); err != nil {
		return nil, err
	}
	if stats.Logs.List == nil {
		stats.Logs.List = []types.Log{}
	}
	return &stats, nil
}
