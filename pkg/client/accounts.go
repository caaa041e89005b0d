package client

import (
	"context"
	"fmt"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

const accountsPath = apiPrefix + "/accounts"

// ListAccounts returns one page of upstream accounts.
func (c *Client) ListAccounts(ctx context.Context, params types.AccountListParams) (*types.Page[types.Account], error) {
	q := pageQuery(params.Page, params.Limit)
	if params.UserID > 0 {
		q.Set("user_id", itoa(params.UserID))
	}
	resp, err := c.get(ctx, "list_accounts", accountsPath+"/list", q)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	return decodeList[types.Account](resp, "accounts", "account list")
}

// GetAccount returns an account by ID.
func (c *Client) GetAccount(ctx context.Context, id int64) (*types.Account, error) {
	resp, err := c.get(ctx, "get_account", accountsPath+"/detail/"+itoa(id), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var account types.Account
	if err := decode(resp, &account, "account"); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount creates an upstream account.
func (c *Client) CreateAccount(ctx context.Context, req types.AccountRequest) (*types.Account, error) {
	if req.ActiveStatus != nil && !req.ActiveStatus.Valid() {
		return nil, fmt.Errorf("%w: account active status %d", ErrInvalidStatus, int(*req.ActiveStatus))
	}
	resp, err := c.post(ctx, "create_account", accountsPath+"/create", req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var account types.Account
	if err := decode(resp, &account, "account"); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount updates an upstream account.
func (c *Client) UpdateAccount(ctx context.Context, id int64, req types.AccountRequest) (*types.Account, error) {
	if req.ActiveStatus != nil && !req.ActiveStatus.Valid() {
		return nil, fmt.Errorf("%w: account active status %d", ErrInvalidStatus, int(*req.ActiveStatus))
	}
	resp, err := c.put(ctx, "update_account", accountsPath+"/update/"+itoa(id), req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var account types.Account
	if err := decode(resp, &account, "account"); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount deletes an account by ID.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	resp, err := c.delete(ctx, "delete_account", accountsPath+"/delete/"+itoa(id), nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "account")
}

// BatchDeleteAccounts deletes several accounts in one request.
func (c *Client) BatchDeleteAccounts(ctx context.Context, ids []int64) error {
	resp, err := c.delete(ctx, "batch_delete_accounts", accountsPath+"/delete", types.IDs{IDs: ids})
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "accounts")
}

// UpdateAccountActiveStatus switches an account on or off.
func (c *Client) UpdateAccountActiveStatus(ctx context.Context, id int64, status types.AccountActiveStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: account active status %d", ErrInvalidStatus, int(status))
	}
	resp, err := c.put(ctx, "update_account_active_status", accountsPath+"/update-active-status/"+itoa(id),
		map[string]types.AccountActiveStatus{"active_status": status})
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "account")
}

// BatchUpdateAccountActiveStatus switches several accounts on or off.
func (c *Client) BatchUpdateAccountActiveStatus(ctx context.Context, ids []int64, status types.AccountActiveStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: account active status %d", ErrInvalidStatus, int(status))
	}
	body := struct {
		IDs          []int64                   `json:"ids"`
		ActiveStatus types.AccountActiveStatus `json:"active_status"`
	}{IDs: ids, ActiveStatus: status}
	resp, err := c.put(ctx, "batch_update_account_active_status", accountsPath+"/update-active-status", body)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "accounts")
}

// UpdateAccountCurrentStatus overrides the observed health of an account,
// typically to clear a rate-limit or error mark.
func (c *Client) UpdateAccountCurrentStatus(ctx context.Context, id int64, status types.AccountCurrentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: account current status %d", ErrInvalidStatus, int(status))
	}
	resp, err := c.put(ctx, "update_account_current_status", accountsPath+"/update-current-status/"+itoa(id),
		map[string]types.AccountCurrentStatus{"current_status": status})
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "account")
}

// BatchUpdateAccountCurrentStatus overrides the observed health of several accounts.
func (c *Client) BatchUpdateAccountCurrentStatus(ctx context.Context, ids []int64, status types.AccountCurrentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: account current status %d", ErrInvalidStatus, int(status))
	}
	body := struct {
		IDs           []int64                    `json:"ids"`
		CurrentStatus types.AccountCurrentStatus `json:"current_status"`
	}{IDs: ids, CurrentStatus: status}
	resp, err := c.put(ctx, "batch_update_account_current_status", accountsPath+"/update-current-status", body)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "accounts")
}

// TestAccount probes the upstream with the account's credentials.
// A failed probe is reported in the result, not as an error.
func (c *Client) TestAccount(ctx context.Context, id int64) (*types.AccountTestResult, error) {
	resp, err := c.post(ctx, "test_account", accountsPath+"/test/"+itoa(id), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var result types.AccountTestResult
	if err := decode(resp, &result, "account test result"); err != nil {
		return nil, err
	}
	return &result, nil
}
