package client

import (
	"context"
	"errors"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

// GenerateOAuthURL starts a PKCE authorization for a Claude account. The
// returned verifier and state must be passed back to ExchangeOAuthCode.
func (c *Client) GenerateOAuthURL(ctx context.Context) (*types.OAuthURL, error) {
	resp, err := c.get(ctx, "generate_oauth_url", apiPrefix+"/oauth/generate-auth-url", nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var u types.OAuthURL
	if err := decode(resp, &u, "oauth url"); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExchangeOAuthCode trades an authorization code for account tokens.
func (c *Client) ExchangeOAuthCode(ctx context.Context, req types.ExchangeCodeRequest) (*types.ExchangeCodeResponse, error) {
	if req.AuthorizationCode == "" && req.CallbackURL == "" {
		return nil, errors.New("authorization code or callback url is required")
	}
	resp, err := c.post(ctx, "exchange_oauth_code", apiPrefix+"/oauth/exchange-code", req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var out types.ExchangeCodeResponse
	if err := decode(resp, &out, "oauth tokens"); err != nil {
		return nil, err
	}
	return &out, nil
}
