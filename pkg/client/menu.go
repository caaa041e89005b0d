package client

import (
	"context"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

// MenuList returns the navigation tree for the signed-in user's role.
func (c *Client) MenuList(ctx context.Context) ([]types.MenuItem, error) {
	resp, err := c.get(ctx, "menu_list", apiPrefix+"/menu-list", nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var data struct {
		List []types.MenuItem `json:"list"`
	}
	if err := decode(resp, &data, "menu list"); err != nil {
		return nil, err
	}
	if data.List == nil {
		data.List = []types.MenuItem{}
	}
	return data.List, nil
}
