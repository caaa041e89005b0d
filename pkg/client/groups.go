package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

const groupsPath = apiPrefix + "/groups"

// ListGroups returns one page of groups. Size is sent as the backend's
// "limit" parameter.
func (c *Client) ListGroups(ctx context.Context, params types.GroupListParams) (*types.Page[types.Group], error) {
	q := pageQuery(params.Page, params.Size)
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.Status != nil {
		q.Set("status", strconv.Itoa(int(*params.Status)))
	}
	resp, err := c.get(ctx, "list_groups", groupsPath+"/list", q)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	return decodeList[types.Group](resp, "groups", "group list")
}

// AllGroups returns every group of the caller, for selection widgets.
func (c *Client) AllGroups(ctx context.Context) ([]types.Group, error) {
	resp, err := c.get(ctx, "all_groups", groupsPath+"/all", nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	groups := []types.Group{}
	if err := decode(resp, &groups, "groups"); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetGroup returns a group by ID.
func (c *Client) GetGroup(ctx context.Context, id int64) (*types.Group, error) {
	resp, err := c.get(ctx, "get_group", groupsPath+"/detail/"+itoa(id), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var group types.Group
	if err := decode(resp, &group, "group"); err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroup creates a group and returns the stored record.
func (c *Client) CreateGroup(ctx context.Context, req types.CreateGroupRequest) (*types.Group, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: group status %d", ErrInvalidStatus, int(*req.Status))
	}
	resp, err := c.post(ctx, "create_group", groupsPath+"/create", req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var group types.Group
	if err := decode(resp, &group, "group"); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroup updates a group and returns the stored record.
func (c *Client) UpdateGroup(ctx context.Context, id int64, req types.UpdateGroupRequest) (*types.Group, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: group status %d", ErrInvalidStatus, int(*req.Status))
	}
	resp, err := c.put(ctx, "update_group", groupsPath+"/update/"+itoa(id), req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var group types.Group
	if err := decode(resp, &group, "group"); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroupStatus sets the status of one group. The backend has no
// dedicated status route; this goes through the update route.
func (c *Client) UpdateGroupStatus(ctx context.Context, id int64, status types.GroupStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: group status %d", ErrInvalidStatus, int(status))
	}
	resp, err := c.put(ctx, "update_group_status", groupsPath+"/update/"+itoa(id),
		map[string]types.GroupStatus{"status": status})
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "group")
}

// BatchUpdateGroupStatus sets the status of several groups in one request.
func (c *Client) BatchUpdateGroupStatus(ctx context.Context, ids []int64, status types.GroupStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: group status %d", ErrInvalidStatus, int(status))
	}
	body := struct {
		IDs    []int64           `json:"ids"`
		Status types.GroupStatus `json:"status"`
	}{IDs: ids, Status: status}
	resp, err := c.put(ctx, "batch_update_group_status", groupsPath+"/update", body)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "groups")
}

// DeleteGroup deletes a group by ID.
func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	resp, err := c.delete(ctx, "delete_group", groupsPath+"/delete/"+itoa(id), nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "group")
}

// BatchDeleteGroups deletes several groups in one request.
func (c *Client) BatchDeleteGroups(ctx context.Context, ids []int64) error {
	resp, err := c.delete(ctx, "batch_delete_groups", groupsPath+"/delete", types.IDs{IDs: ids})
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "groups")
}
