package store

import (
	"context"
	"log/slog"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

// GroupAPI is the part of the API client the group store uses.
type GroupAPI interface {
	ListGroups(ctx context.Context, params types.GroupListParams) (*types.Page[types.Group], error)
	AllGroups(ctx context.Context) ([]types.Group, error)
	CreateGroup(ctx context.Context, req types.CreateGroupRequest) (*types.Group, error)
	UpdateGroup(ctx context.Context, id int64, req types.UpdateGroupRequest) (*types.Group, error)
	UpdateGroupStatus(ctx context.Context, id int64, status types.GroupStatus) error
	DeleteGroup(ctx context.Context, id int64) error
}

// DefaultGroupParams is the first page of 20 groups, unfiltered.
var DefaultGroupParams = types.GroupListParams{Page: 1, Size: 20}

// GroupStore holds the current page of groups.
type GroupStore struct {
	*ListStore[int64, types.Group, types.GroupListParams]
	api GroupAPI
}

// NewGroupStore creates a group store backed by api.
func NewGroupStore(api GroupAPI, persister persist.Persister, log *slog.Logger) *GroupStore {
	return &GroupStore{
		ListStore: NewListStore("groups", types.Group.EntityID, api.ListGroups,
			DefaultGroupParams, persister, log),
		api: api,
	}
}

// EnabledGroups returns the held groups that are enabled.
func (s *GroupStore) EnabledGroups() []types.Group {
	return s.Filter(func(g types.Group) bool { return g.Status == types.GroupEnabled })
}

// GroupByID returns a held group.
func (s *GroupStore) GroupByID(id int64) (types.Group, bool) {
	return s.Find(id)
}

// GroupOptions projects the enabled groups onto label/value pairs.
func (s *GroupStore) GroupOptions() []types.GroupOption {
	items := s.EnabledGroups()
	out := make([]types.GroupOption, len(items))
	for i, g := range items {
		out[i] = types.GroupOption{Label: g.Name, Value: g.ID}
	}
	return out
}

// LoadAll replaces the held page with every group of the caller. The
// search parameters are left as they are.
func (s *GroupStore) LoadAll(ctx context.Context) error {
	groups, err := s.api.AllGroups(ctx)
	if err != nil {
		return err
	}
	s.replace(groups)
	return nil
}

// SetStatus changes the status of a held group without calling the API.
// Absent ids are ignored.
func (s *GroupStore) SetStatus(id int64, status types.GroupStatus) bool {
	return s.Mutate(id, func(g *types.Group) { g.Status = status })
}

// UpdateGroupStatus changes a group's status on the server and, once that
// succeeds, in the store.
func (s *GroupStore) UpdateGroupStatus(ctx context.Context, id int64, status types.GroupStatus) error {
	if err := s.api.UpdateGroupStatus(ctx, id, status); err != nil {
		return err
	}
	s.SetStatus(id, status)
	return nil
}

// UpdateGroupStatuses applies UpdateGroupStatus to each id in turn and
// stops at the first failure.
func (s *GroupStore) UpdateGroupStatuses(ctx context.Context, status types.GroupStatus, ids ...int64) error {
	return eachID("group", ids, func(id int64) error {
		return s.UpdateGroupStatus(ctx, id, status)
	})
}

// CreateGroup creates a group and adds it to the store.
func (s *GroupStore) CreateGroup(ctx context.Context, req types.CreateGroupRequest) (*types.Group, error) {
	g, err := s.api.CreateGroup(ctx, req)
	if err != nil {
		return nil, err
	}
	s.Add(*g)
	return g, nil
}

// UpdateGroup updates a group and replaces the held copy.
func (s *GroupStore) UpdateGroup(ctx context.Context, id int64, req types.UpdateGroupRequest) (*types.Group, error) {
	g, err := s.api.UpdateGroup(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.Update(*g)
	return g, nil
}

// DeleteGroups deletes groups one at a time, removing each from the store
// once the server confirms it. It stops at the first failure.
func (s *GroupStore) DeleteGroups(ctx context.Context, ids ...int64) error {
	return eachID("group", ids, func(id int64) error {
		if err := s.api.DeleteGroup(ctx, id); err != nil {
			return err
		}
		s.Remove(id)
		return nil
	})
}
