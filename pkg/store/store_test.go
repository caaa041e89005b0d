package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

type fakeGroupAPI struct {
	mu        sync.Mutex
	page      *types.Page[types.Group]
	listErr   error
	statusErr error
	lastQuery types.GroupListParams
	statusIDs []int64
	deleted   []int64
	deleteErr map[int64]error
	all       []types.Group
}

func (f *fakeGroupAPI) ListGroups(_ context.Context, params types.GroupListParams) (*types.Page[types.Group], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = params
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.page, nil
}

func (f *fakeGroupAPI) CreateGroup(_ context.Context, req types.CreateGroupRequest) (*types.Group, error) {
	return &types.Group{ID: 100, Name: req.Name, Status: types.GroupEnabled}, nil
}

func (f *fakeGroupAPI) UpdateGroup(_ context.Context, id int64, req types.UpdateGroupRequest) (*types.Group, error) {
	g := types.Group{ID: id}
	if req.Name != nil {
		g.Name = *req.Name
	}
	return &g, nil
}

func (f *fakeGroupAPI) UpdateGroupStatus(_ context.Context, id int64, _ types.GroupStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusIDs = append(f.statusIDs, id)
	return f.statusErr
}

func (f *fakeGroupAPI) AllGroups(context.Context) ([]types.Group, error) {
	return f.all, nil
}

func (f *fakeGroupAPI) DeleteGroup(_ context.Context, id int64) error {
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func groupsPage(total int, groups ...types.Group) *types.Page[types.Group] {
	return &types.Page[types.Group]{Items: groups, Total: total, Page: 1, Limit: 20}
}

func ids(groups []types.Group) []int64 {
	out := make([]int64, len(groups))
	for i, g := range groups {
		out[i] = g.ID
	}
	return out
}

func TestGroupStore_EndToEnd(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(1, types.Group{ID: 1, Name: "g1", Status: types.GroupEnabled})}
	s := NewGroupStore(api, nil, nil)

	err := s.FetchList(context.Background(), func(p *types.GroupListParams) {
		p.Page, p.Size = 1, 20
	})
	require.NoError(t, err)
	assert.Equal(t, types.GroupListParams{Page: 1, Size: 20}, api.lastQuery)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, types.GroupEnabled, items[0].Status)
	assert.Equal(t, StateSuccess, s.State())

	enabled := s.EnabledGroups()
	require.Len(t, enabled, 1)
	assert.Equal(t, items[0], enabled[0])

	require.NoError(t, s.UpdateGroupStatus(context.Background(), 1, types.GroupDisabled))
	g, ok := s.GroupByID(1)
	require.True(t, ok)
	assert.Equal(t, types.GroupDisabled, g.Status)
	assert.Equal(t, 1, s.Total())
	assert.Empty(t, s.EnabledGroups())
}

func TestGroupStore_UpdateStatusFailureLeavesState(t *testing.T) {
	apiErr := errors.New("boom")
	api := &fakeGroupAPI{
		page:      groupsPage(1, types.Group{ID: 1, Status: types.GroupEnabled}),
		statusErr: apiErr,
	}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	err := s.UpdateGroupStatus(context.Background(), 1, types.GroupDisabled)
	require.ErrorIs(t, err, apiErr)

	g, _ := s.GroupByID(1)
	assert.Equal(t, types.GroupEnabled, g.Status, "status must only change after the API confirms")
}

func TestGroupStore_UpdateStatusAbsentID(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(2, types.Group{ID: 1}, types.Group{ID: 2})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))
	before := s.Items()

	require.NoError(t, s.UpdateGroupStatus(context.Background(), 42, types.GroupEnabled))
	assert.Equal(t, before, s.Items())
	assert.False(t, s.SetStatus(42, types.GroupEnabled))
}

func TestListStore_FetchErrorKeepsItems(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(1, types.Group{ID: 1})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	apiErr := errors.New("server exploded")
	api.listErr = apiErr
	err := s.FetchList(context.Background(), func(p *types.GroupListParams) { p.Page = 2 })
	require.ErrorIs(t, err, apiErr)

	assert.Equal(t, []int64{1}, ids(s.Items()))
	assert.Equal(t, 1, s.Total())
	assert.Equal(t, StateError, s.State())
	assert.False(t, s.Loading())
	assert.ErrorIs(t, s.Err(), apiErr)
	assert.Equal(t, 2, s.Params().Page, "params are patched even when the fetch fails")
}

func TestListStore_Add(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(5, types.Group{ID: 1}, types.Group{ID: 2})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	s.Add(types.Group{ID: 3, Name: "new"})
	assert.Equal(t, []int64{3, 1, 2}, ids(s.Items()))
	assert.Equal(t, 6, s.Total())

	// Re-adding an existing id replaces it in place.
	s.Add(types.Group{ID: 1, Name: "renamed"})
	assert.Equal(t, []int64{3, 1, 2}, ids(s.Items()))
	assert.Equal(t, 6, s.Total())
	g, _ := s.Find(1)
	assert.Equal(t, "renamed", g.Name)
}

func TestListStore_Update(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(1, types.Group{ID: 1, Name: "a"})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	assert.True(t, s.Update(types.Group{ID: 1, Name: "b"}))
	assert.False(t, s.Update(types.Group{ID: 9, Name: "c"}))
	assert.Equal(t, []types.Group{{ID: 1, Name: "b"}}, s.Items())
}

func TestListStore_RemoveMany(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(5,
		types.Group{ID: 1}, types.Group{ID: 2}, types.Group{ID: 3}, types.Group{ID: 4}, types.Group{ID: 5})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	removed := s.RemoveMany([]int64{4, 2, 99})
	assert.Equal(t, 2, removed)
	assert.Equal(t, []int64{1, 3, 5}, ids(s.Items()))
	assert.Equal(t, 3, s.Total())

	assert.Equal(t, 1, s.Remove(1))
	assert.Equal(t, 0, s.Remove(1))
	assert.Equal(t, []int64{3, 5}, ids(s.Items()))
}

func TestListStore_RemoveManyFloorsTotal(t *testing.T) {
	// The server total can lag behind a page that holds more than it claims.
	api := &fakeGroupAPI{page: groupsPage(1, types.Group{ID: 1}, types.Group{ID: 2}, types.Group{ID: 3})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	s.RemoveMany([]int64{1, 2, 3, 7})
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Total())
}

func TestListStore_ItemsIsCopy(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(1, types.Group{ID: 1, Name: "a"})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	items := s.Items()
	items[0].Name = "mutated"
	g, _ := s.Find(1)
	assert.Equal(t, "a", g.Name)
}

func TestListStore_Clear(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(1, types.Group{ID: 1})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	s.Clear()
	assert.Empty(t, s.Items())
	assert.NotNil(t, s.Items())
	assert.Equal(t, 0, s.Total())
	assert.Equal(t, StateIdle, s.State())
}

func TestListStore_ParamsPersisted(t *testing.T) {
	p := persist.NewMemoryPersister()
	api := &fakeGroupAPI{page: groupsPage(0)}

	s := NewGroupStore(api, p, nil)
	assert.Equal(t, DefaultGroupParams, s.Params())
	require.NoError(t, s.FetchList(context.Background(), func(q *types.GroupListParams) {
		q.Name = "ops"
		q.Page = 3
	}))

	reopened := NewGroupStore(api, p, nil)
	assert.Equal(t, types.GroupListParams{Page: 3, Size: 20, Name: "ops"}, reopened.Params())

	reopened.ResetParams()
	assert.Equal(t, DefaultGroupParams, reopened.Params())
	assert.Equal(t, DefaultGroupParams, NewGroupStore(api, p, nil).Params())
}

// gatedFetch returns pages only when released, in whatever order the test picks.
type gatedFetch struct {
	mu      sync.Mutex
	gates   map[int]chan *types.Page[types.Group]
	started chan int
}

func newGatedFetch() *gatedFetch {
	return &gatedFetch{gates: make(map[int]chan *types.Page[types.Group]), started: make(chan int, 4)}
}

func (g *gatedFetch) gate(page int) chan *types.Page[types.Group] {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[page]
	if !ok {
		ch = make(chan *types.Page[types.Group], 1)
		g.gates[page] = ch
	}
	return ch
}

func (g *gatedFetch) fetch(ctx context.Context, p types.GroupListParams) (*types.Page[types.Group], error) {
	ch := g.gate(p.Page)
	g.started <- p.Page
	select {
	case page := <-ch:
		return page, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestListStore_StaleResponseDiscarded(t *testing.T) {
	gf := newGatedFetch()
	s := NewListStore("groups", types.Group.EntityID, gf.fetch, DefaultGroupParams, nil, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = s.FetchList(context.Background(), func(p *types.GroupListParams) { p.Page = 1 })
	}()
	require.Equal(t, 1, <-gf.started)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[1] = s.FetchList(context.Background(), func(p *types.GroupListParams) { p.Page = 2 })
	}()
	require.Equal(t, 2, <-gf.started)

	// The newer fetch lands first, then the older one.
	gf.gate(2) <- groupsPage(1, types.Group{ID: 2})
	gf.gate(1) <- groupsPage(1, types.Group{ID: 1})
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, []int64{2}, ids(s.Items()))
	assert.Equal(t, StateSuccess, s.State())
}

func TestListStore_CancelClearsLoading(t *testing.T) {
	gf := newGatedFetch()
	s := NewListStore("groups", types.Group.EntityID, gf.fetch, DefaultGroupParams, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.FetchList(ctx, nil) }()
	<-gf.started
	assert.True(t, s.Loading())

	cancel()
	err := <-done
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Loading())
	assert.Equal(t, StateError, s.State())
}

func TestGroupStore_Options(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(3,
		types.Group{ID: 1, Name: "on", Status: types.GroupEnabled},
		types.Group{ID: 2, Name: "off", Status: types.GroupDisabled},
		types.Group{ID: 3, Name: "also-on", Status: types.GroupEnabled})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	assert.Equal(t, []types.GroupOption{{Label: "on", Value: 1}, {Label: "also-on", Value: 3}}, s.GroupOptions())
	assert.Equal(t, []int64{1, 3}, ids(s.EnabledGroups()))
}

func TestGroupStore_LoadAll(t *testing.T) {
	api := &fakeGroupAPI{
		page: groupsPage(1, types.Group{ID: 1, Status: types.GroupEnabled}),
		all: []types.Group{
			{ID: 1, Name: "a", Status: types.GroupEnabled},
			{ID: 2, Name: "b", Status: types.GroupDisabled},
			{ID: 3, Name: "c", Status: types.GroupEnabled},
		},
	}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), func(p *types.GroupListParams) { p.Name = "a" }))

	require.NoError(t, s.LoadAll(context.Background()))
	assert.Equal(t, []int64{1, 2, 3}, ids(s.Items()))
	assert.Equal(t, 3, s.Total())
	assert.Equal(t, StateSuccess, s.State())
	assert.Equal(t, "a", s.Params().Name)
	assert.Equal(t, []types.GroupOption{{Label: "a", Value: 1}, {Label: "c", Value: 3}}, s.GroupOptions())
}

func TestGroupStore_UpdateGroupStatuses(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(2,
		types.Group{ID: 1, Status: types.GroupEnabled}, types.Group{ID: 2, Status: types.GroupEnabled})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	require.NoError(t, s.UpdateGroupStatuses(context.Background(), types.GroupDisabled, 1, 2))
	assert.Equal(t, []int64{1, 2}, api.statusIDs)
	assert.Empty(t, s.EnabledGroups())
}

func TestGroupStore_CreateDelete(t *testing.T) {
	api := &fakeGroupAPI{page: groupsPage(2, types.Group{ID: 1}, types.Group{ID: 2})}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	g, err := s.CreateGroup(context.Background(), types.CreateGroupRequest{Name: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, []int64{g.ID, 1, 2}, ids(s.Items()))
	assert.Equal(t, 3, s.Total())

	require.NoError(t, s.DeleteGroups(context.Background(), 1))
	require.NoError(t, s.DeleteGroups(context.Background(), 2, g.ID))
	assert.Equal(t, []int64{1, 2, g.ID}, api.deleted)
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Total())
}

func TestGroupStore_DeleteStopsAtFirstFailure(t *testing.T) {
	notFound := errors.New("group not found")
	api := &fakeGroupAPI{
		page:      groupsPage(3, types.Group{ID: 1}, types.Group{ID: 2}, types.Group{ID: 3}),
		deleteErr: map[int64]error{2: notFound},
	}
	s := NewGroupStore(api, nil, nil)
	require.NoError(t, s.FetchList(context.Background(), nil))

	err := s.DeleteGroups(context.Background(), 1, 2, 3)
	require.ErrorIs(t, err, notFound)
	assert.Contains(t, err.Error(), "group 2")
	assert.Equal(t, []int64{1}, api.deleted)
	assert.Equal(t, []int64{2, 3}, ids(s.Items()))
	assert.Equal(t, 2, s.Total())
}
