package route

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

func menu() []types.MenuItem {
	return []types.MenuItem{
		{
			Path:      "/group",
			Name:      "groups",
			Component: "LAYOUT",
			Redirect:  "/group/list",
			Meta:      types.MenuMeta{Title: "Groups"},
			Children: []types.MenuItem{
				{Path: "list", Name: "GroupsList", Component: "/groups/list/index"},
			},
		},
		{
			Path:      "/logs",
			Name:      "logs",
			Component: "layout",
			Children: []types.MenuItem{
				{Path: "my", Name: "MyLogs", Component: "logs/my/index.vue"},
				{Path: "stats", Name: "LogStats", Component: "/logs/stats/index.tsx"},
				{Path: "beta", Name: "Beta", Component: "/logs/beta/index"},
			},
		},
	}
}

func TestNormalizeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want ViewID
	}{
		{"/groups/list/index", ViewGroups},
		{"groups/list/index", ViewGroups},
		{"groups/list/index.vue", ViewGroups},
		{"/groups/list/index.tsx", ViewGroups},
		{"LAYOUT", ViewLayout},
		{"Layout", ViewLayout},
		{"blank", ViewBlank},
		{"iframe", ViewIFrame},
		{"  /keys/list/index ", ViewKeys},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeComponent(tt.in); got != tt.want {
				t.Errorf("NormalizeComponent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(nil)
	f := func() View { return View{ID: ViewGroups} }

	require.NoError(t, r.Register(ViewGroups, f))
	err := r.Register(ViewGroups, f)
	assert.True(t, errors.Is(err, ErrDuplicateView))

	err = r.Register(ViewID("custom/page"), f)
	assert.True(t, errors.Is(err, ErrUnknownView))

	assert.Error(t, r.Register(ViewKeys, nil))
	assert.Equal(t, []ViewID{ViewGroups}, r.IDs())
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	r := Default(nil)
	assert.Panics(t, func() {
		r.MustRegister(ViewDashboard, func() View { return View{} })
	})
}

func TestDefault_RegistersEveryKnownView(t *testing.T) {
	r := Default(nil)
	assert.Len(t, r.IDs(), len(knownViews))
	for id := range knownViews {
		v, ok := r.Lookup(string(id))
		assert.True(t, ok, "%s", id)
		assert.Equal(t, id, v.ID)
	}
}

func TestResolve(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	routes := Default(log).Resolve(menu())

	require.Len(t, routes, 3)
	assert.Equal(t, NotFoundPath, routes[0].Path)
	assert.Equal(t, ViewNotFound, routes[0].View.ID)

	groups := routes[1]
	assert.Equal(t, ViewLayout, groups.View.ID)
	assert.False(t, groups.Unresolved)
	require.Len(t, groups.Children, 1)
	assert.Equal(t, ViewGroups, groups.Children[0].View.ID)
	assert.Equal(t, []string{"groups", "list"}, groups.Children[0].View.Command)

	logs := routes[2]
	assert.Equal(t, ViewLayout, logs.View.ID)
	require.Len(t, logs.Children, 3)
	assert.Equal(t, ViewMyLogs, logs.Children[0].View.ID)
	assert.Equal(t, ViewLogStats, logs.Children[1].View.ID)

	beta := logs.Children[2]
	assert.True(t, beta.Unresolved)
	assert.Equal(t, ViewNotFound, beta.View.ID)
	assert.Equal(t, "/logs/beta/index", beta.Component)

	out := buf.String()
	assert.Contains(t, out, "unresolved menu component")
	assert.Contains(t, out, "path=/logs/beta")
	assert.Equal(t, 1, strings.Count(out, "unresolved"))
}

func TestResolve_NamedNodeWithoutComponentIsLayout(t *testing.T) {
	routes := Default(nil).Resolve([]types.MenuItem{
		{Path: "/admin", Name: "admin", Children: []types.MenuItem{
			{Path: "users", Name: "AdminUsers", Component: "/admin/users/index"},
		}},
		{Path: "/orphan"},
	})
	require.Len(t, routes, 3)
	assert.Equal(t, ViewLayout, routes[1].View.ID)
	assert.False(t, routes[1].Unresolved)
	assert.True(t, routes[2].Unresolved)
}

func TestResolve_EmptyMenu(t *testing.T) {
	routes := Default(nil).Resolve(nil)
	require.Len(t, routes, 1)
	assert.Equal(t, NotFoundPath, routes[0].Path)
}

func TestResolve_WithoutNotFoundRegistered(t *testing.T) {
	r := NewRegistry(nil)
	routes := r.Resolve([]types.MenuItem{{Path: "/x", Component: "/x/index"}})
	assert.Equal(t, ViewNotFound, routes[0].View.ID)
	assert.Equal(t, ViewNotFound, routes[1].View.ID)
	assert.True(t, routes[1].Unresolved)
}

func TestFlattenAndMatch(t *testing.T) {
	flat := Flatten(Default(nil).Resolve(menu()))

	for _, p := range []string{NotFoundPath, "/group", "/group/list", "/logs", "/logs/my", "/logs/stats", "/logs/beta"} {
		_, ok := flat[p]
		assert.True(t, ok, "missing %s", p)
	}
	assert.Len(t, flat, 7)

	rt, ok := Match(flat, "group/list/")
	assert.True(t, ok)
	assert.Equal(t, ViewGroups, rt.View.ID)

	rt, ok = Match(flat, "/nope")
	assert.False(t, ok)
	assert.Equal(t, ViewNotFound, rt.View.ID)
}
