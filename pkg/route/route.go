// Package route resolves the backend menu tree into views.
//
// The backend describes navigation as a tree of menu items whose component
// field is a string identifier. A Registry maps those identifiers onto a
// closed set of views; anything it does not know resolves to the not-found
// view and is flagged rather than rejected.
package route

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/logging"
)

// NotFoundPath is the catch-all path prefixed to every resolved tree.
const NotFoundPath = "/:pathMatch(.*)*"

var (
	// ErrDuplicateView is returned when a view id is registered twice.
	ErrDuplicateView = errors.New("view already registered")
	// ErrUnknownView is returned when registering an id outside the declared set.
	ErrUnknownView = errors.New("unknown view id")
)

// Route is a resolved menu node.
type Route struct {
	Path      string
	Name      string
	Component string // as sent by the backend
	Redirect  string
	Meta      types.MenuMeta
	View      View
	// Unresolved marks a node whose component matched no registered view.
	Unresolved bool
	Children   []Route
}

// Registry maps view ids to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[ViewID]ViewFactory
	log       *slog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{factories: make(map[ViewID]ViewFactory), log: log}
}

// Default returns a registry holding every builtin view.
func Default(log *slog.Logger) *Registry {
	r := NewRegistry(log)
	for id, f := range Builtin() {
		r.MustRegister(id, f)
	}
	return r
}

// Register adds a factory for id.
func (r *Registry) Register(id ViewID, f ViewFactory) error {
	if !id.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownView, id)
	}
	if f == nil {
		return fmt.Errorf("nil factory for view %q", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateView, id)
	}
	r.factories[id] = f
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id ViewID, f ViewFactory) {
	if err := r.Register(id, f); err != nil {
		panic(err)
	}
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []ViewID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ViewID, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Lookup resolves a component identifier to a view.
func (r *Registry) Lookup(component string) (View, bool) {
	id := NormalizeComponent(component)
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return View{}, false
	}
	return f(), true
}

// NotFound returns the not-found view.
func (r *Registry) NotFound() View {
	if v, ok := r.Lookup(string(ViewNotFound)); ok {
		return v
	}
	return View{ID: ViewNotFound, Title: "Not Found"}
}

// Resolve turns a menu tree into routes. The catch-all not-found route comes
// first. Unknown components resolve to the not-found view with Unresolved set.
func (r *Registry) Resolve(items []types.MenuItem) []Route {
	routes := make([]Route, 0, len(items)+1)
	routes = append(routes, Route{
		Path: NotFoundPath,
		Name: "NotFound",
		View: r.NotFound(),
		Meta: types.MenuMeta{Title: "Not Found", Hidden: true},
	})
	return append(routes, r.resolve(items, "")...)
}

func (r *Registry) resolve(items []types.MenuItem, parent string) []Route {
	out := make([]Route, 0, len(items))
	for _, item := range items {
		rt := Route{
			Path:      item.Path,
			Name:      item.Name,
			Component: item.Component,
			Redirect:  item.Redirect,
			Meta:      item.Meta,
		}
		full := joinPath(parent, item.Path)

		switch {
		case item.Component == "" && item.Name != "":
			rt.View, _ = r.Lookup(string(ViewLayout))
			if rt.View.ID == "" {
				rt.View = View{ID: ViewLayout}
			}
		default:
			v, ok := r.Lookup(item.Component)
			if !ok {
				r.log.Warn("unresolved menu component",
					"component", item.Component, "path", full, "name", item.Name)
				v = r.NotFound()
				rt.Unresolved = true
			}
			rt.View = v
		}

		if len(item.Children) > 0 {
			rt.Children = r.resolve(item.Children, full)
		}
		out = append(out, rt)
	}
	return out
}

// NormalizeComponent maps a component identifier to a ViewID. Layout
// keywords match case-insensitively; page ids drop the leading slash and a
// .vue or .tsx suffix.
func NormalizeComponent(component string) ViewID {
	c := strings.TrimSpace(component)
	for _, layout := range []ViewID{ViewLayout, ViewBlank, ViewIFrame} {
		if strings.EqualFold(c, string(layout)) {
			return layout
		}
	}
	c = strings.TrimPrefix(c, "/")
	for _, ext := range []string{".vue", ".tsx"} {
		c = strings.TrimSuffix(c, ext)
	}
	return ViewID(c)
}

// Flatten indexes routes by full path. Child paths are joined to their
// parent's unless absolute.
func Flatten(routes []Route) map[string]Route {
	out := make(map[string]Route)
	flatten(routes, "", out)
	return out
}

func flatten(routes []Route, parent string, out map[string]Route) {
	for _, rt := range routes {
		full := joinPath(parent, rt.Path)
		out[full] = rt
		flatten(rt.Children, full, out)
	}
}

func joinPath(parent, p string) string {
	if strings.HasPrefix(p, "/") || parent == "" {
		if p == "" {
			return "/"
		}
		return p
	}
	return path.Join(parent, p)
}

// Match finds the route for p, falling back to the not-found route.
func Match(flat map[string]Route, p string) (Route, bool) {
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if rt, ok := flat[p]; ok {
		return rt, true
	}
	return flat[NotFoundPath], false
}
