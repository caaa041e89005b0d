package types

// MenuItem is one node of the role-specific navigation tree served by the
// backend. Component is a view identifier such as "LAYOUT" or
// "/groups/list/index".
type MenuItem struct {
	Path      string     `json:"path"`
	Name      string     `json:"name"`
	Component string     `json:"component,omitempty"`
	Redirect  string     `json:"redirect,omitempty"`
	Meta      MenuMeta   `json:"meta"`
	Children  []MenuItem `json:"children,omitempty"`
}

// MenuMeta holds display metadata of a menu node.
type MenuMeta struct {
	Title  string `json:"title"`
	Icon   string `json:"icon,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}
