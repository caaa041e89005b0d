package route

// ViewID identifies a view the console can render.
type ViewID string

// Layout identifiers. They match menu components case-insensitively.
const (
	ViewLayout ViewID = "LAYOUT"
	ViewBlank  ViewID = "BLANK"
	ViewIFrame ViewID = "IFRAME"
)

// Page views, named by their normalized component path.
const (
	ViewNotFound       ViewID = "exception/404"
	ViewDashboard      ViewID = "dashboard/index"
	ViewGroups         ViewID = "groups/list/index"
	ViewAccounts       ViewID = "accounts/list/index"
	ViewKeys           ViewID = "keys/list/index"
	ViewMyLogs         ViewID = "logs/my/index"
	ViewLogStats       ViewID = "logs/stats/index"
	ViewAdminUsers     ViewID = "admin/users/index"
	ViewAdminDashboard ViewID = "admin/dashboard/index"
	ViewAdminLogs      ViewID = "admin/logs/index"
)

var knownViews = map[ViewID]struct{}{
	ViewLayout:         {},
	ViewBlank:          {},
	ViewIFrame:         {},
	ViewNotFound:       {},
	ViewDashboard:      {},
	ViewGroups:         {},
	ViewAccounts:       {},
	ViewKeys:           {},
	ViewMyLogs:         {},
	ViewLogStats:       {},
	ViewAdminUsers:     {},
	ViewAdminDashboard: {},
	ViewAdminLogs:      {},
}

// Known reports whether id is one of the declared view identifiers.
func (id ViewID) Known() bool {
	_, ok := knownViews[id]
	return ok
}

// IsLayout reports whether id is a layout rather than a page.
func (id ViewID) IsLayout() bool {
	return id == ViewLayout || id == ViewBlank || id == ViewIFrame
}

// View is a resolved, renderable view. Command is the relayctl command line
// that renders the page; layouts have none.
type View struct {
	ID      ViewID
	Title   string
	Command []string
}

// ViewFactory constructs a View.
type ViewFactory func() View

// Builtin returns the factories for every declared view.
func Builtin() map[ViewID]ViewFactory {
	page := func(id ViewID, title string, command ...string) ViewFactory {
		return func() View { return View{ID: id, Title: title, Command: command} }
	}
	return map[ViewID]ViewFactory{
		ViewLayout:         page(ViewLayout, "Layout"),
		ViewBlank:          page(ViewBlank, "Blank"),
		ViewIFrame:         page(ViewIFrame, "IFrame"),
		ViewNotFound:       page(ViewNotFound, "Not Found"),
		ViewDashboard:      page(ViewDashboard, "Dashboard", "dashboard"),
		ViewGroups:         page(ViewGroups, "Groups", "groups", "list"),
		ViewAccounts:       page(ViewAccounts, "Accounts", "accounts", "list"),
		ViewKeys:           page(ViewKeys, "API Keys", "keys", "list"),
		ViewMyLogs:         page(ViewMyLogs, "My Logs", "logs", "my"),
		ViewLogStats:       page(ViewLogStats, "Usage Stats", "logs", "stats"),
		ViewAdminUsers:     page(ViewAdminUsers, "Users", "admin", "users", "list"),
		ViewAdminDashboard: page(ViewAdminDashboard, "System Overview", "admin", "dashboard"),
		ViewAdminLogs:      page(ViewAdminLogs, "System Logs", "admin", "logs"),
	}
}
