package store

import (
	"context"
	"log/slog"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/store/persist"
)

// LogAPI is the part of the API client the log store uses.
type LogAPI interface {
	MyLogs(ctx context.Context, filter types.LogFilter) (*types.Page[types.Log], error)
}

// DefaultLogFilter is the first page of 20 logs, unfiltered.
var DefaultLogFilter = types.LogFilter{Page: 1, Limit: 20}

// LogStore holds the current page of the caller's usage logs. Logs are
// read-only; the store only lists.
type LogStore struct {
	*ListStore[string, types.Log, types.LogFilter]
}

// NewLogStore creates a log store backed by api.
func NewLogStore(api LogAPI, persister persist.Persister, log *slog.Logger) *LogStore {
	return &LogStore{
		ListStore: NewListStore("logs", types.Log.EntityKey, api.MyLogs,
			DefaultLogFilter, persister, log),
	}
}
