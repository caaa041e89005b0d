package client

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

const (
	logsPath      = apiPrefix + "/logs"
	adminLogsPath = apiPrefix + "/admin/logs"
)

// ErrInvalidRetention is returned by CleanupLogs for a retention that is not
// a positive number of months.
var ErrInvalidRetention = errors.New("retention must be a positive number of months")

// MyLogs returns one page of the caller's usage logs.
func (c *Client) MyLogs(ctx context.Context, filter types.LogFilter) (*types.Page[types.Log], error) {
	filter.UserID = 0
	resp, err := c.get(ctx, "my_logs", logsPath+"/my", logFilterQuery(filter))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	return decodeList[types.Log](resp, "logs", "log list")
}

// MyLogStats summarizes the caller's usage logs matched by filter.
// Page and Limit are ignored.
func (c *Client) MyLogStats(ctx context.Context, filter types.LogFilter) (*types.LogStats, error) {
	filter.Page, filter.Limit, filter.UserID = 0, 0, 0
	resp, err := c.get(ctx, "my_log_stats", logsPath+"/stats/my", logFilterQuery(filter))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var stats types.LogStats
	if err := decode(resp, &stats, "log stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetLog returns a usage log by ID.
func (c *Client) GetLog(ctx context.Context, id string) (*types.Log, error) {
	resp, err := c.get(ctx, "get_log", logsPath+"/detail/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var log types.Log
	if err := decode(resp, &log, "log"); err != nil {
		return nil, err
	}
	return &log, nil
}

// SystemLogs returns one page of the backend's own request log. Admin only.
func (c *Client) SystemLogs(ctx context.Context, params types.PageParams) (*types.Page[types.SystemLog], error) {
	resp, err := c.get(ctx, "system_logs", apiPrefix+"/admin/logs", pageQuery(params.Page, params.Limit))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	return decodeList[types.SystemLog](resp, "logs", "system log list")
}

// AdminLogs returns one page of every user's usage logs. Admin only.
func (c *Client) AdminLogs(ctx context.Context, filter types.LogFilter) (*types.Page[types.Log], error) {
	resp, err := c.get(ctx, "admin_logs", adminLogsPath+"/list", logFilterQuery(filter))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	return decodeList[types.Log](resp, "logs", "log list")
}

// AdminLogStats summarizes the usage logs of one user, or of everyone when
// userID is zero. Admin only.
func (c *Client) AdminLogStats(ctx context.Context, userID int64) (*types.LogStats, error) {
	q := url.Values{}
	if userID > 0 {
		q.Set("user_id", itoa(userID))
	}
	resp, err := c.get(ctx, "admin_log_stats", adminLogsPath+"/stats", q)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var stats types.LogStats
	if err := decode(resp, &stats, "log stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminGetLog returns any user's usage log by ID. Admin only.
func (c *Client) AdminGetLog(ctx context.Context, id string) (*types.Log, error) {
	resp, err := c.get(ctx, "admin_get_log", adminLogsPath+"/detail/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var log types.Log
	if err := decode(resp, &log, "log"); err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteLog deletes a usage log. Admin only.
func (c *Client) DeleteLog(ctx context.Context, id string) error {
	resp, err := c.delete(ctx, "delete_log", adminLogsPath+"/delete/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "delete log")
}

// CleanupLogs deletes usage logs older than the given number of months and
// returns how many were removed. Admin only.
func (c *Client) CleanupLogs(ctx context.Context, months int) (int64, error) {
	if months <= 0 {
		return 0, ErrInvalidRetention
	}
	q := url.Values{"months": {strconv.Itoa(months)}}
	resp, err := c.delete(ctx, "cleanup_logs", adminLogsPath+"/cleanup?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}
	defer closeBody(resp)

	var res types.CleanupResult
	if err := decode(resp, &res, "cleanup result"); err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func logFilterQuery(f types.LogFilter) url.Values {
	q := pageQuery(f.Page, f.Limit)
	if f.UserID > 0 {
		q.Set("user_id", itoa(f.UserID))
	}
	if f.AccountID > 0 {
		q.Set("account_id", itoa(f.AccountID))
	}
	if f.APIKeyID > 0 {
		q.Set("api_key_id", itoa(f.APIKeyID))
	}
	if f.ModelName != "" {
		q.Set("model_name", f.ModelName)
	}
	if f.IsStream != nil {
		q.Set("is_stream", strconv.FormatBool(*f.IsStream))
	}
	if f.StartTime != "" {
		q.Set("start_time", f.StartTime)
	}
	if f.EndTime != "" {
		q.Set("end_time", f.EndTime)
	}
	if f.MinCost != nil {
		q.Set("min_cost", strconv.FormatFloat(*f.MinCost, 'f', -1, 64))
	}
	if f.MaxCost != nil {
		q.Set("max_cost", strconv.FormatFloat(*f.MaxCost, 'f', -1, 64))
	}
	return q
}
