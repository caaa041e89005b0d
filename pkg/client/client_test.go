package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

// --- Helpers ---

// mockServer creates a test server and a client pointed at it.
func mockServer(t *testing.T, handler http.HandlerFunc, opts ...Option) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	c := New(ts.URL, opts...)
	return ts, c
}

// envelopeHandler answers with a success envelope wrapping data.
func envelopeHandler(t *testing.T, data interface{}) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := map[string]interface{}{"code": types.CodeSuccess, "message": "ok"}
		if data != nil {
			body["data"] = data
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}
}

func errorHandler(t *testing.T, status, code int, msg string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(map[string]interface{}{"error": msg, "code": code}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}
}

// --- New / Options Tests ---

func TestNew(t *testing.T) {
	c := New("http://localhost:8080/")
	if c.baseURL != "http://localhost:8080" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("default timeout = %v, want %v", c.httpClient.Timeout, DefaultTimeout)
	}
}

func TestNew_WithTimeout(t *testing.T) {
	c := New("http://localhost:8080", WithTimeout(5*time.Second))
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", c.httpClient.Timeout)
	}
}

func TestSetToken(t *testing.T) {
	var got atomic.Value
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		envelopeHandler(t, nil)(w, r)
	}, WithToken("first"))

	if err := c.DeleteGroup(context.Background(), 1); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if got.Load() != "Bearer first" {
		t.Errorf("Authorization = %q, want Bearer first", got.Load())
	}

	c.SetToken("")
	if err := c.DeleteGroup(context.Background(), 1); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if got.Load() != "" {
		t.Errorf("Authorization = %q, want none after SetToken(\"\")", got.Load())
	}
}

func TestRequestID(t *testing.T) {
	var got atomic.Value
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get(requestIDHeader))
		envelopeHandler(t, nil)(w, r)
	})

	ctx := WithRequestID(context.Background(), "req-123")
	if err := c.DeleteGroup(ctx, 1); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if got.Load() != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got.Load())
	}

	if err := c.DeleteGroup(context.Background(), 1); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if id, _ := got.Load().(string); len(id) != 36 {
		t.Errorf("generated X-Request-ID = %q, want a uuid", id)
	}
}

// --- Error Tests ---

func TestAPIError_ServerMessageVerbatim(t *testing.T) {
	_, c := mockServer(t, errorHandler(t, http.StatusBadRequest, types.CodeInvalidParams, "分组名称已存在"))

	_, err := c.CreateGroup(context.Background(), types.CreateGroupRequest{Name: "dup"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "分组名称已存在" {
		t.Errorf("Message = %q, want server text", apiErr.Message)
	}
	if apiErr.Code != types.CodeInvalidParams {
		t.Errorf("Code = %d, want %d", apiErr.Code, types.CodeInvalidParams)
	}
	if err.Error() != "分组名称已存在" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestAPIError_Sentinels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   int
		target error
	}{
		{"not found", http.StatusNotFound, types.CodeNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, types.CodeUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, types.CodeInsufficientPrivileges, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := mockServer(t, errorHandler(t, tt.status, tt.code, tt.name))
			_, err := c.GetGroup(context.Background(), 7)
			if !errors.Is(err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.target)
			}
		})
	}
}

func TestAPIError_NonJSONBody(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := c.GetGroup(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "request failed: status 502" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if !apiErr.Temporary() {
		t.Error("Temporary() = false for 502")
	}
}

func TestUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", WithTimeout(time.Second))
	_, err := c.ListGroups(context.Background(), types.GroupListParams{Page: 1, Size: 20})
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("error = %v, want ErrUnreachable", err)
	}
}

func TestDecodeFailure(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":20000,"data":{"id":"not-a-number"}}`)
	})
	_, err := c.GetGroup(context.Background(), 1)
	if err == nil || !strings.HasPrefix(err.Error(), "failed to decode group") {
		t.Errorf("error = %v, want decode failure", err)
	}
}

// --- Group Tests ---

func TestListGroups(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/groups/list" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "1" || q.Get("limit") != "20" {
			t.Errorf("query = %s, want page=1 limit=20", r.URL.RawQuery)
		}
		if q.Has("name") || q.Has("status") {
			t.Errorf("query = %s, want empty filters omitted", r.URL.RawQuery)
		}
		envelopeHandler(t, map[string]interface{}{
			"groups": []types.Group{{ID: 1, Name: "default", Status: types.GroupEnabled}},
			"total":  1,
			"page":   1,
			"limit":  20,
		})(w, r)
	})

	page, err := c.ListGroups(context.Background(), types.GroupListParams{Page: 1, Size: 20})
	if err != nil {
		t.Fatalf("ListGroups() error = %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("page = %+v, want one group", page)
	}
	if page.Items[0].Status != types.GroupEnabled {
		t.Errorf("status = %v, want enabled", page.Items[0].Status)
	}
}

func TestListGroups_Filters(t *testing.T) {
	status := types.GroupDisabled
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("name") != "ops" || q.Get("status") != "0" {
			t.Errorf("query = %s, want name=ops status=0", r.URL.RawQuery)
		}
		envelopeHandler(t, map[string]interface{}{"groups": nil, "total": 0})(w, r)
	})

	page, err := c.ListGroups(context.Background(), types.GroupListParams{Name: "ops", Status: &status})
	if err != nil {
		t.Fatalf("ListGroups() error = %v", err)
	}
	if page.Items == nil {
		t.Error("Items = nil, want empty slice")
	}
}

func TestUpdateGroupStatus(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/groups/update/1" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var body map[string]int
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["status"] != 0 {
			t.Errorf("status = %d, want 0", body["status"])
		}
		envelopeHandler(t, nil)(w, r)
	})

	if err := c.UpdateGroupStatus(context.Background(), 1, types.GroupDisabled); err != nil {
		t.Errorf("UpdateGroupStatus() error = %v", err)
	}
}

func TestInvalidStatusNotSent(t *testing.T) {
	var hits atomic.Int32
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	ctx := context.Background()
	errs := []error{
		c.UpdateGroupStatus(ctx, 1, types.GroupStatus(5)),
		c.UpdateAPIKeyStatus(ctx, 1, types.APIKeyStatus(-1)),
		c.UpdateUserStatus(ctx, 1, types.UserStatus(2)),
		c.UpdateAccountActiveStatus(ctx, 1, types.AccountActiveStatus(0)),
		c.UpdateAccountCurrentStatus(ctx, 1, types.AccountCurrentStatus(4)),
	}
	for i, err := range errs {
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("case %d: error = %v, want ErrInvalidStatus", i, err)
		}
	}
	if hits.Load() != 0 {
		t.Errorf("server hit %d times, want 0", hits.Load())
	}
}

func TestBatchDeleteGroups(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/groups/delete" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var body types.IDs
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.IDs) != 2 || body.IDs[0] != 3 || body.IDs[1] != 4 {
			t.Errorf("ids = %v, want [3 4]", body.IDs)
		}
		envelopeHandler(t, nil)(w, r)
	})

	if err := c.BatchDeleteGroups(context.Background(), []int64{3, 4}); err != nil {
		t.Errorf("BatchDeleteGroups() error = %v", err)
	}
}

// --- Other Family Tests ---

func TestListAccounts(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts/list" || r.URL.Query().Get("user_id") != "9" {
			t.Errorf("request = %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		envelopeHandler(t, map[string]interface{}{
			"accounts": []types.Account{{ID: 2, Name: "acc", ActiveStatus: types.AccountActive}},
			"total":    1,
		})(w, r)
	})

	page, err := c.ListAccounts(context.Background(), types.AccountListParams{Page: 1, Limit: 10, UserID: 9})
	if err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ActiveStatus != types.AccountActive {
		t.Errorf("items = %+v", page.Items)
	}
}

func TestTestAccount(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/accounts/test/5" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		envelopeHandler(t, types.AccountTestResult{Success: false, Message: "upstream 401", StatusCode: 401})(w, r)
	})

	res, err := c.TestAccount(context.Background(), 5)
	if err != nil {
		t.Fatalf("TestAccount() error = %v", err)
	}
	if res.Success || res.StatusCode != 401 {
		t.Errorf("result = %+v", res)
	}
}

func TestAPIKeyStats(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/api-key" || r.URL.Query().Get("api_key") != "sk-abc" {
			t.Errorf("request = %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		envelopeHandler(t, map[string]interface{}{
			"api_key_info": map[string]interface{}{"id": 3, "name": "ci", "status": 1},
		})(w, r)
	})

	stats, err := c.APIKeyStats(context.Background(), types.APIKeyStatsParams{APIKey: "sk-abc"})
	if err != nil {
		t.Fatalf("APIKeyStats() error = %v", err)
	}
	if stats.APIKeyInfo.Name != "ci" || stats.Logs.List == nil {
		t.Errorf("stats = %+v", stats)
	}

	if _, err := c.APIKeyStats(context.Background(), types.APIKeyStatsParams{}); err == nil {
		t.Error("APIKeyStats() without key: want error")
	}
}

func TestMyLogs_Filter(t *testing.T) {
	stream := true
	minCost := 0.5
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("is_stream") != "true" || q.Get("min_cost") != "0.5" || q.Get("model_name") != "claude-3" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if q.Has("max_cost") || q.Has("account_id") {
			t.Errorf("query = %s, want unset filters omitted", r.URL.RawQuery)
		}
		envelopeHandler(t, map[string]interface{}{
			"logs":  []types.Log{{ID: "a1", ModelName: "claude-3"}},
			"total": 1,
		})(w, r)
	})

	page, err := c.MyLogs(context.Background(), types.LogFilter{ModelName: "claude-3", IsStream: &stream, MinCost: &minCost})
	if err != nil {
		t.Fatalf("MyLogs() error = %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "a1" {
		t.Errorf("items = %+v", page.Items)
	}
}

func TestMyLogs_IgnoresUserID(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("user_id") {
			t.Errorf("query = %s, want no user_id", r.URL.RawQuery)
		}
		envelopeHandler(t, map[string]interface{}{"logs": []types.Log{}, "total": 0})(w, r)
	})
	if _, err := c.MyLogs(context.Background(), types.LogFilter{UserID: 9}); err != nil {
		t.Fatalf("MyLogs() error = %v", err)
	}
}

func TestAdminLogs(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/logs/list" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q := r.URL.Query(); q.Get("user_id") != "9" || q.Get("page") != "2" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		envelopeHandler(t, map[string]interface{}{
			"logs":  []types.Log{{ID: "x", UserID: 9}},
			"total": 11,
			"page":  2,
			"limit": 10,
		})(w, r)
	})

	page, err := c.AdminLogs(context.Background(), types.LogFilter{Page: 2, UserID: 9})
	if err != nil {
		t.Fatalf("AdminLogs() error = %v", err)
	}
	if page.Total != 11 || len(page.Items) != 1 || page.Items[0].UserID != 9 {
		t.Errorf("page = %+v", page)
	}
}

func TestAdminLogStats(t *testing.T) {
	var gotQuery []string
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/logs/stats" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotQuery = append(gotQuery, r.URL.RawQuery)
		envelopeHandler(t, types.LogStats{TotalRequests: 42})(w, r)
	})

	stats, err := c.AdminLogStats(context.Background(), 0)
	if err != nil {
		t.Fatalf("AdminLogStats() error = %v", err)
	}
	if stats.TotalRequests != 42 {
		t.Errorf("TotalRequests = %d", stats.TotalRequests)
	}
	if _, err := c.AdminLogStats(context.Background(), 3); err != nil {
		t.Fatalf("AdminLogStats(3) error = %v", err)
	}
	if len(gotQuery) != 2 || gotQuery[0] != "" || gotQuery[1] != "user_id=3" {
		t.Errorf("queries = %q", gotQuery)
	}
}

func TestDeleteLog(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/admin/logs/delete/ab12" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		envelopeHandler(t, nil)(w, r)
	})
	if err := c.DeleteLog(context.Background(), "ab12"); err != nil {
		t.Errorf("DeleteLog() error = %v", err)
	}
}

func TestCleanupLogs(t *testing.T) {
	var calls int32
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/admin/logs/cleanup" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("months") != "3" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		envelopeHandler(t, map[string]interface{}{"deleted_count": 128})(w, r)
	})

	n, err := c.CleanupLogs(context.Background(), 3)
	if err != nil {
		t.Fatalf("CleanupLogs() error = %v", err)
	}
	if n != 128 {
		t.Errorf("deleted = %d, want 128", n)
	}

	if _, err := c.CleanupLogs(context.Background(), 0); !errors.Is(err, ErrInvalidRetention) {
		t.Errorf("CleanupLogs(0) error = %v, want ErrInvalidRetention", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}
}

func TestAdminDashboard(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/dashboard" {
			t.Errorf("path = %s", r.URL.Path)
		}
		envelopeHandler(t, map[string]interface{}{
			"user_count": 5, "task_count": 10, "completed_task_count": 7, "pending_task_count": 3,
		})(w, r)
	})

	got, err := c.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("AdminDashboard() error = %v", err)
	}
	want := types.AdminDashboard{UserCount: 5, TaskCount: 10, CompletedTaskCount: 7, PendingTaskCount: 3}
	if *got != want {
		t.Errorf("AdminDashboard() = %+v, want %+v", *got, want)
	}
}

func TestLogin(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.LoginType != types.LoginPassword {
			t.Errorf("login_type = %q, want default password", req.LoginType)
		}
		envelopeHandler(t, types.LoginResult{Token: "tok", User: types.UserProfile{Username: "root", Role: types.RoleAdmin}})(w, r)
	})

	res, err := c.Login(context.Background(), types.LoginRequest{Username: "root", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token != "tok" {
		t.Errorf("token = %q", res.Token)
	}
	if c.Token() != "" {
		t.Error("Login() installed the token on the client")
	}

	if _, err := c.Login(context.Background(), types.LoginRequest{Username: "root"}); err == nil {
		t.Error("Login() without password: want error")
	}
}

func TestUpdateUserStatus(t *testing.T) {
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/admin/users/4/status" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		envelopeHandler(t, nil)(w, r)
	})
	if err := c.UpdateUserStatus(context.Background(), 4, types.UserEnabled); err != nil {
		t.Errorf("UpdateUserStatus() error = %v", err)
	}
}

func TestDashboardStats_EmptyArrays(t *testing.T) {
	_, c := mockServer(t, envelopeHandler(t, map[string]interface{}{"total_cost": 1.25}))

	stats, err := c.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats() error = %v", err)
	}
	if stats.TotalCost != 1.25 {
		t.Errorf("TotalCost = %v", stats.TotalCost)
	}
	if stats.TrendData == nil || stats.ModelStats == nil {
		t.Error("missing arrays decoded as nil, want empty")
	}
}

func TestMenuList(t *testing.T) {
	_, c := mockServer(t, envelopeHandler(t, map[string]interface{}{
		"list": []types.MenuItem{{Path: "/groups", Name: "Groups", Component: "LAYOUT"}},
	}))

	items, err := c.MenuList(context.Background())
	if err != nil {
		t.Fatalf("MenuList() error = %v", err)
	}
	if len(items) != 1 || items[0].Component != "LAYOUT" {
		t.Errorf("items = %+v", items)
	}
}

// --- Infrastructure Tests ---

func TestCircuitBreaker(t *testing.T) {
	var hits atomic.Int32
	_, c := mockServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, WithCircuitBreaker(BreakerSettings{ConsecutiveFailures: 2, OpenTimeout: time.Minute}))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := c.GetGroup(ctx, 1); errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("request %d rejected early", i)
		}
	}
	_, err := c.GetGroup(ctx, 1)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("error = %v, want ErrCircuitOpen", err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times, want 2", hits.Load())
	}
}

func TestCircuitBreaker_IgnoresClientErrors(t *testing.T) {
	_, c := mockServer(t, errorHandler(t, http.StatusNotFound, types.CodeNotFound, "missing"),
		WithCircuitBreaker(BreakerSettings{ConsecutiveFailures: 1}))

	for i := 0; i < 3; i++ {
		if _, err := c.GetGroup(context.Background(), 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("request %d: error = %v, want ErrNotFound", i, err)
		}
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, c := mockServer(t, envelopeHandler(t, nil), WithMetrics(reg))

	if err := c.DeleteGroup(context.Background(), 1); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if got := testutil.ToFloat64(c.metrics.requests.WithLabelValues("delete_group", "2xx")); got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}

	// A second client on the same registry reuses the collectors.
	c2 := New(c.BaseURL(), WithMetrics(reg))
	if c2.metrics.requests != c.metrics.requests {
		t.Error("second client registered new collectors")
	}
}

func TestRateLimit_ContextCancel(t *testing.T) {
	_, c := mockServer(t, envelopeHandler(t, nil), WithRateLimit(0.001, 1))

	if err := c.DeleteGroup(context.Background(), 1); err != nil {
		t.Fatalf("first request: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := c.DeleteGroup(ctx, 1); err == nil {
		t.Error("second request: want limiter error")
	}
}
