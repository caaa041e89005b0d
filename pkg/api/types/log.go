package types

// Log is one relayed model request with its token usage and cost.
type Log struct {
	ID                       string   `json:"id"`
	ModelName                string   `json:"model_name"`
	AccountID                int64    `json:"account_id"`
	UserID                   int64    `json:"user_id"`
	APIKeyID                 int64    `json:"api_key_id"`
	InputTokens              int64    `json:"input_tokens"`
	OutputTokens             int64    `json:"output_tokens"`
	CacheReadInputTokens     int64    `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64    `json:"cache_creation_input_tokens"`
	InputCost                float64  `json:"input_cost"`
	OutputCost               float64  `json:"output_cost"`
	CacheWriteCost           float64  `json:"cache_write_cost"`
	CacheReadCost            float64  `json:"cache_read_cost"`
	TotalCost                float64  `json:"total_cost"`
	IsStream                 bool     `json:"is_stream"`
	Duration                 int64    `json:"duration"`
	CreatedAt                string   `json:"created_at"`
	User                     *UserRef `json:"user,omitempty"`
	APIKey                   *Ref     `json:"api_key,omitempty"`
}

// LogFilter narrows usage log queries. Times use the backend layout
// "2006-01-02 15:04:05".
type LogFilter struct {
	Page      int      `json:"page,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	UserID    int64    `json:"user_id,omitempty"` // admin listing only
	AccountID int64    `json:"account_id,omitempty"`
	APIKeyID  int64    `json:"api_key_id,omitempty"`
	ModelName string   `json:"model_name,omitempty"`
	IsStream  *bool    `json:"is_stream,omitempty"`
	StartTime string   `json:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty"`
	MinCost   *float64 `json:"min_cost,omitempty"`
	MaxCost   *float64 `json:"max_cost,omitempty"`
}

// LogStats summarizes the logs matched by a filter.
type LogStats struct {
	TotalRequests  int64   `json:"total_requests"`
	TotalTokens    int64   `json:"total_tokens"`
	TotalCost      float64 `json:"total_cost"`
	AvgDuration    float64 `json:"avg_duration"`
	StreamRequests int64   `json:"stream_requests"`
	StreamPercent  float64 `json:"stream_percent"`
}

// SystemLog is one request handled by the backend's own API.
type SystemLog struct {
	ID         int64    `json:"id"`
	Method     string   `json:"method"`
	Path       string   `json:"path"`
	StatusCode int      `json:"status_code"`
	UserID     int64    `json:"user_id"`
	IP         string   `json:"ip"`
	UserAgent  string   `json:"user_agent"`
	RequestID  string   `json:"request_id"`
	Duration   int64    `json:"duration"` // milliseconds
	CreatedAt  string   `json:"created_at"`
	User       *UserRef `json:"user,omitempty"`
}

// PageParams is plain page/limit pagination.
type PageParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// CleanupResult reports how many expired usage logs were removed.
type CleanupResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
