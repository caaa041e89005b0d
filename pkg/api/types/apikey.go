package types

// APIKey is a relay key issued to a user.
type APIKey struct {
	ID                            int64        `json:"id"`
	Name                          string       `json:"name"`
	Key                           string       `json:"key"`
	ExpiresAt                     string       `json:"expires_at,omitempty"`
	Status                        APIKeyStatus `json:"status"`
	GroupID                       int64        `json:"group_id"`
	UserID                        int64        `json:"user_id"`
	TodayUsageCount               int64        `json:"today_usage_count"`
	TodayInputTokens              int64        `json:"today_input_tokens"`
	TodayOutputTokens             int64        `json:"today_output_tokens"`
	TodayCacheReadInputTokens     int64        `json:"today_cache_read_input_tokens"`
	TodayCacheCreationInputTokens int64        `json:"today_cache_creation_input_tokens"`
	TodayTotalCost                float64      `json:"today_total_cost"`
	ModelRestriction              string       `json:"model_restriction"`
	DailyLimit                    float64      `json:"daily_limit"`
	LastUsedTime                  string       `json:"last_used_time,omitempty"`
	CreatedAt                     string       `json:"created_at"`
	UpdatedAt                     string       `json:"updated_at"`
	Group                         *Ref         `json:"group,omitempty"`
}

// APIKeyListParams are the query parameters of the API key list.
type APIKeyListParams struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	GroupID int64 `json:"group_id,omitempty"`
}

// CreateAPIKeyRequest creates an API key. An empty Key lets the server generate one.
type CreateAPIKeyRequest struct {
	Name             string        `json:"name"`
	Key              string        `json:"key,omitempty"`
	ExpiresAt        string        `json:"expires_at,omitempty"`
	Status           *APIKeyStatus `json:"status,omitempty"`
	GroupID          int64         `json:"group_id,omitempty"`
	ModelRestriction string        `json:"model_restriction,omitempty"`
	DailyLimit       float64       `json:"daily_limit,omitempty"`
}

// UpdateAPIKeyRequest updates an API key. Nil fields are left unchanged.
type UpdateAPIKeyRequest struct {
	Name             *string       `json:"name,omitempty"`
	ExpiresAt        *string       `json:"expires_at,omitempty"`
	Status           *APIKeyStatus `json:"status,omitempty"`
	GroupID          *int64        `json:"group_id,omitempty"`
	ModelRestriction *string       `json:"model_restriction,omitempty"`
	DailyLimit       *float64      `json:"daily_limit,omitempty"`
}

// CreatedAPIKey is returned by key creation.
type CreatedAPIKey struct {
	Key string `json:"key"`
}

// APIKeyStatsParams looks up usage of a key by its secret value.
type APIKeyStatsParams struct {
	APIKey string `json:"api_key"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// UsageSummary aggregates usage over a period.
type UsageSummary struct {
	TotalRequests            int64   `json:"total_requests"`
	TotalInputTokens         int64   `json:"total_input_tokens"`
	TotalOutputTokens        int64   `json:"total_output_tokens"`
	TotalCacheReadTokens     int64   `json:"total_cache_read_tokens"`
	TotalCacheCreationTokens int64   `json:"total_cache_creation_tokens"`
	TotalTokens              int64   `json:"total_tokens"`
	TotalCost                float64 `json:"total_cost"`
	InputCost                float64 `json:"input_cost"`
	OutputCost               float64 `json:"output_cost"`
	CacheWriteCost           float64 `json:"cache_write_cost"`
	CacheReadCost            float64 `json:"cache_read_cost"`
	AvgDuration              float64 `json:"avg_duration"`
	StreamRequests           int64   `json:"stream_requests"`
	StreamPercent            float64 `json:"stream_percent"`
}

// APIKeyStats is the public usage report of a single key.
type APIKeyStats struct {
	APIKeyInfo struct {
		ID     int64        `json:"id"`
		Name   string       `json:"name"`
		Status APIKeyStatus `json:"status"`
	} `json:"api_key_info"`
	Stats struct {
		Summary   UsageSummary `json:"summary"`
		TrendData []TrendPoint `json:"trend_data"`
	} `json:"stats"`
	Logs struct {
		List  []Log `json:"list"`
		Total int   `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	} `json:"logs"`
}
