package types

// TrendPoint is one day of usage.
type TrendPoint struct {
	Date         string  `json:"date"`
	Requests     int64   `json:"requests"`
	Tokens       int64   `json:"tokens"`
	Cost         float64 `json:"cost"`
	AvgDuration  float64 `json:"avg_duration"`
	CacheTokens  int64   `json:"cache_tokens"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
}

// ModelUsage is usage attributed to one model.
type ModelUsage struct {
	ModelName string  `json:"model_name"`
	Requests  int64   `json:"requests"`
	Tokens    int64   `json:"tokens"`
	Cost      float64 `json:"cost"`
}

// AccountRank is an entry of the account leaderboard.
type AccountRank struct {
	AccountID    int64   `json:"account_id"`
	AccountName  string  `json:"account_name"`
	PlatformType string  `json:"platform_type"`
	Requests     int64   `json:"requests"`
	Tokens       int64   `json:"tokens"`
	Cost         float64 `json:"cost"`
	GrowthRate   float64 `json:"growth_rate"` // percent
}

// APIKeyRank is an entry of the API key leaderboard.
type APIKeyRank struct {
	APIKeyID   int64   `json:"api_key_id"`
	APIKeyName string  `json:"api_key_name"`
	Requests   int64   `json:"requests"`
	Tokens     int64   `json:"tokens"`
	Cost       float64 `json:"cost"`
	GrowthRate float64 `json:"growth_rate"` // percent
}

// DayStats is usage for a single day.
type DayStats struct {
	Date     string  `json:"date"`
	Requests int64   `json:"requests"`
	Tokens   int64   `json:"tokens"`
	Cost     float64 `json:"cost"`
}

// DashboardStats backs the home dashboard.
type DashboardStats struct {
	TotalCost      float64       `json:"total_cost"`
	TotalTokens    int64         `json:"total_tokens"`
	UserCount      int64         `json:"user_count"`
	APIKeyCount    int64         `json:"api_key_count"`
	TrendData      []TrendPoint  `json:"trend_data"`
	ModelStats     []ModelUsage  `json:"model_stats"`
	AccountRanking []AccountRank `json:"account_ranking"`
	APIKeyRanking  []APIKeyRank  `json:"api_key_ranking"`
	TodayStats     DayStats      `json:"today_stats"`
	YesterdayStats DayStats      `json:"yesterday_stats"`
}

// AdminDashboard is the system-wide overview shown to administrators.
type AdminDashboard struct {
	UserCount          int64 `json:"user_count"`
	TaskCount          int64 `json:"task_count"`
	CompletedTaskCount int64 `json:"completed_task_count"`
	PendingTaskCount   int64 `json:"pending_task_count"`
}
