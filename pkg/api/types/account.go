package types

// Account is an upstream provider account the relay forwards traffic to.
type Account struct {
	ID                            int64                `json:"id"`
	Name                          string               `json:"name"`
	PlatformType                  string               `json:"platform_type"`
	RequestURL                    string               `json:"request_url"`
	SecretKey                     string               `json:"secret_key"`
	AccessToken                   string               `json:"access_token"`
	RefreshToken                  string               `json:"refresh_token"`
	ExpiresAt                     int64                `json:"expires_at"`
	IsMax                         bool                 `json:"is_max"`
	GroupID                       int64                `json:"group_id"`
	Priority                      int                  `json:"priority"`
	Weight                        int                  `json:"weight"`
	TodayUsageCount               int64                `json:"today_usage_count"`
	TodayInputTokens              int64                `json:"today_input_tokens"`
	TodayOutputTokens             int64                `json:"today_output_tokens"`
	TodayCacheReadInputTokens     int64                `json:"today_cache_read_input_tokens"`
	TodayCacheCreationInputTokens int64                `json:"today_cache_creation_input_tokens"`
	TodayTotalCost                float64              `json:"today_total_cost"`
	EnableProxy                   bool                 `json:"enable_proxy"`
	ProxyURI                      string               `json:"proxy_uri"`
	ModelMapping                  string               `json:"model_mapping"`
	LastUsedTime                  string               `json:"last_used_time"`
	RateLimitEndTime              string               `json:"rate_limit_end_time"`
	CurrentStatus                 AccountCurrentStatus `json:"current_status"`
	ActiveStatus                  AccountActiveStatus  `json:"active_status"`
	UserID                        int64                `json:"user_id"`
	CreatedAt                     string               `json:"created_at"`
	UpdatedAt                     string               `json:"updated_at"`
	User                          *UserRef             `json:"user,omitempty"`
	Group                         *Ref                 `json:"group,omitempty"`
	WeeklyCost                    float64              `json:"weekly_cost"`
	WeeklyCount                   int64                `json:"weekly_count"`
}

// AccountListParams are the query parameters of the account list.
type AccountListParams struct {
	Page   int   `json:"page"`
	Limit  int   `json:"limit"`
	UserID int64 `json:"user_id,omitempty"`
}

// AccountRequest creates or updates an account.
type AccountRequest struct {
	Name            string               `json:"name"`
	PlatformType    string               `json:"platform_type"`
	RequestURL      string               `json:"request_url,omitempty"`
	SecretKey       string               `json:"secret_key,omitempty"`
	GroupID         int64                `json:"group_id,omitempty"`
	Priority        int                  `json:"priority,omitempty"`
	Weight          int                  `json:"weight,omitempty"`
	EnableProxy     bool                 `json:"enable_proxy,omitempty"`
	ProxyURI        string               `json:"proxy_uri,omitempty"`
	ModelMapping    string               `json:"model_mapping,omitempty"`
	ActiveStatus    *AccountActiveStatus `json:"active_status,omitempty"`
	IsMax           bool                 `json:"is_max,omitempty"`
	AccessToken     string               `json:"access_token,omitempty"`
	RefreshToken    string               `json:"refresh_token,omitempty"`
	ExpiresAt       int64                `json:"expires_at,omitempty"`
	TodayUsageCount *int64               `json:"today_usage_count,omitempty"`
}

// AccountTestResult is the outcome of a connectivity probe.
type AccountTestResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	StatusCode   int    `json:"status_code"`
	PlatformType string `json:"platform_type"`
}

// OAuthURL starts a PKCE authorization for a Claude account.
type OAuthURL struct {
	AuthURL       string `json:"auth_url"`
	State         string `json:"state"`
	CodeChallenge string `json:"code_challenge"`
	CodeVerifier  string `json:"code_verifier"`
}

// ExchangeCodeRequest completes an authorization started with OAuthURL.
type ExchangeCodeRequest struct {
	AuthorizationCode string `json:"authorization_code"`
	CallbackURL       string `json:"callback_url"`
	ProxyURI          string `json:"proxy_uri"`
	CodeVerifier      string `json:"code_verifier"`
	State             string `json:"state"`
}

// ExchangeCodeResponse carries the tokens of a completed authorization.
type ExchangeCodeResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	UserInfo     struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user_info"`
}
