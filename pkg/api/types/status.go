package types

import "strconv"

// GroupStatus is the enable flag of a group.
type GroupStatus int

// Group statuses.
const (
	GroupDisabled GroupStatus = 0
	GroupEnabled  GroupStatus = 1
)

// Valid reports whether s is a known group status.
func (s GroupStatus) Valid() bool { return s == GroupDisabled || s == GroupEnabled }

func (s GroupStatus) String() string {
	switch s {
	case GroupDisabled:
		return "disabled"
	case GroupEnabled:
		return "enabled"
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

// APIKeyStatus is the enable flag of an API key.
type APIKeyStatus int

// API key statuses.
const (
	APIKeyDisabled APIKeyStatus = 0
	APIKeyEnabled  APIKeyStatus = 1
)

// Valid reports whether s is a known API key status.
func (s APIKeyStatus) Valid() bool { return s == APIKeyDisabled || s == APIKeyEnabled }

func (s APIKeyStatus) String() string {
	switch s {
	case APIKeyDisabled:
		return "disabled"
	case APIKeyEnabled:
		return "enabled"
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

// UserStatus is the enable flag of a user.
type UserStatus int

// User statuses.
const (
	UserDisabled UserStatus = 0
	UserEnabled  UserStatus = 1
)

// Valid reports whether s is a known user status.
func (s UserStatus) Valid() bool { return s == UserDisabled || s == UserEnabled }

func (s UserStatus) String() string {
	switch s {
	case UserDisabled:
		return "disabled"
	case UserEnabled:
		return "enabled"
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

// AccountActiveStatus is the operator-controlled switch of an upstream account.
type AccountActiveStatus int

// Account activation statuses.
const (
	AccountActive   AccountActiveStatus = 1
	AccountDisabled AccountActiveStatus = 2
)

// Valid reports whether s is a known activation status.
func (s AccountActiveStatus) Valid() bool { return s == AccountActive || s == AccountDisabled }

func (s AccountActiveStatus) String() string {
	switch s {
	case AccountActive:
		return "active"
	case AccountDisabled:
		return "disabled"
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

// AccountCurrentStatus is the health of an upstream account as last observed.
type AccountCurrentStatus int

// Account health statuses.
const (
	AccountNormal      AccountCurrentStatus = 1
	AccountAPIError    AccountCurrentStatus = 2
	AccountRateLimited AccountCurrentStatus = 3
)

// Valid reports whether s is a known health status.
func (s AccountCurrentStatus) Valid() bool {
	return s == AccountNormal || s == AccountAPIError || s == AccountRateLimited
}

func (s AccountCurrentStatus) String() string {
	switch s {
	case AccountNormal:
		return "normal"
	case AccountAPIError:
		return "api-error"
	case AccountRateLimited:
		return "rate-limited"
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Upstream platform types.
const (
	PlatformClaude        = "claude"
	PlatformClaudeConsole = "claude_console"
	PlatformOpenAI        = "openai"
	PlatformGemini        = "gemini"
)
