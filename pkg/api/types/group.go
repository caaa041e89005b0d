package types

// Group is a routing group that API keys and accounts belong to.
type Group struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Remark       string      `json:"remark"`
	Status       GroupStatus `json:"status"`
	UserID       int64       `json:"user_id"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
	APIKeyCount  int         `json:"api_key_count"`
	AccountCount int         `json:"account_count"`
}

// GroupListParams are the query parameters of the group list.
type GroupListParams struct {
	Page   int          `json:"page"`
	Size   int          `json:"size"`
	Name   string       `json:"name,omitempty"`
	Status *GroupStatus `json:"status,omitempty"`
}

// CreateGroupRequest creates a group.
type CreateGroupRequest struct {
	Name   string       `json:"name"`
	Remark string       `json:"remark,omitempty"`
	Status *GroupStatus `json:"status,omitempty"`
}

// UpdateGroupRequest updates a group. Nil fields are left unchanged.
type UpdateGroupRequest struct {
	Name   *string      `json:"name,omitempty"`
	Remark *string      `json:"remark,omitempty"`
	Status *GroupStatus `json:"status,omitempty"`
}

// GroupOption is a label/value projection for selection widgets.
type GroupOption struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}
