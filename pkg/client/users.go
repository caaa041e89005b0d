package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

// Login authenticates and returns the session token. It does not install
// the token on the client; callers decide (see SetToken).
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResult, error) {
	if req.LoginType == "" {
		req.LoginType = types.LoginPassword
	}
	switch req.LoginType {
	case types.LoginPassword:
		if req.Username == "" || req.Password == "" {
			return nil, errors.New("username and password are required")
		}
	case types.LoginSMSCode:
		if req.Email == "" || req.VerificationCode == "" {
			return nil, errors.New("email and verification code are required")
		}
	default:
		return nil, fmt.Errorf("unknown login type %q", req.LoginType)
	}

	resp, err := c.post(ctx, "login", apiPrefix+"/auth/login", req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var result types.LoginResult
	if err := decode(resp, &result, "login result"); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, errors.New("login response carried no token")
	}
	return &result, nil
}

// Register signs up a new user.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.UserProfile, error) {
	resp, err := c.post(ctx, "register", apiPrefix+"/auth/register", req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var profile types.UserProfile
	if err := decode(resp, &profile, "user"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SendVerificationCode asks the backend to email a one-time code.
func (c *Client) SendVerificationCode(ctx context.Context, req types.VerificationCodeRequest) error {
	resp, err := c.post(ctx, "send_verification_code", apiPrefix+"/auth/send-verification-code", req)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "verification code")
}

// Profile returns the signed-in user.
func (c *Client) Profile(ctx context.Context) (*types.UserProfile, error) {
	resp, err := c.get(ctx, "get_profile", apiPrefix+"/user/profile", nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var profile types.UserProfile
	if err := decode(resp, &profile, "profile"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile edits the signed-in user and returns the stored record.
func (c *Client) UpdateProfile(ctx context.Context, req types.UpdateProfileRequest) (*types.UserProfile, error) {
	resp, err := c.put(ctx, "update_profile", apiPrefix+"/user/profile", req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var profile types.UserProfile
	if err := decode(resp, &profile, "profile"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangeEmail changes the signed-in user's email.
func (c *Client) ChangeEmail(ctx context.Context, req types.ChangeEmailRequest) error {
	resp, err := c.put(ctx, "change_email", apiPrefix+"/user/change-email", req)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "profile")
}

// ChangePassword changes the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, req types.ChangePasswordRequest) error {
	resp, err := c.put(ctx, "change_password", apiPrefix+"/user/change-password", req)
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "profile")
}

// ListUsers returns one page of users. Admin only.
func (c *Client) ListUsers(ctx context.Context, params types.PageParams) (*types.Page[types.User], error) {
	resp, err := c.get(ctx, "list_users", apiPrefix+"/admin/users", pageQuery(params.Page, params.Limit))
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)
	return decodeList[types.User](resp, "users", "user list")
}

// CreateUser adds a user. Admin only.
func (c *Client) CreateUser(ctx context.Context, req types.CreateUserRequest) (*types.User, error) {
	if req.Role == "" {
		req.Role = types.RoleUser
	}
	if req.Role != types.RoleUser && req.Role != types.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}
	resp, err := c.post(ctx, "create_user", apiPrefix+"/admin/users", req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var user types.User
	if err := decode(resp, &user, "user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserStatus enables or disables a user. Admin only.
func (c *Client) UpdateUserStatus(ctx context.Context, id int64, status types.UserStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: user status %d", ErrInvalidStatus, int(status))
	}
	resp, err := c.put(ctx, "update_user_status", apiPrefix+"/admin/users/"+itoa(id)+"/status",
		map[string]types.UserStatus{"status": status})
	if err != nil {
		return err
	}
	defer closeBody(resp)
	return decode(resp, nil, "user")
}
