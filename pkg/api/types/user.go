package types

// User is a console user as listed by administrators.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserProfile is the signed-in user's own record.
type UserProfile struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt string     `json:"created_at,omitempty"`
}

// Login types.
const (
	LoginPassword = "password"
	LoginSMSCode  = "sms_code"
)

// LoginRequest authenticates with a password or an emailed code.
type LoginRequest struct {
	Username         string `json:"username,omitempty"`
	Email            string `json:"email,omitempty"`
	Password         string `json:"password,omitempty"`
	VerificationCode string `json:"verification_code,omitempty"`
	LoginType        string `json:"login_type"`
}

// LoginResult carries the session token.
type LoginResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// RegisterRequest signs up a new user.
type RegisterRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	VerificationCode string `json:"verification_code"`
}

// Verification code purposes.
const (
	CodeForRegister      = "register"
	CodeForLogin         = "login"
	CodeForResetPassword = "reset_password"
	CodeForChangeEmail   = "change_email"
)

// VerificationCodeRequest asks the backend to email a code.
type VerificationCodeRequest struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

// UpdateProfileRequest edits the signed-in user's profile.
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ChangeEmailRequest changes the signed-in user's email.
type ChangeEmailRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest changes the signed-in user's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// CreateUserRequest is used by administrators to add a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserOption is a label/value projection for selection widgets.
type UserOption struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}
