package models

// Role is a user's access level
type Role string

// Role constants
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a user in the system
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize password hash
	Role         Role   `json:"role"`
	IsBanned     bool   `json:"is_banned"`
	CreatedAt    string `json:"created_at"`
}

// Identity is the authenticated caller attached to a request by the auth middleware
type Identity struct {
	ID       int    `json:"id"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}

// IsAdmin reports whether the identity carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token     string `json:"token"`
	ID        int    `json:"id"`
	Role      Role   `json:"role"`
	Username  string `json:"username"`
	ExpiresIn int    `json:"expiresIn"`
}

// RegisterResponse is returned on successful registration
type RegisterResponse struct {
	Success bool   `json:"success"`
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// UserListItem represents a user row in the admin users list
type UserListItem struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsBanned  bool   `json:"is_banned"`
	CreatedAt string `json:"created_at"`
}

// UserListResponse is returned by the admin users list endpoint
type UserListResponse struct {
	Users      []UserListItem `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// BanUserRequest represents the request body for banning or unbanning a user
type BanUserRequest struct {
	IsBanned *bool `json:"isBanned"`
}
