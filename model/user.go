package model

// UserAttributes carries the auth service account attributes.
type UserAttributes struct {
	Status string `json:"status"`
}

// AuthUser is the canonical user record held by the auth service.
type AuthUser struct {
	ID         string         `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	Role       string         `json:"role"`
	Attributes UserAttributes `json:"attributes"`
}

// IsActive reports whether the account may use the platform.
func (u AuthUser) IsActive() bool {
	return u.Attributes.Status == "active"
}

// AccountRequest enables or disables a user account.
type AccountRequest struct {
	OperationType string `json:"operation_type" binding:"required,oneof=enable disable"`
	UserEmail     string `json:"user_email"`
	UserID        string `json:"user_id"`
}

// ADUserUpdateRequest completes the caller's own profile on first login.
type ADUserUpdateRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MemberAddRequest adds a user to a project.
type MemberAddRequest struct {
	Username string `json:"username"`
	Role     string `json:"role" binding:"required"`
}

// MemberChangeRequest changes a user's project role.
type MemberChangeRequest struct {
	OldRole string `json:"old_role" binding:"required"`
	NewRole string `json:"new_role" binding:"required"`
}

// Invitation is a pending platform or project invitation kept by the
// auth service.
type Invitation struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PlatformRole string `json:"platform_role"`
	ProjectCode  string `json:"project_code"`
	ProjectRole  string `json:"project_role"`
	Status       string `json:"status"`
}
