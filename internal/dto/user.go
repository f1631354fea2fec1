package dto

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	RoleIDs  []string `json:"role_ids"`
}

// UpdateUserRequest is the partial user-update payload.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// AssignRolesRequest replaces a user's direct role assignments.
type AssignRolesRequest struct {
	RoleIDs []string `json:"role_ids" binding:"required"`
}

// UpdateProfileRequest is the member-profile update payload.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Position *string `json:"position,omitempty"`
}

// ProfileResponse is the member profile view.
type ProfileResponse struct {
	FullName string `json:"full_name"`
	Position string `json:"position"`
	ImageURL string `json:"image_url,omitempty"`
}

// UserResponse is the user view, including the resolved capability set so
// clients can gate their own UI.
type UserResponse struct {
	ID          string           `json:"id"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	IsActive    bool             `json:"is_active"`
	IsSuperuser bool             `json:"is_superuser"`
	Roles       []string         `json:"roles"`
	Profile     *ProfileResponse `json:"profile,omitempty"`
	Permissions []string         `json:"permissions"`
}
