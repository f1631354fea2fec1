package dto

// CreateRoleRequest is the role creation payload.
type CreateRoleRequest struct {
	Name                   string `json:"name" binding:"required"`
	CanManageUsers         bool   `json:"can_manage_users"`
	CanManageProjects      bool   `json:"can_manage_projects"`
	CanManageEvents        bool   `json:"can_manage_events"`
	CanManageTeam          bool   `json:"can_manage_team"`
	CanManageGallery       bool   `json:"can_manage_gallery"`
	CanManageAnnouncements bool   `json:"can_manage_announcements"`
	CanManageSecurity      bool   `json:"can_manage_security"`
	CanManageMessages      bool   `json:"can_manage_messages"`
	CanManageSponsorship   bool   `json:"can_manage_sponsorship"`
	CanManageForms         bool   `json:"can_manage_forms"`
}

// UpdateRoleRequest mirrors CreateRoleRequest with optional fields.
type UpdateRoleRequest struct {
	Name                   *string `json:"name,omitempty"`
	CanManageUsers         *bool   `json:"can_manage_users,omitempty"`
	CanManageProjects      *bool   `json:"can_manage_projects,omitempty"`
	CanManageEvents        *bool   `json:"can_manage_events,omitempty"`
	CanManageTeam          *bool   `json:"can_manage_team,omitempty"`
	CanManageGallery       *bool   `json:"can_manage_gallery,omitempty"`
	CanManageAnnouncements *bool   `json:"can_manage_announcements,omitempty"`
	CanManageSecurity      *bool   `json:"can_manage_security,omitempty"`
	CanManageMessages      *bool   `json:"can_manage_messages,omitempty"`
	CanManageSponsorship   *bool   `json:"can_manage_sponsorship,omitempty"`
	CanManageForms         *bool   `json:"can_manage_forms,omitempty"`
}

// CreateSigRequest is the sig creation payload.
type CreateSigRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateSigRequest is the partial sig update payload.
type UpdateSigRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreatePositionRequest is the team-position creation payload.
type CreatePositionRequest struct {
	Name   string  `json:"name" binding:"required"`
	RoleID *string `json:"role_id,omitempty"`
	Order  int     `json:"order"`
}

// UpdatePositionRequest is the partial team-position update payload.
type UpdatePositionRequest struct {
	Name   *string `json:"name,omitempty"`
	RoleID *string `json:"role_id,omitempty"`
	Order  *int    `json:"order,omitempty"`
}
