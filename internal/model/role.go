package model

// RoleWebLead is the distinguished role name that implies full access.
const RoleWebLead = "WEB_LEAD"

// Role is a named bundle of management capabilities.
type Role struct {
	RoleID                 string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	Name                   string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	CanManageUsers         bool   `gorm:"not null;default:false" json:"can_manage_users"`
	CanManageProjects      bool   `gorm:"not null;default:false" json:"can_manage_projects"`
	CanManageEvents        bool   `gorm:"not null;default:false" json:"can_manage_events"`
	CanManageTeam          bool   `gorm:"not null;default:false" json:"can_manage_team"`
	CanManageGallery       bool   `gorm:"not null;default:false" json:"can_manage_gallery"`
	CanManageAnnouncements bool   `gorm:"not null;default:false" json:"can_manage_announcements"`
	CanManageSecurity      bool   `gorm:"not null;default:false" json:"can_manage_security"`
	CanManageMessages      bool   `gorm:"not null;default:false" json:"can_manage_messages"`
	CanManageSponsorship   bool   `gorm:"not null;default:false" json:"can_manage_sponsorship"`
	CanManageForms         bool   `gorm:"not null;default:false" json:"can_manage_forms"`
	Timestamps
}

// TableName sets the table name.
func (Role) TableName() string { return "roles" }
