package model

// User is an account on the site. Capability resolution unions the
// directly-assigned roles with the role linked to the profile position.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"         json:"username"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	IsSuperuser  bool   `gorm:"not null;default:false"                         json:"is_superuser"`
	Timestamps

	Roles   []Role         `gorm:"many2many:user_roles;foreignKey:UserID;joinForeignKey:user_id;references:RoleID;joinReferences:role_id" json:"roles,omitempty"`
	Profile *MemberProfile `gorm:"foreignKey:UserID;references:UserID" json:"profile,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
