package model

// TeamPosition is a named position on the team, optionally linked to a Role.
// Profiles still reference positions by free-text label, so names are not
// enforced unique; permission resolution matches case-insensitively and
// takes the oldest position on a tie.
type TeamPosition struct {
	PositionID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"position_id"`
	Name       string  `gorm:"type:varchar(100);not null"                     json:"name"`
	RoleID     *string `gorm:"type:uuid" json:"role_id,omitempty"`
	Order      int     `gorm:"column:order;not null;default:0" json:"order"`
	Timestamps

	RoleLink *Role `gorm:"foreignKey:RoleID;references:RoleID" json:"role_link,omitempty"`
}

// TableName sets the table name.
func (TeamPosition) TableName() string { return "team_positions" }
