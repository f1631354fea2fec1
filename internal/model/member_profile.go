package model

// MemberProfile is the public-facing profile attached to a user.
type MemberProfile struct {
	ProfileID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"profile_id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	FullName  string `gorm:"type:varchar(200);not null;default:''"          json:"full_name"`
	// Position is a legacy free-text label resolved against
	// team_positions.name by case-insensitive match.
	Position string `gorm:"type:varchar(100);not null;default:''" json:"position"`
	ImageRef string `gorm:"type:varchar(500);not null;default:''" json:"image_ref"`
	Timestamps
}

// TableName sets the table name.
func (MemberProfile) TableName() string { return "member_profiles" }
