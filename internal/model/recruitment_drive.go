package model

// RecruitmentDrive is one time-boxed hiring round. At most one drive is
// active at any time; activation is a transactional service operation, not
// a side effect of ordinary saves.
type RecruitmentDrive struct {
	DriveID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"drive_id"`
	Title            string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description      string `gorm:"type:text;not null;default:''"                  json:"description"`
	RegistrationLink string `gorm:"type:varchar(500);not null;default:''"          json:"registration_link"`
	IsActive         bool   `gorm:"not null;default:false"                         json:"is_active"`
	IsPublic         bool   `gorm:"not null;default:true"                          json:"is_public"`
	Timestamps

	Timeline    []TimelineEvent         `gorm:"foreignKey:DriveID;references:DriveID" json:"timeline,omitempty"`
	Assignments []RecruitmentAssignment `gorm:"foreignKey:DriveID;references:DriveID" json:"assignments,omitempty"`
}

// TableName sets the table name.
func (RecruitmentDrive) TableName() string { return "recruitment_drives" }
