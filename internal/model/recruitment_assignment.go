package model

import "time"

// RecruitmentAssignment is a task handed to candidates of one sig during a
// drive, carried either as an uploaded file or an external link.
type RecruitmentAssignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	DriveID      string    `gorm:"type:uuid;not null"                             json:"drive_id"`
	SigID        *string   `gorm:"type:uuid"                                      json:"sig_id,omitempty"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string    `gorm:"type:text;not null;default:''"                  json:"description"`
	FileRef      string    `gorm:"type:varchar(500);not null;default:''"          json:"file_ref"`
	ExternalLink string    `gorm:"type:varchar(500);not null;default:''"          json:"external_link"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Sig *Sig `gorm:"foreignKey:SigID;references:SigID" json:"sig,omitempty"`
}

// TableName sets the table name.
func (RecruitmentAssignment) TableName() string { return "recruitment_assignments" }
