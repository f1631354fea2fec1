package model

import "time"

// InterviewPanel is a named interviewing group within a drive, unique per
// (drive, panel_number). StartTime and SlotDuration are the scheduling
// defaults; slot generation persists resolved overrides back here.
type InterviewPanel struct {
	PanelID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"panel_id"`
	DriveID      string     `gorm:"type:uuid;not null;uniqueIndex:uniq_drive_panel" json:"drive_id"`
	PanelNumber  int        `gorm:"not null;uniqueIndex:uniq_drive_panel"           json:"panel_number"`
	Name         string     `gorm:"type:varchar(200);not null;default:''"           json:"name"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	SlotDuration *int       `json:"slot_duration,omitempty"` // minutes
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Members []User          `gorm:"many2many:interview_panel_members;foreignKey:PanelID;joinForeignKey:panel_id;references:UserID;joinReferences:user_id" json:"members,omitempty"`
	Slots   []InterviewSlot `gorm:"foreignKey:PanelID;references:PanelID" json:"slots,omitempty"`
}

// TableName sets the table name.
func (InterviewPanel) TableName() string { return "interview_panels" }
