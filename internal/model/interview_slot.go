package model

import "time"

// Interview slot status values.
const (
	SlotStatusScheduled = "SCHEDULED"
	SlotStatusCompleted = "COMPLETED"
	SlotStatusNoShow    = "NO_SHOW"
)

// InterviewSlot is one fixed interview interval on a panel, bound to
// exactly one application.
type InterviewSlot struct {
	SlotID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	PanelID       string    `gorm:"type:uuid;not null"                             json:"panel_id"`
	ApplicationID string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"application_id"`
	StartTime     time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime       time.Time `gorm:"not null"                                       json:"end_time"`
	Status        string    `gorm:"type:varchar(30);not null;default:'SCHEDULED'"  json:"status"`
	Order         int       `gorm:"column:order;not null;default:0"                json:"order"`

	Application *RecruitmentApplication `gorm:"foreignKey:ApplicationID;references:ApplicationID" json:"application,omitempty"`
}

// TableName sets the table name.
func (InterviewSlot) TableName() string { return "interview_slots" }
