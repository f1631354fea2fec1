package model

import "time"

// TimelineEvent is one milestone on a drive's public timeline.
// OriginalDate records the date before its first reschedule and is never
// overwritten once set, so the site can render the strike-through history.
type TimelineEvent struct {
	TimelineEventID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timeline_event_id"`
	DriveID         string     `gorm:"type:uuid;not null"                             json:"drive_id"`
	Title           string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Date            time.Time  `gorm:"not null"                                       json:"date"`
	OriginalDate    *time.Time `json:"original_date,omitempty"`
	IsCompleted     bool       `gorm:"not null;default:false"          json:"is_completed"`
	IsTentative     bool       `gorm:"not null;default:false"          json:"is_tentative"`
	Order           int        `gorm:"column:order;not null;default:0" json:"order"`
}

// TableName sets the table name.
func (TimelineEvent) TableName() string { return "timeline_events" }
