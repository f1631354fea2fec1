package model

import "time"

// Event scope values.
const (
	EventScopeGlobal   = "GLOBAL"
	EventScopeSig      = "SIG"
	EventScopePersonal = "PERSONAL"
)

// Event visibility values.
const (
	EventVisibilityDraft     = "DRAFT"
	EventVisibilityPublished = "PUBLISHED"
)

// Event status values.
const (
	EventStatusUpcoming  = "UPCOMING"
	EventStatusCompleted = "COMPLETED"
	EventStatusCancelled = "CANCELLED"
)

// Event is a club event. A PERSONAL event is visible only to its lead
// unless the viewer holds event-management capability.
type Event struct {
	EventID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Title            string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description      string     `gorm:"type:text;not null;default:''"                  json:"description"`
	Date             time.Time  `gorm:"not null"                                       json:"date"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Scope            string     `gorm:"type:varchar(20);not null;default:'GLOBAL'"     json:"scope"`
	SigID            *string    `gorm:"type:uuid"                                      json:"sig_id,omitempty"`
	IsFullEvent      bool       `gorm:"not null;default:true"                          json:"is_full_event"`
	Location         string     `gorm:"type:varchar(200);not null;default:''"          json:"location"`
	Status           string     `gorm:"type:varchar(20);not null;default:'UPCOMING'"   json:"status"`
	Visibility       string     `gorm:"type:varchar(20);not null;default:'DRAFT'"      json:"visibility"`
	LeadID           *string    `gorm:"type:uuid"                                      json:"lead_id,omitempty"`
	ImageRef         string     `gorm:"type:varchar(500);not null;default:''"          json:"image_ref"`
	RegistrationLink string     `gorm:"type:varchar(500);not null;default:''"          json:"registration_link"`
	CreatedAt        time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Sig        *Sig   `gorm:"foreignKey:SigID;references:SigID"    json:"sig,omitempty"`
	Lead       *User  `gorm:"foreignKey:LeadID;references:UserID"  json:"lead,omitempty"`
	Volunteers []User `gorm:"many2many:event_volunteers;foreignKey:EventID;joinForeignKey:event_id;references:UserID;joinReferences:user_id" json:"volunteers,omitempty"`
}

// TableName sets the table name.
func (Event) TableName() string { return "events" }
