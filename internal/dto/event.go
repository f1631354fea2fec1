package dto

import "time"

// CreateEventRequest is the event creation payload. When LeadID is empty
// the creating actor becomes the lead.
type CreateEventRequest struct {
	Title            string     `json:"title" binding:"required"`
	Description      string     `json:"description"`
	Date             time.Time  `json:"date" binding:"required"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Scope            string     `json:"scope" binding:"omitempty,oneof=GLOBAL SIG PERSONAL"`
	SigID            *string    `json:"sig_id,omitempty"`
	IsFullEvent      *bool      `json:"is_full_event,omitempty"`
	Location         string     `json:"location"`
	Status           string     `json:"status" binding:"omitempty,oneof=UPCOMING COMPLETED CANCELLED"`
	Visibility       string     `json:"visibility" binding:"omitempty,oneof=DRAFT PUBLISHED"`
	LeadID           *string    `json:"lead_id,omitempty"`
	RegistrationLink string     `json:"registration_link"`
}

// UpdateEventRequest is the partial event update payload.
type UpdateEventRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Date             *time.Time `json:"date,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Scope            *string    `json:"scope,omitempty" binding:"omitempty,oneof=GLOBAL SIG PERSONAL"`
	SigID            *string    `json:"sig_id,omitempty"`
	IsFullEvent      *bool      `json:"is_full_event,omitempty"`
	Location         *string    `json:"location,omitempty"`
	Status           *string    `json:"status,omitempty" binding:"omitempty,oneof=UPCOMING COMPLETED CANCELLED"`
	Visibility       *string    `json:"visibility,omitempty" binding:"omitempty,oneof=DRAFT PUBLISHED"`
	LeadID           *string    `json:"lead_id,omitempty"`
	RegistrationLink *string    `json:"registration_link,omitempty"`
	VolunteerIDs     []string   `json:"volunteer_ids,omitempty"`
}

// EventResponse is the event view.
type EventResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Date             time.Time  `json:"date"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	Scope            string     `json:"scope"`
	SigID            *string    `json:"sig_id,omitempty"`
	SigName          string     `json:"sig_name,omitempty"`
	IsFullEvent      bool       `json:"is_full_event"`
	Location         string     `json:"location"`
	Status           string     `json:"status"`
	Visibility       string     `json:"visibility"`
	LeadID           *string    `json:"lead_id,omitempty"`
	LeadName         string     `json:"lead_name,omitempty"`
	ImageURL         string     `json:"image_url,omitempty"`
	RegistrationLink string     `json:"registration_link,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
