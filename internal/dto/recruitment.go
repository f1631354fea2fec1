package dto

import "time"

// CreateDriveRequest is the drive creation payload.
type CreateDriveRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	RegistrationLink string `json:"registration_link"`
	IsPublic         *bool  `json:"is_public,omitempty"`
}

// UpdateDriveRequest is the partial drive update payload. IsActive is
// deliberately absent: activation goes through the dedicated activate
// operation so the exclusivity invariant cannot be bypassed by a field
// write.
type UpdateDriveRequest struct {
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	RegistrationLink *string `json:"registration_link,omitempty"`
	IsPublic         *bool   `json:"is_public,omitempty"`
}

// CreateTimelineEventRequest is the timeline-event creation payload.
type CreateTimelineEventRequest struct {
	DriveID     string    `json:"drive_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	IsTentative bool      `json:"is_tentative"`
	Order       int       `json:"order"`
}

// UpdateTimelineEventRequest is the partial timeline-event update payload.
type UpdateTimelineEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	IsCompleted *bool      `json:"is_completed,omitempty"`
	IsTentative *bool      `json:"is_tentative,omitempty"`
	Order       *int       `json:"order,omitempty"`
}

// CreateAssignmentRequest is the assignment creation payload. FileRef is
// the stored blob reference when a file was uploaded; at least one of
// FileRef and ExternalLink must be present.
type CreateAssignmentRequest struct {
	DriveID      string  `json:"drive_id" binding:"required"`
	SigID        *string `json:"sig_id,omitempty"`
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	FileRef      string  `json:"-"`
	ExternalLink string  `json:"external_link"`
}

// SubmitAssessmentRequest is the public assessment submission payload.
// FileRef carries the stored blob reference when the candidate uploaded a
// file; at least one of FileRef and SolutionLink is required.
type SubmitAssessmentRequest struct {
	DriveID       string
	Identifier    string
	CandidateName string
	SigID         string
	FileRef       string
	SolutionLink  string
}

// UpdateApplicationRequest is the admin application update payload. Status
// changes are validated against the pipeline order.
type UpdateApplicationRequest struct {
	CandidateName   *string  `json:"candidate_name,omitempty"`
	SigID           *string  `json:"sig_id,omitempty"`
	Status          *string  `json:"status,omitempty"`
	OAScore         *float64 `json:"oa_score,omitempty"`
	AssessmentScore *float64 `json:"assessment_score,omitempty"`
	InterviewScore  *float64 `json:"interview_score,omitempty"`
}

// CreatePanelRequest is the panel creation payload.
type CreatePanelRequest struct {
	DriveID      string     `json:"drive_id" binding:"required"`
	PanelNumber  int        `json:"panel_number" binding:"required,min=1"`
	Name         string     `json:"name"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	SlotDuration *int       `json:"slot_duration,omitempty" binding:"omitempty,min=1"`
	MemberIDs    []string   `json:"member_ids,omitempty"`
}

// UpdatePanelRequest is the partial panel update payload.
type UpdatePanelRequest struct {
	Name         *string    `json:"name,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	SlotDuration *int       `json:"slot_duration,omitempty" binding:"omitempty,min=1"`
	MemberIDs    []string   `json:"member_ids,omitempty"`
}

// GenerateSlotsRequest drives sequential slot generation for a panel.
// CandidateIDs are application IDs in interview order. StartTime and
// DurationMinutes override the panel's stored configuration when present.
type GenerateSlotsRequest struct {
	StartTime       *time.Time `json:"start_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" binding:"omitempty,min=1"`
	CandidateIDs    []string   `json:"candidate_ids" binding:"required,min=1"`
}

// SlotGenerationResult is the partial-success outcome of one generation
// run: the slots that were created and the candidate IDs that could not be
// resolved and were skipped.
type SlotGenerationResult struct {
	CreatedSlotIDs []string `json:"created_slot_ids"`
	Skipped        []string `json:"skipped"`
}
