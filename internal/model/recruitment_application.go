package model

import "time"

// ApplicationStatus is the stage a candidate has reached in the pipeline.
type ApplicationStatus string

// Pipeline stages, in intended order. SELECTED and REJECTED are both
// terminal outcomes of INTERVIEW_COMPLETED.
const (
	StatusApplied             ApplicationStatus = "APPLIED"
	StatusOAPending           ApplicationStatus = "OA_PENDING"
	StatusOACompleted         ApplicationStatus = "OA_COMPLETED"
	StatusAssessmentPending   ApplicationStatus = "ASSESSMENT_PENDING"
	StatusAssessmentCompleted ApplicationStatus = "ASSESSMENT_COMPLETED"
	StatusInterviewScheduled  ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusInterviewCompleted  ApplicationStatus = "INTERVIEW_COMPLETED"
	StatusSelected            ApplicationStatus = "SELECTED"
	StatusRejected            ApplicationStatus = "REJECTED"
)

var statusRank = map[ApplicationStatus]int{
	StatusApplied:             0,
	StatusOAPending:           1,
	StatusOACompleted:         2,
	StatusAssessmentPending:   3,
	StatusAssessmentCompleted: 4,
	StatusInterviewScheduled:  5,
	StatusInterviewCompleted:  6,
	StatusSelected:            7,
	StatusRejected:            7,
}

// Valid reports whether s is a known status value.
func (s ApplicationStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving from s to next follows the pipeline
// order. Only forward moves are allowed; SELECTED and REJECTED are terminal.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	if from == statusRank[StatusSelected] {
		return false // terminal
	}
	return to > from
}

// RecruitmentApplication is one candidate's record in a drive, unique per
// (drive, identifier). The identifier is the candidate's key in the
// external application form, typically an email or roll number.
type RecruitmentApplication struct {
	ApplicationID         string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"application_id"`
	DriveID               string            `gorm:"type:uuid;not null;uniqueIndex:uniq_drive_identifier" json:"drive_id"`
	Identifier            string            `gorm:"type:varchar(255);not null;uniqueIndex:uniq_drive_identifier" json:"identifier"`
	CandidateName         string            `gorm:"type:varchar(200);not null;default:''"                json:"candidate_name"`
	SigID                 *string           `gorm:"type:uuid"                                            json:"sig_id,omitempty"`
	Status                ApplicationStatus `gorm:"type:varchar(30);not null;default:'APPLIED'"          json:"status"`
	AssessmentFileRef     string            `gorm:"type:varchar(500);not null;default:''"                json:"assessment_file_ref"`
	SolutionLink          string            `gorm:"type:varchar(500);not null;default:''"                json:"solution_link"`
	AssessmentSubmittedAt *time.Time        `json:"assessment_submitted_at,omitempty"`
	OAScore               *float64          `json:"oa_score,omitempty"`
	AssessmentScore       *float64          `json:"assessment_score,omitempty"`
	InterviewScore        *float64          `json:"interview_score,omitempty"`
	InterviewTime         *time.Time        `json:"interview_time,omitempty"`
	Timestamps

	Sig *Sig `gorm:"foreignKey:SigID;references:SigID" json:"sig,omitempty"`
}

// TableName sets the table name.
func (RecruitmentApplication) TableName() string { return "recruitment_applications" }
