package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every data-access interface.
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Role         RoleRepository
	Sig          SigRepository
	TeamPosition TeamPositionRepository
	Profile      MemberProfileRepository
	Event        EventRepository
	Drive        RecruitmentDriveRepository
	Timeline     TimelineEventRepository
	Assignment   RecruitmentAssignmentRepository
	Application  RecruitmentApplicationRepository
	Panel        InterviewPanelRepository
	Slot         InterviewSlotRepository
	AuditLog     AuditLogRepository
}

// NewRepository wires every repository onto one GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Role:         NewRoleRepo(db),
		Sig:          NewSigRepo(db),
		TeamPosition: NewTeamPositionRepo(db),
		Profile:      NewMemberProfileRepo(db),
		Event:        NewEventRepo(db),
		Drive:        NewRecruitmentDriveRepo(db),
		Timeline:     NewTimelineEventRepo(db),
		Assignment:   NewRecruitmentAssignmentRepo(db),
		Application:  NewRecruitmentApplicationRepo(db),
		Panel:        NewInterviewPanelRepo(db),
		Slot:         NewInterviewSlotRepo(db),
		AuditLog:     NewAuditLogRepo(db),
	}
}

// Transaction runs fn against a Repository view bound to one database
// transaction, committing on nil and rolling back on error. A Repository
// without a live handle runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
