package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/model"
	"club-nexus/backend/internal/repository"
	"club-nexus/backend/pkg/apperrors"
)

// ── recruitment business errors ──

var (
	ErrDriveNotFound         = apperrors.NotFound(errors.New("recruitment drive not found"))
	ErrNoActiveDrive         = apperrors.NotFound(errors.New("no active public drive"))
	ErrTimelineEventNotFound = apperrors.NotFound(errors.New("timeline event not found"))
	ErrAssignmentNotFound    = apperrors.NotFound(errors.New("assignment not found"))
	ErrApplicationNotFound   = apperrors.NotFound(errors.New("application not found"))
	ErrAssignmentNeedsBody   = apperrors.Validation(errors.New("assignment requires a file or an external link"))
	ErrSubmissionNeedsBody   = apperrors.Validation(errors.New("submission requires a file or a solution link"))
	ErrUnknownStatus         = apperrors.Validation(errors.New("unknown application status"))
	ErrBadStatusTransition   = apperrors.Validation(errors.New("status change violates pipeline order"))
)

// RecruitmentService owns drives, their timelines and assignments, and the
// candidate applications that flow through the pipeline.
type RecruitmentService interface {
	CreateDrive(ctx context.Context, actor *Actor, req *dto.CreateDriveRequest) (*model.RecruitmentDrive, error)
	GetDrive(ctx context.Context, actor *Actor, id string) (*model.RecruitmentDrive, error)
	ListDrives(ctx context.Context, actor *Actor) ([]model.RecruitmentDrive, error)
	UpdateDrive(ctx context.Context, actor *Actor, id string, req *dto.UpdateDriveRequest) (*model.RecruitmentDrive, error)
	DeleteDrive(ctx context.Context, actor *Actor, id string) error

	// ActivateDrive makes the drive the single active one, clearing the
	// flag on every other drive in the same transaction.
	ActivateDrive(ctx context.Context, actor *Actor, id string) (*model.RecruitmentDrive, error)
	DeactivateDrive(ctx context.Context, actor *Actor, id string) (*model.RecruitmentDrive, error)

	// ActivePublicDrive is the anonymous read path: the one drive that is
	// both active and public, with timeline and assignments attached.
	ActivePublicDrive(ctx context.Context) (*model.RecruitmentDrive, error)

	CreateTimelineEvent(ctx context.Context, actor *Actor, req *dto.CreateTimelineEventRequest) (*model.TimelineEvent, error)
	UpdateTimelineEvent(ctx context.Context, actor *Actor, id string, req *dto.UpdateTimelineEventRequest) (*model.TimelineEvent, error)
	DeleteTimelineEvent(ctx context.Context, actor *Actor, id string) error

	CreateAssignment(ctx context.Context, actor *Actor, req *dto.CreateAssignmentRequest) (*model.RecruitmentAssignment, error)
	DeleteAssignment(ctx context.Context, actor *Actor, id string) error

	// SubmitAssessment is the public intake operation, keyed by
	// (drive, identifier). It upserts the application, attaches the
	// submission and advances early-stage candidates to
	// ASSESSMENT_COMPLETED.
	SubmitAssessment(ctx context.Context, req *dto.SubmitAssessmentRequest) (*model.RecruitmentApplication, error)

	ListApplications(ctx context.Context, actor *Actor, driveID string) ([]model.RecruitmentApplication, error)
	GetApplication(ctx context.Context, actor *Actor, id string) (*model.RecruitmentApplication, error)
	UpdateApplication(ctx context.Context, actor *Actor, id string, req *dto.UpdateApplicationRequest) (*model.RecruitmentApplication, error)
	DeleteApplication(ctx context.Context, actor *Actor, id string) error
}

type recruitmentService struct {
	repo   *repository.Repository
	audit  AuditService
	logger *zap.Logger
	now    func() time.Time
}

// NewRecruitmentService creates a RecruitmentService.
func NewRecruitmentService(repo *repository.Repository, audit AuditService, logger *zap.Logger) RecruitmentService {
	return &recruitmentService{repo: repo, audit: audit, logger: logger, now: time.Now}
}

// ── drives ──

func (s *recruitmentService) CreateDrive(ctx context.Context, actor *Actor, req *dto.CreateDriveRequest) (*model.RecruitmentDrive, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	drive := &model.RecruitmentDrive{
		Title:            req.Title,
		Description:      req.Description,
		RegistrationLink: req.RegistrationLink,
		IsPublic:         true,
	}
	if req.IsPublic != nil {
		drive.IsPublic = *req.IsPublic
	}
	if err := s.repo.Drive.Create(ctx, drive); err != nil {
		s.logger.Error("creating drive failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "drive.create", drive.DriveID, drive.Title)
	return drive, nil
}

func (s *recruitmentService) GetDrive(ctx context.Context, actor *Actor, id string) (*model.RecruitmentDrive, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	drive, err := s.repo.Drive.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}
	return drive, nil
}

func (s *recruitmentService) ListDrives(ctx context.Context, actor *Actor) ([]model.RecruitmentDrive, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	return s.repo.Drive.List(ctx)
}

func (s *recruitmentService) UpdateDrive(ctx context.Context, actor *Actor, id string, req *dto.UpdateDriveRequest) (*model.RecruitmentDrive, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	drive, err := s.repo.Drive.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		drive.Title = *req.Title
	}
	if req.Description != nil {
		drive.Description = *req.Description
	}
	if req.RegistrationLink != nil {
		drive.RegistrationLink = *req.RegistrationLink
	}
	if req.IsPublic != nil {
		drive.IsPublic = *req.IsPublic
	}

	if err := s.repo.Drive.Update(ctx, drive); err != nil {
		s.logger.Error("updating drive failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "drive.update", drive.DriveID, drive.Title)
	return drive, nil
}

func (s *recruitmentService) DeleteDrive(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageForms) {
		return ErrPermissionDenied
	}

	drive, err := s.repo.Drive.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDriveNotFound
		}
		return err
	}

	if err := s.repo.Drive.Delete(ctx, id); err != nil {
		s.logger.Error("deleting drive failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, actor, "drive.delete", id, drive.Title)
	return nil
}

func (s *recruitmentService) ActivateDrive(ctx context.Context, actor *Actor, id string) (*model.RecruitmentDrive, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	var drive *model.RecruitmentDrive
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		d, err := tx.Drive.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDriveNotFound
			}
			return err
		}
		if err := tx.Drive.ClearActiveExcept(ctx, id); err != nil {
			return err
		}
		d.IsActive = true
		if err := tx.Drive.Update(ctx, d); err != nil {
			return err
		}
		drive = d
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			s.logger.Error("activating drive failed", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.audit.Record(ctx, actor, "drive.activate", drive.DriveID, drive.Title)
	return drive, nil
}

func (s *recruitmentService) DeactivateDrive(ctx context.Context, actor *Actor, id string) (*model.RecruitmentDrive, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	drive, err := s.repo.Drive.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}
	if drive.IsActive {
		drive.IsActive = false
		if err := s.repo.Drive.Update(ctx, drive); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, actor, "drive.deactivate", drive.DriveID, drive.Title)
	return drive, nil
}

func (s *recruitmentService) ActivePublicDrive(ctx context.Context) (*model.RecruitmentDrive, error) {
	drive, err := s.repo.Drive.GetActivePublic(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveDrive
		}
		return nil, err
	}
	return drive, nil
}

// ── timeline ──

func (s *recruitmentService) CreateTimelineEvent(ctx context.Context, actor *Actor, req *dto.CreateTimelineEventRequest) (*model.TimelineEvent, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	if _, err := s.repo.Drive.GetByID(ctx, req.DriveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}

	te := &model.TimelineEvent{
		DriveID:     req.DriveID,
		Title:       req.Title,
		Date:        req.Date,
		IsTentative: req.IsTentative,
		Order:       req.Order,
	}
	if err := s.repo.Timeline.Create(ctx, te); err != nil {
		s.logger.Error("creating timeline event failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "timeline.create", te.TimelineEventID, te.Title)
	return te, nil
}

func (s *recruitmentService) UpdateTimelineEvent(ctx context.Context, actor *Actor, id string, req *dto.UpdateTimelineEventRequest) (*model.TimelineEvent, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	te, err := s.repo.Timeline.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimelineEventNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		te.Title = *req.Title
	}
	if req.Date != nil && !req.Date.Equal(te.Date) {
		// Keep only the first pre-reschedule date; later moves must not
		// rewrite history.
		if te.OriginalDate == nil {
			orig := te.Date
			te.OriginalDate = &orig
		}
		te.Date = *req.Date
	}
	if req.IsCompleted != nil {
		te.IsCompleted = *req.IsCompleted
	}
	if req.IsTentative != nil {
		te.IsTentative = *req.IsTentative
	}
	if req.Order != nil {
		te.Order = *req.Order
	}

	if err := s.repo.Timeline.Update(ctx, te); err != nil {
		s.logger.Error("updating timeline event failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "timeline.update", te.TimelineEventID, te.Title)
	return te, nil
}

func (s *recruitmentService) DeleteTimelineEvent(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageForms) {
		return ErrPermissionDenied
	}

	if _, err := s.repo.Timeline.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimelineEventNotFound
		}
		return err
	}

	return s.repo.Timeline.Delete(ctx, id)
}

// ── assignments ──

func (s *recruitmentService) CreateAssignment(ctx context.Context, actor *Actor, req *dto.CreateAssignmentRequest) (*model.RecruitmentAssignment, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(req.FileRef) == "" && strings.TrimSpace(req.ExternalLink) == "" {
		return nil, ErrAssignmentNeedsBody
	}

	if _, err := s.repo.Drive.GetByID(ctx, req.DriveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}
	if req.SigID != nil {
		if _, err := s.repo.Sig.GetByID(ctx, *req.SigID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSigNotFound
			}
			return nil, err
		}
	}

	a := &model.RecruitmentAssignment{
		DriveID:      req.DriveID,
		SigID:        req.SigID,
		Title:        req.Title,
		Description:  req.Description,
		FileRef:      req.FileRef,
		ExternalLink: req.ExternalLink,
	}
	if err := s.repo.Assignment.Create(ctx, a); err != nil {
		s.logger.Error("creating assignment failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "assignment.create", a.AssignmentID, a.Title)
	return a, nil
}

func (s *recruitmentService) DeleteAssignment(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageForms) {
		return ErrPermissionDenied
	}

	if _, err := s.repo.Assignment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	return s.repo.Assignment.Delete(ctx, id)
}

// ── applications ──

func (s *recruitmentService) SubmitAssessment(ctx context.Context, req *dto.SubmitAssessmentRequest) (*model.RecruitmentApplication, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return nil, apperrors.Validationf("identifier is required")
	}
	if req.DriveID == "" {
		return nil, apperrors.Validationf("drive is required")
	}
	if strings.TrimSpace(req.FileRef) == "" && strings.TrimSpace(req.SolutionLink) == "" {
		return nil, ErrSubmissionNeedsBody
	}

	if _, err := s.repo.Drive.GetByID(ctx, req.DriveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}
	if req.SigID != "" {
		if _, err := s.repo.Sig.GetByID(ctx, req.SigID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSigNotFound
			}
			return nil, err
		}
	}

	app, err := s.repo.Application.GetOrCreate(ctx, req.DriveID, identifier)
	if err != nil {
		s.logger.Error("upserting application failed",
			zap.String("drive_id", req.DriveID),
			zap.Error(err))
		return nil, err
	}

	// Resubmission replaces the previous submission; empty optional fields
	// leave earlier values in place.
	if req.CandidateName != "" {
		app.CandidateName = req.CandidateName
	}
	if req.SigID != "" {
		sigID := req.SigID
		app.SigID = &sigID
	}
	if req.FileRef != "" {
		app.AssessmentFileRef = req.FileRef
	}
	if req.SolutionLink != "" {
		app.SolutionLink = req.SolutionLink
	}
	now := s.now()
	app.AssessmentSubmittedAt = &now

	// Only early-stage candidates advance automatically; anyone already
	// past the assessment stage keeps their status.
	if app.Status == model.StatusApplied || app.Status == model.StatusAssessmentPending {
		app.Status = model.StatusAssessmentCompleted
	}

	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("saving submission failed",
			zap.String("application_id", app.ApplicationID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("assessment submitted",
		zap.String("drive_id", app.DriveID),
		zap.String("identifier", app.Identifier),
		zap.String("status", string(app.Status)))
	return app, nil
}

func (s *recruitmentService) ListApplications(ctx context.Context, actor *Actor, driveID string) ([]model.RecruitmentApplication, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.repo.Drive.GetByID(ctx, driveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}
	return s.repo.Application.ListByDrive(ctx, driveID)
}

func (s *recruitmentService) GetApplication(ctx context.Context, actor *Actor, id string) (*model.RecruitmentApplication, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *recruitmentService) UpdateApplication(ctx context.Context, actor *Actor, id string, req *dto.UpdateApplicationRequest) (*model.RecruitmentApplication, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if req.Status != nil {
		next := model.ApplicationStatus(*req.Status)
		if !next.Valid() {
			return nil, ErrUnknownStatus
		}
		if next != app.Status && !app.Status.CanTransition(next) {
			return nil, ErrBadStatusTransition
		}
		app.Status = next
	}
	if req.CandidateName != nil {
		app.CandidateName = *req.CandidateName
	}
	if req.SigID != nil {
		if *req.SigID == "" {
			app.SigID = nil
		} else {
			if _, err := s.repo.Sig.GetByID(ctx, *req.SigID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrSigNotFound
				}
				return nil, err
			}
			app.SigID = req.SigID
		}
	}
	if req.OAScore != nil {
		app.OAScore = req.OAScore
	}
	if req.AssessmentScore != nil {
		app.AssessmentScore = req.AssessmentScore
	}
	if req.InterviewScore != nil {
		app.InterviewScore = req.InterviewScore
	}

	if err := s.repo.Application.Update(ctx, app); err != nil {
		s.logger.Error("updating application failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "application.update", app.ApplicationID, app.Identifier)
	return app, nil
}

func (s *recruitmentService) DeleteApplication(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageForms) {
		return ErrPermissionDenied
	}

	app, err := s.repo.Application.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}

	if err := s.repo.Application.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, "application.delete", id, app.Identifier)
	return nil
}
