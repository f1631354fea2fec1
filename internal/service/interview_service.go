package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/model"
	"club-nexus/backend/internal/repository"
	"club-nexus/backend/pkg/apperrors"
)

// ── interview business errors ──

var (
	ErrPanelNotFound      = apperrors.NotFound(errors.New("interview panel not found"))
	ErrPanelNumberTaken   = apperrors.Conflict(errors.New("panel number already used in this drive"))
	ErrSlotNotFound       = apperrors.NotFound(errors.New("interview slot not found"))
	ErrSlotOverlap        = apperrors.Conflict(errors.New("slot overlaps an existing slot on this panel"))
	ErrAlreadyBooked      = apperrors.Conflict(errors.New("application already holds an interview slot"))
	ErrNoScheduleConfig   = apperrors.Validation(errors.New("panel has no start time or slot duration configured"))
	ErrCandidateListEmpty = apperrors.Validation(errors.New("candidate list is empty"))
)

// InterviewService owns panels and the sequential slot generation that
// books candidates onto them.
type InterviewService interface {
	CreatePanel(ctx context.Context, actor *Actor, req *dto.CreatePanelRequest) (*model.InterviewPanel, error)
	GetPanel(ctx context.Context, actor *Actor, id string) (*model.InterviewPanel, error)
	ListPanels(ctx context.Context, actor *Actor, driveID string) ([]model.InterviewPanel, error)
	UpdatePanel(ctx context.Context, actor *Actor, id string, req *dto.UpdatePanelRequest) (*model.InterviewPanel, error)
	DeletePanel(ctx context.Context, actor *Actor, id string) error

	// GenerateSlots books back-to-back slots for the given applications,
	// starting from the resolved start time and advancing by the resolved
	// duration. Unknown application IDs are skipped without aborting the
	// run; the cursor only advances past slots that were actually created.
	GenerateSlots(ctx context.Context, actor *Actor, panelID string, req *dto.GenerateSlotsRequest) (*dto.SlotGenerationResult, error)

	ListSlots(ctx context.Context, actor *Actor, panelID string) ([]model.InterviewSlot, error)
	UpdateSlotStatus(ctx context.Context, actor *Actor, slotID, status string) (*model.InterviewSlot, error)
	DeleteSlot(ctx context.Context, actor *Actor, slotID string) error
}

type interviewService struct {
	repo   *repository.Repository
	audit  AuditService
	logger *zap.Logger
}

// NewInterviewService creates an InterviewService.
func NewInterviewService(repo *repository.Repository, audit AuditService, logger *zap.Logger) InterviewService {
	return &interviewService{repo: repo, audit: audit, logger: logger}
}

// ── panels ──

func (s *interviewService) CreatePanel(ctx context.Context, actor *Actor, req *dto.CreatePanelRequest) (*model.InterviewPanel, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	if _, err := s.repo.Drive.GetByID(ctx, req.DriveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}

	existing, err := s.repo.Panel.ListByDrive(ctx, req.DriveID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.PanelNumber == req.PanelNumber {
			return nil, ErrPanelNumberTaken
		}
	}

	panel := &model.InterviewPanel{
		DriveID:      req.DriveID,
		PanelNumber:  req.PanelNumber,
		Name:         req.Name,
		StartTime:    req.StartTime,
		SlotDuration: req.SlotDuration,
	}
	if err := s.repo.Panel.Create(ctx, panel); err != nil {
		s.logger.Error("creating panel failed", zap.Error(err))
		return nil, err
	}

	if len(req.MemberIDs) > 0 {
		members, err := s.resolveMembers(ctx, req.MemberIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Panel.SetMembers(ctx, panel, members); err != nil {
			s.logger.Error("setting panel members failed",
				zap.String("panel_id", panel.PanelID), zap.Error(err))
			return nil, err
		}
		panel.Members = members
	}

	s.audit.Record(ctx, actor, "panel.create", panel.PanelID, panel.Name)
	return panel, nil
}

func (s *interviewService) GetPanel(ctx context.Context, actor *Actor, id string) (*model.InterviewPanel, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	panel, err := s.repo.Panel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}
	return panel, nil
}

func (s *interviewService) ListPanels(ctx context.Context, actor *Actor, driveID string) ([]model.InterviewPanel, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.repo.Drive.GetByID(ctx, driveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriveNotFound
		}
		return nil, err
	}
	return s.repo.Panel.ListByDrive(ctx, driveID)
}

func (s *interviewService) UpdatePanel(ctx context.Context, actor *Actor, id string, req *dto.UpdatePanelRequest) (*model.InterviewPanel, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	panel, err := s.repo.Panel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		panel.Name = *req.Name
	}
	if req.StartTime != nil {
		panel.StartTime = req.StartTime
	}
	if req.SlotDuration != nil {
		panel.SlotDuration = req.SlotDuration
	}

	if err := s.repo.Panel.Update(ctx, panel); err != nil {
		s.logger.Error("updating panel failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.MemberIDs != nil {
		members, err := s.resolveMembers(ctx, req.MemberIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Panel.SetMembers(ctx, panel, members); err != nil {
			return nil, err
		}
		panel.Members = members
	}

	s.audit.Record(ctx, actor, "panel.update", panel.PanelID, panel.Name)
	return panel, nil
}

func (s *interviewService) DeletePanel(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageForms) {
		return ErrPermissionDenied
	}

	if _, err := s.repo.Panel.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPanelNotFound
		}
		return err
	}

	if err := s.repo.Panel.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, "panel.delete", id, "")
	return nil
}

func (s *interviewService) resolveMembers(ctx context.Context, ids []string) ([]model.User, error) {
	members := make([]model.User, 0, len(ids))
	for _, uid := range ids {
		u, err := s.repo.User.GetByID(ctx, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		members = append(members, *u)
	}
	return members, nil
}

// ── slot generation ──

func (s *interviewService) GenerateSlots(ctx context.Context, actor *Actor, panelID string, req *dto.GenerateSlotsRequest) (*dto.SlotGenerationResult, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	if len(req.CandidateIDs) == 0 {
		return nil, ErrCandidateListEmpty
	}

	panel, err := s.repo.Panel.GetByID(ctx, panelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}

	// Overrides win; otherwise fall back to the panel's stored schedule.
	start := panel.StartTime
	if req.StartTime != nil {
		start = req.StartTime
	}
	duration := panel.SlotDuration
	if req.DurationMinutes != nil {
		duration = req.DurationMinutes
	}
	if start == nil || duration == nil || *duration <= 0 {
		return nil, ErrNoScheduleConfig
	}

	// Persist the resolved schedule so the next run can omit it.
	if req.StartTime != nil || req.DurationMinutes != nil {
		panel.StartTime = start
		panel.SlotDuration = duration
		if err := s.repo.Panel.Update(ctx, panel); err != nil {
			s.logger.Error("saving panel schedule failed",
				zap.String("panel_id", panelID), zap.Error(err))
			return nil, err
		}
	}

	step := time.Duration(*duration) * time.Minute
	cursor := *start
	result := &dto.SlotGenerationResult{
		CreatedSlotIDs: []string{},
		Skipped:        []string{},
	}

	order := len(panel.Slots)
	for _, appID := range req.CandidateIDs {
		app, err := s.repo.Application.GetByID(ctx, appID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Skip without consuming the time slot; the run itself
				// keeps going.
				s.logger.Warn("skipping unknown application",
					zap.String("panel_id", panelID),
					zap.String("application_id", appID))
				result.Skipped = append(result.Skipped, appID)
				continue
			}
			return nil, err
		}

		// One slot per application, across all panels.
		booked, err := s.repo.Slot.ExistsForApplication(ctx, app.ApplicationID)
		if err != nil {
			return nil, err
		}
		if booked {
			return nil, ErrAlreadyBooked
		}

		end := cursor.Add(step)
		clash, err := s.repo.Slot.HasOverlap(ctx, panelID, cursor, end)
		if err != nil {
			return nil, err
		}
		if clash {
			return nil, ErrSlotOverlap
		}

		slot := &model.InterviewSlot{
			PanelID:       panelID,
			ApplicationID: app.ApplicationID,
			StartTime:     cursor,
			EndTime:       end,
			Status:        model.SlotStatusScheduled,
			Order:         order,
		}
		if err := s.repo.Slot.Create(ctx, slot); err != nil {
			s.logger.Error("creating slot failed",
				zap.String("panel_id", panelID),
				zap.String("application_id", appID),
				zap.Error(err))
			return nil, err
		}

		slotStart := cursor
		app.Status = model.StatusInterviewScheduled
		app.InterviewTime = &slotStart
		if err := s.repo.Application.Update(ctx, app); err != nil {
			s.logger.Error("stamping interview time failed",
				zap.String("application_id", appID), zap.Error(err))
			return nil, err
		}

		result.CreatedSlotIDs = append(result.CreatedSlotIDs, slot.SlotID)
		cursor = end
		order++
	}

	s.audit.Record(ctx, actor, "panel.generate_slots", panelID, "")
	s.logger.Info("slot generation finished",
		zap.String("panel_id", panelID),
		zap.Int("created", len(result.CreatedSlotIDs)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// ── slots ──

func (s *interviewService) ListSlots(ctx context.Context, actor *Actor, panelID string) ([]model.InterviewSlot, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.repo.Panel.GetByID(ctx, panelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPanelNotFound
		}
		return nil, err
	}
	return s.repo.Slot.ListByPanel(ctx, panelID)
}

func (s *interviewService) UpdateSlotStatus(ctx context.Context, actor *Actor, slotID, status string) (*model.InterviewSlot, error) {
	if !actor.Can(CapManageForms) {
		return nil, ErrPermissionDenied
	}

	switch status {
	case model.SlotStatusScheduled, model.SlotStatusCompleted, model.SlotStatusNoShow:
	default:
		return nil, apperrors.Validationf("unknown slot status %q", status)
	}

	slot, err := s.repo.Slot.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	slot.Status = status
	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		return nil, err
	}

	// A finished interview moves the candidate forward in the pipeline.
	if status == model.SlotStatusCompleted {
		app, err := s.repo.Application.GetByID(ctx, slot.ApplicationID)
		if err == nil && app.Status.CanTransition(model.StatusInterviewCompleted) {
			app.Status = model.StatusInterviewCompleted
			if err := s.repo.Application.Update(ctx, app); err != nil {
				s.logger.Warn("advancing application after interview failed",
					zap.String("application_id", app.ApplicationID), zap.Error(err))
			}
		}
	}

	return slot, nil
}

func (s *interviewService) DeleteSlot(ctx context.Context, actor *Actor, slotID string) error {
	if !actor.Can(CapManageForms) {
		return ErrPermissionDenied
	}

	if _, err := s.repo.Slot.GetByID(ctx, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return err
	}

	return s.repo.Slot.Delete(ctx, slotID)
}
