package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/model"
	"club-nexus/backend/internal/repository"
	"club-nexus/backend/pkg/apperrors"
	"club-nexus/backend/pkg/storage"
)

// ── event business errors ──

var (
	ErrEventNotFound = apperrors.NotFound(errors.New("event not found"))
	ErrBadEventScope = apperrors.Validation(errors.New("SIG-scoped events require a sig"))
)

// EventService owns event CRUD and the listing visibility policy.
//
// Visibility, by actor class:
//   - anonymous: PUBLISHED events that are not PERSONAL
//   - superuser: everything
//   - event manager: everything except PERSONAL events led by someone else
//   - member: PUBLISHED non-PERSONAL events, plus their own events in any
//     state
//
// All listings are ordered by event date, newest first.
type EventService interface {
	List(ctx context.Context, actor *Actor) ([]dto.EventResponse, error)
	GetByID(ctx context.Context, actor *Actor, id string) (*dto.EventResponse, error)
	Create(ctx context.Context, actor *Actor, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	Update(ctx context.Context, actor *Actor, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, actor *Actor, id string) error
	SetImage(ctx context.Context, actor *Actor, id, imageRef string) (*dto.EventResponse, error)
}

type eventService struct {
	repo   *repository.Repository
	store  storage.Store
	audit  AuditService
	logger *zap.Logger
}

// NewEventService creates an EventService.
func NewEventService(repo *repository.Repository, store storage.Store, audit AuditService, logger *zap.Logger) EventService {
	return &eventService{repo: repo, store: store, audit: audit, logger: logger}
}

// filterFor translates an actor class into a repository filter.
func filterFor(actor *Actor) repository.EventFilter {
	switch {
	case actor == nil:
		// Anonymous viewers get published, non-personal events. The
		// published-only restriction is deliberate: drafts stay private.
		return repository.EventFilter{PublishedOnly: true, ExcludePersonal: true}
	case actor.IsSuperuser:
		return repository.EventFilter{}
	case actor.Can(CapManageEvents):
		return repository.EventFilter{ExcludePersonalNotLedBy: actor.UserID}
	default:
		return repository.EventFilter{
			PublishedOnly:   true,
			ExcludePersonal: true,
			IncludeLedBy:    actor.UserID,
		}
	}
}

// visibleTo applies the same policy to a single record.
func visibleTo(actor *Actor, event *model.Event) bool {
	ownedBySelf := actor != nil && event.LeadID != nil && *event.LeadID == actor.UserID

	switch {
	case actor == nil:
		return event.Visibility == model.EventVisibilityPublished &&
			event.Scope != model.EventScopePersonal
	case actor.IsSuperuser:
		return true
	case actor.Can(CapManageEvents):
		return event.Scope != model.EventScopePersonal || ownedBySelf
	default:
		if ownedBySelf {
			return true
		}
		return event.Visibility == model.EventVisibilityPublished &&
			event.Scope != model.EventScopePersonal
	}
}

func (s *eventService) List(ctx context.Context, actor *Actor) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.List(ctx, filterFor(actor))
	if err != nil {
		s.logger.Error("listing events failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *s.toEventResponse(&events[i]))
	}
	return result, nil
}

func (s *eventService) GetByID(ctx context.Context, actor *Actor, id string) (*dto.EventResponse, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(actor, event) {
		// Hidden records read as absent, not forbidden.
		return nil, ErrEventNotFound
	}
	return s.toEventResponse(event), nil
}

func (s *eventService) Create(ctx context.Context, actor *Actor, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !actor.Can(CapManageEvents) {
		return nil, ErrPermissionDenied
	}

	scope := req.Scope
	if scope == "" {
		scope = model.EventScopeGlobal
	}
	if scope == model.EventScopeSig && req.SigID == nil {
		return nil, ErrBadEventScope
	}

	status := req.Status
	if status == "" {
		status = model.EventStatusUpcoming
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = model.EventVisibilityDraft
	}

	lead := req.LeadID
	if lead == nil {
		// The creating actor becomes the owner by default.
		id := actor.UserID
		lead = &id
	}

	isFull := true
	if req.IsFullEvent != nil {
		isFull = *req.IsFullEvent
	}

	event := &model.Event{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		DueDate:          req.DueDate,
		Scope:            scope,
		SigID:            req.SigID,
		IsFullEvent:      isFull,
		Location:         req.Location,
		Status:           status,
		Visibility:       visibility,
		LeadID:           lead,
		RegistrationLink: req.RegistrationLink,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("creating event failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "event.create", event.EventID, event.Title)
	return s.toEventResponse(event), nil
}

func (s *eventService) Update(ctx context.Context, actor *Actor, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if !actor.Can(CapManageEvents) {
		return nil, ErrPermissionDenied
	}

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.DueDate != nil {
		event.DueDate = req.DueDate
	}
	if req.Scope != nil {
		event.Scope = *req.Scope
	}
	if req.SigID != nil {
		event.SigID = req.SigID
	}
	if req.IsFullEvent != nil {
		event.IsFullEvent = *req.IsFullEvent
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.Visibility != nil {
		event.Visibility = *req.Visibility
	}
	if req.LeadID != nil {
		event.LeadID = req.LeadID
	}
	if req.RegistrationLink != nil {
		event.RegistrationLink = *req.RegistrationLink
	}

	if event.Scope == model.EventScopeSig && event.SigID == nil {
		return nil, ErrBadEventScope
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("updating event failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.VolunteerIDs != nil {
		volunteers := make([]model.User, 0, len(req.VolunteerIDs))
		for _, uid := range req.VolunteerIDs {
			u, err := s.repo.User.GetByID(ctx, uid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrUserNotFound
				}
				return nil, err
			}
			volunteers = append(volunteers, *u)
		}
		if err := s.repo.Event.SetVolunteers(ctx, event, volunteers); err != nil {
			s.logger.Error("setting event volunteers failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	s.audit.Record(ctx, actor, "event.update", event.EventID, event.Title)
	return s.toEventResponse(event), nil
}

func (s *eventService) Delete(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageEvents) {
		return ErrPermissionDenied
	}

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return err
	}

	if event.ImageRef != "" {
		if err := s.store.Remove(event.ImageRef); err != nil {
			s.logger.Warn("removing event image failed", zap.String("ref", event.ImageRef), zap.Error(err))
		}
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("deleting event failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, actor, "event.delete", id, event.Title)
	return nil
}

func (s *eventService) SetImage(ctx context.Context, actor *Actor, id, imageRef string) (*dto.EventResponse, error) {
	if !actor.Can(CapManageEvents) {
		return nil, ErrPermissionDenied
	}

	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.ImageRef != "" && event.ImageRef != imageRef {
		if err := s.store.Remove(event.ImageRef); err != nil {
			s.logger.Warn("removing replaced event image failed", zap.String("ref", event.ImageRef), zap.Error(err))
		}
	}

	event.ImageRef = imageRef
	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("updating event image failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toEventResponse(event), nil
}

// ── helpers ──

func (s *eventService) getEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("loading event failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return event, nil
}

func (s *eventService) toEventResponse(event *model.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:               event.EventID,
		Title:            event.Title,
		Description:      event.Description,
		Date:             event.Date,
		DueDate:          event.DueDate,
		Scope:            event.Scope,
		SigID:            event.SigID,
		IsFullEvent:      event.IsFullEvent,
		Location:         event.Location,
		Status:           event.Status,
		Visibility:       event.Visibility,
		LeadID:           event.LeadID,
		ImageURL:         s.store.URL(event.ImageRef),
		RegistrationLink: event.RegistrationLink,
		CreatedAt:        event.CreatedAt,
	}
	if event.Sig != nil {
		resp.SigName = event.Sig.Name
	}
	if event.Lead != nil {
		resp.LeadName = event.Lead.Username
	}
	return resp
}
