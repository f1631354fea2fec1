package repository

import (
	"context"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// EventFilter narrows an event listing. The visibility policy in the
// service layer composes these fields per actor class; the repository only
// translates them to SQL.
type EventFilter struct {
	// PublishedOnly restricts the base set to PUBLISHED events.
	PublishedOnly bool
	// ExcludePersonal drops every PERSONAL event from the base set.
	ExcludePersonal bool
	// ExcludePersonalNotLedBy drops PERSONAL events not led by this user.
	ExcludePersonalNotLedBy string
	// IncludeLedBy additionally includes all events led by this user,
	// regardless of the base-set restrictions.
	IncludeLedBy string
}

// EventRepository is the event data-access interface.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// List returns events matching the filter, newest date first.
	List(ctx context.Context, filter EventFilter) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	SetVolunteers(ctx context.Context, event *model.Event, volunteers []model.User) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates the GORM-backed EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Sig").
		Preload("Lead").
		Preload("Volunteers").
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	base := "1=1"
	var args []interface{}

	if filter.PublishedOnly {
		base += " AND visibility = ?"
		args = append(args, model.EventVisibilityPublished)
	}
	if filter.ExcludePersonal {
		base += " AND scope <> ?"
		args = append(args, model.EventScopePersonal)
	}
	if filter.ExcludePersonalNotLedBy != "" {
		base += " AND NOT (scope = ? AND (lead_id IS NULL OR lead_id <> ?))"
		args = append(args, model.EventScopePersonal, filter.ExcludePersonalNotLedBy)
	}

	where := "(" + base + ")"
	if filter.IncludeLedBy != "" {
		where += " OR lead_id = ?"
		args = append(args, filter.IncludeLedBy)
	}

	var events []model.Event
	err := r.db.WithContext(ctx).
		Preload("Sig").
		Preload("Lead").
		Where(where, args...).
		Order("date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("event_id = ?", id).Delete(&model.Event{}).Error
}

func (r *eventRepo) SetVolunteers(ctx context.Context, event *model.Event, volunteers []model.User) error {
	return r.db.WithContext(ctx).Model(event).Association("Volunteers").Replace(volunteers)
}
