package repository

import (
	"context"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// TimelineEventRepository is the timeline data-access interface.
type TimelineEventRepository interface {
	Create(ctx context.Context, te *model.TimelineEvent) error
	GetByID(ctx context.Context, id string) (*model.TimelineEvent, error)
	ListByDrive(ctx context.Context, driveID string) ([]model.TimelineEvent, error)
	Update(ctx context.Context, te *model.TimelineEvent) error
	Delete(ctx context.Context, id string) error
}

type timelineEventRepo struct {
	db *gorm.DB
}

// NewTimelineEventRepo creates the GORM-backed TimelineEventRepository.
func NewTimelineEventRepo(db *gorm.DB) TimelineEventRepository {
	return &timelineEventRepo{db: db}
}

func (r *timelineEventRepo) Create(ctx context.Context, te *model.TimelineEvent) error {
	return r.db.WithContext(ctx).Create(te).Error
}

func (r *timelineEventRepo) GetByID(ctx context.Context, id string) (*model.TimelineEvent, error) {
	var te model.TimelineEvent
	if err := r.db.WithContext(ctx).Where("timeline_event_id = ?", id).First(&te).Error; err != nil {
		return nil, err
	}
	return &te, nil
}

func (r *timelineEventRepo) ListByDrive(ctx context.Context, driveID string) ([]model.TimelineEvent, error) {
	var events []model.TimelineEvent
	err := r.db.WithContext(ctx).
		Where("drive_id = ?", driveID).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *timelineEventRepo) Update(ctx context.Context, te *model.TimelineEvent) error {
	return r.db.WithContext(ctx).Save(te).Error
}

func (r *timelineEventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("timeline_event_id = ?", id).Delete(&model.TimelineEvent{}).Error
}
