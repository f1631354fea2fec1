package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// InterviewSlotRepository is the slot data-access interface.
type InterviewSlotRepository interface {
	Create(ctx context.Context, slot *model.InterviewSlot) error
	GetByID(ctx context.Context, id string) (*model.InterviewSlot, error)
	ListByPanel(ctx context.Context, panelID string) ([]model.InterviewSlot, error)
	// HasOverlap reports whether any existing slot on the panel intersects
	// the half-open interval [start, end).
	HasOverlap(ctx context.Context, panelID string, start, end time.Time) (bool, error)
	// ExistsForApplication reports whether the application already holds a
	// slot on any panel. Slots are one per application.
	ExistsForApplication(ctx context.Context, applicationID string) (bool, error)
	Update(ctx context.Context, slot *model.InterviewSlot) error
	Delete(ctx context.Context, id string) error
}

type interviewSlotRepo struct {
	db *gorm.DB
}

// NewInterviewSlotRepo creates the GORM-backed InterviewSlotRepository.
func NewInterviewSlotRepo(db *gorm.DB) InterviewSlotRepository {
	return &interviewSlotRepo{db: db}
}

func (r *interviewSlotRepo) Create(ctx context.Context, slot *model.InterviewSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *interviewSlotRepo) GetByID(ctx context.Context, id string) (*model.InterviewSlot, error) {
	var slot model.InterviewSlot
	err := r.db.WithContext(ctx).
		Preload("Application").
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *interviewSlotRepo) ListByPanel(ctx context.Context, panelID string) ([]model.InterviewSlot, error) {
	var slots []model.InterviewSlot
	err := r.db.WithContext(ctx).
		Preload("Application").
		Where("panel_id = ?", panelID).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *interviewSlotRepo) HasOverlap(ctx context.Context, panelID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InterviewSlot{}).
		Where("panel_id = ? AND start_time < ? AND end_time > ?", panelID, end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *interviewSlotRepo) ExistsForApplication(ctx context.Context, applicationID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InterviewSlot{}).
		Where("application_id = ?", applicationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *interviewSlotRepo) Update(ctx context.Context, slot *model.InterviewSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *interviewSlotRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("slot_id = ?", id).Delete(&model.InterviewSlot{}).Error
}
