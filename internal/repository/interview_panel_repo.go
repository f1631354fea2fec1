package repository

import (
	"context"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// InterviewPanelRepository is the panel data-access interface.
type InterviewPanelRepository interface {
	Create(ctx context.Context, panel *model.InterviewPanel) error
	GetByID(ctx context.Context, id string) (*model.InterviewPanel, error)
	ListByDrive(ctx context.Context, driveID string) ([]model.InterviewPanel, error)
	Update(ctx context.Context, panel *model.InterviewPanel) error
	Delete(ctx context.Context, id string) error
	SetMembers(ctx context.Context, panel *model.InterviewPanel, members []model.User) error
}

type interviewPanelRepo struct {
	db *gorm.DB
}

// NewInterviewPanelRepo creates the GORM-backed InterviewPanelRepository.
func NewInterviewPanelRepo(db *gorm.DB) InterviewPanelRepository {
	return &interviewPanelRepo{db: db}
}

func (r *interviewPanelRepo) Create(ctx context.Context, panel *model.InterviewPanel) error {
	return r.db.WithContext(ctx).Create(panel).Error
}

func (r *interviewPanelRepo) GetByID(ctx context.Context, id string) (*model.InterviewPanel, error) {
	var panel model.InterviewPanel
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Preload("Slots.Application").
		Where("panel_id = ?", id).
		First(&panel).Error
	if err != nil {
		return nil, err
	}
	return &panel, nil
}

func (r *interviewPanelRepo) ListByDrive(ctx context.Context, driveID string) ([]model.InterviewPanel, error) {
	var panels []model.InterviewPanel
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("drive_id = ?", driveID).
		Order("panel_number ASC").
		Find(&panels).Error
	if err != nil {
		return nil, err
	}
	return panels, nil
}

func (r *interviewPanelRepo) Update(ctx context.Context, panel *model.InterviewPanel) error {
	return r.db.WithContext(ctx).Save(panel).Error
}

func (r *interviewPanelRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("panel_id = ?", id).Delete(&model.InterviewPanel{}).Error
}

func (r *interviewPanelRepo) SetMembers(ctx context.Context, panel *model.InterviewPanel, members []model.User) error {
	return r.db.WithContext(ctx).Model(panel).Association("Members").Replace(members)
}
