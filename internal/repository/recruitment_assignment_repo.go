package repository

import (
	"context"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// RecruitmentAssignmentRepository is the assignment data-access interface.
type RecruitmentAssignmentRepository interface {
	Create(ctx context.Context, a *model.RecruitmentAssignment) error
	GetByID(ctx context.Context, id string) (*model.RecruitmentAssignment, error)
	ListByDrive(ctx context.Context, driveID string) ([]model.RecruitmentAssignment, error)
	Update(ctx context.Context, a *model.RecruitmentAssignment) error
	Delete(ctx context.Context, id string) error
}

type recruitmentAssignmentRepo struct {
	db *gorm.DB
}

// NewRecruitmentAssignmentRepo creates the GORM-backed RecruitmentAssignmentRepository.
func NewRecruitmentAssignmentRepo(db *gorm.DB) RecruitmentAssignmentRepository {
	return &recruitmentAssignmentRepo{db: db}
}

func (r *recruitmentAssignmentRepo) Create(ctx context.Context, a *model.RecruitmentAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *recruitmentAssignmentRepo) GetByID(ctx context.Context, id string) (*model.RecruitmentAssignment, error) {
	var a model.RecruitmentAssignment
	err := r.db.WithContext(ctx).
		Preload("Sig").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *recruitmentAssignmentRepo) ListByDrive(ctx context.Context, driveID string) ([]model.RecruitmentAssignment, error) {
	var assignments []model.RecruitmentAssignment
	err := r.db.WithContext(ctx).
		Preload("Sig").
		Where("drive_id = ?", driveID).
		Order("created_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *recruitmentAssignmentRepo) Update(ctx context.Context, a *model.RecruitmentAssignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *recruitmentAssignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("assignment_id = ?", id).Delete(&model.RecruitmentAssignment{}).Error
}
