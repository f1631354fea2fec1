package repository

import (
	"context"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// RecruitmentDriveRepository is the drive data-access interface.
type RecruitmentDriveRepository interface {
	Create(ctx context.Context, drive *model.RecruitmentDrive) error
	GetByID(ctx context.Context, id string) (*model.RecruitmentDrive, error)
	// GetActivePublic returns the single drive with is_active and is_public
	// both set, or gorm.ErrRecordNotFound.
	GetActivePublic(ctx context.Context) (*model.RecruitmentDrive, error)
	List(ctx context.Context) ([]model.RecruitmentDrive, error)
	Update(ctx context.Context, drive *model.RecruitmentDrive) error
	Delete(ctx context.Context, id string) error
	// ClearActiveExcept unsets is_active on every drive but the given one.
	ClearActiveExcept(ctx context.Context, id string) error
}

type recruitmentDriveRepo struct {
	db *gorm.DB
}

// NewRecruitmentDriveRepo creates the GORM-backed RecruitmentDriveRepository.
func NewRecruitmentDriveRepo(db *gorm.DB) RecruitmentDriveRepository {
	return &recruitmentDriveRepo{db: db}
}

func (r *recruitmentDriveRepo) Create(ctx context.Context, drive *model.RecruitmentDrive) error {
	return r.db.WithContext(ctx).Create(drive).Error
}

func (r *recruitmentDriveRepo) GetByID(ctx context.Context, id string) (*model.RecruitmentDrive, error) {
	var drive model.RecruitmentDrive
	err := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Preload("Assignments").
		Preload("Assignments.Sig").
		Where("drive_id = ?", id).
		First(&drive).Error
	if err != nil {
		return nil, err
	}
	return &drive, nil
}

func (r *recruitmentDriveRepo) GetActivePublic(ctx context.Context) (*model.RecruitmentDrive, error) {
	var drive model.RecruitmentDrive
	err := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Preload("Assignments").
		Preload("Assignments.Sig").
		Where("is_active = ? AND is_public = ?", true, true).
		First(&drive).Error
	if err != nil {
		return nil, err
	}
	return &drive, nil
}

func (r *recruitmentDriveRepo) List(ctx context.Context) ([]model.RecruitmentDrive, error) {
	var drives []model.RecruitmentDrive
	err := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Order("created_at DESC").
		Find(&drives).Error
	if err != nil {
		return nil, err
	}
	return drives, nil
}

func (r *recruitmentDriveRepo) Update(ctx context.Context, drive *model.RecruitmentDrive) error {
	return r.db.WithContext(ctx).Save(drive).Error
}

func (r *recruitmentDriveRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("drive_id = ?", id).Delete(&model.RecruitmentDrive{}).Error
}

func (r *recruitmentDriveRepo) ClearActiveExcept(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.RecruitmentDrive{}).
		Where("is_active = ? AND drive_id <> ?", true, id).
		Update("is_active", false).Error
}
