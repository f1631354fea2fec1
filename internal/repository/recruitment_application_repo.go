package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"club-nexus/backend/internal/model"
)

// RecruitmentApplicationRepository is the application data-access interface.
type RecruitmentApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*model.RecruitmentApplication, error)
	GetByDriveAndIdentifier(ctx context.Context, driveID, identifier string) (*model.RecruitmentApplication, error)
	// GetOrCreate locates the application keyed by (drive, identifier),
	// creating it with status APPLIED when absent. Safe under concurrent
	// submission: the insert is ON CONFLICT DO NOTHING against the unique
	// (drive_id, identifier) constraint, followed by a fetch of the
	// canonical row.
	GetOrCreate(ctx context.Context, driveID, identifier string) (*model.RecruitmentApplication, error)
	ListByDrive(ctx context.Context, driveID string) ([]model.RecruitmentApplication, error)
	Update(ctx context.Context, app *model.RecruitmentApplication) error
	Delete(ctx context.Context, id string) error
}

type recruitmentApplicationRepo struct {
	db *gorm.DB
}

// NewRecruitmentApplicationRepo creates the GORM-backed RecruitmentApplicationRepository.
func NewRecruitmentApplicationRepo(db *gorm.DB) RecruitmentApplicationRepository {
	return &recruitmentApplicationRepo{db: db}
}

func (r *recruitmentApplicationRepo) GetByID(ctx context.Context, id string) (*model.RecruitmentApplication, error) {
	var app model.RecruitmentApplication
	err := r.db.WithContext(ctx).
		Preload("Sig").
		Where("application_id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *recruitmentApplicationRepo) GetByDriveAndIdentifier(ctx context.Context, driveID, identifier string) (*model.RecruitmentApplication, error) {
	var app model.RecruitmentApplication
	err := r.db.WithContext(ctx).
		Where("drive_id = ? AND identifier = ?", driveID, identifier).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *recruitmentApplicationRepo) GetOrCreate(ctx context.Context, driveID, identifier string) (*model.RecruitmentApplication, error) {
	app := &model.RecruitmentApplication{
		DriveID:    driveID,
		Identifier: identifier,
		Status:     model.StatusApplied,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "drive_id"}, {Name: "identifier"}},
			DoNothing: true,
		}).
		Create(app).Error
	if err != nil {
		return nil, err
	}
	// A conflicting insert writes nothing; fetch the canonical row in
	// either case.
	return r.GetByDriveAndIdentifier(ctx, driveID, identifier)
}

func (r *recruitmentApplicationRepo) ListByDrive(ctx context.Context, driveID string) ([]model.RecruitmentApplication, error) {
	var apps []model.RecruitmentApplication
	err := r.db.WithContext(ctx).
		Preload("Sig").
		Where("drive_id = ?", driveID).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *recruitmentApplicationRepo) Update(ctx context.Context, app *model.RecruitmentApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *recruitmentApplicationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("application_id = ?", id).Delete(&model.RecruitmentApplication{}).Error
}
