package repository

import (
	"context"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// TeamPositionRepository is the team-position data-access interface.
type TeamPositionRepository interface {
	Create(ctx context.Context, pos *model.TeamPosition) error
	GetByID(ctx context.Context, id string) (*model.TeamPosition, error)
	// FindByNameFold matches a position by case-insensitive exact name.
	// Position names are not unique; ties are broken by created_at ASC so
	// repeated lookups of a duplicated name resolve deterministically to
	// the oldest position.
	FindByNameFold(ctx context.Context, name string) (*model.TeamPosition, error)
	List(ctx context.Context) ([]model.TeamPosition, error)
	Update(ctx context.Context, pos *model.TeamPosition) error
	Delete(ctx context.Context, id string) error
}

type teamPositionRepo struct {
	db *gorm.DB
}

// NewTeamPositionRepo creates the GORM-backed TeamPositionRepository.
func NewTeamPositionRepo(db *gorm.DB) TeamPositionRepository {
	return &teamPositionRepo{db: db}
}

func (r *teamPositionRepo) Create(ctx context.Context, pos *model.TeamPosition) error {
	return r.db.WithContext(ctx).Create(pos).Error
}

func (r *teamPositionRepo) GetByID(ctx context.Context, id string) (*model.TeamPosition, error) {
	var pos model.TeamPosition
	err := r.db.WithContext(ctx).
		Preload("RoleLink").
		Where("position_id = ?", id).
		First(&pos).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *teamPositionRepo) FindByNameFold(ctx context.Context, name string) (*model.TeamPosition, error) {
	var pos model.TeamPosition
	err := r.db.WithContext(ctx).
		Preload("RoleLink").
		Where("LOWER(name) = LOWER(?)", name).
		Order("created_at ASC").
		First(&pos).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *teamPositionRepo) List(ctx context.Context) ([]model.TeamPosition, error) {
	var positions []model.TeamPosition
	err := r.db.WithContext(ctx).
		Preload("RoleLink").
		Order(`"order" ASC, created_at ASC`).
		Find(&positions).Error
	if err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *teamPositionRepo) Update(ctx context.Context, pos *model.TeamPosition) error {
	return r.db.WithContext(ctx).Save(pos).Error
}

func (r *teamPositionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("position_id = ?", id).Delete(&model.TeamPosition{}).Error
}
