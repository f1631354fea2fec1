package repository

import (
	"context"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// SigRepository is the sig data-access interface.
type SigRepository interface {
	Create(ctx context.Context, sig *model.Sig) error
	GetByID(ctx context.Context, id string) (*model.Sig, error)
	List(ctx context.Context) ([]model.Sig, error)
	Update(ctx context.Context, sig *model.Sig) error
	Delete(ctx context.Context, id string) error
}

type sigRepo struct {
	db *gorm.DB
}

// NewSigRepo creates the GORM-backed SigRepository.
func NewSigRepo(db *gorm.DB) SigRepository {
	return &sigRepo{db: db}
}

func (r *sigRepo) Create(ctx context.Context, sig *model.Sig) error {
	return r.db.WithContext(ctx).Create(sig).Error
}

func (r *sigRepo) GetByID(ctx context.Context, id string) (*model.Sig, error) {
	var sig model.Sig
	if err := r.db.WithContext(ctx).Where("sig_id = ?", id).First(&sig).Error; err != nil {
		return nil, err
	}
	return &sig, nil
}

func (r *sigRepo) List(ctx context.Context) ([]model.Sig, error) {
	var sigs []model.Sig
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sigs).Error; err != nil {
		return nil, err
	}
	return sigs, nil
}

func (r *sigRepo) Update(ctx context.Context, sig *model.Sig) error {
	return r.db.WithContext(ctx).Save(sig).Error
}

func (r *sigRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("sig_id = ?", id).Delete(&model.Sig{}).Error
}
