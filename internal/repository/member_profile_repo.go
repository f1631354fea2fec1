package repository

import (
	"context"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
)

// MemberProfileRepository is the member-profile data-access interface.
type MemberProfileRepository interface {
	Create(ctx context.Context, profile *model.MemberProfile) error
	GetByUserID(ctx context.Context, userID string) (*model.MemberProfile, error)
	Update(ctx context.Context, profile *model.MemberProfile) error
}

type memberProfileRepo struct {
	db *gorm.DB
}

// NewMemberProfileRepo creates the GORM-backed MemberProfileRepository.
func NewMemberProfileRepo(db *gorm.DB) MemberProfileRepository {
	return &memberProfileRepo{db: db}
}

func (r *memberProfileRepo) Create(ctx context.Context, profile *model.MemberProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *memberProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.MemberProfile, error) {
	var profile model.MemberProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *memberProfileRepo) Update(ctx context.Context, profile *model.MemberProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
