package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutriplan/v1/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository implements outbound.ProfileRepository on GORM.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a GORM-backed profile repository.
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByUser returns the stored profile, or (nil, nil) when the user has
// no profile yet.
func (r *ProfileRepository) FindByUser(ctx context.Context, userID int64) (*outbound.UserProfile, error) {
	var model UserProfileModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user profile: %w", err)
	}
	return profileFromModel(&model), nil
}

// Save upserts the profile record for a user.
func (r *ProfileRepository) Save(ctx context.Context, profile *outbound.UserProfile) error {
	model := profileToModel(profile)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	return nil
}
