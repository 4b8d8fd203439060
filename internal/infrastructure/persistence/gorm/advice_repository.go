package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutriplan/v1/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MedicalAdviceRepository implements outbound.MedicalAdviceRepository on GORM.
type MedicalAdviceRepository struct {
	db *gorm.DB
}

// NewMedicalAdviceRepository creates a GORM-backed advice repository.
func NewMedicalAdviceRepository(db *gorm.DB) *MedicalAdviceRepository {
	return &MedicalAdviceRepository{db: db}
}

// FindByUser returns the cached advice for a user, or (nil, nil) when none
// is stored.
func (r *MedicalAdviceRepository) FindByUser(ctx context.Context, userID int64) (*outbound.MedicalAdvice, error) {
	var model MedicalAdviceModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find medical advice: %w", err)
	}
	return adviceFromModel(&model), nil
}

// Save upserts the advice record for a user. Last write wins.
func (r *MedicalAdviceRepository) Save(ctx context.Context, advice *outbound.MedicalAdvice) error {
	model := adviceToModel(advice)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save medical advice: %w", err)
	}
	return nil
}
