// Package gorm provides the GORM models and repositories for the
// medical-advice cache and user profiles. The stored wire shape keeps list
// fields as comma-joined strings and nutrient limits as a JSON blob; the
// mappers in this package are the only place that format is handled.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nutriplan/v1/internal/domain/nutrition"
)

// MedicalAdviceModel is the stored form of one user's derived dietary advice.
// Column names are pinned to the established wire shape so existing rows
// stay readable.
type MedicalAdviceModel struct {
	UserID     int64       `gorm:"primaryKey;column:user_id"`
	Conditions string      `gorm:"column:health_condition;type:text"`
	Notes      string      `gorm:"column:medical_advice;type:text"`
	Avoid      string      `gorm:"column:avoid;type:text"`
	Limit      string      `gorm:"column:dietary_limit;type:text"`
	Limits     BoundsField `gorm:"column:dietary_constraints;type:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the default pluralization.
func (MedicalAdviceModel) TableName() string {
	return "medical_advice"
}

// UserProfileModel is the stored long-term dietary profile for one user.
type UserProfileModel struct {
	UserID           int64  `gorm:"primaryKey"`
	HealthConditions string `gorm:"type:text"`
	Restrictions     string `gorm:"type:text"`
	Avoid            string `gorm:"type:text"`
	Preferences      string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides the default pluralization.
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// BoundsField stores per-nutrient bounds as a JSON column.
type BoundsField map[string]nutrition.Bound

// Value implements driver.Valuer.
func (b BoundsField) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bounds: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (b *BoundsField) Scan(value interface{}) error {
	if value == nil {
		*b = BoundsField{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into BoundsField", value)
	}

	if len(data) == 0 {
		*b = BoundsField{}
		return nil
	}
	return json.Unmarshal(data, b)
}
