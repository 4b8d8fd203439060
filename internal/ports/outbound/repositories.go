package outbound

import (
	"context"
	"time"

	"github.com/nutriplan/v1/internal/domain/nutrition"
)

// MedicalAdvice is the cached constraint-derivation result for one user.
// The stored wire shape uses comma-joined strings and a JSON blob; the
// repository boundary parses those into proper lists so comma handling never
// leaks into the pipeline.
type MedicalAdvice struct {
	UserID     int64
	Conditions []string
	Notes      string
	Avoid      []string
	Limit      []string
	Limits     map[string]nutrition.Bound
	UpdatedAt  time.Time
}

// MedicalAdviceRepository persists the per-user medical-advice cache.
// FindByUser returns (nil, nil) when no record exists. Writes are
// last-write-wins; advice is idempotent guidance, not a ledger.
type MedicalAdviceRepository interface {
	FindByUser(ctx context.Context, userID int64) (*MedicalAdvice, error)
	Save(ctx context.Context, advice *MedicalAdvice) error
}

// UserProfile is the persisted long-term dietary data for one user.
type UserProfile struct {
	UserID           int64
	HealthConditions []string
	Restrictions     []string
	Avoid            []string
	Preferences      []string
}

// ProfileRepository persists user profiles. FindByUser returns (nil, nil)
// when the user has no stored profile yet.
type ProfileRepository interface {
	FindByUser(ctx context.Context, userID int64) (*UserProfile, error)
	Save(ctx context.Context, profile *UserProfile) error
}

// CacheRepository is a byte-oriented cache with TTL, used as the hot layer
// in front of the medical-advice store.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
