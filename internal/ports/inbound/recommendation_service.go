// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters): the contracts HTTP, CLI, or chat adapters call into the core.
package inbound

import (
	"context"

	"github.com/nutriplan/v1/internal/domain/recommendation"
)

// UserData is the profile snapshot loaded for the requesting user before the
// pipeline runs. All lists default to empty.
type UserData struct {
	HealthConditions []string
	Restrictions     []string
	Avoid            []string
	Preferences      []string
}

// Session carries the per-request user context. Providers never hold this as
// instance state; it travels through every call.
type Session struct {
	UserID   int64
	UserData UserData
}

// RecommendationService is the core use case: turn a natural-language food
// request into a safety-filtered recommendation result.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, session Session, query string) (*recommendation.Result, error)
}
