// Package recommendation provides the application layer for the
// recommendation pipeline: intent parsing, constraint resolution, query
// augmentation, recipe retrieval and the mandatory safety check, sequenced
// strictly in that order for every request.
package recommendation

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/application/safety"
	"github.com/nutriplan/v1/internal/domain/intent"
	"github.com/nutriplan/v1/internal/domain/nutrition"
	"github.com/nutriplan/v1/internal/domain/recommendation"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

// Pipeline implements the recommendation use case. Provider instances are
// long-lived stateless singletons shared across requests; all per-request
// state travels through arguments.
type Pipeline struct {
	intents  outbound.IntentParser
	medical  outbound.MedicalConstraintProvider
	recipes  outbound.RecipeProvider
	filter   *safety.Filter
	advice   outbound.MedicalAdviceRepository
	profiles outbound.ProfileRepository
	logger   *zap.Logger
}

// NewPipeline creates the recommendation pipeline. The advice and profile
// repositories may be nil; caching and profile snapshots are then skipped.
func NewPipeline(
	intents outbound.IntentParser,
	medical outbound.MedicalConstraintProvider,
	recipes outbound.RecipeProvider,
	filter *safety.Filter,
	advice outbound.MedicalAdviceRepository,
	profiles outbound.ProfileRepository,
	logger *zap.Logger,
) inbound.RecommendationService {
	return &Pipeline{
		intents:  intents,
		medical:  medical,
		recipes:  recipes,
		filter:   filter,
		advice:   advice,
		profiles: profiles,
		logger:   logger.Named("recommendation-pipeline"),
	}
}

// GetRecommendations runs the five pipeline stages for one user message.
// IntentParsingError and RAGError are fatal and propagate; every other
// sub-system failure degrades locally so the request still produces an
// answer, just with less personalization.
func (p *Pipeline) GetRecommendations(ctx context.Context, session inbound.Session, query string) (*recommendation.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewBadRequestError("query must not be empty")
	}

	log := p.logger.With(
		zap.String("request_id", uuid.New().String()),
		zap.Int64("user_id", session.UserID),
	)
	log.Info("recommendation request received", zap.Int("query_len", len(query)))

	userIntent, err := p.intents.Parse(ctx, query)
	if err != nil {
		return nil, &IntentParsingError{Cause: err}
	}

	conditions := nutrition.MergeUnique(userIntent.HealthConditions(), lowerAll(session.UserData.HealthConditions))
	constraints := p.resolveConstraints(ctx, log, session.UserID, conditions)

	// Profile overlay: saved restrictions soften to the limit list, saved
	// avoid entries are hard exclusions. Existing entries keep their order.
	constraints.MergeLimit(session.UserData.Restrictions)
	constraints.MergeAvoid(session.UserData.Avoid)

	augmented := BuildAugmentedQuery(query, userIntent, conditions, constraints)

	candidates, err := p.recipes.Ask(ctx, augmented)
	if err != nil {
		return nil, &RAGError{Message: "recipe retrieval failed", Cause: err}
	}
	if len(candidates) == 0 {
		return nil, &RAGError{Message: "recipe retrieval returned no candidates"}
	}
	log.Info("candidate recipes retrieved", zap.Int("count", len(candidates)))

	// The safety check is mandatory and never bypassed.
	check := p.filter.Check(ctx, candidates, constraints, userIntent)

	p.snapshotProfile(ctx, log, session, userIntent)

	return &recommendation.Result{
		Intent:         userIntent,
		Constraints:    constraints,
		AugmentedQuery: augmented,
		Candidates:     candidates,
		Safety:         check,
	}, nil
}

// resolveConstraints turns the merged condition list into nutrition
// constraints: cached advice first, then the constraint provider, then
// general guidance when everything else fails.
func (p *Pipeline) resolveConstraints(ctx context.Context, log *zap.Logger, userID int64, conditions []string) *nutrition.Constraints {
	if len(conditions) == 0 {
		return nutrition.DefaultConstraints()
	}

	if p.advice != nil {
		advice, err := p.advice.FindByUser(ctx, userID)
		if err != nil {
			log.Warn("medical advice lookup failed", zap.Error(err))
		}
		if advice != nil && advice.Notes != "" {
			log.Debug("reusing cached medical advice")
			return constraintsFromAdvice(advice)
		}
	}

	constraints, err := p.medical.GetConstraints(ctx, conditions)
	if err != nil {
		log.Warn("constraint retrieval failed, falling back to general guidance",
			zap.Strings("conditions", conditions),
			zap.Error(err),
		)
		return nutrition.DefaultConstraints()
	}

	if p.advice != nil {
		if err := p.advice.Save(ctx, adviceFromConstraints(userID, conditions, constraints)); err != nil {
			log.Warn("failed to persist medical advice", zap.Error(err))
		}
	}

	return constraints
}

// snapshotProfile folds newly parsed long-term intent data back into the
// stored profile. Best-effort: a write failure only logs.
func (p *Pipeline) snapshotProfile(ctx context.Context, log *zap.Logger, session inbound.Session, userIntent *intent.UserIntent) {
	if p.profiles == nil {
		return
	}
	if len(userIntent.Restrictions()) == 0 && len(userIntent.Preferences()) == 0 && len(userIntent.HealthConditions()) == 0 {
		return
	}

	profile := &outbound.UserProfile{
		UserID:           session.UserID,
		HealthConditions: nutrition.MergeUnique(lowerAll(session.UserData.HealthConditions), userIntent.HealthConditions()),
		Restrictions:     nutrition.MergeUnique(session.UserData.Restrictions, userIntent.Restrictions()),
		Avoid:            session.UserData.Avoid,
		Preferences:      nutrition.MergeUnique(session.UserData.Preferences, userIntent.Preferences()),
	}
	if err := p.profiles.Save(ctx, profile); err != nil {
		log.Warn("failed to update profile snapshot", zap.Error(err))
	}
}

func constraintsFromAdvice(advice *outbound.MedicalAdvice) *nutrition.Constraints {
	limits := advice.Limits
	if limits == nil {
		limits = map[string]nutrition.Bound{}
	}
	return &nutrition.Constraints{
		Avoid:  append([]string(nil), advice.Avoid...),
		Limit:  append([]string(nil), advice.Limit...),
		Limits: limits,
		Notes:  advice.Notes,
	}
}

func adviceFromConstraints(userID int64, conditions []string, constraints *nutrition.Constraints) *outbound.MedicalAdvice {
	return &outbound.MedicalAdvice{
		UserID:     userID,
		Conditions: append([]string(nil), conditions...),
		Notes:      constraints.Notes,
		Avoid:      append([]string(nil), constraints.Avoid...),
		Limit:      append([]string(nil), constraints.Limit...),
		Limits:     constraints.Limits,
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
