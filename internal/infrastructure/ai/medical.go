package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nutriplan/v1/internal/domain/nutrition"
	"go.uber.org/zap"
)

// MedicalConstraintProvider turns a list of health conditions into concrete
// dietary guidance using the chat backend.
type MedicalConstraintProvider struct {
	chat   ChatClient
	logger *zap.Logger
}

// NewMedicalConstraintProvider creates a medical constraint provider.
func NewMedicalConstraintProvider(chat ChatClient, logger *zap.Logger) *MedicalConstraintProvider {
	return &MedicalConstraintProvider{
		chat:   chat,
		logger: logger.Named("medical-provider"),
	}
}

const medicalSystemPrompt = `You are a clinical nutrition knowledge base. Given a list of medical conditions, produce standard dietary guidance for meal planning.

CRITICAL: You must respond with ONLY a valid JSON object in the exact format shown below. Do not include any explanatory text, markdown formatting, or other content outside the JSON.

Required JSON format:
{
  "dietary_goals": ["high-level goals, e.g. stabilize blood sugar"],
  "foods_to_increase": ["food groups to favor"],
  "avoid": ["foods that must be fully excluded"],
  "limit": ["foods to reduce but not exclude"],
  "limits": {
    "sugar_g": {"max": 25},
    "sodium_mg": {"max": 1500}
  },
  "notes": "short free-text summary of the guidance"
}

Numeric limits are per serving. Only include nutrients with established guidance for the given conditions. Use lowercase food names.`

type medicalResponse struct {
	DietaryGoals    []string                   `json:"dietary_goals"`
	FoodsToIncrease []string                   `json:"foods_to_increase"`
	Avoid           []string                   `json:"avoid"`
	Limit           []string                   `json:"limit"`
	Limits          map[string]nutrition.Bound `json:"limits"`
	Notes           string                     `json:"notes"`
}

// GetConstraints produces nutrition constraints for the given conditions.
func (p *MedicalConstraintProvider) GetConstraints(ctx context.Context, conditions []string) (*nutrition.Constraints, error) {
	if len(conditions) == 0 {
		return nutrition.DefaultConstraints(), nil
	}

	userPrompt := fmt.Sprintf("Medical conditions: %s", strings.Join(conditions, ", "))

	raw, err := p.chat.Complete(ctx, medicalSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("constraint completion failed: %w", err)
	}

	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("constraint response: %w", err)
	}

	var resp medicalResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		p.logger.Error("failed to parse constraint JSON",
			zap.Error(err),
			zap.String("response", jsonStr),
		)
		return nil, fmt.Errorf("failed to parse constraint response: %w", err)
	}

	limits := resp.Limits
	if limits == nil {
		limits = map[string]nutrition.Bound{}
	}

	constraints := &nutrition.Constraints{
		DietaryGoals:    resp.DietaryGoals,
		FoodsToIncrease: resp.FoodsToIncrease,
		Avoid:           lowerTrim(resp.Avoid),
		Limit:           lowerTrim(resp.Limit),
		Limits:          limits,
		Notes:           strings.TrimSpace(resp.Notes),
	}

	p.logger.Debug("constraints retrieved",
		zap.Strings("conditions", conditions),
		zap.Int("avoid", len(constraints.Avoid)),
		zap.Int("limit", len(constraints.Limit)),
		zap.Int("nutrient_limits", len(constraints.Limits)),
	)

	return constraints, nil
}

func lowerTrim(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
