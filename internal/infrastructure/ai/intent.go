package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nutriplan/v1/internal/domain/intent"
	"go.uber.org/zap"
)

// IntentParser extracts structured user intent from a free-text message.
type IntentParser struct {
	chat   ChatClient
	logger *zap.Logger
}

// NewIntentParser creates an intent parser backed by the given chat client.
func NewIntentParser(chat ChatClient, logger *zap.Logger) *IntentParser {
	return &IntentParser{
		chat:   chat,
		logger: logger.Named("intent-parser"),
	}
}

const intentSystemPrompt = `You are an information extraction engine for a nutrition assistant. Extract structured data from the user's message.

CRITICAL: You must respond with ONLY a valid JSON object in the exact format shown below. Do not include any explanatory text, markdown formatting, or other content outside the JSON.

Required JSON format:
{
  "name": "first name if mentioned, else empty string",
  "surname": "surname if mentioned, else empty string",
  "preferences": ["cuisines and ingredients the user likes"],
  "restrictions": ["permanent dietary restrictions and allergies, e.g. vegan, peanuts"],
  "health_conditions": ["medical conditions, e.g. diabetes, hypertension"],
  "instructions": ["one-shot requests for this specific meal"],
  "caretaker": "caretaker name if the user speaks for someone else, else empty string"
}

Use empty arrays for fields with no data. Never invent data not present in the message.`

type intentResponse struct {
	Name             string   `json:"name"`
	Surname          string   `json:"surname"`
	Preferences      []string `json:"preferences"`
	Restrictions     []string `json:"restrictions"`
	HealthConditions []string `json:"health_conditions"`
	Instructions     []string `json:"instructions"`
	Caretaker        string   `json:"caretaker"`
}

// Parse extracts a UserIntent from one user message.
func (p *IntentParser) Parse(ctx context.Context, query string) (*intent.UserIntent, error) {
	raw, err := p.chat.Complete(ctx, intentSystemPrompt, query)
	if err != nil {
		return nil, fmt.Errorf("intent completion failed: %w", err)
	}

	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("intent response: %w", err)
	}

	var resp intentResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		p.logger.Error("failed to parse intent JSON",
			zap.Error(err),
			zap.String("response", jsonStr),
		)
		return nil, fmt.Errorf("failed to parse intent response: %w", err)
	}

	ui := intent.NewUserIntent(
		resp.Name,
		resp.Surname,
		resp.Preferences,
		resp.Restrictions,
		resp.HealthConditions,
		resp.Instructions,
		resp.Caretaker,
	)

	p.logger.Debug("intent parsed",
		zap.Int("preferences", len(ui.Preferences())),
		zap.Int("restrictions", len(ui.Restrictions())),
		zap.Int("health_conditions", len(ui.HealthConditions())),
	)

	return ui, nil
}
