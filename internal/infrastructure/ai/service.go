// Package ai provides the language-model backed providers of the pipeline:
// intent parsing, medical constraint retrieval, recipe generation and the
// semantic safety check. All of them speak to a ChatClient and parse a JSON
// payload out of the completion text.
package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ChatClient is a single-turn chat completion backend.
type ChatClient interface {
	// Complete sends one system/user prompt pair and returns the raw
	// completion text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Name identifies the backend in logs.
	Name() string
}

// Service is a ChatClient that tries a primary backend and falls back to a
// secondary one when the primary fails. The fallback may be nil.
type Service struct {
	primary  ChatClient
	fallback ChatClient
	logger   *zap.Logger
}

// NewService creates a chat service with optional fallback.
func NewService(primary, fallback ChatClient, logger *zap.Logger) *Service {
	return &Service{
		primary:  primary,
		fallback: fallback,
		logger:   logger.Named("ai-service"),
	}
}

// Complete tries the primary backend first and the fallback on failure.
func (s *Service) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	out, err := s.primary.Complete(ctx, systemPrompt, userPrompt)
	if err == nil {
		return out, nil
	}

	if s.fallback == nil {
		return "", err
	}

	s.logger.Warn("primary AI backend failed, trying fallback",
		zap.String("primary", s.primary.Name()),
		zap.String("fallback", s.fallback.Name()),
		zap.Error(err),
	)
	return s.fallback.Complete(ctx, systemPrompt, userPrompt)
}

// Name identifies the composite in logs.
func (s *Service) Name() string {
	if s.fallback != nil {
		return s.primary.Name() + "+" + s.fallback.Name()
	}
	return s.primary.Name()
}

// extractJSON returns the outermost JSON object embedded in a completion.
// Models occasionally wrap the payload in prose or markdown fences.
func extractJSON(response string) (string, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no valid JSON found in response")
	}

	return response[start : end+1], nil
}
