// Package server provides the HTTP transport in front of the recommendation
// service. It is a thin adapter: decode the request, call the service, map
// the error taxonomy onto status codes.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apprecommendation "github.com/nutriplan/v1/internal/application/recommendation"
	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config          *config.Config
	logger          *zap.Logger
	router          *chi.Mux
	server          *http.Server
	recommendations inbound.RecommendationService
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	recommendations inbound.RecommendationService,
) *Server {
	s := &Server{
		config:          cfg,
		logger:          logger.Named("http-server"),
		recommendations: recommendations,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommendations", s.handleRecommendations)
	})

	return r
}

// Start begins serving requests. It blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.config.App.Version,
	})
}

// recommendationRequest is the inbound payload for one recommendation run.
type recommendationRequest struct {
	UserID   int64  `json:"user_id"`
	Query    string `json:"query"`
	UserData struct {
		HealthConditions []string `json:"health_conditions"`
		Restrictions     []string `json:"restrictions"`
		Avoid            []string `json:"avoid"`
		Preferences      []string `json:"preferences"`
	} `json:"user_data"`
}

// recommendationResponse is the outbound payload: the safe recipe markdown
// plus the safety summary and the per-recipe verdicts.
type recommendationResponse struct {
	Recipes  string          `json:"recipes"`
	Summary  string          `json:"summary"`
	Verdicts []verdictRecord `json:"verdicts"`
}

type verdictRecord struct {
	Recipe  string   `json:"recipe"`
	Verdict string   `json:"verdict"`
	Issues  []string `json:"issues,omitempty"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	session := inbound.Session{
		UserID: req.UserID,
		UserData: inbound.UserData{
			HealthConditions: req.UserData.HealthConditions,
			Restrictions:     req.UserData.Restrictions,
			Avoid:            req.UserData.Avoid,
			Preferences:      req.UserData.Preferences,
		},
	}

	result, err := s.recommendations.GetRecommendations(r.Context(), session, req.Query)
	if err != nil {
		s.writeError(w, r, mapPipelineError(err))
		return
	}

	resp := recommendationResponse{
		Summary: result.Summary(),
	}
	if result.Safety != nil {
		resp.Recipes = result.Safety.SafeRecipesMarkdown
		for _, rv := range result.Safety.RecipeVerdicts {
			record := verdictRecord{
				Recipe:  rv.RecipeName,
				Verdict: string(rv.Verdict),
			}
			for _, issue := range rv.Issues {
				record.Issues = append(record.Issues, issue.Description)
			}
			resp.Verdicts = append(resp.Verdicts, record)
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// mapPipelineError folds the pipeline error types into AppErrors so the
// transport owns exactly one error-to-status mapping.
func mapPipelineError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var intentErr *apprecommendation.IntentParsingError
	if stderrors.As(err, &intentErr) {
		return errors.NewAppError(errors.CodeIntentParsingFailed, "could not understand the request", "").WithCause(err)
	}

	var ragErr *apprecommendation.RAGError
	if stderrors.As(err, &ragErr) {
		return errors.NewAppError(errors.CodeRAGEmptyResult, "could not find matching recipes", "").WithCause(err)
	}

	return errors.Wrap(err, "recommendation request failed")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("code", string(appErr.Code)), zap.Error(appErr))
	} else {
		s.logger.Warn("request rejected", zap.String("code", string(appErr.Code)), zap.Error(appErr))
	}
	s.writeJSON(w, status, errors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context())))
}
