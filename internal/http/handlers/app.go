package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"donations/internal/domain"
)

const defaultMaxBodyBytes = 1 << 20

// App carries the dependencies shared by the HTTP handlers.
type App struct {
	Logger        zerolog.Logger
	Donations     domain.DonationRepository
	Validator     *domain.Validator
	Metrics       *DonationMetrics
	DefaultLocale string
	MaxBodyBytes  int64
}

// NewApp wires handlers around a repository. Metrics may be nil.
func NewApp(logger zerolog.Logger, donations domain.DonationRepository, metrics *DonationMetrics) *App {
	return &App{
		Logger:        logger,
		Donations:     donations,
		Validator:     domain.NewValidator(),
		Metrics:       metrics,
		DefaultLocale: "fr",
		MaxBodyBytes:  defaultMaxBodyBytes,
	}
}

type errorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.Logger.Error().Err(err).Msg("encode response")
	}
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorResponse{Error: errCode, Message: message})
}
