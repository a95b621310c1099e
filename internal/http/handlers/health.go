package handlers

import (
	"context"
	"net/http"
	"time"

	"donations/internal/domain"
	"donations/internal/middleware"
)

var welcomeMessages = map[string]string{
	"fr": "Backend Oracle Donation System fonctionnel",
	"en": "Backend Oracle Donation System is running",
}

// Root answers with a welcome message in the negotiated locale.
func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	msg, ok := welcomeMessages[middleware.LocaleFromContext(r.Context())]
	if !ok {
		msg, ok = welcomeMessages[a.DefaultLocale]
	}
	if !ok {
		msg = welcomeMessages["fr"]
	}
	a.json(w, http.StatusOK, map[string]string{"message": msg})
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if !a.storageHealthy(r.Context()) {
		a.json(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthLegacy serves the older /api/health/ shape.
func (a *App) HealthLegacy(w http.ResponseWriter, r *http.Request) {
	if !a.storageHealthy(r.Context()) {
		a.json(w, http.StatusServiceUnavailable, map[string]string{"health": "unavailable"})
		return
	}
	a.json(w, http.StatusOK, map[string]string{"health": "ok"})
}

func (a *App) storageHealthy(ctx context.Context) bool {
	p, ok := a.Donations.(domain.Pinger)
	if !ok {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("storage health check failed")
		return false
	}
	return true
}
