package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sp3dr4/xlu/internal/application"
	"github.com/sp3dr4/xlu/internal/domain"
	"github.com/sp3dr4/xlu/internal/pkg/logging"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	service *application.ShortLinkService
	health  HealthChecker
}

func NewHandlers(service *application.ShortLinkService, health HealthChecker) *Handlers {
	return &Handlers{
		service: service,
		health:  health,
	}
}

// HandleHealth handles the health check endpoint.
//
//	@Summary		Health check endpoint
//	@Description	Check if the service is running
//	@Tags			health
//	@Produce		plain
//	@Success		200	{string}	string	"OK"
//	@Router			/health [get]
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// HandleReady handles the readiness check endpoint.
//
//	@Summary		Readiness check endpoint
//	@Description	Check if the short link store is reachable
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	object{status=string,timestamp=string}	"Service is ready"
//	@Failure		503	{object}	ErrorResponse							"Service is not ready"
//	@Router			/ready [get]
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.health.HealthCheck(ctx); err != nil {
		logging.FromContext(r.Context()).Error("Readiness check failed", "error", err)
		respondWithError(w, http.StatusServiceUnavailable, "Service not ready: short link store unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "ready",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HandleList handles the short link listing endpoint.
//
//	@Summary		List short links
//	@Description	List every short link known to the service
//	@Tags			links
//	@Produce		json
//	@Success		200	{array}		domain.ShortLinkItem	"Short links"
//	@Failure		500	{object}	ErrorResponse			"Short link store failure"
//	@Router			/links [get]
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.ListShortLinks(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("Failed to list short links", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list short links")
		return
	}

	respondWithJSON(w, http.StatusOK, links)
}

// HandleGet handles the short link lookup endpoint.
//
//	@Summary		Get a short link
//	@Description	Look up the target of a short code without redirecting
//	@Tags			links
//	@Produce		json
//	@Param			shortCode	path		string					true	"Short code"
//	@Success		200			{object}	domain.ShortLinkItem	"Short link"
//	@Failure		400			{object}	ErrorResponse			"Invalid short code"
//	@Failure		404			{object}	ErrorResponse			"Short link not found"
//	@Router			/links/{shortCode} [get]
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	item, ok := h.resolve(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// HandleRedirect handles the redirect endpoint.
//
//	@Summary		Redirect to original URL
//	@Description	Redirect to the original URL using the short code
//	@Tags			links
//	@Param			shortCode	path	string	true	"Short code"
//	@Success		301			"Redirect to original URL"
//	@Failure		400			{object}	ErrorResponse	"Invalid short code"
//	@Failure		404			{object}	ErrorResponse	"Short link not found"
//	@Router			/{shortCode} [get]
func (h *Handlers) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	item, ok := h.resolve(w, r)
	if !ok {
		return
	}

	logging.FromContext(r.Context()).Info("Redirecting", "short_code", item.ShortCode, "url", item.URL)
	http.Redirect(w, r, item.URL, http.StatusMovedPermanently)
}

// resolve writes the error response itself and reports whether the caller
// should continue.
func (h *Handlers) resolve(w http.ResponseWriter, r *http.Request) (*domain.ShortLinkItem, bool) {
	shortCode := chi.URLParam(r, "shortCode")

	item, err := h.service.Resolve(r.Context(), shortCode)
	switch {
	case err == nil:
		return item, true
	case errors.Is(err, domain.ErrInvalidShortCode):
		respondWithError(w, http.StatusBadRequest, "Invalid short code")
	case errors.Is(err, domain.ErrShortLinkNotFound):
		respondWithError(w, http.StatusNotFound, "Short link not found")
	default:
		logging.FromContext(r.Context()).Error("Failed to resolve short code", "short_code", shortCode, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to resolve short link")
	}
	return nil, false
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     map[string]string `json:"error"`
	Timestamp string            `json:"timestamp" example:"2024-01-31T12:00:00Z"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{
		Error: map[string]string{
			"message": message,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
