package http

import (
	"context"
	"net/http"
	"time"

	"github.com/atinyakov/exhibition/internal/window"
)

// ExhibitionHandler reports the teaser and exhibition periods.
type ExhibitionHandler struct {
	Window window.Window
	// Now defaults to time.Now.
	Now func() time.Time
}

type teaserResponse struct {
	IsAvailable     bool   `json:"isAvailable"`
	TeaserStart     string `json:"teaserStart"`
	TeaserEnd       string `json:"teaserEnd"`
	ExhibitionStart string `json:"exhibitionStart"`
}

type statusResponse struct {
	TeaserOpen       bool   `json:"teaserOpen"`
	ExhibitionOpen   bool   `json:"exhibitionOpen"`
	BeforeExhibition bool   `json:"beforeExhibition"`
	ExhibitionStart  string `json:"exhibitionStart"`
	ExhibitionEnd    string `json:"exhibitionEnd"`
}

func (h *ExhibitionHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Teaser handles GET /teaser.
func (h *ExhibitionHandler) Teaser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, teaserResponse{
		IsAvailable:     h.Window.IsTeaserOpen(h.now()),
		TeaserStart:     h.Window.TeaserStart.Format(time.RFC3339),
		TeaserEnd:       h.Window.TeaserEnd.Format(time.RFC3339),
		ExhibitionStart: h.Window.ExhibitionStart.Format(time.RFC3339),
	})
}

// Status handles GET /api/exhibition.
func (h *ExhibitionHandler) Status(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	writeJSON(w, http.StatusOK, statusResponse{
		TeaserOpen:       h.Window.IsTeaserOpen(now),
		ExhibitionOpen:   h.Window.IsExhibitionOpen(now),
		BeforeExhibition: h.Window.IsBeforeExhibition(now),
		ExhibitionStart:  h.Window.ExhibitionStart.Format(time.RFC3339),
		ExhibitionEnd:    h.Window.ExhibitionEnd.Format(time.RFC3339),
	})
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	DB Pinger
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
