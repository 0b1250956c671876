package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/errs"
	"github.com/GregMSThompson/timeline-chart/internal/importer"
	"github.com/GregMSThompson/timeline-chart/internal/middleware"
	"github.com/GregMSThompson/timeline-chart/internal/models"
	"github.com/GregMSThompson/timeline-chart/internal/response"
)

// Request body caps: JSON timelines and spreadsheet uploads.
const (
	maxBodyBytes   = 1 << 20
	maxImportBytes = 10 << 20
)

type timelineService interface {
	CreateTimeline(ctx context.Context, uid string, req dto.TimelineRequest) (*models.Timeline, error)
	GetTimeline(ctx context.Context, uid, timelineID string) (*models.Timeline, error)
	ListTimelines(ctx context.Context, uid string) ([]*models.Timeline, error)
	UpdateTimeline(ctx context.Context, uid, timelineID string, req dto.TimelineRequest) (*models.Timeline, error)
	DeleteTimeline(ctx context.Context, uid, timelineID string) error
	RenderTimeline(ctx context.Context, uid, timelineID string) ([]byte, error)
}

type timelineHandlers struct {
	ResponseHandler response.ResponseHandler
	TimelineSvc     timelineService
}

func NewTimelineHandlers(deps *Deps) *timelineHandlers {
	return &timelineHandlers{
		ResponseHandler: deps.ResponseHandler,
		TimelineSvc:     deps.TimelineSvc,
	}
}

func (h *timelineHandlers) TimelineRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTimelines)
	r.Post("/", h.CreateTimeline)
	r.Post("/import", h.ImportTimeline)
	r.Get("/{timelineId}", h.GetTimeline)
	r.Put("/{timelineId}", h.UpdateTimeline)
	r.Delete("/{timelineId}", h.DeleteTimeline)
	r.Get("/{timelineId}/chart.svg", h.RenderTimeline)
	return r
}

func (h *timelineHandlers) ListTimelines(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	timelines, err := h.TimelineSvc.ListTimelines(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, timelines)
}

func (h *timelineHandlers) CreateTimeline(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTimelineRequest(w, r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tl, err := h.TimelineSvc.CreateTimeline(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tl)
}

// ImportTimeline creates a timeline from a raw XLSX request body. The title
// query parameter overrides the sheet name.
func (h *timelineHandlers) ImportTimeline(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	req, err := importer.DecodeXLSX(body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if title := r.URL.Query().Get("title"); title != "" {
		req.Title = title
	}

	uid := middleware.UID(r.Context())
	tl, err := h.TimelineSvc.CreateTimeline(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tl)
}

func (h *timelineHandlers) GetTimeline(w http.ResponseWriter, r *http.Request) {
	timelineID := chi.URLParam(r, "timelineId")
	uid := middleware.UID(r.Context())
	tl, err := h.TimelineSvc.GetTimeline(r.Context(), uid, timelineID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tl)
}

func (h *timelineHandlers) UpdateTimeline(w http.ResponseWriter, r *http.Request) {
	timelineID := chi.URLParam(r, "timelineId")
	req, err := decodeTimelineRequest(w, r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tl, err := h.TimelineSvc.UpdateTimeline(r.Context(), uid, timelineID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tl)
}

func (h *timelineHandlers) DeleteTimeline(w http.ResponseWriter, r *http.Request) {
	timelineID := chi.URLParam(r, "timelineId")
	uid := middleware.UID(r.Context())
	if err := h.TimelineSvc.DeleteTimeline(r.Context(), uid, timelineID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *timelineHandlers) RenderTimeline(w http.ResponseWriter, r *http.Request) {
	timelineID := chi.URLParam(r, "timelineId")
	uid := middleware.UID(r.Context())
	svg, err := h.TimelineSvc.RenderTimeline(r.Context(), uid, timelineID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSVG(w, r, http.StatusOK, svg)
}

func decodeTimelineRequest(w http.ResponseWriter, r *http.Request) (dto.TimelineRequest, error) {
	var req dto.TimelineRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, errs.NewValidationError(fmt.Sprintf("request body must not exceed %d bytes", tooLarge.Limit))
		}
		return req, errs.NewValidationError("request body must be a JSON timeline")
	}
	return req, nil
}
