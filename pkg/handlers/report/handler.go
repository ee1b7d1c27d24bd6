package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/novamkr/web-vitals/pkg/adapters"
	"github.com/novamkr/web-vitals/pkg/models/api"
	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/render"
	"github.com/novamkr/web-vitals/pkg/services/review"
)

// Service is the review surface exposed over HTTP.
type Service interface {
	List(ctx context.Context) ([]domain.Report, error)
	Get(ctx context.Context, id string) (domain.Report, error)
	RemoveIssues(ctx context.Context, id string, req review.RemoveRequest) (domain.Report, error)
	Annotate(ctx context.Context, id string, req review.AnnotateRequest) (domain.Report, error)
	Delete(ctx context.Context, id string) error
	Subscribe(id string) (<-chan domain.Report, func())
}

type Handler struct {
	service Service
	html    render.Renderer
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
		html:    render.NewHTMLRenderer(),
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	reports, err := h.service.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list reports")
		writeError(w, r, err)
		return
	}

	response := make([]api.ReportSummary, 0, len(reports))
	for _, report := range reports {
		response = append(response, adapters.MapReportSummaryDomainToApi(report))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	report, err := h.service.Get(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report", id).Msg("failed to get report")
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(report))
}

func (h *Handler) RemoveIssues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req api.RemoveIssuesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.service.RemoveIssues(ctx, id, adapters.MapRemoveIssuesApiToDomain(req))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report", id).Msg("failed to remove issues")
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(report))
}

func (h *Handler) Annotate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req api.AnnotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.service.Annotate(ctx, id, adapters.MapAnnotateApiToDomain(req))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report", id).Msg("failed to annotate issues")
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(report))
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(ctx, id); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report", id).Msg("failed to delete report")
		writeError(w, r, err)
		return
	}
	zerolog.Ctx(ctx).Info().Str("report", id).Msg("report deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RenderHTML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	report, err := h.service.Get(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report", id).Msg("failed to get report")
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.html.Render(w, report); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report", id).Msg("failed to render report")
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, r, status, api.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
