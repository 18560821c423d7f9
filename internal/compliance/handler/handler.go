// Package handler exposes the compliance engine over JSON HTTP.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"kycaml/internal/compliance/engine"
	"kycaml/internal/compliance/models"
	"kycaml/internal/platform/middleware"
	"kycaml/pkg/platform/httputil"
	"kycaml/pkg/platform/sentinel"
	"kycaml/pkg/requestcontext"
)

const maxAuditLimit = 1000

// Service is the subset of the engine the API serves.
type Service interface {
	PerformComplianceCheck(ctx context.Context, tx models.Transaction, customer models.Customer) (models.RiskAssessment, error)
	VerifyDocument(ctx context.Context, req models.DocumentVerificationRequest, customer models.Customer) (models.DocumentVerificationResult, error)
	GenerateComplianceReportForDates(ctx context.Context, start, end string) (*models.ComplianceReport, error)
	GetComplianceSummary(ctx context.Context) (models.ComplianceSummary, error)
	FlaggedAssessments(ctx context.Context, flagType string) ([]models.RiskAssessment, error)
	ExportReport(report *models.ComplianceReport, format engine.ExportFormat) ([]byte, error)
	AddSanctionsList(ctx context.Context, list models.SanctionsList) (models.SanctionsList, error)
	UpdateSanctionsList(ctx context.Context, list models.SanctionsList) (models.SanctionsList, error)
	SanctionsLists() []models.SanctionsList
	AuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error)
}

// CheckRequest is the body of POST /v1/compliance/checks.
type CheckRequest struct {
	Transaction models.Transaction `json:"transaction"`
	Customer    models.Customer    `json:"customer"`
}

// DocumentRequest is the body of POST /v1/compliance/documents/verify.
type DocumentRequest struct {
	Document models.DocumentVerificationRequest `json:"document"`
	Customer models.Customer                    `json:"customer"`
}

// Handler serves compliance endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	timeout time.Duration
}

// New creates a compliance Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		timeout: 30 * time.Second,
	}
}

// Register mounts the compliance routes on r.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.ClientMetadata)
	api.Use(middleware.RequestScope)
	api.Use(middleware.Logger(h.logger))
	api.Use(chimw.Timeout(h.timeout))

	api.Post("/v1/compliance/checks", h.handleCheck)
	api.Post("/v1/compliance/documents/verify", h.handleVerifyDocument)
	api.Get("/v1/compliance/reports", h.handleReport)
	api.Get("/v1/compliance/summary", h.handleSummary)
	api.Get("/v1/compliance/assessments", h.handleFlaggedAssessments)
	api.Get("/v1/sanctions/lists", h.handleListSanctions)
	api.Group(func(r chi.Router) {
		r.Use(middleware.RequireOperator(h.logger))
		r.Post("/v1/sanctions/lists", h.handleAddSanctionsList)
		r.Put("/v1/sanctions/lists/{id}", h.handleUpdateSanctionsList)
		r.Get("/v1/audit/events", h.handleAuditEvents)
	})

	r.Mount("/", api)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CheckRequest
	if !h.decode(w, r, &req) {
		return
	}

	assessment, err := h.service.PerformComplianceCheck(ctx, req.Transaction, req.Customer)
	if err != nil {
		h.writeError(w, r, "compliance check failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, assessment)
}

func (h *Handler) handleVerifyDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req DocumentRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.VerifyDocument(ctx, req.Document, req.Customer)
	if err != nil {
		h.writeError(w, r, "document verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	format := engine.ExportFormat(q.Get("format"))
	if format == "" {
		format = engine.ExportJSON
	}
	if format != engine.ExportJSON && format != engine.ExportCSV {
		httputil.WriteError(w, httputil.CodeBadRequest, "format must be json or csv")
		return
	}

	report, err := h.service.GenerateComplianceReportForDates(ctx, q.Get("start"), q.Get("end"))
	if err != nil {
		h.writeError(w, r, "report generation failed", err)
		return
	}
	if format == engine.ExportJSON {
		httputil.WriteJSON(w, http.StatusOK, report)
		return
	}

	body, err := h.service.ExportReport(report, format)
	if err != nil {
		h.writeError(w, r, "report export failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="compliance-report-`+report.ID+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetComplianceSummary(r.Context())
	if err != nil {
		h.writeError(w, r, "summary failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleFlaggedAssessments(w http.ResponseWriter, r *http.Request) {
	flag := r.URL.Query().Get("flag")
	if flag == "" {
		httputil.WriteError(w, httputil.CodeBadRequest, "flag query parameter is required")
		return
	}
	assessments, err := h.service.FlaggedAssessments(r.Context(), flag)
	if err != nil {
		h.writeError(w, r, "flagged assessments not listed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"assessments": assessments})
}

func (h *Handler) handleListSanctions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"lists": h.service.SanctionsLists()})
}

func (h *Handler) handleAddSanctionsList(w http.ResponseWriter, r *http.Request) {
	var list models.SanctionsList
	if !h.decode(w, r, &list) {
		return
	}
	list.LastUpdated = requestcontext.Now(r.Context())

	stored, err := h.service.AddSanctionsList(r.Context(), list)
	if err != nil {
		h.writeError(w, r, "sanctions list not added", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, stored)
}

func (h *Handler) handleUpdateSanctionsList(w http.ResponseWriter, r *http.Request) {
	var list models.SanctionsList
	if !h.decode(w, r, &list) {
		return
	}
	id := chi.URLParam(r, "id")
	if list.ID != "" && list.ID != id {
		httputil.WriteError(w, httputil.CodeBadRequest, "list id in body does not match path")
		return
	}
	list.ID = id
	list.LastUpdated = requestcontext.Now(r.Context())

	stored, err := h.service.UpdateSanctionsList(r.Context(), list)
	if err != nil {
		h.writeError(w, r, "sanctions list not updated", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stored)
}

func (h *Handler) handleAuditEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditLimit {
			httputil.WriteError(w, httputil.CodeBadRequest, "limit must be between 1 and "+strconv.Itoa(maxAuditLimit))
			return
		}
		limit = n
	}

	events, err := h.service.AuditEvents(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, "audit events not listed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body",
			"request_id", requestcontext.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err.Error(),
		)
		httputil.WriteError(w, httputil.CodeBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeError maps engine errors to HTTP responses. Classified errors are the
// caller's fault; anything else is logged and reported as internal.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var kerr *models.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		httputil.WriteError(w, httputil.CodeNotFound, err.Error())
	case errors.Is(err, sentinel.ErrUnavailable):
		httputil.WriteError(w, httputil.CodeUnavailable, err.Error())
	case errors.As(err, &kerr):
		h.logger.WarnContext(ctx, msg, "request_id", requestID, "kind", kerr.Kind, "error", err.Error())
		httputil.WriteError(w, httputil.CodeBadRequest, kerr.Error())
	default:
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err.Error())
		httputil.WriteError(w, httputil.CodeInternal, "")
	}
}
