/*
handlers.go - HTTP handlers for the panchang calendar service

PURPOSE:
  Exposes the calendar facade and the festival catalog via REST. Handles
  HTTP request/response, JSON serialization, and delegates everything
  else to the calendar and store packages.

ENDPOINTS:
  Panchang:
    GET    /api/panchang/{year}/{month}   Month view (?region=)
    GET    /api/panchang/day/{date}       Single day, date = YYYY-MM-DD
    GET    /api/festivals/{year}          Festival names by month

  Festival administration:
    GET    /api/festivals                 List catalog (?region=)
    POST   /api/festivals                 Create/replace an entry
    DELETE /api/festivals/{id}            Remove an entry

  Health:
    GET    /health

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed year/month/date, invalid festival payload
  - 502: An upstream ephemeris or festival provider failed
  - 500: Everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - calendar/facade.go: The operations these handlers front
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/supernova/panchang-engine/calendar"
	"github.com/supernova/panchang-engine/festival"
	"github.com/supernova/panchang-engine/panchang"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// FestivalAdmin is the slice of the store the admin endpoints need.
type FestivalAdmin interface {
	SaveFestival(ctx context.Context, f festival.Festival) error
	DeleteFestival(ctx context.Context, id string) error
	ListFestivals(ctx context.Context, region string) ([]festival.Festival, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Calendar      *calendar.Service
	Festivals     FestivalAdmin
	DefaultRegion string
	Log           *slog.Logger
}

// NewHandler creates a handler over the calendar service and catalog store.
func NewHandler(cal *calendar.Service, festivals FestivalAdmin, defaultRegion string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Calendar:      cal,
		Festivals:     festivals,
		DefaultRegion: defaultRegion,
		Log:           log,
	}
}

// region resolves the effective region for a request.
func (h *Handler) region(r *http.Request) string {
	if region := strings.TrimSpace(r.URL.Query().Get("region")); region != "" {
		return strings.ToLower(region)
	}
	if h.DefaultRegion != "" {
		return h.DefaultRegion
	}
	return festival.RegionAll
}

// =============================================================================
// PANCHANG HANDLERS
// =============================================================================

// GetMonth returns the assembled panchang for one month.
// GET /api/panchang/{year}/{month}
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month (use 1-12)", err)
		return
	}

	view, err := h.Calendar.MonthPanchang(r.Context(), year, time.Month(monthNum), h.region(r))
	if err != nil {
		h.writeUpstreamError(w, r, "Failed to build month panchang", err)
		return
	}

	writeJSON(w, http.StatusOK, toMonthViewDTO(view))
}

// GetDay returns the panchang record for a single civil date.
// GET /api/panchang/day/{date}
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	rec, err := h.Calendar.DayPanchang(r.Context(), date.Year(), date.Month(), date.Day(), h.region(r))
	if err != nil {
		h.writeUpstreamError(w, r, "Failed to build day panchang", err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GetYearFestivals returns festival names for a year grouped by month.
// GET /api/festivals/{year}
func (h *Handler) GetYearFestivals(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	view, err := h.Calendar.YearFestivals(r.Context(), year, h.region(r))
	if err != nil {
		h.writeUpstreamError(w, r, "Failed to list festivals", err)
		return
	}

	writeJSON(w, http.StatusOK, toYearViewDTO(view))
}

// =============================================================================
// FESTIVAL ADMINISTRATION
// =============================================================================

// ListFestivals returns the festival catalog.
// GET /api/festivals
func (h *Handler) ListFestivals(w http.ResponseWriter, r *http.Request) {
	region := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("region")))

	festivals, err := h.Festivals.ListFestivals(r.Context(), region)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list festival catalog", err)
		return
	}

	dtos := make([]FestivalDTO, len(festivals))
	for i, f := range festivals {
		dtos[i] = toFestivalDTO(f)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateFestival adds or replaces a catalog entry.
// POST /api/festivals
func (h *Handler) CreateFestival(w http.ResponseWriter, r *http.Request) {
	var req CreateFestivalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validateFestival(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid festival", err)
		return
	}

	f := req.toFestival()
	if f.Region == "" {
		f.Region = festival.RegionAll
	}
	f.Region = strings.ToLower(f.Region)

	if err := h.Festivals.SaveFestival(r.Context(), f); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save festival", err)
		return
	}

	writeJSON(w, http.StatusCreated, toFestivalDTO(f))
}

// DeleteFestival removes a catalog entry.
// DELETE /api/festivals/{id}
func (h *Handler) DeleteFestival(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing festival id", nil)
		return
	}

	if err := h.Festivals.DeleteFestival(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete festival", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func validateFestival(req CreateFestivalRequest) error {
	switch {
	case strings.TrimSpace(req.ID) == "":
		return errMissingField("id")
	case strings.TrimSpace(req.Name) == "":
		return errMissingField("name")
	case req.Month < 1 || req.Month > 12:
		return errOutOfRange("month", "1-12")
	case req.Day < 1 || req.Day > 31:
		return errOutOfRange("day", "1-31")
	}
	return nil
}

type fieldError struct{ msg string }

func (e fieldError) Error() string { return e.msg }

func errMissingField(name string) error {
	return fieldError{msg: name + " is required"}
}

func errOutOfRange(name, allowed string) error {
	return fieldError{msg: name + " must be in " + allowed}
}

// writeUpstreamError maps provider failures to 502 and logs which
// collaborator sank the request.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, r *http.Request, message string, err error) {
	if panchang.IsUpstream(err) {
		var perr *panchang.ProviderError
		if errors.As(err, &perr) {
			h.Log.Warn("provider failed",
				"provider", perr.Provider,
				"date", perr.Date.Format("2006-01-02"),
				"path", r.URL.Path,
				"error", perr.Err,
			)
		}
		writeError(w, http.StatusBadGateway, message, err)
		return
	}
	writeError(w, http.StatusInternalServerError, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
