package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tradejournal/Trading-Journal-Backend/internal/api/response"
	"github.com/tradejournal/Trading-Journal-Backend/internal/export"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
	"github.com/tradejournal/Trading-Journal-Backend/internal/service"
	"github.com/tradejournal/Trading-Journal-Backend/internal/validation"
)

// HistoryHandler handles HTTP requests for the valuation history.
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler with the provided service dependency.
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// Range handles GET requests for history rows over an inclusive date range.
// Both bounds default to the full recorded history when omitted.
//
// Endpoint: GET /api/history?start=YYYY-MM-DD&end=YYYY-MM-DD
// Response: 200 OK with array of HistoryRow (TOTAL rows ordered last per date)
// Error: 400 Bad Request if a date is malformed or start is after end
// Error: 500 Internal Server Error if retrieval fails
func (h *HistoryHandler) Range(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	historyRows, err := h.historyService.Range(r.Context(), start, end)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, historyRows)
}

// Day handles GET requests for a single date's history rows.
//
// Endpoint: GET /api/history/{date}
// Response: 200 OK with array of HistoryRow
// Error: 400 Bad Request if the date is malformed
// Error: 404 Not Found if no snapshot exists for the date
func (h *HistoryHandler) Day(w http.ResponseWriter, r *http.Request) {
	date, err := validation.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	historyRows, err := h.historyService.Day(r.Context(), date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, historyRows)
}

// Ticker handles GET requests for one ticker's full valuation series.
//
// Endpoint: GET /api/history/ticker/{ticker}
// Response: 200 OK with array of HistoryRow in ascending date order
// Error: 500 Internal Server Error if retrieval fails
func (h *HistoryHandler) Ticker(w http.ResponseWriter, r *http.Request) {
	historyRows, err := h.historyService.Ticker(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, historyRows)
}

// ExportCSV handles GET requests to download the history range as CSV.
//
// Endpoint: GET /api/history/export?start=YYYY-MM-DD&end=YYYY-MM-DD
// Response: 200 OK with text/csv attachment
// Error: 400 Bad Request if a date is malformed or start is after end
// Error: 500 Internal Server Error if retrieval or encoding fails
func (h *HistoryHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseRange(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	historyRows, err := h.historyService.Range(r.Context(), start, end)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve history", err.Error())
		return
	}

	filename := fmt.Sprintf("portfolio_history_%s.csv", repository.FormatDate(end))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteHistoryCSV(w, historyRows); err != nil {
		// Headers are already sent; the truncated body is all we can signal.
		return
	}
}

// parseRange reads optional start and end query parameters. Missing bounds
// default to the epoch and the far future respectively.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	start := time.Unix(0, 0).UTC()
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	var err error
	if s := r.URL.Query().Get("start"); s != "" {
		if start, err = validation.ParseDate(s); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if e := r.URL.Query().Get("end"); e != "" {
		if end, err = validation.ParseDate(e); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if err := validation.ValidateDateRange(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
