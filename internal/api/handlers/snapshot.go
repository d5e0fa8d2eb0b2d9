package handlers

import (
	"net/http"
	"time"

	"github.com/tradejournal/Trading-Journal-Backend/internal/api/request"
	"github.com/tradejournal/Trading-Journal-Backend/internal/api/response"
	"github.com/tradejournal/Trading-Journal-Backend/internal/service"
	"github.com/tradejournal/Trading-Journal-Backend/internal/validation"
)

// SnapshotHandler handles HTTP requests for valuation snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
	backfillService *service.BackfillService
	now             func() time.Time
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided dependencies.
// now supplies the default snapshot date; pass time.Now in production.
func NewSnapshotHandler(snapshotService *service.SnapshotService, backfillService *service.BackfillService, now func() time.Time) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
		backfillService: backfillService,
		now:             now,
	}
}

// Create handles POST requests to produce a valuation snapshot for a date.
// Re-running for the same date replaces that date's rows. A non-trading date
// is reported as skipped unless force is set.
//
// Endpoint: POST /api/snapshot
// Request Body: SnapshotRequest (date optional, force)
// Response: 201 Created with SnapshotResult, 200 OK when skipped
// Error: 400 Bad Request if the date is invalid
// Error: 503 Service Unavailable if the ledger is locked
func (h *SnapshotHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SnapshotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	date := h.now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		date, err = validation.ParseDate(req.Date)
		if err != nil {
			respondServiceError(w, err)
			return
		}
	}

	result, err := h.snapshotService.CreateSnapshot(r.Context(), date, req.Force)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if result.Skipped {
		response.RespondJSON(w, http.StatusOK, result)
		return
	}
	response.RespondJSON(w, http.StatusCreated, result)
}

// BackfillResponse reports how many synthetic history days were generated.
type BackfillResponse struct {
	DaysGenerated int `json:"daysGenerated"`
}

// Backfill handles POST requests to generate synthetic valuation history.
// The generator no-ops when enough real history already exists.
//
// Endpoint: POST /api/snapshot/backfill
// Response: 200 OK with BackfillResponse
// Error: 500 Internal Server Error if generation fails
func (h *SnapshotHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	days, err := h.backfillService.Run(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to backfill history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, BackfillResponse{DaysGenerated: days})
}
