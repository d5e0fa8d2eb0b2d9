package handlers

import (
	"net/http"

	"github.com/tradejournal/Trading-Journal-Backend/internal/api/response"
	"github.com/tradejournal/Trading-Journal-Backend/internal/service"
)

// AnalysisHandler handles HTTP requests for the audit analyzers.
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler with the provided service dependency.
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// CashAudit handles GET requests to replay the trade log from the initial
// balance and cross-check the result against recorded TOTAL rows.
//
// Endpoint: GET /api/analysis/cash
// Response: 200 OK with CashReport
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalysisHandler) CashAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.analysisService.ReconstructCash(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to audit cash", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// Drawdown handles GET requests for per-ticker drawdown series and maxima.
//
// Endpoint: GET /api/analysis/drawdown
// Response: 200 OK with map of ticker to TickerDrawdown
// Error: 500 Internal Server Error if retrieval fails
func (h *AnalysisHandler) Drawdown(w http.ResponseWriter, r *http.Request) {
	drawdowns, err := h.analysisService.Drawdown(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute drawdown", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, drawdowns)
}
