package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tradejournal/Trading-Journal-Backend/internal/api/request"
	"github.com/tradejournal/Trading-Journal-Backend/internal/api/response"
	"github.com/tradejournal/Trading-Journal-Backend/internal/pricing"
	"github.com/tradejournal/Trading-Journal-Backend/internal/validation"
)

// PricingHandler handles HTTP requests for manual price overrides. Overrides
// feed the snapshot engine until cleared; they are the only way to price a
// ticker when no other source is configured.
type PricingHandler struct {
	overrides *pricing.Overrides
}

// NewPricingHandler creates a new PricingHandler with the provided override table.
func NewPricingHandler(overrides *pricing.Overrides) *PricingHandler {
	return &PricingHandler{
		overrides: overrides,
	}
}

// SetOverride handles POST requests to record a manual price for a ticker.
//
// Endpoint: POST /api/pricing/override
// Request Body: OverrideRequest (ticker, price)
// Response: 204 No Content
// Error: 400 Bad Request if the ticker or price is invalid
func (h *PricingHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.OverrideRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ticker, err := validation.NormalizeTicker(req.Ticker)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if err := validation.ValidatePrice(req.Price); err != nil {
		respondServiceError(w, err)
		return
	}

	h.overrides.Set(ticker, req.Price.Round(2))
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ClearOverride handles DELETE requests to remove a ticker's manual price.
//
// Endpoint: DELETE /api/pricing/override/{ticker}
// Response: 204 No Content
// Error: 400 Bad Request if the ticker is invalid
func (h *PricingHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	ticker, err := validation.NormalizeTicker(chi.URLParam(r, "ticker"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.overrides.Clear(ticker)
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// OverrideResponse reports a single manual price.
type OverrideResponse struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
}

// GetOverride handles GET requests for a ticker's manual price.
//
// Endpoint: GET /api/pricing/override/{ticker}
// Response: 200 OK with OverrideResponse
// Error: 404 Not Found if no override is set
func (h *PricingHandler) GetOverride(w http.ResponseWriter, r *http.Request) {
	ticker, err := validation.NormalizeTicker(chi.URLParam(r, "ticker"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	price, ok := h.overrides.Get(ticker)
	if !ok {
		response.RespondError(w, http.StatusNotFound, "no override set", ticker)
		return
	}

	response.RespondJSON(w, http.StatusOK, OverrideResponse{Ticker: ticker, Price: price})
}
