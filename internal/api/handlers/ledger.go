package handlers

import (
	"net/http"

	"github.com/tradejournal/Trading-Journal-Backend/internal/api/request"
	"github.com/tradejournal/Trading-Journal-Backend/internal/api/response"
	"github.com/tradejournal/Trading-Journal-Backend/internal/service"
)

// LedgerHandler handles HTTP requests for ledger endpoints: portfolio state,
// trades and cash movements. It parses requests and delegates business logic
// to the ledgerService.
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler with the provided service dependency.
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// State handles GET requests for the current ledger state: open positions,
// cash balance and the first-time flag.
//
// Endpoint: GET /api/ledger/state
// Response: 200 OK with LedgerState
// Error: 500 Internal Server Error if the state cannot be loaded
func (h *LedgerHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.ledgerService.State(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to load ledger state", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, state)
}

// Buy handles POST requests to purchase shares. The position, cash balance
// and trade log are updated in one transaction.
//
// Endpoint: POST /api/ledger/buy
// Request Body: BuyRequest (ticker, shares, price, stopLoss)
// Response: 201 Created with BuyResult
// Error: 400 Bad Request if validation fails or cash is insufficient
// Error: 503 Service Unavailable if the ledger is locked
func (h *LedgerHandler) Buy(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BuyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerService.Buy(r.Context(), req.Ticker, req.Shares, req.Price, req.StopLoss)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// Sell handles POST requests to sell shares from an open position.
//
// Endpoint: POST /api/ledger/sell
// Request Body: SellRequest (ticker, shares, price, reason)
// Response: 201 Created with SellResult
// Error: 400 Bad Request if validation fails or shares are insufficient
// Error: 404 Not Found if no position exists for the ticker
// Error: 503 Service Unavailable if the ledger is locked
func (h *LedgerHandler) Sell(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SellRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.ledgerService.Sell(r.Context(), req.Ticker, req.Shares, req.Price, req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// DepositResponse reports the cash balance after a deposit.
type DepositResponse struct {
	Cash string `json:"cash"`
}

// Deposit handles POST requests to add cash to the ledger.
//
// Endpoint: POST /api/ledger/deposit
// Request Body: DepositRequest (amount)
// Response: 200 OK with DepositResponse
// Error: 400 Bad Request if the amount is not positive
// Error: 503 Service Unavailable if the ledger is locked
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.DepositRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.ledgerService.Deposit(r.Context(), req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, DepositResponse{Cash: balance.StringFixed(2)})
}

// TradeLog handles GET requests for the full trade history.
//
// Endpoint: GET /api/ledger/trades
// Response: 200 OK with array of TradeLogEntry
// Error: 500 Internal Server Error if retrieval fails
func (h *LedgerHandler) TradeLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ledgerService.TradeLog(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve trade log", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}
