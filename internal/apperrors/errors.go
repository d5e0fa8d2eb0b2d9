package apperrors

import "errors"

// Domain entity errors represent missing entities in the ledger.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPositionNotFound indicates that no position is held for the given ticker.
	ErrPositionNotFound = errors.New("position not found")

	// ErrSnapshotNotFound indicates no portfolio history rows for the given date.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to accounting rules.
var (
	// ErrInvalidTicker indicates the ticker does not match the required format
	// (one letter followed by up to nine alphanumerics or dots).
	ErrInvalidTicker = errors.New("invalid ticker format")

	// ErrInvalidShares indicates a share quantity that is zero or negative.
	ErrInvalidShares = errors.New("shares must be a positive integer")

	// ErrInvalidPrice indicates a price that is zero or negative.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInvalidStopLoss indicates a stop loss that is zero or negative when set.
	ErrInvalidStopLoss = errors.New("stop loss must be positive when set")

	// ErrInvalidAmount indicates a cash amount that is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidDate indicates a date that is missing or not in YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInsufficientShares indicates that a sell cannot be completed because
	// the position does not hold enough shares.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInsufficientCash indicates that a buy would push the cash balance negative.
	ErrInsufficientCash = errors.New("insufficient cash for this trade")
)

// Repository errors represent storage-level failures. Lock contention is
// retried with bounded backoff before ErrRepositoryBusy surfaces to the caller.
var (
	// ErrRepositoryBusy indicates the write lock could not be acquired within
	// the bounded retry window.
	ErrRepositoryBusy = errors.New("storage busy: write lock not acquired")

	// ErrRepositoryWrite indicates a storage write failed after the transaction
	// rolled back.
	ErrRepositoryWrite = errors.New("storage write failed")
)

// Configuration errors represent missing or invalid external configuration.
var (
	// ErrNoPriceSource indicates that no price source has been configured for
	// snapshot valuation.
	ErrNoPriceSource = errors.New("no price source configured")

	// ErrPriceUnavailable indicates the price source has no quote for the
	// requested ticker and date.
	ErrPriceUnavailable = errors.New("price unavailable")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToLoadState        = errors.New("failed to load ledger state")
	ErrFailedToRetrieveHistory  = errors.New("failed to retrieve portfolio history")
	ErrFailedToRetrieveTradeLog = errors.New("failed to retrieve trade log")
	ErrFailedToCreateSnapshot   = errors.New("failed to create snapshot")
	ErrFailedToExportHistory    = errors.New("failed to export portfolio history")
)
