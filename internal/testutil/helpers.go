package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tradejournal/Trading-Journal-Backend/internal/audit"
	"github.com/tradejournal/Trading-Journal-Backend/internal/calendar"
	"github.com/tradejournal/Trading-Journal-Backend/internal/pricing"
	"github.com/tradejournal/Trading-Journal-Backend/internal/repository"
	"github.com/tradejournal/Trading-Journal-Backend/internal/service"
)

// FixedClock returns a clock function pinned to the given date string.
// Fails the test on a malformed date.
func FixedClock(t *testing.T, date string) func() time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Failed to parse fixed clock date %q: %v", date, err)
	}
	return func() time.Time { return parsed.UTC() }
}

// Money parses a decimal literal, failing the test on a malformed value.
func Money(t *testing.T, value string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("Failed to parse decimal %q: %v", value, err)
	}
	return d
}

// NewTestAuditLogger returns an audit logger that discards all output.
func NewTestAuditLogger() *audit.Logger {
	return audit.New(zerolog.Nop())
}

func NewTestLedgerService(t *testing.T, db *sql.DB, date string) *service.LedgerService {
	t.Helper()

	ledgerRepo := repository.NewLedgerRepository(db)

	return service.NewLedgerService(
		ledgerRepo,
		NewTestAuditLogger(),
		FixedClock(t, date),
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB, prices pricing.Source, holidays []string) *service.SnapshotService {
	t.Helper()

	ledgerRepo := repository.NewLedgerRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	return service.NewSnapshotService(
		ledgerRepo,
		historyRepo,
		calendar.New(holidays),
		prices,
		NewTestAuditLogger(),
	)
}

func NewTestHistoryService(t *testing.T, db *sql.DB) *service.HistoryService {
	t.Helper()

	return service.NewHistoryService(repository.NewHistoryRepository(db))
}

func NewTestAnalysisService(t *testing.T, db *sql.DB, initialCash string) *service.AnalysisService {
	t.Helper()

	ledgerRepo := repository.NewLedgerRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	return service.NewAnalysisService(
		ledgerRepo,
		historyRepo,
		Money(t, initialCash),
	)
}
