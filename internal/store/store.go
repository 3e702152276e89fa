// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// DataStore defines the interface for data persistence. It owns the
// trade records and the usage-credit ledger; the analytics engine only
// ever receives an already-fetched trade collection and never writes
// back through this interface.
type DataStore interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.TradeRecord) error
	SaveTrades(ctx context.Context, trades []models.TradeRecord) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.TradeRecord, error)
	GetTradeByID(ctx context.Context, id string) (*models.TradeRecord, error)
	DeleteTrade(ctx context.Context, id string) error

	// Usage-credit ledger
	GetCredits(ctx context.Context, userID string) (int, error)
	GrantCredits(ctx context.Context, userID string, amount int) error
	// DebitCredit performs the check-and-debit as one atomic operation
	// and returns errors.ErrInsufficientCredits (wrapped) on an empty
	// balance. Concurrent retries of the same request cannot double-spend.
	DebitCredit(ctx context.Context, userID string) error
	RefundCredit(ctx context.Context, userID string) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	Strategy  string
	Outcome   models.Outcome
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}
