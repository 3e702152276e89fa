// Package quota gates the narrative-generation path behind a usage-credit
// ledger. The ledger's check-and-debit is atomic and at-most-once: a
// concurrently retried request can never spend the same credit twice.
package quota

import (
	"context"

	"github.com/rs/zerolog"
)

// Ledger is the credit operations the gate needs from the store.
type Ledger interface {
	GetCredits(ctx context.Context, userID string) (int, error)
	DebitCredit(ctx context.Context, userID string) error
	RefundCredit(ctx context.Context, userID string) error
}

// Gate wraps a Ledger with logging and the compensating-refund flow.
type Gate struct {
	ledger Ledger
	log    zerolog.Logger
}

// NewGate creates a quota gate over the given ledger.
func NewGate(ledger Ledger, log zerolog.Logger) *Gate {
	return &Gate{ledger: ledger, log: log}
}

// Spend debits one credit before the guarded call runs. On failure of
// the guarded call the debit is refunded, so a failed narrative
// generation does not consume quota. The debit itself is indivisible
// from its balance check; only the refund is a separate compensating
// step.
func (g *Gate) Spend(ctx context.Context, userID string, fn func(ctx context.Context) error) error {
	if err := g.ledger.DebitCredit(ctx, userID); err != nil {
		g.log.Warn().Str("user_id", userID).Err(err).Msg("Credit debit rejected")
		return err
	}
	g.log.Debug().Str("user_id", userID).Msg("Credit debited")

	if err := fn(ctx); err != nil {
		if refundErr := g.ledger.RefundCredit(ctx, userID); refundErr != nil {
			g.log.Error().Str("user_id", userID).Err(refundErr).
				Msg("Refund after failed generation also failed; credit lost")
		} else {
			g.log.Info().Str("user_id", userID).Msg("Credit refunded after failure")
		}
		return err
	}
	return nil
}

// Remaining reports the user's current balance.
func (g *Gate) Remaining(ctx context.Context, userID string) (int, error) {
	return g.ledger.GetCredits(ctx, userID)
}
