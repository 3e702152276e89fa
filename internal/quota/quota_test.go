package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
)

// fakeLedger is an in-memory Ledger for exercising the gate's
// debit/refund flow without a database.
type fakeLedger struct {
	balance   int
	debits    int
	refunds   int
	refundErr error
}

func (f *fakeLedger) GetCredits(ctx context.Context, userID string) (int, error) {
	return f.balance, nil
}

func (f *fakeLedger) DebitCredit(ctx context.Context, userID string) error {
	if f.balance < 1 {
		return apperrors.NewQuotaError(userID, 1, f.balance)
	}
	f.balance--
	f.debits++
	return nil
}

func (f *fakeLedger) RefundCredit(ctx context.Context, userID string) error {
	if f.refundErr != nil {
		return f.refundErr
	}
	f.balance++
	f.refunds++
	return nil
}

func TestSpendDebitsOnce(t *testing.T) {
	ledger := &fakeLedger{balance: 3}
	gate := NewGate(ledger, zerolog.Nop())

	var calls int
	err := gate.Spend(context.Background(), "u1", func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Spend: %v", err)
	}
	if calls != 1 {
		t.Errorf("guarded call ran %d times, want 1", calls)
	}
	if ledger.balance != 2 || ledger.refunds != 0 {
		t.Errorf("balance = %d refunds = %d, want 2 and 0", ledger.balance, ledger.refunds)
	}
}

func TestSpendRefundsOnFailure(t *testing.T) {
	ledger := &fakeLedger{balance: 3}
	gate := NewGate(ledger, zerolog.Nop())

	genErr := errors.New("generation failed")
	err := gate.Spend(context.Background(), "u1", func(ctx context.Context) error {
		return genErr
	})
	if !errors.Is(err, genErr) {
		t.Fatalf("Spend err = %v, want the guarded call's error", err)
	}
	if ledger.balance != 3 {
		t.Errorf("balance = %d, want 3 after the compensating refund", ledger.balance)
	}
	if ledger.refunds != 1 {
		t.Errorf("refunds = %d, want 1", ledger.refunds)
	}
}

func TestSpendRejectedWithoutRunning(t *testing.T) {
	ledger := &fakeLedger{balance: 0}
	gate := NewGate(ledger, zerolog.Nop())

	var calls int
	err := gate.Spend(context.Background(), "u1", func(ctx context.Context) error {
		calls++
		return nil
	})
	if !apperrors.Is(err, apperrors.ErrInsufficientCredits) {
		t.Fatalf("Spend err = %v, want ErrInsufficientCredits", err)
	}
	if calls != 0 {
		t.Errorf("guarded call ran %d times despite rejected debit", calls)
	}
}

func TestSpendSurfacesOriginalErrorWhenRefundFails(t *testing.T) {
	genErr := errors.New("generation failed")
	ledger := &fakeLedger{balance: 1, refundErr: errors.New("ledger down")}
	gate := NewGate(ledger, zerolog.Nop())

	err := gate.Spend(context.Background(), "u1", func(ctx context.Context) error {
		return genErr
	})
	if !errors.Is(err, genErr) {
		t.Errorf("Spend err = %v, want the generation error even when the refund fails", err)
	}
}

func TestRemaining(t *testing.T) {
	ledger := &fakeLedger{balance: 7}
	gate := NewGate(ledger, zerolog.Nop())

	balance, err := gate.Remaining(context.Background(), "u1")
	if err != nil || balance != 7 {
		t.Errorf("Remaining = %d (%v), want 7", balance, err)
	}
}
