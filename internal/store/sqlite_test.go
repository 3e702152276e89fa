package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTrade(id string) *models.TradeRecord {
	return &models.TradeRecord{
		ID:         id,
		EntryPrice: 100,
		ExitPrice:  models.Float(110),
		Quantity:   models.Float(10),
		Direction:  models.DirectionLong,
		Strategy:   "breakout",
		Outcome:    models.OutcomeProfit,
		EntryTime:  "2026-01-05 09:30",
		Timestamp:  time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
	}
}

func TestSaveAndGetTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := sampleTrade("t1")
	want.StopLoss = models.Float(95)
	if err := s.SaveTrade(ctx, want); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	got, err := s.GetTradeByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTradeByID: %v", err)
	}
	if got.EntryPrice != 100 || got.Strategy != "breakout" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.ExitPrice == nil || *got.ExitPrice != 110 {
		t.Errorf("ExitPrice = %v, want 110", got.ExitPrice)
	}
	if got.StopLoss == nil || *got.StopLoss != 95 {
		t.Errorf("StopLoss = %v, want 95", got.StopLoss)
	}
	if got.ConfidenceLevel != nil {
		t.Errorf("absent ConfidenceLevel came back as %v, want nil", *got.ConfidenceLevel)
	}
}

func TestSaveTradeRequiresID(t *testing.T) {
	s := newTestStore(t)
	trade := sampleTrade("")
	if err := s.SaveTrade(context.Background(), trade); err == nil {
		t.Fatal("expected a validation error for a trade without an id")
	}
}

func TestGetTradeByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTradeByID(context.Background(), "missing")
	if !apperrors.Is(err, apperrors.ErrTradeNotFound) {
		t.Errorf("err = %v, want ErrTradeNotFound", err)
	}
}

func TestGetTradesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := sampleTrade("a")
	b := sampleTrade("b")
	b.Strategy = "reversal"
	b.Outcome = models.OutcomeLoss
	b.Timestamp = a.Timestamp.Add(24 * time.Hour)
	if err := s.SaveTrades(ctx, []models.TradeRecord{*a, *b}); err != nil {
		t.Fatalf("SaveTrades: %v", err)
	}

	all, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("all trades = %d (%v), want 2", len(all), err)
	}
	if all[0].ID != "a" {
		t.Errorf("trades not in timestamp order: first is %s", all[0].ID)
	}

	byStrategy, _ := s.GetTrades(ctx, TradeFilter{Strategy: "reversal"})
	if len(byStrategy) != 1 || byStrategy[0].ID != "b" {
		t.Errorf("strategy filter returned %+v", byStrategy)
	}

	byOutcome, _ := s.GetTrades(ctx, TradeFilter{Outcome: models.OutcomeProfit})
	if len(byOutcome) != 1 || byOutcome[0].ID != "a" {
		t.Errorf("outcome filter returned %+v", byOutcome)
	}

	byDate, _ := s.GetTrades(ctx, TradeFilter{
		StartDate: a.Timestamp.Add(time.Hour),
	})
	if len(byDate) != 1 || byDate[0].ID != "b" {
		t.Errorf("date filter returned %+v", byDate)
	}

	limited, _ := s.GetTrades(ctx, TradeFilter{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("limit filter returned %d trades", len(limited))
	}
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveTrade(ctx, sampleTrade("t1")); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTrade(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTrade: %v", err)
	}
	if err := s.DeleteTrade(ctx, "t1"); !apperrors.Is(err, apperrors.ErrTradeNotFound) {
		t.Errorf("second delete err = %v, want ErrTradeNotFound", err)
	}
}

func TestCreditsLedger(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Unknown users start at zero, not an error.
	balance, err := s.GetCredits(ctx, "alice")
	if err != nil || balance != 0 {
		t.Fatalf("fresh balance = %d (%v), want 0", balance, err)
	}

	if err := s.GrantCredits(ctx, "alice", 3); err != nil {
		t.Fatalf("GrantCredits: %v", err)
	}
	if err := s.DebitCredit(ctx, "alice"); err != nil {
		t.Fatalf("DebitCredit: %v", err)
	}
	balance, _ = s.GetCredits(ctx, "alice")
	if balance != 2 {
		t.Errorf("balance after debit = %d, want 2", balance)
	}

	if err := s.RefundCredit(ctx, "alice"); err != nil {
		t.Fatalf("RefundCredit: %v", err)
	}
	balance, _ = s.GetCredits(ctx, "alice")
	if balance != 3 {
		t.Errorf("balance after refund = %d, want 3", balance)
	}
}

func TestDebitCreditAtZero(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.DebitCredit(ctx, "broke")
	if !apperrors.Is(err, apperrors.ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}

	var quotaErr *apperrors.QuotaError
	if !apperrors.As(err, &quotaErr) {
		t.Fatal("debit rejection should carry the quota error type")
	}
	if quotaErr.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", quotaErr.Remaining)
	}
}

func TestDebitCreditNoDoubleSpend(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const credits = 5
	const attempts = 20
	if err := s.GrantCredits(ctx, "racer", credits); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.DebitCredit(ctx, "racer")
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else if !apperrors.Is(err, apperrors.ErrInsufficientCredits) {
			t.Errorf("unexpected debit error: %v", err)
		}
	}
	if succeeded != credits {
		t.Errorf("%d debits succeeded, want exactly %d", succeeded, credits)
	}
	balance, _ := s.GetCredits(ctx, "racer")
	if balance != 0 {
		t.Errorf("final balance = %d, want 0", balance)
	}
}

func TestSaveTradesBatchIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch := []models.TradeRecord{
		*sampleTrade("ok"),
		*sampleTrade(""), // invalid, missing id
	}
	if err := s.SaveTrades(ctx, batch); err == nil {
		t.Fatal("expected batch insert to fail on the invalid record")
	}

	all, _ := s.GetTrades(ctx, TradeFilter{})
	if len(all) != 0 {
		t.Errorf("partial batch persisted: %d trades", len(all))
	}
}
