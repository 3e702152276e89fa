package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

const sampleCSV = `id,entry_price,exit_price,quantity,trade_direction,strategy,outcome
t1,100,110,10,long,breakout,profit
,200,190,5,short,reversal,profit
`

func TestImportCSV(t *testing.T) {
	trades, err := ImportCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("imported %d trades, want 2", len(trades))
	}

	first := trades[0]
	if first.ID != "t1" || first.EntryPrice != 100 {
		t.Errorf("first trade = %+v", first)
	}
	if first.ExitPrice == nil || *first.ExitPrice != 110 {
		t.Errorf("ExitPrice = %v, want 110", first.ExitPrice)
	}

	// Missing id and timestamp get filled.
	second := trades[1]
	if second.ID == "" {
		t.Error("missing id was not assigned")
	}
	if second.Timestamp.IsZero() {
		t.Error("missing timestamp was not assigned")
	}
	if second.Direction != models.DirectionShort {
		t.Errorf("direction = %q, want short", second.Direction)
	}
}

func TestImportCSVMalformed(t *testing.T) {
	_, err := ImportCSV(strings.NewReader("id,entry_price\nt1,100,extra,columns"))
	if err == nil {
		t.Fatal("expected an error for a malformed CSV")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	original := []models.TradeRecord{
		{
			ID:         "t1",
			EntryPrice: 100,
			ExitPrice:  models.Float(110),
			Quantity:   models.Float(10),
			Direction:  models.DirectionLong,
			Strategy:   "breakout",
			EntryTime:  "2026-01-05 09:30",
			Outcome:    models.OutcomeProfit,
			Timestamp:  time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, original); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	back, err := ImportCSV(&buf)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("round trip returned %d trades, want 1", len(back))
	}
	got := back[0]
	if got.ID != "t1" || got.Strategy != "breakout" || got.EntryTime != "2026-01-05 09:30" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.ExitPrice == nil || *got.ExitPrice != 110 {
		t.Errorf("ExitPrice = %v, want 110", got.ExitPrice)
	}
}
