package store

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// ImportCSV reads trade records from CSV. Field validation beyond shape
// mapping is not done here; per-metric filtering stays in the analytics
// engine. Records arriving without a creation timestamp get one now so
// the date-grouping fallback always has something to stand on.
func ImportCSV(r io.Reader) ([]models.TradeRecord, error) {
	var trades []models.TradeRecord
	if err := gocsv.Unmarshal(r, &trades); err != nil {
		return nil, apperrors.Wrap(err, "parsing trades CSV")
	}

	now := time.Now()
	for i := range trades {
		if trades[i].ID == "" {
			trades[i].ID = fmt.Sprintf("import-%d-%d", now.UnixNano(), i)
		}
		if trades[i].Timestamp.IsZero() {
			trades[i].Timestamp = now
		}
	}
	return trades, nil
}

// ExportCSV writes trade records as CSV.
func ExportCSV(w io.Writer, trades []models.TradeRecord) error {
	if err := gocsv.Marshal(&trades, w); err != nil {
		return apperrors.Wrap(err, "writing trades CSV")
	}
	return nil
}
