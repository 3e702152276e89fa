// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/sanjuujosephh/trade-journey-insights-sub000/internal/errors"
	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Journaled trades
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		entry_price REAL NOT NULL,
		exit_price REAL,
		quantity REAL,
		trade_direction TEXT NOT NULL DEFAULT 'long',
		strategy TEXT,
		market_condition TEXT,
		timeframe TEXT,
		exit_reason TEXT,
		option_type TEXT,
		entry_emotion TEXT,
		exit_emotion TEXT,
		confidence_level INTEGER,
		is_impulsive INTEGER,
		plan_deviation INTEGER,
		satisfaction_score REAL,
		entry_time TEXT,
		entry_date TEXT,
		exit_time TEXT,
		exit_date TEXT,
		timestamp DATETIME NOT NULL,
		stop_loss REAL,
		planned_target REAL,
		vix REAL,
		outcome TEXT,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_timestamp ON trades(timestamp);
	CREATE INDEX IF NOT EXISTS idx_trades_strategy ON trades(strategy);

	-- Usage-credit ledger for narrative generation
	CREATE TABLE IF NOT EXISTS credits (
		user_id TEXT PRIMARY KEY,
		balance INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SaveTrade inserts or replaces a trade record.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.TradeRecord) error {
	return insertTrade(ctx, s.db, trade)
}

func insertTrade(ctx context.Context, ex execer, trade *models.TradeRecord) error {
	if trade.ID == "" {
		return apperrors.NewValidationError("id", trade.ID, "trade id is required")
	}
	if trade.Timestamp.IsZero() {
		trade.Timestamp = time.Now()
	}

	_, err := ex.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades (
			id, entry_price, exit_price, quantity, trade_direction,
			strategy, market_condition, timeframe, exit_reason, option_type,
			entry_emotion, exit_emotion, confidence_level, is_impulsive,
			plan_deviation, satisfaction_score,
			entry_time, entry_date, exit_time, exit_date, timestamp,
			stop_loss, planned_target, vix, outcome, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, trade.EntryPrice, nullFloat(trade.ExitPrice), nullFloat(trade.Quantity),
		string(trade.Direction),
		trade.Strategy, trade.MarketCondition, trade.Timeframe, trade.ExitReason, trade.OptionType,
		trade.EntryEmotion, trade.ExitEmotion, nullInt(trade.ConfidenceLevel), nullBool(trade.IsImpulsive),
		nullBool(trade.PlanDeviation), nullFloat(trade.SatisfactionScore),
		trade.EntryTime, trade.EntryDate, trade.ExitTime, trade.ExitDate, trade.Timestamp,
		nullFloat(trade.StopLoss), nullFloat(trade.PlannedTarget), nullFloat(trade.VIX),
		string(trade.Outcome), trade.Notes,
	)
	if err != nil {
		return apperrors.Wrap(err, "saving trade")
	}
	return nil
}

// SaveTrades inserts a batch of trades in a single transaction.
func (s *SQLiteStore) SaveTrades(ctx context.Context, trades []models.TradeRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, "beginning batch insert")
	}
	defer tx.Rollback()

	for i := range trades {
		if err := insertTrade(ctx, tx, &trades[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetTrades returns trades matching the filter, oldest first.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.TradeRecord, error) {
	query := `SELECT
		id, entry_price, exit_price, quantity, trade_direction,
		strategy, market_condition, timeframe, exit_reason, option_type,
		entry_emotion, exit_emotion, confidence_level, is_impulsive,
		plan_deviation, satisfaction_score,
		entry_time, entry_date, exit_time, exit_date, timestamp,
		stop_loss, planned_target, vix, outcome, notes
	FROM trades`

	var conditions []string
	var args []interface{}

	if filter.Strategy != "" {
		conditions = append(conditions, "strategy = ?")
		args = append(args, filter.Strategy)
	}
	if filter.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, string(filter.Outcome))
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, "timestamp < ?")
		args = append(args, filter.EndDate)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "querying trades")
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "scanning trade")
		}
		trades = append(trades, *trade)
	}
	return trades, rows.Err()
}

// GetTradeByID returns a single trade.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id string) (*models.TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, entry_price, exit_price, quantity, trade_direction,
		strategy, market_condition, timeframe, exit_reason, option_type,
		entry_emotion, exit_emotion, confidence_level, is_impulsive,
		plan_deviation, satisfaction_score,
		entry_time, entry_date, exit_time, exit_date, timestamp,
		stop_loss, planned_target, vix, outcome, notes
	FROM trades WHERE id = ?`, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "querying trade")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, apperrors.ErrTradeNotFound
	}
	trade, err := scanTrade(rows)
	if err != nil {
		return nil, apperrors.Wrap(err, "scanning trade")
	}
	return trade, nil
}

// DeleteTrade removes a trade record.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return apperrors.Wrap(err, "deleting trade")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrTradeNotFound
	}
	return nil
}

// GetCredits returns the current credit balance for a user. Unknown
// users have a zero balance.
func (s *SQLiteStore) GetCredits(ctx context.Context, userID string) (int, error) {
	var balance int
	err := s.db.QueryRowContext(ctx,
		"SELECT balance FROM credits WHERE user_id = ?", userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "reading credit balance")
	}
	return balance, nil
}

// GrantCredits adds credits to a user's balance.
func (s *SQLiteStore) GrantCredits(ctx context.Context, userID string, amount int) error {
	if amount < 0 {
		return apperrors.NewValidationError("amount", amount, "grant must be non-negative")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credits (user_id, balance, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			balance = balance + excluded.balance,
			updated_at = CURRENT_TIMESTAMP`,
		userID, amount)
	return apperrors.Wrap(err, "granting credits")
}

// DebitCredit spends one credit. The balance check and the debit are a
// single conditional UPDATE, so a concurrently retried request cannot
// pass the check twice on the same credit.
func (s *SQLiteStore) DebitCredit(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE credits SET balance = balance - 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND balance >= 1`, userID)
	if err != nil {
		return apperrors.Wrap(err, "debiting credit")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "debiting credit")
	}
	if n == 0 {
		remaining, _ := s.GetCredits(ctx, userID)
		return apperrors.NewQuotaError(userID, 1, remaining)
	}
	return nil
}

// RefundCredit compensates a debit whose narrative generation failed
// after the debit succeeded.
func (s *SQLiteStore) RefundCredit(ctx context.Context, userID string) error {
	return s.GrantCredits(ctx, userID, 1)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanTrade(rows *sql.Rows) (*models.TradeRecord, error) {
	var t models.TradeRecord
	var (
		exitPrice, quantity, satisfaction   sql.NullFloat64
		stopLoss, plannedTarget, vix        sql.NullFloat64
		confidence                          sql.NullInt64
		impulsive, deviation                sql.NullBool
		direction, outcome                  string
		strategy, marketCondition           sql.NullString
		timeframe, exitReason, optionType   sql.NullString
		entryEmotion, exitEmotion, notes    sql.NullString
		entryTime, entryDate                sql.NullString
		exitTime, exitDate                  sql.NullString
	)

	err := rows.Scan(
		&t.ID, &t.EntryPrice, &exitPrice, &quantity, &direction,
		&strategy, &marketCondition, &timeframe, &exitReason, &optionType,
		&entryEmotion, &exitEmotion, &confidence, &impulsive,
		&deviation, &satisfaction,
		&entryTime, &entryDate, &exitTime, &exitDate, &t.Timestamp,
		&stopLoss, &plannedTarget, &vix, &outcome, &notes,
	)
	if err != nil {
		return nil, err
	}

	t.Direction = models.Direction(direction)
	t.Outcome = models.Outcome(outcome)
	t.ExitPrice = floatPtr(exitPrice)
	t.Quantity = floatPtr(quantity)
	t.SatisfactionScore = floatPtr(satisfaction)
	t.StopLoss = floatPtr(stopLoss)
	t.PlannedTarget = floatPtr(plannedTarget)
	t.VIX = floatPtr(vix)
	if confidence.Valid {
		v := int(confidence.Int64)
		t.ConfidenceLevel = &v
	}
	if impulsive.Valid {
		v := impulsive.Bool
		t.IsImpulsive = &v
	}
	if deviation.Valid {
		v := deviation.Bool
		t.PlanDeviation = &v
	}
	t.Strategy = strategy.String
	t.MarketCondition = marketCondition.String
	t.Timeframe = timeframe.String
	t.ExitReason = exitReason.String
	t.OptionType = optionType.String
	t.EntryEmotion = entryEmotion.String
	t.ExitEmotion = exitEmotion.String
	t.EntryTime = entryTime.String
	t.EntryDate = entryDate.String
	t.ExitTime = exitTime.String
	t.ExitDate = exitDate.String
	t.Notes = notes.String

	return &t, nil
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullBool(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
