package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/liqrisk/internal/domain/models"
	pq "github.com/lib/pq"
)

// BarsRepository defines the contract for persisting daily OHLCV history.
// Only raw market bars live in the database; engine results are never stored.
type BarsRepository interface {
	InsertBarsBatch(ticker string, bars []models.Bar) error
	GetBars(ticker string, startDate *time.Time, endDate *time.Time) ([]models.Bar, error)
	ListTickers() ([]string, error)
	HasIngestionForTicker(ticker string) (bool, error)
	UpsertIngestionLog(ticker string, filename string, rowCount int) error
	DeleteBarsByTicker(ticker string) error
}

type barsRepository struct {
	db *sql.DB
}

func NewBarsRepository(db *sql.DB) BarsRepository {
	return &barsRepository{db: db}
}

// InsertBarsBatch bulk-loads bars for one ticker with COPY in a single transaction.
func (r *barsRepository) InsertBarsBatch(ticker string, bars []models.Bar) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"market_bars",
		"ticker",
		"trade_date",
		"open",
		"high",
		"low",
		"close",
		"volume",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, b := range bars {
		if _, err := stmt.Exec(ticker, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetBars returns the bars of a ticker in ascending date order, optionally
// bounded by an inclusive date range. An unknown ticker yields an empty slice.
func (r *barsRepository) GetBars(ticker string, startDate *time.Time, endDate *time.Time) ([]models.Bar, error) {
	conditions := "ticker = $1"
	args := []interface{}{ticker}
	if startDate != nil {
		conditions += fmt.Sprintf(" AND trade_date >= $%d", len(args)+1)
		args = append(args, *startDate)
	}
	if endDate != nil {
		conditions += fmt.Sprintf(" AND trade_date <= $%d", len(args)+1)
		args = append(args, *endDate)
	}

	query := fmt.Sprintf(`
		SELECT trade_date, open, high, low, close, volume
		FROM market_bars
		WHERE %s
		ORDER BY trade_date
	`, conditions)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	bars := make([]models.Bar, 0)
	for rows.Next() {
		var b models.Bar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}

// ListTickers returns every ticker with stored bars, alphabetically.
func (r *barsRepository) ListTickers() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT ticker FROM market_bars ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tickers := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

// HasIngestionForTicker checks if a file was already loaded for ticker.
func (r *barsRepository) HasIngestionForTicker(ticker string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE ticker = $1)`, ticker).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or refreshes) the ingestion entry for ticker.
func (r *barsRepository) UpsertIngestionLog(ticker string, filename string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (ticker, filename, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker)
		DO UPDATE SET filename = EXCLUDED.filename,
		              row_count = EXCLUDED.row_count,
		              ingested_at = NOW()
	`, ticker, filename, rowCount)
	return err
}

// DeleteBarsByTicker removes every stored bar of ticker.
func (r *barsRepository) DeleteBarsByTicker(ticker string) error {
	_, err := r.db.Exec(`DELETE FROM market_bars WHERE ticker = $1`, ticker)
	return err
}
