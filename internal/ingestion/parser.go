package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

// requiredColumns are resolved by header name, so column order and extra
// columns such as "Adj Close" do not matter.
var requiredColumns = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05-07:00", "2006-01-02 15:04:05"}

// ErrMissingColumns is returned when the header lacks a required column.
var ErrMissingColumns = errors.New("missing required columns")

// ParseBarsFile opens path and parses it with ParseBarsCSV.
func ParseBarsFile(ctx context.Context, path string) ([]models.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseBarsCSV(ctx, f)
}

// ParseBarsCSV reads a daily OHLCV export (one header line, comma separated).
//
// It fails on:
//   - a header missing any of Date, Open, High, Low, Close, Volume
//   - an unparseable date or number (the error names the line)
//
// It tolerates:
//   - empty numeric cells (they become NaN and are dropped by cleaning)
//   - the two metadata rows ("Ticker", "Date") of multi-index exports, whose
//     date column is labelled "Price"
func ParseBarsCSV(ctx context.Context, r io.Reader) ([]models.Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	bars := make([]models.Bar, 0, 256)
	lineNumber := 1

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) < len(header) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(header), len(rec))
		}
		if isMetadataRow(rec[idx["Date"]]) {
			continue
		}

		b, err := recordToBar(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		bars = append(bars, b)
	}

	return bars, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(requiredColumns))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, want := range requiredColumns {
			if strings.EqualFold(name, want) {
				if _, dup := idx[want]; !dup {
					idx[want] = i
				}
			}
		}
	}
	if _, ok := idx["Date"]; !ok && len(header) > 0 && strings.EqualFold(strings.TrimSpace(header[0]), "Price") {
		idx["Date"] = 0
	}

	var missing []string
	for _, want := range requiredColumns {
		if _, ok := idx[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func isMetadataRow(dateCell string) bool {
	s := strings.TrimSpace(dateCell)
	return strings.EqualFold(s, "Ticker") || strings.EqualFold(s, "Date")
}

func recordToBar(rec []string, idx map[string]int) (models.Bar, error) {
	var b models.Bar

	d, err := parseDate(rec[idx["Date"]])
	if err != nil {
		return b, err
	}
	b.Date = d

	fields := []struct {
		name string
		dst  *float64
	}{
		{"Open", &b.Open},
		{"High", &b.High},
		{"Low", &b.Low},
		{"Close", &b.Close},
		{"Volume", &b.Volume},
	}
	for _, f := range fields {
		v, err := parseNumber(rec[idx[f.name]])
		if err != nil {
			return b, fmt.Errorf("invalid %s: %v", f.name, err)
		}
		*f.dst = v
	}
	return b, nil
}

// parseDate keeps only the calendar day, in UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty Date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid Date %q", s)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
