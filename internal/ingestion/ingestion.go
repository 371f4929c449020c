package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/liqrisk/internal/domain/models"
	"github.com/guttosm/liqrisk/internal/logger"
	"github.com/guttosm/liqrisk/internal/marketdata"
	"github.com/guttosm/liqrisk/internal/storage"
)

const (
	fileSuffix         = "_raw.csv"
	defaultMaxParallel = 8
)

// TickerResult is the outcome of loading one ticker's file. Err is set instead
// of dropping the ticker, so callers always see every requested symbol.
type TickerResult struct {
	Ticker string
	File   string
	Bars   []models.Bar
	Err    error
}

// TickerOutcome is what ProcessDirectory did with one ticker.
type TickerOutcome struct {
	Ticker  string
	File    string
	Rows    int
	Skipped bool
	Err     error
}

// Report lists one outcome per requested ticker, in request order.
type Report struct {
	Outcomes []TickerOutcome
}

// Loaded counts tickers whose bars were written.
func (r Report) Loaded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil && !o.Skipped {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that carry an error.
func (r Report) Failed() []TickerOutcome {
	var out []TickerOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// FileName returns the expected export name for ticker, e.g. "AAPL_raw.csv".
func FileName(ticker string) string {
	return ticker + fileSuffix
}

// NormalizeTickers trims, upper-cases and de-duplicates a ticker list,
// keeping first-seen order.
func NormalizeTickers(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// LoadDirectory parses "<TICKER>_raw.csv" for every ticker concurrently.
//
// Parameters:
//   - dir: directory holding the exports.
//   - tickers: symbols to load; the result has the same length and order.
//   - parallel: goroutine limit; <= 0 means min(8, NumCPU).
//
// A missing or malformed file only fails its own TickerResult.
func LoadDirectory(ctx context.Context, dir string, tickers []string, parallel int) []TickerResult {
	log := logger.For("ingestion")
	results := make([]TickerResult, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel(parallel))

	for i, ticker := range tickers {
		g.Go(func() error {
			start := time.Now()
			file := filepath.Join(dir, FileName(ticker))
			res := TickerResult{Ticker: ticker, File: file}

			if err := gctx.Err(); err != nil {
				res.Err = err
				results[i] = res
				return nil
			}

			bars, err := ParseBarsFile(gctx, file)
			if err != nil {
				res.Err = fmt.Errorf("ticker %s: %w", ticker, err)
				log.Warn().Str("ticker", ticker).Str("file", filepath.Base(file)).Err(err).Msg("load failed")
			} else {
				res.Bars = bars
				log.Debug().Str("ticker", ticker).Int("rows", len(bars)).Dur("elapsed", time.Since(start)).Msg("file loaded")
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ProcessDirectory loads the tickers' exports from dir and stores their
// cleaned bars through repo.
//
// Behavior:
//   - A ticker already in the ingestion log is skipped unless force is set,
//     in which case its bars are deleted and reloaded.
//   - File problems are reported per ticker in the Report and do not stop
//     the run.
//   - Storage errors abort the run and are returned.
func ProcessDirectory(ctx context.Context, dir string, tickers []string, repo storage.BarsRepository, parallel int, force bool) (Report, error) {
	log := logger.For("ingestion")
	tickers = NormalizeTickers(tickers)
	if len(tickers) == 0 {
		return Report{}, fmt.Errorf("no tickers to ingest")
	}

	report := Report{Outcomes: make([]TickerOutcome, len(tickers))}
	existing := make(map[string]bool, len(tickers))
	pending := make([]string, 0, len(tickers))

	for i, t := range tickers {
		report.Outcomes[i] = TickerOutcome{Ticker: t, File: FileName(t)}

		exists, err := repo.HasIngestionForTicker(t)
		if err != nil {
			return report, fmt.Errorf("ticker %s: check ingestion log: %w", t, err)
		}
		if exists && !force {
			report.Outcomes[i].Skipped = true
			log.Info().Str("ticker", t).Bool("skipped", true).Msg("already ingested")
			continue
		}
		existing[t] = exists
		pending = append(pending, t)
	}

	log.Info().Int("tickers", len(pending)).Str("dir", dir).Bool("force", force).Msg("ingestion start")

	loaded := LoadDirectory(ctx, dir, pending, parallel)
	byTicker := make(map[string]TickerResult, len(loaded))
	for _, r := range loaded {
		byTicker[r.Ticker] = r
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel(parallel))

	for i := range report.Outcomes {
		out := &report.Outcomes[i]
		res, ok := byTicker[out.Ticker]
		if !ok {
			continue
		}
		if res.Err != nil {
			out.Err = res.Err
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			bars := marketdata.Clean(res.Bars)

			if existing[out.Ticker] {
				if err := repo.DeleteBarsByTicker(out.Ticker); err != nil {
					return fmt.Errorf("ticker %s: delete existing: %w", out.Ticker, err)
				}
			}
			if err := repo.InsertBarsBatch(out.Ticker, bars); err != nil {
				return fmt.Errorf("ticker %s: insert bars: %w", out.Ticker, err)
			}
			if err := repo.UpsertIngestionLog(out.Ticker, out.File, len(bars)); err != nil {
				return fmt.Errorf("ticker %s: upsert ingestion log: %w", out.Ticker, err)
			}

			out.Rows = len(bars)
			log.Info().Str("ticker", out.Ticker).Int("rows", len(bars)).Int("dropped", len(res.Bars)-len(bars)).
				Dur("elapsed", time.Since(start)).Msg("ticker done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("ingestion aborted")
		return report, err
	}

	log.Info().Int("loaded", report.Loaded()).Int("failed", len(report.Failed())).Msg("ingestion done")
	return report, nil
}

func maxParallel(parallel int) int {
	if parallel > 0 {
		return parallel
	}
	if c := runtime.NumCPU(); c < defaultMaxParallel {
		return c
	}
	return defaultMaxParallel
}
