package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/liqrisk/config"
	"github.com/guttosm/liqrisk/internal/domain/models"
	"github.com/guttosm/liqrisk/internal/logger"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0", 0) // random port
	if srv == nil {
		t.Fatalf("expected server")
	}
	if srv.WriteTimeout != 35*time.Second {
		t.Fatalf("write timeout=%v", srv.WriteTimeout)
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0", time.Second)

	cleaned := make(chan struct{}, 1)
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

// writeExport writes a yfinance-style CSV with constant volume.
func writeExport(t *testing.T, path string, days int, volume float64) {
	t.Helper()
	var b strings.Builder
	b.WriteString("Date,Open,High,Low,Close,Adj Close,Volume\n")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		px := 100 + float64(i%4)
		fmt.Fprintf(&b, "%s,%g,%g,%g,%g,%g,%g\n", start.AddDate(0, 0, i).Format("2006-01-02"), px, px+1, px-1, px, px, volume)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
}

func simulateConfig() config.EngineConfig {
	return config.EngineConfig{
		ImpactK:           1,
		ADVWindow:         5,
		VolWindow:         5,
		ParticipationRate: 0.1,
		Confidence:        0.95,
		Workers:           2,
	}
}

func TestRunSimulate(t *testing.T) {
	logger.Init("error", false)
	dir := t.TempDir()
	in := filepath.Join(dir, "AAPL_raw.csv")
	out := filepath.Join(dir, "schedule.csv")
	writeExport(t, in, 30, 100000)

	err := runSimulate(context.Background(), simulateConfig(), simulateOptions{
		File:        in,
		Out:         out,
		TotalShares: 50000,
		Simulations: 100,
		Seed:        1,
	})
	if err != nil {
		t.Fatalf("runSimulate: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open out: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read out: %v", err)
	}
	// 10k shares a day for 5 days, plus header.
	if len(rows) != 6 {
		t.Fatalf("want 6 rows, got %d", len(rows))
	}
	if rows[5][3] != "50000.000000" {
		t.Fatalf("cum shares=%s", rows[5][3])
	}
}

func TestRunSimulate_Errors(t *testing.T) {
	logger.Init("error", false)
	dir := t.TempDir()
	short := filepath.Join(dir, "short.csv")
	writeExport(t, short, 3, 100000)

	cases := []struct {
		name string
		opts simulateOptions
	}{
		{name: "missing file", opts: simulateOptions{File: filepath.Join(dir, "nope.csv"), TotalShares: 10}},
		{name: "history shorter than windows", opts: simulateOptions{File: short, TotalShares: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := runSimulate(context.Background(), simulateConfig(), tc.opts); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

type memRepo struct {
	mu       sync.Mutex
	inserted map[string]int
}

func (m *memRepo) InsertBarsBatch(ticker string, bars []models.Bar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserted[ticker] += len(bars)
	return nil
}
func (m *memRepo) GetBars(string, *time.Time, *time.Time) ([]models.Bar, error) { return nil, nil }
func (m *memRepo) ListTickers() ([]string, error)                               { return nil, nil }
func (m *memRepo) HasIngestionForTicker(string) (bool, error)                   { return false, nil }
func (m *memRepo) UpsertIngestionLog(string, string, int) error                 { return nil }
func (m *memRepo) DeleteBarsByTicker(string) error                              { return nil }

func TestRunIngest(t *testing.T) {
	logger.Init("error", false)
	dir := t.TempDir()
	writeExport(t, filepath.Join(dir, "AAPL_raw.csv"), 10, 5000)

	cases := []struct {
		name    string
		tickers []string
		wantErr bool
		want    int
	}{
		{name: "partial failure is reported, not fatal", tickers: []string{"AAPL", "MSFT"}, want: 10},
		{name: "nothing loaded", tickers: []string{"MSFT"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &memRepo{inserted: map[string]int{}}
			err := runIngest(context.Background(), repo, dir, tc.tickers, 2, false)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tc.wantErr)
			}
			if repo.inserted["AAPL"] != tc.want {
				t.Fatalf("inserted=%d want %d", repo.inserted["AAPL"], tc.want)
			}
		})
	}
}
