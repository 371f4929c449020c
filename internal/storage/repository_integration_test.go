//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/liqrisk/internal/domain/models"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "liqrisk",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=liqrisk sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "liqrisk")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func seedBars(t *testing.T, repo BarsRepository) []time.Time {
	t.Helper()
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2)}

	bars := make([]models.Bar, len(dates))
	for i, d := range dates {
		c := 100 + float64(i)
		bars[i] = models.Bar{Date: d, Open: c, High: c + 1, Low: c - 1, Close: c, Volume: float64(1000 * (i + 1))}
	}
	if err := repo.InsertBarsBatch("TEST", bars); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.InsertBarsBatch("OTHER", bars[:1]); err != nil {
		t.Fatalf("seed other: %v", err)
	}
	return dates
}

func TestRepository_Integration_TableDriven(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewBarsRepository(db)
	dates := seedBars(t, repo)

	cases := []struct {
		name      string
		start     *time.Time
		end       *time.Time
		wantCount int
		wantFirst float64
	}{
		{name: "all dates", wantCount: 3, wantFirst: 100},
		{name: "from day2", start: &dates[1], wantCount: 2, wantFirst: 101},
		{name: "last day only", start: &dates[2], wantCount: 1, wantFirst: 102},
		{name: "upper bound excludes day3", start: &dates[0], end: &dates[1], wantCount: 2, wantFirst: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bars, err := repo.GetBars("TEST", tc.start, tc.end)
			if err != nil {
				t.Fatalf("GetBars err: %v", err)
			}
			if len(bars) != tc.wantCount {
				t.Fatalf("got %d bars, want %d", len(bars), tc.wantCount)
			}
			if bars[0].Close != tc.wantFirst {
				t.Fatalf("first close = %.2f, want %.2f", bars[0].Close, tc.wantFirst)
			}
		})
	}

	t.Run("list tickers", func(t *testing.T) {
		got, err := repo.ListTickers()
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0] != "OTHER" || got[1] != "TEST" {
			t.Fatalf("unexpected tickers %v", got)
		}
	})

	t.Run("ingestion log upsert+exists", func(t *testing.T) {
		if err := repo.UpsertIngestionLog("TEST", "TEST_raw.csv", 3); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if err := repo.UpsertIngestionLog("TEST", "TEST_raw.csv", 4); err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		ok, err := repo.HasIngestionForTicker("TEST")
		if err != nil || !ok {
			t.Fatalf("exists want true, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("delete by ticker", func(t *testing.T) {
		if err := repo.DeleteBarsByTicker("TEST"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		bars, err := repo.GetBars("TEST", nil, nil)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(bars) != 0 {
			t.Fatalf("expected 0 bars after delete, got %d", len(bars))
		}
	})
}
