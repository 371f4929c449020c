package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/liqrisk/config"
)

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329,
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	// readiness probe ping
	mock.ExpectPing()
	mock.ExpectQuery(`SELECT DISTINCT ticker FROM market_bars`).
		WillReturnRows(sqlmock.NewRows([]string{"ticker"}).AddRow("AAPL"))
	mock.ExpectClose()

	oldOpener := postgresOpener
	oldCfg := config.AppConfig
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	config.AppConfig = config.Config{
		Server:    config.ServerConfig{RequestTimeout: 5 * time.Second},
		RateLimit: config.RateLimitConfig{Requests: 100, Window: time.Minute},
		Engine:    config.EngineConfig{Simulations: 10, MaxSimulations: 100, Confidence: 0.95},
	}
	t.Cleanup(func() {
		postgresOpener = oldOpener
		config.AppConfig = oldCfg
	})

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err set or nil components")
	}

	cases := []struct {
		path string
		want int
		body string
	}{
		{path: "/healthz", want: http.StatusOK},
		{path: "/readyz", want: http.StatusOK},
		{path: "/api/v1/tickers", want: http.StatusOK, body: `"AAPL"`},
		{path: "/metrics", want: http.StatusOK, body: "liqrisk_http_requests_total"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.want {
			t.Fatalf("%s status=%d", tc.path, w.Code)
		}
		if tc.body != "" && !strings.Contains(w.Body.String(), tc.body) {
			t.Fatalf("%s body missing %q", tc.path, tc.body)
		}
	}

	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
