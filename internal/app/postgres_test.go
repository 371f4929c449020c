package app

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/liqrisk/config"
)

func TestInitPostgres_OpenError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		return nil, errors.New("open failed")
	}
	t.Cleanup(func() { sqlOpener = old })

	_, err := InitPostgres(config.Config{Postgres: config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"}})
	if err == nil {
		t.Fatalf("expected error from InitPostgres when open fails")
	}
}

func TestInitPostgres_PingError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		mock.ExpectPing().WillReturnError(errors.New("ping failed"))
		mock.ExpectClose()
		return db, nil
	}
	t.Cleanup(func() { sqlOpener = old })

	_, err := InitPostgres(config.Config{Postgres: config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"}})
	if err == nil {
		t.Fatalf("expected ping error from InitPostgres")
	}
}

func TestInitPostgres_DSN(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.PostgresConfig
		want string
	}{
		{
			name: "computed url wins",
			cfg:  config.PostgresConfig{URL: "postgres://a:b@db:5433/x?sslmode=require", Host: "ignored"},
			want: "postgres://a:b@db:5433/x?sslmode=require",
		},
		{
			name: "built from fields",
			cfg:  config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"},
			want: "postgres://u:p@h:5432/d?sslmode=disable",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			old := sqlOpener
			sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
				got = dataSourceName
				db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
				if err != nil {
					t.Fatalf("sqlmock new: %v", err)
				}
				mock.ExpectPing()
				return db, nil
			}
			t.Cleanup(func() { sqlOpener = old })

			db, err := InitPostgres(config.Config{Postgres: tc.cfg})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_ = db.Close()
			if got != tc.want {
				t.Fatalf("dsn=%q want %q", got, tc.want)
			}
		})
	}
}
