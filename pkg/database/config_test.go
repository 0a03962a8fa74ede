package database_test

import (
	"strings"
	"testing"
	"time"

	"github.com/privacypoint/privacypoint/pkg/database"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := database.Config{Name: "testdb", User: "testuser"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"host", cfg.Host, "localhost"},
		{"port", cfg.Port, 5432},
		{"ssl_mode", cfg.SSLMode, "disable"},
		{"max_open_conns", cfg.MaxOpenConns, 25},
		{"max_idle_conns", cfg.MaxIdleConns, 5},
		{"conn_max_lifetime", cfg.ConnMaxLifetime, "15m"},
		{"conn_timeout", cfg.ConnTimeout, "5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "remotehost")
	t.Setenv("TEST_DB_PORT", "5433")
	t.Setenv("TEST_DB_NAME", "envdb")
	t.Setenv("TEST_DB_USER", "envuser")

	env := &database.Env{
		Host: "TEST_DB_HOST",
		Port: "TEST_DB_PORT",
		Name: "TEST_DB_NAME",
		User: "TEST_DB_USER",
	}

	cfg := database.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "remotehost" || cfg.Port != 5433 {
		t.Errorf("env override failed: %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Name != "envdb" || cfg.User != "envuser" {
		t.Errorf("env override failed: %s/%s", cfg.Name, cfg.User)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{"missing name", database.Config{User: "u"}, "name required"},
		{"missing user", database.Config{Name: "db"}, "user required"},
		{"bad lifetime", database.Config{Name: "db", User: "u", ConnMaxLifetime: "soon"}, "conn_max_lifetime"},
		{"bad timeout", database.Config{Name: "db", User: "u", ConnTimeout: "never"}, "conn_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDsn(t *testing.T) {
	cfg := database.Config{
		Host: "db", Port: 5432, Name: "privacypoint",
		User: "app", Password: "secret", SSLMode: "disable",
	}

	want := "host=db port=5432 dbname=privacypoint user=app password=secret sslmode=disable"
	if got := cfg.Dsn(); got != want {
		t.Errorf("Dsn() = %q, want %q", got, want)
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := database.Config{Name: "db", User: "u"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ConnMaxLifetimeDuration() != 15*time.Minute {
		t.Errorf("lifetime = %v", cfg.ConnMaxLifetimeDuration())
	}
	if cfg.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.ConnTimeoutDuration())
	}
}
