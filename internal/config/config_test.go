package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GRPCAddr != ":50051" || cfg.DefaultFloristsRequired != 2 || cfg.InvoiceOverdueDays != 30 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Location().String() != "Europe/Paris" {
		t.Fatalf("location = %s", cfg.Location())
	}
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "florist.yaml")
	yml := "db:\n  driver: sqlite\n  path: data.db\ngrpc_addr: \":6000\"\ninvoice_overdue_days: 45\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("GRPC_ADDR", ":7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Driver != DriverSQLite || cfg.DB.DSN() != "data.db" {
		t.Fatalf("unexpected db %+v", cfg.DB)
	}
	if cfg.InvoiceOverdueDays != 45 {
		t.Fatalf("yaml value lost: %d", cfg.InvoiceOverdueDays)
	}
	if cfg.GRPCAddr != ":7000" {
		t.Fatalf("env must override yaml, got %s", cfg.GRPCAddr)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// .env не перекрывает уже заданные переменные, поэтому снимаем её;
	// t.Setenv вернёт исходное состояние после теста.
	t.Setenv("DEFAULT_FLORISTS_REQUIRED", "")
	os.Unsetenv("DEFAULT_FLORISTS_REQUIRED")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DEFAULT_FLORISTS_REQUIRED=3\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultFloristsRequired != 3 {
		t.Fatalf("expected value from .env, got %d", cfg.DefaultFloristsRequired)
	}
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	cases := map[string]string{
		"APP_TIMEZONE":              "Mars/Olympus",
		"SWEEP_CRON":                "every night",
		"DB_DRIVER":                 "oracle",
		"DEFAULT_FLORISTS_REQUIRED": "-1",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(""); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}

func TestDBConfig_PostgresDSN(t *testing.T) {
	c := defaultDBConfig()
	want := "host=postgres user=florist password=florist dbname=florist_db port=5432 sslmode=disable TimeZone=Europe/Paris"
	if got := c.DSN(); got != want {
		t.Fatalf("DSN = %q", got)
	}
}

// chdir повторяет t.Chdir (Go 1.24+): меняет рабочий каталог и
// восстанавливает исходный после теста.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("Chdir back: %v", err)
		}
	})
}
