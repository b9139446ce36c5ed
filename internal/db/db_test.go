package db

import (
	"path/filepath"
	"testing"

	"github.com/Leganyst/florist-missions/internal/config"
	"github.com/Leganyst/florist-missions/internal/model"
)

func TestNewGormDB_SQLiteMigrates(t *testing.T) {
	cfg := &config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "florist.db"),
	}
	gdb, err := NewGormDB(cfg)
	if err != nil {
		t.Fatalf("NewGormDB: %v", err)
	}
	if err := model.AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if !gdb.Migrator().HasTable(&model.Event{}) || !gdb.Migrator().HasTable(&model.FloristAssignment{}) {
		t.Fatalf("tables not created")
	}
}

func TestNewGormDB_UnknownDriver(t *testing.T) {
	if _, err := NewGormDB(&config.DBConfig{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestClose_ReleasesPool(t *testing.T) {
	cfg := &config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "florist.db"),
	}
	gdb, err := NewGormDB(cfg)
	if err != nil {
		t.Fatalf("NewGormDB: %v", err)
	}
	if err := Close(gdb); err != nil {
		t.Fatalf("Close: %v", err)
	}
	sqlDB, _ := gdb.DB()
	if err := sqlDB.Ping(); err == nil {
		t.Fatalf("pool must be closed")
	}
}
