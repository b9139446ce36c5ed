package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Leganyst/florist-missions/internal/config"
	"github.com/Leganyst/florist-missions/internal/db"
	appLog "github.com/Leganyst/florist-missions/internal/log"
	"github.com/Leganyst/florist-missions/internal/model"
	"github.com/Leganyst/florist-missions/internal/repository"
	"github.com/Leganyst/florist-missions/internal/service"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "florist-missions",
	Short:         "Missions, florists and billing for the floristry dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $FLORIST_CONFIG)")

	rootCmd.AddCommand(
		serveCmd,
		migrateCmd,
		sweepCmd,
		importCmd,
		exportCmd,
		icsCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		appLog.Error("command failed", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app — всё, что нужно командам: конфиг, БД и сервисы.
type app struct {
	cfg       *config.Config
	db        *gorm.DB
	store     *repository.Store
	missions  *service.MissionService
	directory *service.DirectoryService
}

// openApp загружает конфиг, подключается к БД и накатывает миграции.
func openApp() (*app, error) {
	// 1. Конфиг: defaults → YAML → env.
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	// 4. Репозитории и сервисы.
	store := repository.NewStore(gormDB)
	opts := []service.Option{
		service.WithLocation(cfg.Location()),
		service.WithDefaultFloristsRequired(cfg.DefaultFloristsRequired),
		service.WithInvoiceOverdueDays(cfg.InvoiceOverdueDays),
	}

	return &app{
		cfg:       cfg,
		db:        gormDB,
		store:     store,
		missions:  service.NewMissionService(store, opts...),
		directory: service.NewDirectoryService(store, opts...),
	}, nil
}

func (a *app) Close() {
	closeDB(a.db)
}

func closeDB(gormDB *gorm.DB) {
	if err := db.Close(gormDB); err != nil {
		appLog.Warn("close db", "error", err.Error())
	}
}
