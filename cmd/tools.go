package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Leganyst/florist-missions/internal/config"
	"github.com/Leganyst/florist-missions/internal/db"
	"github.com/Leganyst/florist-missions/internal/model"
	"github.com/Leganyst/florist-missions/internal/snapshot"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbCfg, err := config.LoadDBConfig(configPath)
		if err != nil {
			return fmt.Errorf("load db config: %w", err)
		}
		gormDB, err := db.NewGormDB(dbCfg)
		if err != nil {
			return fmt.Errorf("init db: %w", err)
		}
		defer closeDB(gormDB)

		if err := model.AutoMigrate(gormDB); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", dbCfg.Driver)
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Persist date-derived statuses once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.missions.SweepAutoTransitions(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range res.Transitions {
			fmt.Fprintf(out, "%s\t%s -> %s\n", t.EventID, t.From, t.To)
		}
		fmt.Fprintf(out, "checked %d, changed %d\n", res.Checked, len(res.Transitions))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Load a dashboard export (events, florists, clients)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := snapshot.Import(cmd.Context(), a.store, f, snapshot.Options{
			Location:                a.cfg.Location(),
			DefaultFloristsRequired: a.cfg.DefaultFloristsRequired,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		fmt.Fprintf(out, "imported %d events, %d florists, %d clients\n", res.Events, res.Florists, res.Clients)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file.json]",
	Short: "Write all data in the dashboard format (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var w io.Writer = cmd.OutOrStdout()
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		_, err = snapshot.Export(cmd.Context(), a.store, w, time.Now())
		return err
	},
}

var icsCmd = &cobra.Command{
	Use:   "ics <florist-id>",
	Short: "Print a florist's missions as an iCalendar feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.directory.FloristCalendar(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}
