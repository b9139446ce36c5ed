package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	missionsv1 "github.com/Leganyst/florist-missions/internal/api/missions/v1"
	appLog "github.com/Leganyst/florist-missions/internal/log"
	"github.com/Leganyst/florist-missions/internal/scheduler"
	"github.com/Leganyst/florist-missions/internal/service"
)

var serveNoSweep bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC server and the nightly status sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// 5. Ночной пересчёт статусов.
		var sweeper *scheduler.Scheduler
		if !serveNoSweep {
			sweeper, err = scheduler.New("status-sweep", a.cfg.SweepCron, a.cfg.Location(), func(ctx context.Context) error {
				_, err := a.missions.SweepAutoTransitions(ctx)
				return err
			})
			if err != nil {
				return err
			}
			sweeper.Start()
		}

		// 6. Настраиваем gRPC-сервер.
		grpcServer := grpc.NewServer()
		missionsv1.RegisterMissionServiceServer(grpcServer, service.NewMissionServer(a.missions))
		missionsv1.RegisterDirectoryServiceServer(grpcServer, service.NewDirectoryServer(a.directory))
		reflection.Register(grpcServer)

		lis, err := net.Listen("tcp", a.cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", a.cfg.GRPCAddr, err)
		}

		appLog.Info("gRPC server listening",
			"addr", a.cfg.GRPCAddr,
			"timezone", a.cfg.AppTimezone,
			"db_driver", a.cfg.DB.Driver,
		)

		// 7. Запускаем сервер в горутине.
		serveErr := make(chan error, 1)
		go func() {
			serveErr <- grpcServer.Serve(lis)
		}()

		// 8. Грейсфул-шатдаун по сигналу.
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-serveErr:
			if err != nil {
				return fmt.Errorf("grpc serve: %w", err)
			}
		case sig := <-stop:
			appLog.Info("shutting down gRPC server", "signal", sig.String())
		}

		grpcServer.GracefulStop()
		if sweeper != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sweeper.Stop(ctx)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoSweep, "no-sweep", false, "do not schedule the status sweep")
}
