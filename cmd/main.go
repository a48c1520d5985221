package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"github.com/Rajesh001100/cultural/cmd/buildCFG"
	"github.com/Rajesh001100/cultural/internal/api/api"
	ticketWorker "github.com/Rajesh001100/cultural/internal/consumerWorker"
	"github.com/Rajesh001100/cultural/internal/mailer"
	"github.com/Rajesh001100/cultural/internal/payment"
	"github.com/Rajesh001100/cultural/internal/rabbit"
	"github.com/Rajesh001100/cultural/internal/repo"
	"github.com/Rajesh001100/cultural/internal/service"
)

func main() {
	rollback := flag.Bool("rollback", false, "roll back migrations and exit")
	flag.Parse()

	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)
	port := serverCfg.Port

	masterDSN, slaveDSNs, poolOptions, err := buildCFG.BuildDBConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build DB config")
	}
	db, err := dbpg.New(masterDSN, slaveDSNs, poolOptions)
	if err != nil {
		log.Fatal().Msgf("failed to connect to DB: %v", err)
	}
	if err := db.Master.Ping(); err != nil {
		log.Fatal().Msgf("DB ping failed: %v", err)
	}
	log.Info().Msg("Database connected successfully")

	repository, err := repo.NewRepository(db, &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize repository: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot get working directory")
	}
	migrationPath := filepath.Join(cwd, "migrations/postgres")

	if *rollback {
		if err := repository.MigrateDown(migrationPath); err != nil {
			log.Fatal().Err(err).Msg("rollback failed")
		}
		log.Info().Msg("Migrations rolled back successfully")
		return
	}

	if err := repository.MigrateUp(migrationPath); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("Migrations applied successfully")

	rabbitCfg, err := buildCFG.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load RabbitMQ config")
	}
	rmq, err := rabbit.NewRabbit(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
	if err != nil {
		log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	razorpayCfg, err := buildCFG.BuildRazorpayConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load Razorpay config")
	}
	gateway := payment.NewClient(razorpayCfg.KeyID, razorpayCfg.KeySecret, &log)

	mailerCfg, err := buildCFG.BuildMailerConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load mailer config")
	}
	mail := mailer.NewMailer(mailerCfg, &log)

	serviceCfg, err := buildCFG.BuildServiceConfig(cfg, razorpayCfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load service config")
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())

	ticketReader := ticketWorker.NewReader(rmq, mail)
	go ticketReader.Start(workerCtx)

	serviceInstance := service.NewService(repository, &log, rmq, gateway, mail, serviceCfg)
	app := api.NewRouters(&api.Routers{Service: serviceInstance, JWTSecret: serviceCfg.JWTSecret})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", port)
		if err := app.Run(":" + port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	ticketReader.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}
