package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equiptrack/internal/bootstrap"
	"equiptrack/internal/config"
	equipmenthttp "equiptrack/internal/equipment/delivery/http"
	equipmentrepo "equiptrack/internal/equipment/repository"
	"equiptrack/internal/events"
	importexporthttp "equiptrack/internal/importexport/delivery/http"
	movement "equiptrack/internal/movement/domain"
	movementrepo "equiptrack/internal/movement/repository"
	"equiptrack/internal/server"
	"equiptrack/internal/spreadsheet"
	statshttp "equiptrack/internal/stats/delivery/http"
	statsrepo "equiptrack/internal/stats/repository"
	"equiptrack/internal/transferact"
	transferacthttp "equiptrack/internal/transferact/delivery/http"
	userhttp "equiptrack/internal/user/delivery/http"
	userrepo "equiptrack/internal/user/repository"
	warehousehttp "equiptrack/internal/warehouse/delivery/http"
	warehouserepo "equiptrack/internal/warehouse/repository"
	"equiptrack/pkg/database"
	"equiptrack/pkg/logger"
	"equiptrack/pkg/tracing"
)

func main() {
	cfg := config.Load()

	logger.Init("equiptrack", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	ctx := context.Background()

	if cfg.JaegerEndpoint != "" {
		shutdown, err := tracing.InitTracer("equiptrack", cfg.JaegerEndpoint)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer shutdown(ctx)
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories
	users := userrepo.NewGormUserRepository(db)
	equipment := equipmentrepo.NewGormEquipmentRepository(db)
	warehouse := warehouserepo.NewGormWarehouseRepository(db)
	movements := movementrepo.NewGormMovementRepository(db)

	// Stats run plain SQL; on postgres they get a dedicated lib/pq handle
	statsDB := sqlDB
	if cfg.Database.Driver == "postgres" {
		raw, err := database.NewPostgresConnection(cfg.Database)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to open stats connection")
		}
		defer raw.Close()
		statsDB = raw
	}
	stats := statsrepo.NewSQLStatsRepository(statsDB)

	for _, migrate := range []func() error{
		users.AutoMigrate, equipment.AutoMigrate, warehouse.AutoMigrate, movements.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Startup seeds
	seeder := bootstrap.NewSeeder(users, equipment, warehouse)
	if err := seeder.Run(cfg); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed database")
	}

	recorder := movement.NewRecorder(movements)
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := events.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, movement events disabled")
		} else {
			defer publisher.Close()
			recorder.WithNotifier(publisher)
		}
	}

	guard := userhttp.NewAuthGuard(users)
	writer := spreadsheet.NewExcelWriter()

	srv := server.New(cfg, sqlDB,
		userhttp.NewUserHandler(users, guard, cfg.AllowRegistration),
		equipmenthttp.NewEquipmentHandler(equipment, warehouse, recorder, guard),
		warehousehttp.NewWarehouseHandler(warehouse, recorder, movements, guard, cfg.UploadDir),
		importexporthttp.NewImportExportHandler(equipment, recorder, writer, guard, cfg.UploadDir),
		transferacthttp.NewDocsHandler(equipment, transferact.NewDocxRenderer(), recorder, guard),
		statshttp.NewStatsHandler(stats, guard),
		bootstrap.NewDemoHandler(seeder, guard),
	)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("environment", cfg.Environment).
			Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
