package cmd

import (
	"context"
	"fmt"
	"time"

	"qabum/api"
	"qabum/application"
	"qabum/config"
	"qabum/database"
	"qabum/domain/interfaces"
	"qabum/domain/services"
	"qabum/infrastructure"
	"qabum/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the decision engine
func Run(ctx context.Context) error {
	log.Info("Starting qabum decision engine...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Event publishing is optional; without NATS the engine still decides,
	// it just stops announcing.
	var eventPublisher interfaces.EventPublisher = infrastructure.NewNoopEventPublisher()
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			db.Close()
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
		if err := natsPublisher.EnsureEventStream(); err != nil {
			log.WithError(err).Warn("Failed to ensure event stream, continuing without it")
		}
		eventPublisher = natsPublisher
	} else {
		log.Info("NATS_SERVERS not set, event publishing disabled")
	}

	storeRepo := repository.NewStoreRepository(db)
	snapshotRepo := repository.NewMerchantSnapshotRepository(db)
	configRepo := repository.NewRiskConfigRepository(db)
	auditRepo := repository.NewConfigAuditRepository(db)
	txnRepo := repository.NewProcessedTransactionRepository(db)

	configService := services.NewConfigService(configRepo, auditRepo, eventPublisher)
	splitService := services.NewSplitService(storeRepo, snapshotRepo, configService)
	riskService := services.NewRiskService(snapshotRepo, configService)
	eligibilityService := services.NewEligibilityService(snapshotRepo, riskService, configService)

	processor := application.NewTransactionProcessor(snapshotRepo, splitService, configService, txnRepo, eventPublisher)

	server := api.NewServer(processor, eligibilityService, riskService, configService, snapshotRepo, eventPublisher, cfg.AdminToken)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(cfg.HTTPPort)
	}()

	log.WithField("environment", cfg.Environment).Info("Engine is running")

	select {
	case err := <-serverErr:
		if err != nil {
			db.Close()
			return err
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down API server")
	}

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}
