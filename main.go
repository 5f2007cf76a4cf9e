package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"qabum/cmd"
	"qabum/config"
	"qabum/database"
	"qabum/domain/entities"
	"qabum/repository"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error: ", err)
		}
		return
	}

	// Check for seed subcommand
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := handleSeedCommand(); err != nil {
			log.Fatal("Seed error: ", err)
		}
		return
	}

	// Normal engine operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: qabum migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleSeedCommand loads the reference stores and demo merchants,
// for local development and smoke testing
func handleSeedCommand() error {
	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	storeRepo := repository.NewStoreRepository(db)
	snapshotRepo := repository.NewMerchantSnapshotRepository(db)

	stores := []*entities.StoreConfig{
		{
			ID:                    "ec-qabum-001",
			Code:                  "QABUM_EC",
			CountryCode:           "EC",
			CurrencyCode:          "USD",
			TakeRateCap:           0.0300,
			DefaultMdr:            0.0220,
			DefaultQabumMarginCap: 0.0150,
			DefaultRepaymentRate:  0.0080,
		},
		{
			ID:                    "uk-qabum-001",
			Code:                  "QABUM_UK",
			CountryCode:           "GB",
			CurrencyCode:          "GBP",
			TakeRateCap:           0.0250,
			DefaultMdr:            0.0150,
			DefaultQabumMarginCap: 0.0100,
			DefaultRepaymentRate:  0.0050,
		},
	}
	for _, store := range stores {
		if err := storeRepo.Upsert(ctx, store); err != nil {
			return err
		}
		log.WithField("store", store.ID).Info("Seeded store")
	}

	snapshots := []*entities.MerchantSalesSnapshot{
		{
			MerchantID:             "merch-001",
			StoreID:                "ec-qabum-001",
			AverageMonthlyVolume:   30000,
			MonthlyVolatilityIndex: 0.15,
			MonthsActive:           24,
			RecentActiveMonths:     3,
			HasRecentDrop:          false,
			FailedSplitCount:       0,
			Sector:                 entities.SectorHighSensitivity,
			HasActiveAdvance:       true,
		},
		{
			MerchantID:             "merch-002",
			StoreID:                "ec-qabum-001",
			AverageMonthlyVolume:   5000,
			MonthlyVolatilityIndex: 0.45,
			MonthsActive:           8,
			RecentActiveMonths:     3,
			HasRecentDrop:          false,
			FailedSplitCount:       1,
			Sector:                 entities.SectorStandardPyme,
		},
		{
			MerchantID:             "merch-003",
			StoreID:                "ec-qabum-001",
			AverageMonthlyVolume:   1500,
			MonthlyVolatilityIndex: 0.70,
			MonthsActive:           3,
			RecentActiveMonths:     3,
			HasRecentDrop:          true,
			FailedSplitCount:       3,
			Sector:                 entities.SectorHighMarginService,
		},
	}
	for _, snapshot := range snapshots {
		if err := snapshotRepo.Upsert(ctx, snapshot); err != nil {
			return err
		}
		log.WithField("merchant", snapshot.MerchantID).Info("Seeded merchant snapshot")
	}

	return nil
}
