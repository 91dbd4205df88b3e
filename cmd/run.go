package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"arenawallet/api"
	"arenawallet/config"
	"arenawallet/database"
	"arenawallet/events"
	"arenawallet/repository"
	"arenawallet/service"
	"arenawallet/uploads"

	"github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting arena wallet server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	databaseURL := database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName)
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus with the audit trail subscribed
	eventBus := events.NewBus()
	events.RegisterAuditLog(eventBus, logrus.StandardLogger())

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	accountService := service.NewAccountService(uowFactory, cfg.StartingBalance, cfg.ReferralBonus)
	topUpService := service.NewTopUpService(uowFactory, cfg.ReferralBonus)
	withdrawalService := service.NewWithdrawalService(uowFactory)
	prizeService := service.NewPrizeService(uowFactory)
	transferService := service.NewTransferService(uowFactory)
	tournamentService := service.NewTournamentService(uowFactory)
	log.Println("Services initialized successfully")

	// Initialize upload storage
	uploadStore, err := uploads.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	// Initialize HTTP API
	tokens := api.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenExpiryHours)*time.Hour)
	server := api.NewServer(api.Config{
		Accounts:    accountService,
		TopUps:      topUpService,
		Withdrawals: withdrawalService,
		Prizes:      prizeService,
		Transfers:   transferService,
		Tournaments: tournamentService,
		Tokens:      tokens,
		Uploads:     uploadStore,
		UploadDir:   cfg.UploadDir,
	})

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s in %s mode...", cfg.ListenAddr, cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		db.Close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
