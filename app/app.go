// File: app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bigwallet-api/config"
	"bigwallet-api/handler"
	"bigwallet-api/logger"
	"bigwallet-api/model"
	"bigwallet-api/repository"
	"bigwallet-api/router"
	"bigwallet-api/seed"
	"bigwallet-api/service"

	"github.com/sirupsen/logrus"
)

// App is the wired application: the feed service and the router in front of it.
type App struct {
	FeedService *service.FeedService
	Router      http.Handler
}

// New wires every layer from cfg. The feed starts empty; call Activate to seed it.
func New(cfg config.FeedConfig) (*App, error) {
	filter, err := service.NewSearchFilter(cfg.Locale, cfg.IgnoreDiacritics)
	if err != nil {
		return nil, err
	}

	quickAmount, err := model.ParseAmount(cfg.QuickAdd.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid quick-add amount: %w", err)
	}

	// --- Wiring All Layers Together ---
	transactionRepo := repository.NewTransactionRepository()
	feedService := service.NewFeedService(transactionRepo, filter, service.QuickAddTemplate{
		SenderName:   cfg.CurrentUser,
		ReceiverName: cfg.QuickAdd.Receiver,
		Amount:       quickAmount,
	})
	transactionHandler := handler.NewTransactionHandler(feedService, handler.ViewOptions{
		CurrentUser:    cfg.CurrentUser,
		CurrencySymbol: cfg.CurrencySymbol,
		ReferenceLabel: cfg.ReferenceLabel,
	})

	feedService.Subscribe(func(event service.FeedEvent) {
		logger.Log.WithFields(logrus.Fields{
			"event":       event.Kind,
			"feed_length": event.FeedLength,
			"query":       event.Query,
		}).Debug("Feed changed")
	})

	return &App{
		FeedService: feedService,
		Router:      router.NewRouter(transactionHandler),
	}, nil
}

// Activate populates the feed from seedFile, or from the sample data when
// seedFile is empty.
func (a *App) Activate(seedFile string) error {
	records, err := seed.Load(seedFile, a.FeedService.Now())
	if err != nil {
		return err
	}
	return a.FeedService.Initialize(records)
}

func Run() {
	if err := config.LoadConfig("."); err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Init()
	logger.Log.Info("Configuration loaded successfully")

	application, err := New(config.AppConfig.Feed)
	if err != nil {
		logger.Log.Fatalf("Error building application: %v", err)
	}
	if err := application.Activate(config.AppConfig.Feed.SeedFile); err != nil {
		logger.Log.Fatalf("Error seeding transaction feed: %v", err)
	}

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           application.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
