package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"assurdoc/internal/analysis"
	"assurdoc/internal/cache"
	"assurdoc/internal/config"
	"assurdoc/internal/email/noop"
	"assurdoc/internal/email/ses"
	"assurdoc/internal/handler"
	"assurdoc/internal/ocr"
	"assurdoc/internal/port"
	"assurdoc/internal/repository/postgres"
	"assurdoc/internal/router"
	"assurdoc/internal/service"
	s3storage "assurdoc/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	analysisRepo := postgres.NewAnalysisRepo(db)
	insurerRepo := postgres.NewInsurerRepo(db)
	notifRepo := postgres.NewNotificationRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize storage. Document archiving is optional: the engine
	// analyzes demandes even when S3 is unavailable.
	var storage port.DocumentStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Storage(&cfg.S3)
		if err != nil {
			log.Printf("main: S3 storage disabled: %v", err)
		}
	}

	// Initialize insurer notification delivery
	var notifier port.AnalysisNotifier
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = ses.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	default:
		notifier = noop.NewNoopNotifier()
	}

	// Initialize the analysis engine
	engine := ocr.NewEngine()
	pipeline := analysis.NewPipeline()
	analysisCache := cache.New(time.Duration(cfg.Cache.TTLSecs)*time.Second, cfg.Cache.MaxSize)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	insurerSvc := service.NewInsurerService(insurerRepo)
	statsSvc := service.NewStatsService(statsRepo, analysisRepo, insurerRepo)
	analysisSvc, queue := service.NewAnalysisService(
		engine, pipeline, analysisCache,
		analysisRepo, insurerRepo, notifRepo,
		storage, notifier,
		cfg.Queue, cfg.S3,
	)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userSvc)
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	insurerH := handler.NewInsurerHandler(insurerSvc, analysisSvc, statsSvc)
	userH := handler.NewUserHandler(userSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	// Run the analysis queue workers
	queueDone := make(chan struct{})
	go func() {
		queue.Start(ctx)
		close(queueDone)
	}()

	// Setup router
	r := router.Setup(cfg, authSvc, authH, analysisH, insurerH, userH, statsH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Wait for in-flight analyses to finish
	select {
	case <-queueDone:
	case <-shutdownCtx.Done():
		log.Println("Queue did not drain before shutdown deadline")
	}

	return nil
}
