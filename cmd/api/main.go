package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/config"
	appHTTP "github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/clock"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/cron"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/database"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/jwt"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/logging"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/mailer"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/notify"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/repository/postgresql"
	attendanceService "github.com/Ogbudugodwin/Workhub-sub001/internal/service/attendance"
	campaignService "github.com/Ogbudugodwin/Workhub-sub001/internal/service/campaign"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/service/master"
	trackingService "github.com/Ogbudugodwin/Workhub-sub001/internal/service/tracking"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.App.LogLevel,
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("Database schema applied")
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	campaignRepo := postgresql.NewCampaignRepository(db)
	recipientListRepo := postgresql.NewRecipientListRepository(db)
	analyticsRepo := postgresql.NewAnalyticsRepository(db)

	mail, err := mailer.New(ctx, cfg)
	if err != nil {
		return err
	}
	if !mail.Configured() {
		logger.Warn("Mail transport is not configured, campaign sends will be rejected")
	}

	clk := clock.System()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, branchRepo, companyRepo, clk, cfg.Location())
	branchSvc := master.NewBranchService(branchRepo)
	campaignSvc, err := campaignService.NewCampaignService(
		campaignRepo,
		recipientListRepo,
		analyticsRepo,
		mail,
		notify.New(cfg.Slack.BotToken, cfg.Slack.CampaignChannel),
		clk,
		campaignService.Options{
			BaseURL:        cfg.PublicBaseURL(),
			Concurrency:    cfg.Campaign.SendConcurrency,
			RatePerSecond:  cfg.Campaign.SendRatePerSecond,
			MaxAttempts:    cfg.Campaign.SendMaxAttempts,
			RetryBackoff:   cfg.Campaign.SendRetryBackoff,
			StaleSendAfter: cfg.Campaign.SendStaleAfter,
		},
	)
	if err != nil {
		return err
	}
	trackingSvc := trackingService.NewTrackingService(analyticsRepo, clk)

	scheduler := cron.NewScheduler(logger)
	cron.NewCampaignJobs(campaignSvc, cfg.Campaign.ScheduleInterval, logger).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Master:     appHTTP.NewMasterHandler(branchSvc),
		Campaign:   appHTTP.NewCampaignHandler(campaignSvc),
		Tracking:   appHTTP.NewTrackingHandler(trackingSvc),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrustProxy:     !cfg.IsDevelopment(),
	})

	server := &http.Server{
		Addr:              cfg.ServerAddr(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
		// h2c serves HTTP/2 without TLS behind the load balancer
		Handler: h2c.NewHandler(router, &http2.Server{}),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Info("Shutting down server...", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server exited gracefully")
	return nil
}
