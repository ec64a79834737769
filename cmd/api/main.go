package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/session"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg)
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg, log)

	redisClient, err := session.NewClient(cfg)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	m := metrics.New(prometheus.DefaultRegisterer)

	// --------------------------------------------------
	// Notifications
	// --------------------------------------------------
	var sender notify.EmailSender = notify.NewStubEmailSender(log)
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.NotifyFromEmail,
		FromName:  cfg.NotifyFromName,
	}, log); sg != nil {
		sender = sg
	}

	var relay notify.Notifier = notify.NewEmailNotifier(sender, cfg.AdminEmail)
	if cfg.NotifyWebhookURL != "" {
		relay = notify.NewWebhookNotifier(cfg.NotifyWebhookURL, nil)
	}

	notifyDispatcher := notify.NewDispatcher(log, m, relay)
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   log,
		Metrics:  m,
		Sessions: session.NewRedisStore(redisClient, time.Duration(cfg.SessionTTLMinutes)*time.Minute),
		Audit:    auditDispatcher,
		Notify:   notifyDispatcher,
		Relay:    relay,
		Email:    sender,
		Audio:    storage.NewAudioStoreFromConfig(cfg),
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := notifyDispatcher.Close(ctx); err != nil {
		log.Warn("notification queue not drained", zap.Error(err))
	}
	if err := auditDispatcher.Close(ctx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}
}
