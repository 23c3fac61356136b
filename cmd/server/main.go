package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/honeynutbd/landing_shop/internal/config"
	"github.com/honeynutbd/landing_shop/internal/courier"
	"github.com/honeynutbd/landing_shop/internal/events"
	"github.com/honeynutbd/landing_shop/internal/handlers"
	"github.com/honeynutbd/landing_shop/internal/hash"
	"github.com/honeynutbd/landing_shop/internal/httpserver"
	"github.com/honeynutbd/landing_shop/internal/logging"
	"github.com/honeynutbd/landing_shop/internal/middleware"
	"github.com/honeynutbd/landing_shop/internal/repo"
	"github.com/honeynutbd/landing_shop/internal/search"
	"github.com/honeynutbd/landing_shop/internal/service/dispatch"
	"github.com/honeynutbd/landing_shop/internal/service/intake"
	"github.com/honeynutbd/landing_shop/internal/service/settings"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	config.MustNonEmpty(cfg.JWT_SECRET, "JWT_SECRET")

	logger := logging.New(cfg.LOG_LEVEL).With("service", "landing_shop")
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}

	if cfg.ADMIN_USERNAME != "" && cfg.ADMIN_PASSWORD != "" {
		pwHash, err := hash.HashPassword(cfg.ADMIN_PASSWORD)
		if err != nil {
			log.Fatalf("admin password hash: %v", err)
		}
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = gormRepo.EnsureAdmin(seedCtx, cfg.ADMIN_USERNAME, pwHash)
		cancel()
		if err != nil {
			log.Fatalf("admin seed: %v", err)
		}
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
		defer producer.Close()
	}

	var es *elasticsearch.Client
	if cfg.ES_URL != "" {
		es, err = search.NewClient(search.Config{
			URL:      cfg.ES_URL,
			Username: cfg.ES_USER,
			Password: cfg.ES_PASSWORD,
		})
		if err != nil {
			logger.Warn("elasticsearch unavailable, order search disabled", "error", err)
			es = nil
		}
	}

	settingsSvc := settings.New(gormRepo)
	intakeSvc := intake.New(gormRepo, settingsSvc)
	coordinator := &dispatch.Coordinator{
		Client:   courier.NewClient(cfg.COURIER_BASE_URL),
		Repo:     gormRepo,
		Settings: settingsSvc,
	}

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	e.Static("/static", "static")

	httpserver.Register(e, &httpserver.Deps{
		Storefront: &handlers.StorefrontHandler{
			Repo:     gormRepo,
			Settings: settingsSvc,
			Intake:   intakeSvc,
			Producer: producer,
			ES:       es,
			ESIndex:  cfg.ES_INDEX,
		},
		Auth: &handlers.AuthHandler{
			Repo:      gormRepo,
			JWTSecret: []byte(cfg.JWT_SECRET),
		},
		Admin: &handlers.AdminHandler{
			Repo:      gormRepo,
			Settings:  settingsSvc,
			Dispatch:  coordinator,
			Producer:  producer,
			ES:        es,
			ESIndex:   cfg.ES_INDEX,
			UploadDir: cfg.UPLOAD_DIR,
		},
		Cron: &handlers.CronHandler{
			Dispatch: coordinator,
			Key:      cfg.CRON_KEY,
		},
		JWTSecret: []byte(cfg.JWT_SECRET),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.SERVER_PORT)
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("server stopped")
}
