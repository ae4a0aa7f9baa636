package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/okravets/storefront/internal/config"
	"github.com/okravets/storefront/internal/es"
	"github.com/okravets/storefront/internal/httpserver"
	"github.com/okravets/storefront/internal/logging"
	"github.com/okravets/storefront/internal/mykafka"
	"github.com/okravets/storefront/internal/repo"
	"github.com/okravets/storefront/internal/service"
	"github.com/okravets/storefront/internal/session"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(logging.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	sessions := &session.GormStore{DB: db}

	var events service.Events
	if cfg.KafkaAddress != "" {
		producer, err := mykafka.NewProducer(
			[]string{cfg.KafkaAddress},
			[]string{"product_events", "order_events"},
		)
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
		defer producer.Close()
		events = producer
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(es.Config{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
	}

	deps := &httpserver.Deps{
		ProductHandler:  &httpserver.ProductHTTP{Svc: &service.CatalogService{Repo: gormRepo, Events: events, ES: esClient}},
		DiscountHandler: &httpserver.DiscountHTTP{Svc: &service.DiscountService{Repo: gormRepo}},
		PromoHandler:    &httpserver.PromoHTTP{Svc: &service.PromoService{Repo: gormRepo, Sessions: sessions}},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: gormRepo, Sessions: sessions}},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: &service.CheckoutService{Repo: gormRepo, Sessions: sessions, Events: events}},
		ReviewHandler:   &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: gormRepo}},
		JWTSecret:       cfg.JWTSecret,
	}
	if esClient != nil {
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient}
	}

	httpserver.Register(e, deps)

	go func() {
		log.Printf("Starting storefront on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}

	log.Println("Server stopped")
}
