package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Aniket760/E-Coomarse/internal/cart"
	"github.com/Aniket760/E-Coomarse/internal/catalog"
	"github.com/Aniket760/E-Coomarse/internal/checkout"
	"github.com/Aniket760/E-Coomarse/internal/config"
	h "github.com/Aniket760/E-Coomarse/internal/http"
	"github.com/Aniket760/E-Coomarse/internal/notify"
	"github.com/Aniket760/E-Coomarse/internal/payment"
	"github.com/Aniket760/E-Coomarse/internal/session"
	"github.com/Aniket760/E-Coomarse/internal/storage"
	"github.com/Aniket760/E-Coomarse/internal/user"
)

func main() {
	cfg := config.Load()

	db, err := storage.Open(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Without Redis the storefront still runs: sessions live in
	// process memory and catalog listings read straight from Postgres.
	var sessionStore session.Store
	var listCache catalog.ListCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to ping redis: %v", err)
		}
		sessionStore = session.NewRedisStore(rdb)
		listCache = catalog.NewRedisCache(rdb)
		log.Println("connected to redis")
	} else {
		memStore := session.NewMemoryStore()
		defer memStore.Close()
		sessionStore = memStore
		log.Println("REDIS_ADDR not set, using in-memory sessions")
	}

	sessions := session.NewManager(sessionStore, cfg.SessionCookie, cfg.SessionTTL)

	catalogSvc := catalog.NewService(catalog.NewRepository(db), listCache)
	users := user.NewRepository(db)
	carts := cart.NewService(catalogSvc)

	var gateway payment.Gateway
	if client, gwErr := payment.FromConfig(cfg.RazorpayKeyID, cfg.RazorpayKeySecret); gwErr == nil {
		gateway = client
		log.Println("razorpay gateway configured")
	} else if errors.Is(gwErr, payment.ErrNotConfigured) {
		log.Println("razorpay keys not set, online payment disabled")
	} else {
		log.Fatalf("failed to configure payment gateway: %v", gwErr)
	}

	var senders []notify.Sender
	if cfg.OrderNotifyEmail != "" && cfg.SMTPHost != "" {
		mailer, mailErr := notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.DefaultFromEmail,
			To:       cfg.OrderNotifyEmail,
		})
		if mailErr != nil {
			log.Fatalf("failed to configure mailer: %v", mailErr)
		}
		senders = append(senders, mailer)
	} else {
		log.Println("order notification email not configured")
	}
	if len(cfg.OrderEventBrokers) > 0 {
		publisher := notify.NewEventPublisher(cfg.OrderEventBrokers, cfg.OrderEventTopic)
		defer publisher.Close()
		senders = append(senders, publisher)
	}
	notifier := notify.NewNotifier(senders...)

	checkoutSvc := checkout.NewService(carts, users, gateway, notifier, cfg.Currency)

	renderer, err := h.NewRenderer(carts)
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	router := h.NewRouter(h.RouterDeps{
		Sessions:       sessions,
		Users:          users,
		Store:          h.NewStoreHandler(catalogSvc, renderer),
		Cart:           h.NewCartHandler(carts, renderer),
		Checkout:       h.NewCheckoutHandler(checkoutSvc, carts, users, renderer),
		Auth:           h.NewAuthHandler(users, sessions, renderer),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
