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

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-manager/internal/config"
	"github.com/iliyamo/hotel-manager/internal/database"
	"github.com/iliyamo/hotel-manager/internal/handler"
	"github.com/iliyamo/hotel-manager/internal/middleware"
	"github.com/iliyamo/hotel-manager/internal/queue"
	"github.com/iliyamo/hotel-manager/internal/repository"
	"github.com/iliyamo/hotel-manager/internal/router"
	"github.com/iliyamo/hotel-manager/internal/service"
)

type redisPinger struct{ rdb *redis.Client }

func (p redisPinger) PingContext(ctx context.Context) error { return p.rdb.Ping(ctx).Err() }

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env: .env not loaded: %v", err)
	}
	// Money is rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	queueCfg := config.LoadQueueConfig()
	bookingCfg := config.LoadBookingConfig()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}

	rooms := repository.NewRoomRepo(db)
	guests := repository.NewGuestRepo(db)
	bookings := repository.NewBookingRepo(db)
	tariffs := repository.NewTariffRepo(db)
	txns := repository.NewTransactionRepo(db)
	employees := repository.NewEmployeeRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	bookingSvc := service.NewBookingService(repository.NewStore(db), tariffs, queue.NewPublisher(queueCfg), bookingCfg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Recover())
	e.Use(middleware.AccessLog())

	readiness := map[string]handler.Pinger{"mysql": db}
	if rdb != nil {
		readiness["redis"] = redisPinger{rdb: rdb}
	}
	router.RegisterRoutes(e, readiness)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterHotel(e, router.Hotel{
		Rooms:        handler.NewRoomHandler(rooms),
		Guests:       handler.NewGuestHandler(guests),
		Bookings:     handler.NewBookingHandler(bookings, bookingSvc),
		Tariffs:      handler.NewTariffHandler(tariffs, rooms),
		Transactions: handler.NewFinancialHandler(txns, bookings),
		Employees:    handler.NewEmployeeHandler(employees),
		Dashboard:    handler.NewDashboardHandler(repository.NewDashboardRepo(db)),
	}, router.Infra{
		JWTSecret: cfg.JWTSecret,
		Cache:     cacheCfg,
		RateLimit: rlCfg,
		Redis:     rdb,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if queueCfg.ConsumerEnabled {
		go func() {
			if err := queue.NewConsumer(queueCfg).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking-consumer: stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
