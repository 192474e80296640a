package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"restaurant_ordering/config"
	"restaurant_ordering/database"
	"restaurant_ordering/events"
	"restaurant_ordering/handler"
	"restaurant_ordering/helper"
	"restaurant_ordering/ordering"
	"restaurant_ordering/router"
	"restaurant_ordering/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	var (
		store    ordering.Store
		accounts ordering.AccountStore
	)
	switch cfg.StoreDriver {
	case "memory":
		mem := database.NewMemoryStore()
		store, accounts = mem, mem
		logger.Warn("using in-memory store, data is lost on restart")
	default:
		db, err := database.ConnectDB(cfg, logger)
		if err != nil {
			logger.Fatal("connect database", zap.Error(err))
		}
		gs := database.NewGormStore(db)
		store, accounts = gs, gs
	}

	hub := events.NewHub()
	publishers := events.Fanout{hub}
	var feed events.Feed = hub
	switch cfg.EventDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("connect redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		// the shared channel already reaches every instance's dashboards
		publishers = events.Fanout{events.NewRedisPublisher(client)}
		feed = events.RedisFeed{Client: client}
	case "rabbitmq":
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQPURL, logger)
		if err != nil {
			logger.Fatal("connect rabbitmq", zap.Error(err))
		}
		defer amqpPub.Close()
		publishers = append(publishers, amqpPub)
	}

	var notifier ordering.Notifier = ordering.NopNotifier{}
	if cfg.MailEnabled() {
		notifier = utils.NewMailNotifier(utils.SMTPSettings{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		}, logger)
	}

	svc := ordering.NewService(ordering.Options{
		Store:     store,
		Accounts:  accounts,
		Clock:     ordering.SystemClock(cfg.Location()),
		Tables:    cfg.TableList(),
		Publisher: publishers,
		Notifier:  notifier,
		Logger:    logger,
	})

	database.SeedAdmin(context.Background(), svc, accounts, cfg.AdminEmail, cfg.AdminName, cfg.AdminPass, logger)

	schedulers, err := helper.StartSchedulers(svc, cfg.Location(), logger)
	if err != nil {
		logger.Fatal("start schedulers", zap.Error(err))
	}
	defer schedulers.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(strings.Fields(strings.ReplaceAll(cfg.CORSOrigins, ",", " ")), ","),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	h := handler.New(svc, helper.NewTokens(cfg.JWTSecret, cfg.JWTTTL), feed, logger)
	router.SetupRoutes(app, h)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver), zap.String("events", cfg.EventDriver))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
