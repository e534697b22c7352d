package main

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"pricesmart/internal/config"
	"pricesmart/internal/http/handlers"
	applog "pricesmart/internal/log"
	"pricesmart/internal/notify"
	"pricesmart/internal/randx"
	"pricesmart/internal/repos"
	"pricesmart/internal/sched"
	"pricesmart/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	if cfg.JWTSecret == "" {
		// Ephemeral secret: tokens die with the process. Fine for dev,
		// set JWT_SECRET in production.
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatal(err)
		}
		cfg.JWTSecret = hex.EncodeToString(b)
		log.Println("[warn] JWT_SECRET not set, using ephemeral secret")
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	dispatch := pickDispatcher(cfg)
	rnd := randx.New(time.Now().UnixNano())
	deps := handlers.NewDeps(db, cfg, rnd, dispatch)

	app := fiber.New(fiber.Config{
		BodyLimit: 1 << 20, // 1 MiB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "error": "Something went wrong. Please try again.",
			})
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.SiteURL + ", http://localhost:3000",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type, Authorization, Accept",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- API ----------
	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "ts": time.Now().Format(time.RFC3339)})
	})

	authH := deps.AuthHandler
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "error": "too many attempts, try again later",
			})
		},
	}), authH.Login)
	api.Get("/auth/me", handlers.RequireUser(deps.Auth), authH.Me)

	searchLimiter := limiter.New(limiter.Config{Max: 20, Expiration: time.Minute})
	api.Post("/search", searchLimiter, handlers.OptionalUser(deps.Auth), deps.SearchHandler.Search)
	api.Get("/trending", deps.TrendingHandler.Trending)

	wl := api.Group("/watchlist", handlers.RequireUser(deps.Auth))
	wl.Get("/", deps.WatchlistHandler.List)
	wl.Post("/add", deps.WatchlistHandler.Add)
	wl.Put("/:id/target", deps.WatchlistHandler.SetTarget)
	wl.Delete("/:id", deps.WatchlistHandler.Remove)

	// ---------- Static frontend & 404 ----------
	app.Static("/", cfg.FrontendDir)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "not found"})
	})

	// ---------- Watchlist sweep ----------
	scheduler := sched.New(cfg.SweepInterval, deps.Alerts.Sweep)
	scheduler.Start()

	// Graceful shutdown: stop the sweep loop, then the server.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		scheduler.Stop()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func pickDispatcher(cfg config.Config) services.Dispatcher {
	switch cfg.Dispatcher {
	case "email":
		d, err := notify.NewEmailDispatcher(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
			cfg.AlertFrom, cfg.SiteURL, cfg.TemplateDir)
		if err != nil {
			log.Printf("[warn] email dispatcher unavailable (%v), falling back to log", err)
			return notify.LogDispatcher{}
		}
		return d
	case "telegram":
		d, err := notify.NewTelegramDispatcher(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("[warn] telegram dispatcher unavailable (%v), falling back to log", err)
			return notify.LogDispatcher{}
		}
		return d
	default:
		return notify.LogDispatcher{}
	}
}
