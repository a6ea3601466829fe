package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shoplite/internal/config"
	"shoplite/internal/http/handlers"
	applog "shoplite/internal/log"
	"shoplite/internal/mail"
	"shoplite/internal/repos"
	"shoplite/internal/services"
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

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Mail: mail.New(cfg)}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer with an opaque envelope; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"type": "error",
				"msg":  "internal error, please try again later",
			})
		},
	})
	// Global body size guard (product images ride multipart uploads)
	app.Server().MaxRequestBodySize = 8 << 20 // 8 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(compress.New())
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"type": "error",
				"msg":  "too many requests, please try again after a minute",
			})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)
	user := handlers.RequireUser(authSvc)
	admin := handlers.RequireAdmin(authSvc)

	// Account
	verify := app.Group("/api/verify")
	verify.Post("/register", deps.VerifyHandler.Register)
	verify.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"type": "error",
				"msg":  "too many attempts, please try again later",
			})
		},
	}), deps.VerifyHandler.Login)
	verify.Post("/forgetPassword", deps.VerifyHandler.ForgetPassword)
	verify.Get("/check", deps.VerifyHandler.Check)

	// Catalog
	product := app.Group("/api/product")
	product.Post("/add", admin, deps.ProductHandler.Add)
	product.Get("/get", deps.ProductHandler.List)
	product.Put("/revise/:uuid", admin, deps.ProductHandler.Revise)
	product.Delete("/remove/:uuid", admin, deps.ProductHandler.Remove)
	app.Get("/api/img/download/:filename", deps.ProductHandler.DownloadImage)

	// Cart
	cart := app.Group("/api/cart", user)
	cart.Post("/add", deps.CartHandler.Add)
	cart.Get("/items", deps.CartHandler.Items)
	cart.Put("/update/quantity", deps.CartHandler.UpdateQuantity)
	cart.Delete("/delete/:trade_id", deps.CartHandler.Remove)

	// Orders
	tx := app.Group("/api/transaction")
	tx.Post("/add", user, deps.OrderHandler.Checkout)
	tx.Get("/info", user, deps.OrderHandler.Info)
	tx.Get("/infoByManager", admin, deps.OrderHandler.InfoByManager)
	tx.Put("/pay", user, deps.OrderHandler.Pay)
	tx.Put("/check", admin, deps.OrderHandler.Confirm)
	tx.Put("/shipping", admin, deps.OrderHandler.Ship)
	tx.Put("/finish", user, deps.OrderHandler.Finish)
	tx.Delete("/delete/:trade_id", user, deps.OrderHandler.Cancel)

	// Order history
	finish := app.Group("/api/finish")
	finish.Get("/info", user, deps.OrderHandler.FinishedInfo)
	finish.Get("/infoByManager", admin, deps.OrderHandler.FinishedInfoByManager)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"type": "error", "msg": "not found"})
	})

	// Close the store cleanly on interrupt
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("[shutdown] closing server and database")
		_ = app.Shutdown()
		_ = db.Close()
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
