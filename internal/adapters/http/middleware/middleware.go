package middleware

import (
	"errors"
	"log"
	"time"

	"credit-admin/internal/config"
	"credit-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const (
	defaultGeneralLimit = 100
	defaultLoginLimit   = 5
)

// Setup configures all middlewares for the application
func Setup(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(requestid.New())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		// xlsx is already zip-compressed
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/v1/loans/export"
		},
	}))

	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-site",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	// Health probes are not counted against the budget
	app.Use(limiter.New(limiter.Config{
		Max:        limitOr(cfg.Limits.General, defaultGeneralLimit),
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "Too many requests, please slow down")
		},
	}))

	if cfg.IsProd() {
		app.Use(logger.New(logger.Config{
			Format:     "${time} | ${status} | ${latency} | ${locals:requestid} | ${ip} | ${method} | ${path} | ${error}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	} else {
		app.Use(logger.New(logger.Config{
			Format: "${time} | ${status} | ${latency} | ${locals:requestid} | ${ip} | ${method} | ${path}\n",
		}))
	}

	corsConfig := cors.Config{
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders: "X-Request-ID,Content-Disposition",
	}
	if cfg.IsDev() {
		// Credentials cannot be combined with a wildcard origin
		corsConfig.AllowOrigins = "*"
	} else {
		corsConfig.AllowOrigins = cfg.GetAllowedOrigins()
		corsConfig.AllowCredentials = true
	}
	app.Use(cors.New(corsConfig))
}

// AuthRateLimiter creates a stricter per-IP limiter for the login endpoint
func AuthRateLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limitOr(perMinute, defaultLoginLimit),
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "-login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "Too many login attempts, wait a minute")
		},
	})
}

func limitOr(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}

// CustomErrorHandler handles errors globally
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s [%v]: %v", c.Method(), c.Path(), c.Locals("requestid"), err)
	}

	return response.Error(c, code, message)
}
