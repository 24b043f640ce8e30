package http

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake/internal/api/dto"
	"github.com/spec-kit/lead-intake/internal/config"
	"github.com/spec-kit/lead-intake/internal/observability"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

const rateLimitMessage = "Too many requests from this IP, please try again later."

// MiddlewareConfig carries what the global middleware chain needs.
type MiddlewareConfig struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics
	App     config.AppConfig
	HTTP    config.HTTPConfig
	// LimiterStorage backs the rate limiter; nil keeps counters in process memory.
	LimiterStorage fiber.Storage
}

// NewApp builds the fiber application with the body limit and a fallback
// error handler that still renders the JSON envelope.
func NewApp(cfg MiddlewareConfig) *fiber.App {
	responder := cfg.responder()
	return fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		BodyLimit:             cfg.App.BodyLimitBytes(),
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			responder.write(c, err, "")
			return nil
		},
	})
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	responder := cfg.responder()
	app.Use(requestid.New())
	app.Use(observability.RequestLogger(responder.logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(responder))
	app.Use(helmet.New())
	app.Use(corsMiddleware(cfg.HTTP.CORSAllowedOrigins))
	if timeout := cfg.App.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use("/api", rateLimitMiddleware(cfg.HTTP, cfg.LimiterStorage))
}

func corsMiddleware(origins []string) fiber.Handler {
	wildcard := slices.Contains(origins, "*")
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: !wildcard,
	})
}

func rateLimitMiddleware(cfg config.HTTPConfig, storage fiber.Storage) fiber.Handler {
	limiterCfg := limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow(),
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewTooManyRequests(rateLimitMessage)
		},
	}
	if storage != nil {
		limiterCfg.Storage = storage
	}
	return limiter.New(limiterCfg)
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(responder errorResponder) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			var stack string
			if r := recover(); r != nil {
				stack = string(debug.Stack())
				responder.logger.Error("panic recovered", zap.Any("panic", r), zap.String("stack", stack))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				responder.write(c, err, stack)
				err = nil
			}
		}()
		return c.Next()
	}
}

func (cfg MiddlewareConfig) responder() errorResponder {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return errorResponder{logger: logger, metrics: cfg.Metrics, debug: cfg.App.Debug}
}

type errorResponder struct {
	logger  *zap.Logger
	metrics *observability.Metrics
	debug   bool
}

func (r errorResponder) write(c *fiber.Ctx, err error, stack string) {
	domainErr := toDomainError(err)
	r.metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		r.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(domainErr))
	}

	body := dto.Failure(domainErr.Message, domainErr.Violations)
	if r.debug {
		body.Stack = stack
		if domainErr.Err != nil {
			body.Detail = domainErr.Err.Error()
		}
	}
	_ = c.Status(domainErr.HTTPStatus).JSON(body)
}

// toDomainError extends apperrors.ToDomainError with fiber's own errors
// (body limit, method not allowed and the like).
func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := "HTTP_ERROR"
		if fiberErr.Code >= fiber.StatusInternalServerError {
			code = "INTERNAL_ERROR"
		}
		return apperrors.NewDomainError(code, fiberErr.Message, fiberErr.Code)
	}
	return apperrors.ToDomainError(err)
}
