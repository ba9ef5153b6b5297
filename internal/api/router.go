package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siher/webpage-publisher/internal/api/handler"
	"github.com/siher/webpage-publisher/internal/api/middleware"
	"github.com/siher/webpage-publisher/internal/core/render"
	"github.com/siher/webpage-publisher/internal/core/service"
	"github.com/siher/webpage-publisher/internal/infrastructure/config"
	mongorepo "github.com/siher/webpage-publisher/internal/infrastructure/db/mongo"
	redisinfra "github.com/siher/webpage-publisher/internal/infrastructure/db/redis"
	"github.com/siher/webpage-publisher/internal/infrastructure/naming"
	"github.com/siher/webpage-publisher/internal/infrastructure/storage"
)

const tokenTTL = 72 * time.Hour

// NewRouter builds and returns the Echo instance with all dependencies
// wired and routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(corsMiddleware(cfg.CORS))
	e.Use(echoprometheus.NewMiddleware("webpage"))

	// --- Infrastructure ---
	userRepo := mongorepo.NewUserRepository(db)
	contentRepo := mongorepo.NewWebContentRepository(db)
	subscriberRepo := mongorepo.NewSubscriberRepository(db)

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	artifacts := storage.NewClient(storage.Config{
		UploadURL:  cfg.Pinata.UploadURL,
		APIBaseURL: cfg.Pinata.APIBaseURL,
		AuthToken:  cfg.Pinata.AuthToken,
		GatewayURL: cfg.Pinata.GatewayURL,
	}, log)

	registrar := naming.NewClient(naming.Config{
		APIURL:  cfg.Namestone.APIURL,
		APIKey:  cfg.Namestone.APIKey,
		Address: cfg.Namestone.Address,
		Domain:  cfg.Namestone.Domain,
	}, log)

	locks := redisinfra.NewPublishLock(rdb, log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, contentRepo, cfg.JWTSecret, tokenTTL, cfg.Namestone.Domain, log)
	contentService := service.NewWebContentService(contentRepo, userRepo, artifacts, registrar, renderer, locks, log)
	domainService := service.NewDomainService(userRepo, contentRepo, registrar, cfg.Namestone.Domain, log)
	usersService := service.NewUsersService(userRepo, subscriberRepo, cfg.Namestone.Domain, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.Env == "production", tokenTTL)
	contentHandler := handler.NewWebContentHandler(contentService)
	domainHandler := handler.NewDomainHandler(domainService)
	usersHandler := handler.NewUsersHandler(usersService)
	authMiddleware := middleware.Auth(authService)

	// --- Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Server is running")
	})

	e.GET("/auth/approve", authHandler.Approve)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/validate-token", authHandler.ValidateToken)

	content := e.Group("/webcontent", authMiddleware)
	content.POST("/publish", contentHandler.Publish)
	content.POST("/update", contentHandler.Update)
	content.GET("", contentHandler.Get)
	content.DELETE("", contentHandler.Delete)

	e.POST("/domain/publish", domainHandler.Publish, authMiddleware)

	e.GET("/users", usersHandler.List)
	e.GET("/users/subscribe", usersHandler.Subscribe)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}

// corsMiddleware allows the configured exact origins plus any origin ending
// in one of the configured site suffixes, so published pages can call back
// into the API.
func corsMiddleware(cfg config.CORSConfig) echo.MiddlewareFunc {
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			for _, allowed := range cfg.Origins {
				if origin == allowed {
					return true, nil
				}
			}
			for _, suffix := range cfg.Suffixes {
				if strings.HasSuffix(origin, suffix) {
					return true, nil
				}
			}
			return false, nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Set-Cookie"},
	})
}
