package app

import (
	"errors"
	"net/http"
	"time"

	"smg-portal/internal/attendance"
	"smg-portal/internal/auth"
	"smg-portal/internal/auth/token"
	"smg-portal/internal/bootstrap"
	"smg-portal/internal/messaging/kafka"
	"smg-portal/internal/metrics"
	"smg-portal/internal/middleware"
	"smg-portal/internal/notification"
	"smg-portal/internal/rbac"
	"smg-portal/internal/rbac/infra"
	"smg-portal/internal/request"
	"smg-portal/internal/training"
	"smg-portal/internal/user"

	"github.com/gin-gonic/gin"
)

const idempotencyTTL = 24 * time.Hour

// BuildApp wires the HTTP API onto router.
func BuildApp(router *gin.Engine, in *Infra, audit bootstrap.AuditLogger) error {
	if in.Config.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	logger := in.Logger

	// --- Repositories ---
	authRepo := auth.NewRepository(in.GormDB)
	userRepo := user.NewRepository(in.GormDB)
	requestRepo := request.NewRepository(in.GormDB)
	attendanceRepo := attendance.NewRepository(in.GormDB)
	trainingRepo := training.NewRepository(in.GormDB)
	notificationRepo := notification.NewRepository(in.GormDB)
	outboxRepo := kafka.NewOutboxRepository(in.SQLDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	tokens := token.NewTokenIssuer(in.Config.JWTSecret)
	identities := auth.NewIdentityProvider(authRepo, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	authService := auth.NewService(identities, tokens, logger)
	userService := user.NewService(userRepo, identities, notificationService, audit, logger)
	requestService := request.NewService(in.SQLDB, requestRepo, outboxRepo, logger)
	attendanceService := attendance.NewService(attendanceRepo)
	trainingService := training.NewService(in.SQLDB, trainingRepo, outboxRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, in.Config.IsProduction(), logger)
	userHandler := user.NewHandler(userService, logger)
	requestHandler := request.NewHandler(requestService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService)
	trainingHandler := training.NewHandler(trainingService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	authMW := middleware.AuthMiddleware(tokens)
	authorize := func(resource, action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, resource, action)
	}
	idempotent := middleware.Idempotency(in.Redis, idempotencyTTL, logger)

	router.Use(middleware.ContextLogger(logger), metrics.GinMiddleware())
	router.GET("/healthz", func(c *gin.Context) {
		if err := in.SQLDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
		user.RegisterRoutes(api, userHandler, authMW, authorize)
		request.RegisterRoutes(api, requestHandler, authMW, authorize, idempotent)
		attendance.RegisterRoutes(api, attendanceHandler, authMW, authorize)
		training.RegisterRoutes(api, trainingHandler, authMW, authorize)
		notification.RegisterRoutes(api, notificationHandler, authMW)
	}

	return nil
}
