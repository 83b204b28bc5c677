package handler

import (
	"settlement-engine/internal/adapter/http/middleware"
	redisStore "settlement-engine/internal/adapter/storage/redis"
	"settlement-engine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	BalanceSvc     ports.BalanceService
	SettlementSvc  ports.SettlementService
	ReportingSvc   ports.ReportingService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	balanceHandler := NewBalanceHandler(deps.BalanceSvc)
	balances := v1.Group("/balances")
	{
		balances.POST("", rl("balances_write"), balanceHandler.Record)
		balances.GET("", rl("reporting"), balanceHandler.List)
	}

	settlementHandler := NewSettlementHandler(deps.SettlementSvc, deps.ReportingSvc)
	settlements := v1.Group("/settlements")
	{
		settlements.POST("", rl("settlement_execute"), settlementHandler.Execute)
		settlements.GET("", rl("reporting"), settlementHandler.List)
		settlements.GET("/preview", rl("settlement_preview"), settlementHandler.Preview)
		settlements.GET("/stats", rl("reporting"), settlementHandler.GetStats)
		settlements.GET("/:id", rl("reporting"), settlementHandler.GetByID)
	}

	return r
}
