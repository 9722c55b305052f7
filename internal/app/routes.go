package app

import (
	"net/http"

	"github.com/aswin071/Expense-Tracker/internal/auth"
	"github.com/aswin071/Expense-Tracker/internal/cache"
	"github.com/aswin071/Expense-Tracker/internal/config"
	"github.com/aswin071/Expense-Tracker/internal/handlers"
	"github.com/aswin071/Expense-Tracker/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

const serviceName = "Expense & Budget API"

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, deps Deps) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	var (
		budgetCache *cache.BudgetCache
		revocations *auth.RevocationStore
	)
	if deps.Redis != nil {
		budgetCache = cache.NewBudgetCache(deps.Redis, cfg.Redis.DefaultTTL.Duration())
		revocations = auth.NewRevocationStore(deps.Redis)
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.AccessTokenExpire.Duration(), cfg.Auth.RefreshTokenExpire.Duration())
	userSvc := service.NewUserService(deps.Users, budgetCache, cfg.Auth.BcryptCost, deps.Log)
	expenseSvc := service.NewExpenseService(deps.Expenses, deps.Users, budgetCache, deps.Log)

	api := r.Group("/api/v1")
	requireToken := auth.RequireToken(tokens)

	registerAuthRoutes(api, handlers.NewAuthHandler(userSvc, tokens, revocations))
	registerUserRoutes(api, requireToken, handlers.NewUserHandler(userSvc))
	registerExpenseRoutes(api.Group("", requireToken), handlers.NewExpenseHandler(expenseSvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "online",
			"service": serviceName,
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"openapi": "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version, "service": serviceName})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/login-json", h.LoginJSON)
	api.POST("/auth/refresh", h.Refresh)
	api.POST("/auth/logout", h.Logout)
}

// Registration is public; every other user route needs an access token.
func registerUserRoutes(api *gin.RouterGroup, requireToken gin.HandlerFunc, h *handlers.UserHandler) {
	api.POST("/users/", h.Create)
	protected := api.Group("", requireToken)
	protected.GET("/users/me/profile", h.Me)
	protected.GET("/users/:id", h.Get)
	protected.PUT("/users/:id", h.Update)
	protected.DELETE("/users/:id", h.Delete)
}

func registerExpenseRoutes(api *gin.RouterGroup, h *handlers.ExpenseHandler) {
	api.POST("/expenses/", h.Create)
	api.GET("/expenses/detail/:expense_id", h.Get)
	api.GET("/expenses/totals/:user_id", h.Totals)
	api.GET("/expenses/:user_id", h.List)
	api.PUT("/expenses/:id", h.Update)
	api.DELETE("/expenses/:id", h.Delete)
}
