package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/themobileprof/rantrack-be/internal/api/middleware"
	"github.com/themobileprof/rantrack-be/internal/circuitbreaker"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/journal"
	"github.com/themobileprof/rantrack-be/internal/vocabulary"
)

// RouterConfig carries everything the HTTP surface needs
type RouterConfig struct {
	DB             *db.DB
	Engine         *journal.Engine
	Vocabulary     *vocabulary.Manager
	JWTSecret      string
	GoogleOAuth    *oauth2.Config
	AllowedOrigins []string

	// LiveHandler serves /ws/live when set
	LiveHandler gin.HandlerFunc
}

// NewRouter wires handlers and middleware onto a gin engine
func NewRouter(cfg RouterConfig) *gin.Engine {
	authHandler := NewAuthHandler(cfg.DB, cfg.JWTSecret)
	oauthHandler := NewOAuthHandler(cfg.DB, cfg.JWTSecret, cfg.GoogleOAuth)
	entryHandler := NewEntryHandler(cfg.DB, cfg.Engine)
	vocabHandler := NewVocabularyHandler(cfg.DB, cfg.Vocabulary)
	symptomHandler := NewSymptomHandler(cfg.DB)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// ~100 req/min per IP, burst of 200
	router.Use(middleware.PerIP(100.0/60.0, 200))

	router.GET("/health", healthCheck(cfg.DB, cfg.Vocabulary))

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWTAuth(cfg.JWTSecret), authHandler.Me)
		auth.GET("/google", oauthHandler.GoogleLogin)
		auth.GET("/google/callback", oauthHandler.GoogleCallback)
	}

	protected := router.Group("/api")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))
	protected.Use(middleware.PerUser(600.0/3600.0, 60)) // 600/hour per user
	{
		protected.POST("/extract", entryHandler.Extract)

		protected.GET("/entries", entryHandler.ListEntries)
		protected.POST("/entries", entryHandler.CreateEntry)
		protected.GET("/entries/:id", entryHandler.GetEntry)
		protected.DELETE("/entries/:id", entryHandler.DeleteEntry)

		protected.POST("/checkins", entryHandler.CreateCheckin)

		protected.GET("/vocabulary", vocabHandler.ListLemmas)
		protected.PUT("/vocabulary", vocabHandler.PutLemma)
		protected.DELETE("/vocabulary/:word", vocabHandler.DeleteLemma)

		protected.GET("/symptoms/categories", symptomHandler.GetCategories)
		protected.GET("/symptoms/stats", symptomHandler.GetSymptomStats)
	}

	if cfg.LiveHandler != nil {
		router.GET("/ws/live", cfg.LiveHandler)
	}

	return router
}

// healthCheck reports database reachability and the vocabulary breaker.
// An open breaker degrades extraction to seed vocabulary but is not fatal.
func healthCheck(database *db.DB, vocab *vocabulary.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		}

		if database != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := database.PingContext(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "unhealthy"
				body["database"] = "unreachable"
			} else {
				body["database"] = "ok"
			}
		}

		if vocab != nil {
			state := vocab.BreakerState()
			body["vocabulary_store"] = state.String()
			if state != circuitbreaker.StateClosed && status == http.StatusOK {
				body["status"] = "degraded"
			}
		}

		c.JSON(status, body)
	}
}
