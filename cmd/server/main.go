package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/themobileprof/rantrack-be/internal/api"
	"github.com/themobileprof/rantrack-be/internal/classifier"
	"github.com/themobileprof/rantrack-be/internal/db"
	"github.com/themobileprof/rantrack-be/internal/journal"
	"github.com/themobileprof/rantrack-be/internal/symptoms"
	"github.com/themobileprof/rantrack-be/internal/vocabulary"
	"github.com/themobileprof/rantrack-be/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	port := getEnv("PORT", "8080")
	databaseURL := getEnv("DATABASE_URL", "")
	jwtSecret := getEnv("JWT_SECRET", "")
	seedFile := getEnv("VOCABULARY_SEED_FILE", "")
	cacheTTL := getEnv("VOCABULARY_CACHE_TTL", vocabulary.DefaultTTL.String())
	phraseNegation := getEnv("PHRASE_NEGATION", "false") == "true"

	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ttl, err := time.ParseDuration(cacheTTL)
	if err != nil {
		log.Fatalf("Invalid VOCABULARY_CACHE_TTL %q: %v", cacheTTL, err)
	}

	database, err := db.NewFromURL(databaseURL, db.Config{
		MaxConnections:  25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	log.Println("✅ Database connected")

	var seed map[string]string
	if seedFile != "" {
		seed, err = vocabulary.LoadSeedFile(seedFile)
		if err != nil {
			log.Fatalf("Failed to load vocabulary seed: %v", err)
		}
		log.Printf("✅ Loaded %d seed words from %s", len(seed), seedFile)
	}
	vocab := vocabulary.NewManager(database, seed, ttl)

	tracker := symptoms.NewTrackerWithOptions(symptoms.Options{PhraseNegation: phraseNegation})
	if phraseNegation {
		log.Println("✅ Phrase negation enabled")
	}

	// Shared between the HTTP handlers and the live WebSocket
	engine := journal.NewEngine(classifier.NewClassifier(), vocab, database, tracker)
	liveHandler := ws.NewLiveHandler(engine, jwtSecret)

	googleOAuth := api.GoogleOAuthConfig(
		getEnv("GOOGLE_WEB_CLIENT_ID", ""),
		getEnv("GOOGLE_CLIENT_SECRET", ""),
		getEnv("GOOGLE_REDIRECT_URL", "http://localhost:"+port+"/api/auth/google/callback"),
	)
	if googleOAuth != nil {
		log.Println("✅ Google sign-in configured")
	}

	router := api.NewRouter(api.RouterConfig{
		DB:             database,
		Engine:         engine,
		Vocabulary:     vocab,
		JWTSecret:      jwtSecret,
		GoogleOAuth:    googleOAuth,
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "")),
		LiveHandler:    liveHandler.HandleLive,
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", port)
		log.Printf("📝 API endpoints:")
		log.Printf("   POST   /api/auth/register")
		log.Printf("   POST   /api/auth/login")
		log.Printf("   GET    /api/auth/me")
		log.Printf("   GET    /api/auth/google")
		log.Printf("   GET    /api/auth/google/callback")
		log.Printf("   POST   /api/extract")
		log.Printf("   GET    /api/entries")
		log.Printf("   POST   /api/entries")
		log.Printf("   GET    /api/entries/:id")
		log.Printf("   DELETE /api/entries/:id")
		log.Printf("   POST   /api/checkins")
		log.Printf("   GET    /api/vocabulary")
		log.Printf("   PUT    /api/vocabulary")
		log.Printf("   DELETE /api/vocabulary/:word")
		log.Printf("   GET    /api/symptoms/categories")
		log.Printf("   GET    /api/symptoms/stats")
		log.Printf("   WS     /ws/live")
		log.Printf("")
		log.Printf("Press Ctrl+C to stop")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated env value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
