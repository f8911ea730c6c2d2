package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/iamasit07/connect4-minimax/internal/config"
	"github.com/iamasit07/connect4-minimax/internal/repository/redis"
	"github.com/iamasit07/connect4-minimax/internal/service/bot"
	"github.com/iamasit07/connect4-minimax/internal/service/cleanup"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-minimax/internal/transport/http"
	"github.com/iamasit07/connect4-minimax/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-minimax/internal/transport/websocket"
	"github.com/iamasit07/connect4-minimax/pkg/auth"
	"github.com/iamasit07/connect4-minimax/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	logg, err := logger.New(cfg.Environment, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logg.Sync()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional; without it /api/analyze is not rate limited.
	var limiter middleware.Limiter
	if client := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword, logg); client != nil {
		defer client.Close()
		limiter = redis.NewRateLimiter(client, cfg.RateLimit, time.Minute)
	}

	heuristic := bot.HeuristicByName(cfg.Heuristic)
	sessionManager := game.NewSessionManager(game.Options{
		DefaultDepth:  cfg.SearchDepth,
		Heuristic:     heuristic,
		SearchTimeout: cfg.SearchTimeout,
		BotMoveDelay:  cfg.BotMoveDelay,
	}, logg)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.GuestTokenTTL)
	connManager := websocket.NewConnectionManager()

	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionTTL, cfg.CleanupInterval, logg)
	go cleanupWorker.Start(ctx)

	secureCookie := cfg.Environment == "production"
	guestHandler := transportHttp.NewGuestHandler(tokens, cfg.GuestTokenTTL, secureCookie, logg)
	gameHandler := transportHttp.NewGameHandler(sessionManager)
	analyzeHandler := transportHttp.NewAnalyzeHandler(bot.NewEngine(cfg.SearchDepth, heuristic), cfg.MaxAnalyzeDepth, cfg.SearchTimeout, logg)
	wsHandler := websocket.NewHandler(connManager, sessionManager, tokens, cfg.AllowedOrigins, logg)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, logg))

	router.GET("/api/health", gameHandler.Health)
	router.POST("/api/guest", guestHandler.CreateGuest)
	router.POST("/api/analyze", middleware.RateLimit(limiter, logg), analyzeHandler.Analyze)

	protected := router.Group("/api")
	protected.Use(middleware.GuestAuth(tokens))
	{
		protected.GET("/game", gameHandler.GetCurrentGame)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	router.GET("/ws", func(c *gin.Context) {
		wsHandler.HandleWebSocket(c.Writer, c.Request)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logg.Infow("server starting", "port", cfg.Port, "depth", cfg.SearchDepth, "heuristic", cfg.Heuristic)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatalw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	logg.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Fatalw("server forced to shutdown", "error", err)
	}

	logg.Info("server exited gracefully")
}
