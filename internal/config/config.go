package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	Environment     string
	AllowedOrigins  []string
	SearchDepth     int
	Difficulty      string
	MaxAnalyzeDepth int
	SearchTimeout   time.Duration
	BotMoveDelay    time.Duration
	Heuristic       string
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	JWTSecret       string
	GuestTokenTTL   time.Duration
	RedisURL        string
	RedisPassword   string
	RateLimit       int
	LogFile         string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("APP_ENV", "production")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	if extra := GetEnv("ALLOWED_ORIGINS", ""); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Search
	searchDepth := GetEnvAsInt("SEARCH_DEPTH", 2)
	if searchDepth < 0 {
		log.Printf("Invalid SEARCH_DEPTH %d, using default: 2", searchDepth)
		searchDepth = 2
	}
	maxAnalyzeDepth := GetEnvAsInt("MAX_ANALYZE_DEPTH", 6)
	searchTimeoutMs := GetEnvAsInt("SEARCH_TIMEOUT_MS", 2000)
	botMoveDelayMs := GetEnvAsInt("BOT_MOVE_DELAY_MS", 300)
	heuristic := GetEnv("HEURISTIC", "reference")
	// empty means SearchDepth decides; a named difficulty overrides it
	difficulty := GetEnv("DIFFICULTY", "")

	// Sessions
	sessionTTLMin := GetEnvAsInt("SESSION_TTL_MINUTES", 60)
	cleanupIntervalMin := GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)
	if sessionTTLMin <= 0 {
		log.Printf("Invalid SESSION_TTL_MINUTES %d, using default: 60", sessionTTLMin)
		sessionTTLMin = 60
	}
	if cleanupIntervalMin <= 0 {
		log.Printf("Invalid CLEANUP_INTERVAL_MINUTES %d, using default: 10", cleanupIntervalMin)
		cleanupIntervalMin = 10
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	guestTokenTTLHours := GetEnvAsInt("GUEST_TOKEN_TTL_HOURS", 24)

	return &Config{
		Port:            port,
		Environment:     environment,
		AllowedOrigins:  allowedOrigins,
		SearchDepth:     searchDepth,
		Difficulty:      difficulty,
		MaxAnalyzeDepth: maxAnalyzeDepth,
		SearchTimeout:   time.Duration(searchTimeoutMs) * time.Millisecond,
		BotMoveDelay:    time.Duration(botMoveDelayMs) * time.Millisecond,
		Heuristic:       heuristic,
		SessionTTL:      time.Duration(sessionTTLMin) * time.Minute,
		CleanupInterval: time.Duration(cleanupIntervalMin) * time.Minute,
		JWTSecret:       jwtSecret,
		GuestTokenTTL:   time.Duration(guestTokenTTLHours) * time.Hour,
		RedisURL:        GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		RateLimit:       GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		LogFile:         GetEnv("LOG_FILE", ""),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
