package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	RedisURL           string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	VerifyExpiryMin    int

	// Account lockout policy
	LoginMaxAttempts int
	LockoutDuration  time.Duration

	// Rate limiting (requests per window per key)
	LoginRateLimit    int
	RegisterRateLimit int
	RateLimitWindow   time.Duration

	RotateRefreshTokens  bool
	RequireVerifiedEmail bool
}

func Load() *Config {
	return &Config{
		Env:                  getEnv("ENV", "development"),
		Port:                 getEnv("PORT", "8080"),
		DBURL:                mustGetEnv("DB_URL"),
		RedisURL:             getEnv("REDIS_URL", "localhost:6379"),
		AccessTokenSecret:    mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:   mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:      getEnvAsInt("ACCESS_TOKEN_EXPIRY", 60),
		RefreshExpiryMin:     getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),
		VerifyExpiryMin:      getEnvAsInt("VERIFICATION_TOKEN_EXPIRY", 1440),
		LoginMaxAttempts:     getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		LockoutDuration:      time.Duration(getEnvAsInt("LOCKOUT_DURATION", 30)) * time.Minute,
		LoginRateLimit:       getEnvAsInt("LOGIN_RATE_LIMIT", 5),
		RegisterRateLimit:    getEnvAsInt("REGISTER_RATE_LIMIT", 3),
		RateLimitWindow:      time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
		RotateRefreshTokens:  getEnvAsBool("ROTATE_REFRESH_TOKENS", false),
		RequireVerifiedEmail: getEnvAsBool("REQUIRE_VERIFIED_EMAIL", false),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	// All integer settings are counts, minutes, or seconds; zero or less
	// would mean expired-on-issue tokens or an instantly elapsed lock.
	if val <= 0 {
		log.Printf("Non-positive value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
