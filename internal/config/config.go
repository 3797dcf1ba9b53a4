package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port              string
	AllowedOrigin     string
	DatabaseDSN       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	AllowRegistration bool
	CartTTLMinutes    int
	GeminiAPIKey      string
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cartTTL, err := strconv.Atoi(getEnv("CART_TTL_MINUTES", "120"))
	if err != nil || cartTTL < 1 {
		cartTTL = 120
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		AllowedOrigin:     getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		DatabaseDSN:       os.Getenv("DB_DSN"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           redisDB,
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AllowRegistration: os.Getenv("ALLOW_REGISTRATION") == "true",
		CartTTLMinutes:    cartTTL,
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
