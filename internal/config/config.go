package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configurable values for the app.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenExpiry time.Duration

	// Device-local store (review heuristic, onboarding flags)
	LocalStorePath string

	// Review prompt heuristic. Thresholds are product configuration,
	// not part of the lifecycle contract.
	ReviewMinGoals     int
	ReviewCooldownDays int

	// Ad session
	AdsEnabled           bool
	AdBannerUnitID       string
	AdInterstitialUnitID string
	AdRewardedUnitID     string
}

// LoadConfig reads configuration from a .env file and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "lifeplan"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenExpiry: getDurationEnv("TOKEN_EXPIRY", 24*time.Hour),

		LocalStorePath: getEnv("LOCAL_STORE_PATH", "lifeplan_local.db"),

		ReviewMinGoals:     getIntEnv("REVIEW_MIN_GOALS", 3),
		ReviewCooldownDays: getIntEnv("REVIEW_COOLDOWN_DAYS", 7),

		AdsEnabled:           getBoolEnv("ADS_ENABLED", false),
		AdBannerUnitID:       getEnv("AD_BANNER_UNIT_ID", ""),
		AdInterstitialUnitID: getEnv("AD_INTERSTITIAL_UNIT_ID", ""),
		AdRewardedUnitID:     getEnv("AD_REWARDED_UNIT_ID", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, val, fallback)
		return fallback
	}
	return parsed
}

func getBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, val, fallback)
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %s", key, val, fallback)
		return fallback
	}
	return parsed
}
