package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	DefaultAPIURL   = "https://luxury-perfume-haven.vercel.app/api"
	DefaultUsername = "admin"
	DefaultPassword = "admintest"

	// ProductsPerCategory is how many products one run creates in every category.
	ProductsPerCategory = 20
	// Pace is the fixed delay after every product creation attempt.
	Pace = 200 * time.Millisecond
)

// Config holds everything the seeder and the mock storefront read from the environment.
type Config struct {
	APIURL      string
	Username    string
	Password    string
	HTTPTimeout time.Duration
	RandomSeed  int64

	AIDescriptions bool
	GeminiAPIKey   string

	ImageBucket string
	AWSRegion   string

	MongoURI      string
	MongoDatabase string

	SendGridAPIKey string
	ReportEmail    string

	LogMode string
	LogFile string

	// Mock storefront
	Port      string
	JWTSecret string
}

// LoadConfig loads environment variables from .env file
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function, applying defaults
// for anything unset.
func FromEnv(getenv func(string) string) *Config {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		APIURL:         strings.TrimRight(get("SEED_API_URL", DefaultAPIURL), "/"),
		Username:       get("SEED_USERNAME", DefaultUsername),
		Password:       get("SEED_PASSWORD", DefaultPassword),
		HTTPTimeout:    cast.ToDuration(get("SEED_HTTP_TIMEOUT", "30s")),
		RandomSeed:     cast.ToInt64(get("SEED_RANDOM_SEED", "0")),
		AIDescriptions: cast.ToBool(get("SEED_AI_DESCRIPTIONS", "false")),
		GeminiAPIKey:   getenv("GEMINI_API_KEY"),
		ImageBucket:    getenv("SEED_IMAGE_BUCKET"),
		AWSRegion:      get("AWS_REGION", "us-east-1"),
		MongoURI:       getenv("MONGO_URI"),
		MongoDatabase:  get("MONGO_DATABASE", "storefront_seeder"),
		SendGridAPIKey: getenv("SENDGRID_API_KEY"),
		ReportEmail:    getenv("SEED_REPORT_EMAIL"),
		LogMode:        get("LOG_MODE", "development"),
		LogFile:        getenv("LOG_FILE"),
		Port:           get("PORT", "8080"),
		JWTSecret:      get("JWT_SECRET", "mockstore-secret"),
	}

	// cast turns garbage into zero, which would mean no timeout at all
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return cfg
}

// DescriptionsEnabled reports whether product descriptions should be written by Gemini.
func (c *Config) DescriptionsEnabled() bool {
	return c.AIDescriptions && c.GeminiAPIKey != ""
}

// EmailEnabled reports whether the run summary should be mailed.
func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.ReportEmail != ""
}
