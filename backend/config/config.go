package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env        string
	ServerPort string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SQLitePath    string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	SessionSecret     string

	QueryTimeout   time.Duration
	StatsTimeout   time.Duration
	CascadeDeletes bool
	SeedPath       string
	CORSOrigins    string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	queryTimeout, err := time.ParseDuration(getEnv("QUERY_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}
	statsTimeout, err := time.ParseDuration(getEnv("STATS_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}
	cascade, err := strconv.ParseBool(getEnv("CASCADE_DELETES", "false"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "course_content"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "course_content"),
		SQLitePath:    getEnv("SQLITE_PATH", "course_content.db"),

		AdminUsername:     getEnv("ADMIN_USERNAME", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     getEnv("SESSION_SECRET", ""),

		QueryTimeout:   queryTimeout,
		StatsTimeout:   statsTimeout,
		CascadeDeletes: cascade,
		SeedPath:       getEnv("SEED_PATH", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
	}, nil
}

// AdminConfigured reports whether the login gate has credentials to compare against.
func (c *Config) AdminConfigured() bool {
	return c.AdminUsername != "" && (c.AdminPassword != "" || c.AdminPasswordHash != "")
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
