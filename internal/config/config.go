package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	LogLevel    string
	IntakePath  string
	Database    DatabaseConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host           string
	Port           string
	Username       string
	Password       string
	Name           string
	DSN            string
	ConnectTimeout time.Duration
	MaxOpenConns   int
	MaxIdleConns   int
}

// IsDevelopment reports whether the server runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hospital"),
	}

	connectTimeout, err := strconv.Atoi(getEnv("DB_CONNECT_TIMEOUT_SECONDS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT_SECONDS: %w", err)
	}
	dbConfig.ConnectTimeout = time.Duration(connectTimeout) * time.Second

	dbConfig.MaxOpenConns, err = strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	dbConfig.MaxIdleConns, err = strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	dbConfig.DSN = buildDSN(dbConfig)

	return &Config{
		Port:        getEnv("PORT", "3001"),
		Origin:      getEnv("ORIGIN", "*"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		IntakePath:  getEnv("INTAKE_PATH", "/api/add_patient"),
		Database:    dbConfig,
	}, nil
}

// buildDSN renders the MySQL Data Source Name with the driver's formatter.
func buildDSN(db DatabaseConfig) string {
	dsn := mysql.NewConfig()
	dsn.User = db.Username
	dsn.Passwd = db.Password
	dsn.Net = "tcp"
	dsn.Addr = db.Host + ":" + db.Port
	dsn.DBName = db.Name
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	dsn.Timeout = db.ConnectTimeout
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
