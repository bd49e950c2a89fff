package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Backup   BackupConfig
	App      AppConfig

	// set when SQLITE_PATH / BACKUP_DIR came from the environment
	sqlitePathSet bool
	backupDirSet  bool
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

type StoreConfig struct {
	Backend    string // memory, file, sqlite, redis, postgres
	Key        string
	DataDir    string
	SQLitePath string
	WatchFile  bool
}

type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Table    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type BackupConfig struct {
	Schedule string // cron spec with seconds; empty disables
	Dir      string
	Retain   int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dataDir := getEnv("DATA_DIR", ".archdesign")

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 0),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Store: StoreConfig{
			Backend:    getEnv("STORE_BACKEND", "file"),
			Key:        getEnv("STORE_KEY", "archdesign-project"),
			DataDir:    dataDir,
			SQLitePath: getEnv("SQLITE_PATH", dataDir+"/archdesign.db"),
			WatchFile:  getEnvAsBool("WATCH_FILE", true),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "archdesign"),
			Table:    getEnv("DB_TABLE", "project_documents"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Backup: BackupConfig{
			Schedule: getEnv("BACKUP_SCHEDULE", ""),
			Dir:      getEnv("BACKUP_DIR", dataDir+"/backups"),
			Retain:   getEnvAsInt("BACKUP_RETAIN", 10),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	cfg.sqlitePathSet = os.Getenv("SQLITE_PATH") != ""
	cfg.backupDirSet = os.Getenv("BACKUP_DIR") != ""

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetDataDir points the file backend at dir and moves the SQLite database
// and backup directory with it, unless those were configured explicitly.
func (c *Config) SetDataDir(dir string) {
	c.Store.DataDir = dir
	if !c.sqlitePathSet {
		c.Store.SQLitePath = dir + "/archdesign.db"
	}
	if !c.backupDirSet {
		c.Backup.Dir = dir + "/backups"
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Store.Key == "" {
		return fmt.Errorf("STORE_KEY is required")
	}
	if c.Store.Key == "." || c.Store.Key == ".." || strings.ContainsAny(c.Store.Key, `/\`) {
		return fmt.Errorf("STORE_KEY %q must not contain path separators", c.Store.Key)
	}

	switch c.Store.Backend {
	case "memory":
	case "file":
		if c.Store.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file backend")
		}
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	case "postgres":
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_DSN or DB_HOST is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Server.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if c.Backup.Schedule != "" && c.Backup.Dir == "" {
		return fmt.Errorf("BACKUP_DIR is required when BACKUP_SCHEDULE is set")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
