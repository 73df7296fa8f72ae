package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Data     DataConfig
	Model    ModelConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Host string
	Port string
}

// DataConfig selects where the three source tables come from.
type DataConfig struct {
	Source       string // flatfile | postgres
	Dir          string // directory holding u.data / u.item / u.user etc.
	ArtifactsDir string // when set, cluster analysis files are written here
}

type ModelConfig struct {
	SVDFactors  int
	NumClusters int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Enabled         bool
	Host            string
	Port            string
	Password        string
	DB              int
	CacheTTLSeconds int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	factors, err := getEnvInt("SVD_FACTORS", 50)
	if err != nil {
		return nil, err
	}
	clusters, err := getEnvInt("NUM_CLUSTERS", 5)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvInt("CACHE_TTL_SECONDS", 300)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MovieLab API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "8080"),
		},
		Data: DataConfig{
			Source:       getEnv("DATA_SOURCE", "flatfile"),
			Dir:          getEnv("DATA_DIR", "./data"),
			ArtifactsDir: getEnv("ARTIFACTS_DIR", ""),
		},
		Model: ModelConfig{
			SVDFactors:  factors,
			NumClusters: clusters,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "movielab"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:         getEnv("REDIS_HOST", "") != "",
			Host:            getEnv("REDIS_HOST", ""),
			Port:            getEnv("REDIS_PORT", "6379"),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              redisDB,
			CacheTTLSeconds: cacheTTL,
		},
	}

	if cfg.Model.SVDFactors <= 0 {
		return nil, errors.New("SVD_FACTORS must be positive")
	}

	if cfg.Model.NumClusters <= 0 {
		return nil, errors.New("NUM_CLUSTERS must be positive")
	}

	switch cfg.Data.Source {
	case "flatfile", "postgres":
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.Data.Source)
	}

	if cfg.Data.Source == "postgres" && cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}
