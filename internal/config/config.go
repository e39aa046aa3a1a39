package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Catalog  CatalogConfig
	Cart     CartConfig
	Redis    RedisConfig
	Database DatabaseConfig
}

// CatalogConfig selects where the catalog store loads products from.
type CatalogConfig struct {
	Source string // "fixture" or "postgres"
}

// CartConfig controls cart persistence and stock policy.
type CartConfig struct {
	BlobBackend string // "memory", "file" or "redis"
	BlobPath    string // directory for the file backend
	StockPolicy string // "advisory" or "enforced"
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

func Load() *Config {
	// .env is optional; viper picks up real environment variables either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not read .env file: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SHOPHUB_ENV", "development")
	viper.SetDefault("CATALOG_SOURCE", "fixture")
	viper.SetDefault("CART_BLOB_BACKEND", "file")
	viper.SetDefault("CART_BLOB_PATH", ".shophub")
	viper.SetDefault("CART_STOCK_POLICY", "advisory")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")

	return &Config{
		Env: viper.GetString("SHOPHUB_ENV"),
		Catalog: CatalogConfig{
			Source: viper.GetString("CATALOG_SOURCE"),
		},
		Cart: CartConfig{
			BlobBackend: viper.GetString("CART_BLOB_BACKEND"),
			BlobPath:    viper.GetString("CART_BLOB_PATH"),
			StockPolicy: viper.GetString("CART_STOCK_POLICY"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
	}
}
