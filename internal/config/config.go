package config

import (
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Pricing  PricingConfig
	Storage  StorageConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  int // in minutes
	RefreshExpiry int // in days
}

// PricingConfig holds the storefront's pricing constants. Amounts are NGN,
// parsed as decimal strings.
type PricingConfig struct {
	VATRate               string
	FreeShippingThreshold string
	BaseShippingCost      string
	CompareLimit          int
}

// StorageConfig holds object storage settings for receipts and category
// images.
type StorageConfig struct {
	Region        string
	PublicBaseURL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 15)
	viper.SetDefault("JWT_REFRESH_EXPIRY", 7)
	viper.SetDefault("PRICING_VAT_RATE", "0")
	viper.SetDefault("PRICING_FREE_SHIPPING_THRESHOLD", "100000")
	viper.SetDefault("PRICING_BASE_SHIPPING_COST", "3500")
	viper.SetDefault("COMPARE_LIMIT", 3)
	viper.SetDefault("STORAGE_REGION", "eu-west-1")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  viper.GetInt("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: viper.GetInt("JWT_REFRESH_EXPIRY"),
		},
		Pricing: PricingConfig{
			VATRate:               viper.GetString("PRICING_VAT_RATE"),
			FreeShippingThreshold: viper.GetString("PRICING_FREE_SHIPPING_THRESHOLD"),
			BaseShippingCost:      viper.GetString("PRICING_BASE_SHIPPING_COST"),
			CompareLimit:          viper.GetInt("COMPARE_LIMIT"),
		},
		Storage: StorageConfig{
			Region:        viper.GetString("STORAGE_REGION"),
			PublicBaseURL: viper.GetString("STORAGE_PUBLIC_BASE_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ","),
		},
	}
}

// PricingValues parses the pricing amounts into decimals, falling back to
// the deployed defaults on malformed values.
func (c *Config) PricingValues() (vatRate, freeShippingThreshold, baseShippingCost decimal.Decimal) {
	parse := func(raw string, fallback decimal.Decimal) decimal.Decimal {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			log.Printf("Warning: invalid pricing value %q, using default", raw)
			return fallback
		}
		return d
	}
	vatRate = parse(c.Pricing.VATRate, decimal.Zero)
	freeShippingThreshold = parse(c.Pricing.FreeShippingThreshold, decimal.NewFromInt(100000))
	baseShippingCost = parse(c.Pricing.BaseShippingCost, decimal.NewFromInt(3500))
	return vatRate, freeShippingThreshold, baseShippingCost
}
