package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	POS       POSConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Sync      SyncConfig
	Printer   PrinterConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
}

// POSConfig holds the restaurant settings shared by every terminal.
type POSConfig struct {
	StoreName            string
	StoreAddress         string
	StorePhone           string
	TaxID                string
	TableCount           int
	ServiceChargePercent float64
	TaxPercent           float64
	Timezone             string
	NodeID               int64
	RecentLimit          int
	TopItems             int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

// AuthConfig enables terminal login when PinHash is set.
type AuthConfig struct {
	PinHash string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// SyncConfig configures the external recording sinks. A sink with an empty
// address is not started.
type SyncConfig struct {
	Timeout        time.Duration
	QueueSize      int
	RatePerSecond  float64
	Burst          int
	WarningsKept   int
	SheetsURL      string
	SheetsToken    string
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
	ArchiveEnabled bool
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("POS_STORE_NAME", "Tewan Kitchen")
	viper.SetDefault("POS_TABLE_COUNT", 6)
	viper.SetDefault("POS_SERVICE_CHARGE_PERCENT", 10)
	viper.SetDefault("POS_TAX_PERCENT", 7)
	viper.SetDefault("POS_TIMEZONE", "Asia/Bangkok")
	viper.SetDefault("POS_NODE_ID", 1)
	viper.SetDefault("POS_RECENT_LIMIT", 5)
	viper.SetDefault("POS_TOP_ITEMS", 5)
	viper.SetDefault("DB_ENABLED", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Bangkok")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_PREFIX", "pos")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("SYNC_TIMEOUT_SECONDS", 5)
	viper.SetDefault("SYNC_QUEUE_SIZE", 256)
	viper.SetDefault("SYNC_RATE_PER_SECOND", 5)
	viper.SetDefault("SYNC_BURST", 10)
	viper.SetDefault("SYNC_WARNINGS_KEPT", 50)
	viper.SetDefault("SYNC_AMQP_EXCHANGE", "pos_transactions")
	viper.SetDefault("SYNC_AMQP_ROUTING_KEY", "transaction.settled")
	viper.SetDefault("SYNC_ARCHIVE_ENABLED", false)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		POS: POSConfig{
			StoreName:            viper.GetString("POS_STORE_NAME"),
			StoreAddress:         viper.GetString("POS_STORE_ADDRESS"),
			StorePhone:           viper.GetString("POS_STORE_PHONE"),
			TaxID:                viper.GetString("POS_TAX_ID"),
			TableCount:           viper.GetInt("POS_TABLE_COUNT"),
			ServiceChargePercent: viper.GetFloat64("POS_SERVICE_CHARGE_PERCENT"),
			TaxPercent:           viper.GetFloat64("POS_TAX_PERCENT"),
			Timezone:             viper.GetString("POS_TIMEZONE"),
			NodeID:               viper.GetInt64("POS_NODE_ID"),
			RecentLimit:          viper.GetInt("POS_RECENT_LIMIT"),
			TopItems:             viper.GetInt("POS_TOP_ITEMS"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Prefix:   viper.GetString("REDIS_PREFIX"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		Auth: AuthConfig{
			PinHash: viper.GetString("AUTH_PIN_HASH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Sync: SyncConfig{
			Timeout:        time.Duration(viper.GetInt("SYNC_TIMEOUT_SECONDS")) * time.Second,
			QueueSize:      viper.GetInt("SYNC_QUEUE_SIZE"),
			RatePerSecond:  viper.GetFloat64("SYNC_RATE_PER_SECOND"),
			Burst:          viper.GetInt("SYNC_BURST"),
			WarningsKept:   viper.GetInt("SYNC_WARNINGS_KEPT"),
			SheetsURL:      viper.GetString("SYNC_SHEETS_URL"),
			SheetsToken:    viper.GetString("SYNC_SHEETS_TOKEN"),
			AMQPURL:        viper.GetString("SYNC_AMQP_URL"),
			AMQPExchange:   viper.GetString("SYNC_AMQP_EXCHANGE"),
			AMQPRoutingKey: viper.GetString("SYNC_AMQP_ROUTING_KEY"),
			ArchiveEnabled: viper.GetBool("SYNC_ARCHIVE_ENABLED"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// Location resolves the configured timezone, falling back to local time.
func (c *POSConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}
