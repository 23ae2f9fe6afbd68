package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Mongo     MongoConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Center    CenterConfig
	Backup    BackupConfig
}

type AppConfig struct {
	Name       string
	Env        string
	Port       string
	Debug      bool
	Timezone   string
	IDStrategy string
}

// StorageConfig selects the keyed storage backend the history and drafts live in.
type StorageConfig struct {
	Driver string // memory, postgres, redis or mongo
	Path   string
}

type DatabaseConfig struct {
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

type MongoConfig struct {
	URI        string
	DBName     string
	Collection string
}

type AuthConfig struct {
	Passcode     string
	PasscodeHash string
	JWTSecret    string
	TokenExpiry  time.Duration
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

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
}

// CenterConfig is the fixed header and payment block printed on every receipt.
type CenterConfig struct {
	Name          string
	Address       string
	Phone         string
	Slogan        string
	Department    string
	BankName      string
	AccountNumber string
	AccountHolder string
	LogoURL       string
	QRImageURL    string
}

type BackupConfig struct {
	Cron string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Env:        viper.GetString("APP_ENV"),
			Port:       viper.GetString("APP_PORT"),
			Debug:      viper.GetBool("APP_DEBUG"),
			Timezone:   viper.GetString("APP_TIMEZONE"),
			IDStrategy: viper.GetString("ID_STRATEGY"),
		},
		Storage: StorageConfig{
			Driver: viper.GetString("STORAGE_DRIVER"),
			Path:   viper.GetString("STORAGE_PATH"),
		},
		Database: DatabaseConfig{
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
		Mongo: MongoConfig{
			URI:        viper.GetString("MONGODB_URI"),
			DBName:     viper.GetString("MONGODB_DB_NAME"),
			Collection: viper.GetString("MONGODB_COLLECTION"),
		},
		Auth: AuthConfig{
			Passcode:     viper.GetString("AUTH_PASSCODE"),
			PasscodeHash: viper.GetString("AUTH_PASSCODE_HASH"),
			JWTSecret:    viper.GetString("JWT_SECRET"),
			TokenExpiry:  time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
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
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		Center: CenterConfig{
			Name:          viper.GetString("CENTER_NAME"),
			Address:       viper.GetString("CENTER_ADDRESS"),
			Phone:         viper.GetString("CENTER_PHONE"),
			Slogan:        viper.GetString("CENTER_SLOGAN"),
			Department:    viper.GetString("CENTER_DEPARTMENT"),
			BankName:      viper.GetString("CENTER_BANK_NAME"),
			AccountNumber: viper.GetString("CENTER_ACCOUNT_NUMBER"),
			AccountHolder: viper.GetString("CENTER_ACCOUNT_HOLDER"),
			LogoURL:       viper.GetString("CENTER_LOGO_URL"),
			QRImageURL:    viper.GetString("CENTER_QR_IMAGE_URL"),
		},
		Backup: BackupConfig{
			Cron: viper.GetString("BACKUP_CRON"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "tuition-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("ID_STRATEGY", "timestamp")
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("STORAGE_PATH", "./storage")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "tuition")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_PREFIX", "anviet:")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DB_NAME", "tuition")
	viper.SetDefault("MONGODB_COLLECTION", "storage")
	viper.SetDefault("AUTH_PASSCODE", "Anviet@2026")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("CENTER_NAME", "TRUNG TÂM CAN THIỆP SỚM AN VIỆT")
	viper.SetDefault("CENTER_ADDRESS", "Trung Báo, X. Cao Dương, T. Phú Thọ")
	viper.SetDefault("CENTER_PHONE", "0984.538.228 - 0925.717.826")
	viper.SetDefault("CENTER_SLOGAN", "TRUNG TÂM CAN THIỆP SỚM AN VIỆT - VÌ SỰ PHÁT TRIỂN CỦA TRẺ")
	viper.SetDefault("CENTER_DEPARTMENT", "Bộ phận quản lý - An Việt")
	viper.SetDefault("CENTER_BANK_NAME", "TPBank (Tiên Phong)")
	viper.SetDefault("CENTER_ACCOUNT_NUMBER", "10000815935")
	viper.SetDefault("CENTER_ACCOUNT_HOLDER", "Nguyễn Thị Bích")
	viper.SetDefault("BACKUP_CRON", "")
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
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
