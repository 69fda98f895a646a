package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
)

type Config struct {
	Port        string
	Host        string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	CORS        CORSConfig
	Notify      NotifyConfig
	SMTP        SMTPConfig
	WhatsApp    WhatsAppConfig
}

type DatabaseConfig struct {
	URL             string // DATABASE_URL; when set it wins over the discrete fields
	Driver          string // "postgres" (lib/pq) or "pgx"
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	QueryTimeout    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type NotifyConfig struct {
	Channel       domain.NotifyChannel
	Timeout       time.Duration
	OrderLinkBase string // ORDER_LINK_BASE_URL, e.g. https://www.bazaronlinesalta.com.ar/pedido
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
	From     string
	FromName string
}

// WhatsAppConfig is used to call the WhatsApp Business Cloud API
type WhatsAppConfig struct {
	Token         string // WABA_TOKEN
	PhoneNumberID string // WABA_PHONE_NUMBER_ID
	AlertTo       string // WABA_ALERT_TO: staff number receiving alerts
	Template      string // WABA_TEMPLATE: empty means free-form text only
	BaseURL       string
	APIVersion    string
}

var defaultOrigins = []string{
	"https://www.bazaronlinesalta.com.ar",
	"https://bazaronlinesalta.com.ar",
	"http://localhost:3000",
}

func readConfigFile() error {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Read from environment variables
	viper.AutomaticEnv()

	// It's okay if .env doesn't exist, we'll use env vars
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// Load reads the full server configuration and refuses incomplete setups
func Load() (*Config, error) {
	if err := readConfigFile(); err != nil {
		return nil, err
	}

	db, err := loadDatabase()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "5000"),
		Host:        getEnvOrViper("HOST", "0.0.0.0"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    strings.ToLower(getEnvOrViper("LOG_LEVEL", "info")),
		Database:    db,
		CORS: CORSConfig{
			AllowedOrigins: getListOrViper("CORS_ALLOWED_ORIGINS", defaultOrigins),
		},
		Notify: NotifyConfig{
			Channel:       domain.NotifyChannel(strings.ToLower(getEnvOrViper("NOTIFY_CHANNEL", string(domain.NotifyChannelEmail)))),
			Timeout:       getDurationOrViper("NOTIFY_TIMEOUT", 30*time.Second),
			OrderLinkBase: strings.TrimSpace(getEnvOrViper("ORDER_LINK_BASE_URL", "")),
		},
		SMTP: SMTPConfig{
			Host:     strings.TrimSpace(getEnvOrViper("SMTP_HOST", "")),
			Port:     getIntOrViper("SMTP_PORT", 587),
			User:     strings.TrimSpace(getEnvOrViper("SMTP_USER", "")),
			Password: getEnvOrViper("SMTP_PASSWORD", ""),
			To:       strings.TrimSpace(getEnvOrViper("EMAIL_TO", "")),
			From:     strings.TrimSpace(getEnvOrViper("EMAIL_FROM", "")),
			FromName: getEnvOrViper("EMAIL_FROM_NAME", "Tienda TSB"),
		},
		WhatsApp: WhatsAppConfig{
			Token:         strings.TrimSpace(getEnvOrViper("WABA_TOKEN", "")),
			PhoneNumberID: strings.TrimSpace(getEnvOrViper("WABA_PHONE_NUMBER_ID", "")),
			AlertTo:       strings.TrimSpace(getEnvOrViper("WABA_ALERT_TO", "")),
			Template:      strings.TrimSpace(getEnvOrViper("WABA_TEMPLATE", "")),
			BaseURL:       strings.TrimSuffix(getEnvOrViper("WABA_API_BASE_URL", "https://graph.facebook.com"), "/"),
			APIVersion:    getEnvOrViper("WABA_API_VERSION", "v22.0"),
		},
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.To
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadDatabase reads only the database block, for the one-shot cmd tools
func LoadDatabase() (DatabaseConfig, error) {
	if err := readConfigFile(); err != nil {
		return DatabaseConfig{}, err
	}
	return loadDatabase()
}

func loadDatabase() (DatabaseConfig, error) {
	db := DatabaseConfig{
		URL:             strings.TrimSpace(getEnvOrViper("DATABASE_URL", "")),
		Driver:          strings.ToLower(getEnvOrViper("DB_DRIVER", "postgres")),
		Host:            strings.TrimSpace(getEnvOrViper("DB_HOST", "")),
		Port:            getEnvOrViper("DB_PORT", "5432"),
		User:            getEnvOrViper("DB_USER", "postgres"),
		Password:        getEnvOrViper("DB_PASSWORD", ""),
		DBName:          getEnvOrViper("DB_NAME", "tienda"),
		SSLMode:         getEnvOrViper("DB_SSLMODE", "disable"),
		MaxOpenConns:    getIntOrViper("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getIntOrViper("DB_MAX_IDLE_CONNS", 5),
		ConnMaxIdleTime: getDurationOrViper("DB_CONN_MAX_IDLE_TIME", 30*time.Second),
		ConnMaxLifetime: getDurationOrViper("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		ConnectTimeout:  getDurationOrViper("DB_CONNECT_TIMEOUT", 10*time.Second),
		QueryTimeout:    getDurationOrViper("DB_QUERY_TIMEOUT", 10*time.Second),
	}
	if err := db.Validate(); err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid database configuration: %w", err)
	}
	return db, nil
}

// DSN returns the connection string handed to the driver
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + d.Port,
		Path:   "/" + d.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	if d.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(d.ConnectTimeout.Seconds())))
	}
	q.Set("application_name", "tsb-backend-tienda")
	u.RawQuery = q.Encode()
	return u.String()
}

// DriverName maps the configured driver to its database/sql registration name
func (d DatabaseConfig) DriverName() string {
	if d.Driver == "pgx" {
		return "pgx"
	}
	return "postgres"
}

func (d DatabaseConfig) Validate() error {
	if d.URL == "" && d.Host == "" {
		return fmt.Errorf("DATABASE_URL is required (or DB_HOST)")
	}
	if d.Driver != "postgres" && d.Driver != "pgx" {
		return fmt.Errorf("invalid DB_DRIVER: %s (must be postgres or pgx)", d.Driver)
	}
	if d.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1")
	}
	return nil
}

// Validate checks the server configuration, including the selected notification channel
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if !c.Notify.Channel.IsValid() {
		return fmt.Errorf("invalid NOTIFY_CHANNEL: %s (must be email, whatsapp, or none)", c.Notify.Channel)
	}

	switch c.Notify.Channel {
	case domain.NotifyChannelEmail:
		if c.SMTP.Host == "" {
			return fmt.Errorf("SMTP_HOST is required")
		}
		if c.SMTP.User == "" {
			return fmt.Errorf("SMTP_USER is required")
		}
		if c.SMTP.Password == "" {
			return fmt.Errorf("SMTP_PASSWORD is required")
		}
		if c.SMTP.To == "" {
			return fmt.Errorf("EMAIL_TO is required")
		}
	case domain.NotifyChannelWhatsApp:
		if c.WhatsApp.Token == "" {
			return fmt.Errorf("WABA_TOKEN is required")
		}
		if c.WhatsApp.PhoneNumberID == "" {
			return fmt.Errorf("WABA_PHONE_NUMBER_ID is required")
		}
		if c.WhatsApp.AlertTo == "" {
			return fmt.Errorf("WABA_ALERT_TO is required")
		}
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getIntOrViper(key string, defaultValue int) int {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return n
}

// getDurationOrViper accepts Go durations ("30s") or plain milliseconds ("30000")
func getDurationOrViper(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(getEnvOrViper(key, ""))
	if raw == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}

func getListOrViper(key string, defaultValue []string) []string {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
