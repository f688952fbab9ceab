package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	Telegram    TelegramConfig
	WooCommerce WooCommerceConfig
	HTTP        HTTPConfig
	Catalog     CatalogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// TelegramConfig holds the chat transport settings
type TelegramConfig struct {
	Token       string // bot token from @BotFather
	AdminChatID int64  // chat that receives order summaries
	PollTimeout int    // long-polling timeout in seconds
}

// WooCommerceConfig holds the commerce backend connection settings
type WooCommerceConfig struct {
	BaseURL        string // store base URL, e.g. https://shop.example.com
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// HTTPConfig holds the operational HTTP server configuration
type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// CatalogConfig holds catalog browsing settings
type CatalogConfig struct {
	PageSize int // products per /products listing
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STOREBOT_ prefix (e.g. STOREBOT_TELEGRAM_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("STOREBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Telegram: TelegramConfig{
			Token:       v.GetString("telegram.token"),
			AdminChatID: v.GetInt64("telegram.admin_chat_id"),
			PollTimeout: v.GetInt("telegram.poll_timeout"),
		},
		WooCommerce: WooCommerceConfig{
			BaseURL:        v.GetString("woocommerce.base_url"),
			ConsumerKey:    v.GetString("woocommerce.consumer_key"),
			ConsumerSecret: v.GetString("woocommerce.consumer_secret"),
			Timeout:        v.GetDuration("woocommerce.timeout"),
		},
		HTTP: HTTPConfig{
			Port:            v.GetString("http.port"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Catalog: CatalogConfig{
			PageSize: v.GetInt("catalog.page_size"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storebot"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Telegram.PollTimeout == 0 {
		cfg.Telegram.PollTimeout = 30
	}
	if cfg.WooCommerce.Timeout == 0 {
		cfg.WooCommerce.Timeout = 30 * time.Second
	}
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = "8080"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Catalog.PageSize == 0 {
		cfg.Catalog.PageSize = 5
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Catalog.PageSize < 1 || c.Catalog.PageSize > 100 {
		return fmt.Errorf("catalog.page_size must be between 1 and 100, got %d", c.Catalog.PageSize)
	}
	if c.Telegram.PollTimeout < 0 {
		return fmt.Errorf("telegram.poll_timeout cannot be negative")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Telegram.Token == "" {
			return fmt.Errorf("telegram.token is required in production")
		}
		if c.Telegram.AdminChatID == 0 {
			return fmt.Errorf("telegram.admin_chat_id is required in production")
		}
		if c.WooCommerce.BaseURL == "" {
			return fmt.Errorf("woocommerce.base_url is required in production")
		}
		if !strings.HasPrefix(c.WooCommerce.BaseURL, "https://") {
			return fmt.Errorf("woocommerce.base_url must use https in production")
		}
		if c.WooCommerce.ConsumerKey == "" || c.WooCommerce.ConsumerSecret == "" {
			return fmt.Errorf("woocommerce credentials are required in production")
		}
	}

	return nil
}
