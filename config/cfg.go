package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	httpapi "github.com/jekabolt/store-console/internal/api/http"
	"github.com/jekabolt/store-console/internal/cache"
	"github.com/jekabolt/store-console/internal/csvexport"
	"github.com/jekabolt/store-console/internal/format"
	"github.com/jekabolt/store-console/internal/refresh"
	"github.com/jekabolt/store-console/internal/storeapi"
	"github.com/jekabolt/store-console/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DashboardConfig tunes the analytics view.
type DashboardConfig struct {
	// DebounceDelay is the pause after a filter edit before it is applied.
	DebounceDelay time.Duration `mapstructure:"debounce_delay"`
}

// Config represents the global configuration of the console.
type Config struct {
	Logger     log.Config       `mapstructure:"logger"`
	API        storeapi.Config  `mapstructure:"api"`
	HTTP       httpapi.Config   `mapstructure:"http"`
	Categories cache.Config     `mapstructure:"categories"`
	Export     csvexport.Config `mapstructure:"export"`
	Display    format.Config    `mapstructure:"display"`
	Dashboard  DashboardConfig  `mapstructure:"dashboard"`
	Refresh    refresh.Config   `mapstructure:"refresh"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values, and a .env
// file in the working directory is read first when present.
// Nested config keys use double underscore, e.g., API__BASE_URL for api.base_url
func LoadConfig(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %v", err)
	}

	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	setDefaults()
	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/store-console")
		viper.AddConfigPath("/etc/store-console")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if port, err := strconv.Atoi(c.HTTP.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be a port number, got %q", c.HTTP.Port))
	}
	if c.HTTP.RateLimit.Max < 0 || c.HTTP.RateLimit.Window < 0 {
		errs = append(errs, errors.New("http.rate_limit must not be negative"))
	}
	if c.Categories.TTL <= 0 {
		errs = append(errs, errors.New("categories.ttl must be positive"))
	}
	if c.Dashboard.DebounceDelay < 0 {
		errs = append(errs, errors.New("dashboard.debounce_delay must not be negative"))
	}
	return errors.Join(errs...)
}

func setDefaults() {
	viper.SetDefault("logger.level", 0)
	viper.SetDefault("api.base_url", storeapi.DefaultBaseURL)
	viper.SetDefault("api.timeout", 10*time.Second)
	viper.SetDefault("http.port", "8090")
	viper.SetDefault("http.address", "127.0.0.1")
	viper.SetDefault("http.allowed_origins", []string{"http://localhost:5173"})
	viper.SetDefault("http.rate_limit.window", time.Minute)
	viper.SetDefault("http.rate_limit.max", 60)
	viper.SetDefault("categories.ttl", cache.DefaultConfig().TTL)
	viper.SetDefault("categories.retries", cache.DefaultConfig().Retries)
	viper.SetDefault("categories.retry_interval", cache.DefaultConfig().RetryInterval)
	viper.SetDefault("export.dir", ".")
	viper.SetDefault("export.prefix", "sales-performance")
	viper.SetDefault("display.locale", "pt-BR")
	viper.SetDefault("display.currency", "BRL")
	viper.SetDefault("dashboard.debounce_delay", 400*time.Millisecond)
	viper.SetDefault("refresh.worker_interval", refresh.DefaultConfig().WorkerInterval)
	viper.SetDefault("refresh.dashboard", false)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (API__BASE_URL) and flat keys (API_URL)
func bindEnvVars() {
	// Store API
	viper.BindEnv("api.base_url", "API_URL", "STORE_API_URL")
	viper.BindEnv("api.timeout", "API_TIMEOUT")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	viper.BindEnv("http.rate_limit.window", "HTTP_RATE_LIMIT_WINDOW")
	viper.BindEnv("http.rate_limit.max", "HTTP_RATE_LIMIT_MAX")

	// Categories
	viper.BindEnv("categories.ttl", "CATEGORIES_TTL")
	viper.BindEnv("categories.retries", "CATEGORIES_RETRIES")
	viper.BindEnv("categories.retry_interval", "CATEGORIES_RETRY_INTERVAL")

	// Export
	viper.BindEnv("export.dir", "EXPORT_DIR")
	viper.BindEnv("export.prefix", "EXPORT_PREFIX")

	// Display
	viper.BindEnv("display.locale", "DISPLAY_LOCALE")
	viper.BindEnv("display.currency", "DISPLAY_CURRENCY")

	// Dashboard
	viper.BindEnv("dashboard.debounce_delay", "DASHBOARD_DEBOUNCE_DELAY")

	// Refresh worker
	viper.BindEnv("refresh.worker_interval", "REFRESH_WORKER_INTERVAL")
	viper.BindEnv("refresh.dashboard", "REFRESH_DASHBOARD")
}
