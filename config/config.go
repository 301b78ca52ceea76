package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string           `mapstructure:"environment"` // "dev" or "prod"
	Server      ServerConfig     `mapstructure:"server"`
	MetalPrice  MetalPriceConfig `mapstructure:"metalprice"`
	Poller      PollerConfig     `mapstructure:"poller"`
	Stream      StreamConfig     `mapstructure:"stream"`
	Relay       RelayConfig      `mapstructure:"relay"`
	Mail        MailConfig       `mapstructure:"mail"`
	Search      SearchConfig     `mapstructure:"search"`
	Site        SiteConfig       `mapstructure:"site"`
	RateLimit   RateLimitConfig  `mapstructure:"ratelimit"`
	Scheduler   SchedulerConfig  `mapstructure:"scheduler"`
	Log         LogConfig        `mapstructure:"log"`
	Postgres    PostgresConfig   `mapstructure:"postgres"`
	Watch       WatchConfig      `mapstructure:"watch"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	StaticDir       string        `mapstructure:"static_dir"`    // optional pre-built page bundle
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"` // CV upload limit
}

type MetalPriceConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Base     string        `mapstructure:"base"`     // quote currency, e.g. "USD"
	Currency string        `mapstructure:"currency"` // metal symbol, e.g. "XAU"
	Timeout  time.Duration `mapstructure:"timeout"`
}

type PollerConfig struct {
	Mode string `mapstructure:"mode"` // "seconds" or "hours"
}

type StreamConfig struct {
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Origins      []string      `mapstructure:"origins"` // allowed Origin headers, empty allows all
}

type RelayConfig struct {
	URL       string        `mapstructure:"url"`
	AccessKey string        `mapstructure:"access_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"` // recipient of CV submissions, defaults to From
}

type SearchConfig struct {
	SitemapFile string `mapstructure:"sitemap_file"` // optional, overrides the embedded site map
}

type SiteConfig struct {
	URL string `mapstructure:"url"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type SchedulerConfig struct {
	RetentionCron string        `mapstructure:"retention_cron"`
	Retention     time.Duration `mapstructure:"retention"`
	CleanupCron   string        `mapstructure:"cleanup_cron"`
}

type WatchConfig struct {
	ServerURL string        `mapstructure:"server_url"`
	Mode      string        `mapstructure:"mode"`
	Transport string        `mapstructure:"transport"` // "poll" (GET /api/gold) or "stream" (websocket)
	Timeout   time.Duration `mapstructure:"timeout"`
}

// Options defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() *Config {
	// .env is optional; real environment variables still win
	_ = godotenv.Load()

	ex, _ := os.Executable()
	dir := filepath.Join(filepath.Dir(ex), "../config")
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		dir = filepath.Join(pwd, "../../config")
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// LoadFrom reads config.yaml from dir, applies defaults and environment
// overrides, and resolves prod secrets from the parameter store.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	// Support environment variables with dot notation (e.g., METALPRICE_API_KEY)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Log.Environment == "" {
		cfg.Log.Environment = cfg.Environment
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.User
	}
	if cfg.Mail.To == "" {
		cfg.Mail.To = cfg.Mail.From
	}

	if cfg.Environment == "prod" {
		cfg.resolveSecrets(getParameterStoreValue)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "dev")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_upload_mb", 10)

	v.SetDefault("metalprice.base_url", "https://api.metalpriceapi.com")
	v.SetDefault("metalprice.api_key", "")
	v.SetDefault("metalprice.base", "USD")
	v.SetDefault("metalprice.currency", "XAU")
	v.SetDefault("metalprice.timeout", 5*time.Second)

	v.SetDefault("poller.mode", "seconds")
	v.SetDefault("stream.write_timeout", 5*time.Second)

	v.SetDefault("relay.url", "https://api.web3forms.com/submit")
	v.SetDefault("relay.access_key", "")
	v.SetDefault("relay.timeout", 10*time.Second)

	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.user", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")

	v.SetDefault("search.sitemap_file", "")
	v.SetDefault("server.static_dir", "")

	v.SetDefault("site.url", "https://rizziinternational.com")

	v.SetDefault("ratelimit.requests_per_second", 0.2)
	v.SetDefault("ratelimit.burst", 3)

	v.SetDefault("scheduler.retention_cron", "0 0 0 * * *")
	v.SetDefault("scheduler.retention", 30*24*time.Hour)
	v.SetDefault("scheduler.cleanup_cron", "0 */10 * * * *")

	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "goldsite")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")

	v.SetDefault("watch.server_url", "http://localhost:8080")
	v.SetDefault("watch.mode", "seconds")
	v.SetDefault("watch.transport", "poll")
	v.SetDefault("watch.timeout", 5*time.Second)
}
