package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development" yaml:"env"`
		Port      int    `env:"APP_PORT" env-default:"8080" yaml:"port"`
		SentryUrl string `env:"SENTRY_URL" yaml:"sentry_url"`
		Timezone  string `env:"APP_TIMEZONE" env-default:"Asia/Riyadh" yaml:"timezone"`
	} `yaml:"app"`
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432" yaml:"port"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost" yaml:"host"`
		User    string `env:"POSTGRES_USER" yaml:"user"`
		Pass    string `env:"POSTGRES_PASS" yaml:"pass"`
		Name    string `env:"POSTGRES_NAME" yaml:"name"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable" yaml:"ssl_mode"`
	} `yaml:"postgres"`
	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN" yaml:"bot_token"`
		ChatID   int64  `env:"TELEGRAM_CHAT_ID" yaml:"chat_id"`
	} `yaml:"telegram"`
	Graph struct {
		BaseURL      string  `env:"GRAPH_BASE_URL" env-default:"https://graph.facebook.com/v19.0" yaml:"base_url"`
		PageID       string  `env:"GRAPH_PAGE_ID" yaml:"page_id"`
		PageName     string  `env:"GRAPH_PAGE_NAME" yaml:"page_name"`
		PageToken    string  `env:"GRAPH_PAGE_TOKEN" yaml:"page_token"`
		InstagramID  string  `env:"GRAPH_INSTAGRAM_ID" yaml:"instagram_id"`
		RequestsPerS float64 `env:"GRAPH_REQUESTS_PER_SECOND" env-default:"5" yaml:"requests_per_second"`
		Burst        int     `env:"GRAPH_BURST" env-default:"5" yaml:"burst"`
	} `yaml:"graph"`
	Gemini struct {
		APIKey  string `env:"GEMINI_API_KEY" yaml:"api_key"`
		Profile string `env:"GEMINI_PAGE_PROFILE" yaml:"page_profile"`
	} `yaml:"gemini"`
	Responder struct {
		Debounce          time.Duration `env:"RESPONDER_DEBOUNCE" env-default:"3s" yaml:"debounce"`
		SyncInterval      time.Duration `env:"RESPONDER_SYNC_INTERVAL" env-default:"1m" yaml:"sync_interval"`
		PrivateReplyDelay time.Duration `env:"RESPONDER_PRIVATE_REPLY_DELAY" env-default:"5s" yaml:"private_reply_delay"`
	} `yaml:"responder"`
	Scheduler struct {
		Workers int `env:"SCHEDULER_WORKERS" env-default:"4" yaml:"workers"`
	} `yaml:"scheduler"`
}

var (
	once sync.Once
	cfg  *Config
)

// New reads the configuration once. When CONFIG_PATH points to a YAML file it
// is read first and environment variables override it.
func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}

		var err error
		if path := os.Getenv("CONFIG_PATH"); path != "" {
			err = cleanenv.ReadConfig(path, cfg)
		} else {
			err = cleanenv.ReadEnv(cfg)
		}
		if err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

// Location resolves the page time zone, falling back to local time.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local, err
	}
	return loc, nil
}
