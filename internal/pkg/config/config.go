package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Betclic  BetclicConfig  `yaml:"betclic"`
	Browser  BrowserConfig  `yaml:"browser"`
	LLM      LLMConfig      `yaml:"llm"`
	Audit    AuditConfig    `yaml:"audit"`
	Postgres PostgresConfig `yaml:"postgres"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type BetclicConfig struct {
	BaseURL     string        `yaml:"base_url"`
	ListingPath string        `yaml:"listing_path"` // live football listing, e.g. /futebol-s1
	Timeout     time.Duration `yaml:"timeout"`
	BatchDelay  time.Duration `yaml:"batch_delay"` // mandatory pause between per-match requests
	UserAgents  []string      `yaml:"user_agents"` // rotated per request to look like distinct browsers
}

type BrowserConfig struct {
	Headless        bool          `yaml:"headless"`
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`
	SettleDelay     time.Duration `yaml:"settle_delay"`    // wait after page load before interacting
	ConsentTimeout  time.Duration `yaml:"consent_timeout"` // bounded wait for the cookie dialog
	StatsTimeout    time.Duration `yaml:"stats_timeout"`   // bounded wait for the statistics view
	ModalDelay      time.Duration `yaml:"modal_delay"`     // wait for the stats overlay to render
}

type LLMConfig struct {
	APIKey    string `yaml:"api_key"` // usually via ANTHROPIC_API_KEY
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
}

type AuditConfig struct {
	StatsLogPath string `yaml:"stats_log_path"` // append-only JSONL of normalized stats
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"` // empty disables snapshot storage
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"` // empty disables notifications
	ChatID   int64  `yaml:"chat_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional JSON log sink next to stdout
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()
	return &config, nil
}

// applyEnv lets secrets come from the environment (loaded from .env by the
// service entrypoint) instead of the committed config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Postgres.DSN = v
	}
}

func (c *Config) applyDefaults() {
	if c.Betclic.BaseURL == "" {
		c.Betclic.BaseURL = "https://www.betclic.pt"
	}
	if c.Betclic.ListingPath == "" {
		c.Betclic.ListingPath = "/futebol-s1"
	}
	if c.Betclic.Timeout <= 0 {
		c.Betclic.Timeout = 30 * time.Second
	}
	if c.Betclic.BatchDelay <= 0 {
		c.Betclic.BatchDelay = 5 * time.Second
	}
	if c.Browser.NavigateTimeout <= 0 {
		c.Browser.NavigateTimeout = 30 * time.Second
	}
	if c.Browser.SettleDelay <= 0 {
		c.Browser.SettleDelay = 3 * time.Second
	}
	if c.Browser.ConsentTimeout <= 0 {
		c.Browser.ConsentTimeout = 10 * time.Second
	}
	if c.Browser.StatsTimeout <= 0 {
		c.Browser.StatsTimeout = 10 * time.Second
	}
	if c.Browser.ModalDelay <= 0 {
		c.Browser.ModalDelay = 5 * time.Second
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "claude-haiku-4-5-20251001"
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.Audit.StatsLogPath == "" {
		c.Audit.StatsLogPath = "match_stats.jsonl"
	}
}
