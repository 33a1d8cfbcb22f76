package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "FRAME_SCANNER_CONFIG"
	databasePathEnv   = "FRAME_SCANNER_DB"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database      DatabaseConfig     `yaml:"database"`
	Poll          PollConfig         `yaml:"poll"`
	Engine        EngineConfig       `yaml:"engine"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
	Sites         []SiteConfig       `yaml:"sites"`
}

// DatabaseConfig locates the SQLite state file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// PollConfig defines how often sources are scanned.
type PollConfig struct {
	IntervalSeconds int `yaml:"intervalSeconds"`
}

// Interval resolves the poll interval as a duration.
func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

// EngineConfig calibrates the excitation engine. None of the defaults is
// load-bearing beyond tuning.
type EngineConfig struct {
	DecayRate           float64 `yaml:"decayRate"`       // per-day, in (0, 1)
	CooldownSeconds     int     `yaml:"cooldownSeconds"` // suppression window length
	ExcitationThreshold float64 `yaml:"excitationThreshold"`
	WeightClamp         float64 `yaml:"weightClamp"`
	CooldownDamping     float64 `yaml:"cooldownDamping"`
}

// CooldownDuration resolves the suppression window as a duration.
func (e EngineConfig) CooldownDuration() time.Duration {
	return time.Duration(e.CooldownSeconds) * time.Second
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SiteConfig describes a single marketplace site with its scraper strategy.
type SiteConfig struct {
	Name    string `yaml:"name"`
	Scraper string `yaml:"scraper"`
	URL     string `yaml:"url"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Poll.IntervalSeconds > 0 {
		base.Poll = override.Poll
	}

	if override.Engine.DecayRate > 0 {
		base.Engine.DecayRate = override.Engine.DecayRate
	}
	if override.Engine.CooldownSeconds > 0 {
		base.Engine.CooldownSeconds = override.Engine.CooldownSeconds
	}
	if override.Engine.ExcitationThreshold > 0 {
		base.Engine.ExcitationThreshold = override.Engine.ExcitationThreshold
	}
	if override.Engine.WeightClamp > 0 {
		base.Engine.WeightClamp = override.Engine.WeightClamp
	}
	if override.Engine.CooldownDamping > 0 {
		base.Engine.CooldownDamping = override.Engine.CooldownDamping
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Path: "field.db"},
		Poll:     PollConfig{IntervalSeconds: 300},
		Engine: EngineConfig{
			DecayRate:           0.05,
			CooldownSeconds:     3600,
			ExcitationThreshold: 0.7,
			WeightClamp:         0.35,
			CooldownDamping:     0.5,
		},
		Logging: LoggingConfig{Level: "info"},
		Sites: []SiteConfig{
			{
				Name:    "gumtree",
				Scraper: "gumtree",
				URL:     "https://www.gumtree.com.au/s-all-results.html?sort=datedesc",
			},
			{
				Name:    "fb",
				Scraper: "marketplace",
				URL:     "https://www.facebook.com/marketplace/",
			},
		},
	}
}
