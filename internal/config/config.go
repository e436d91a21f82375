package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"SignalRelay/internal/classifier"
	"SignalRelay/internal/plan"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken        string  `yaml:"bot_token"`
		BroadcastChatID int64   `yaml:"broadcast_chat_id"`
		OperatorIDs     []int64 `yaml:"operator_ids"`
	} `yaml:"telegram"`
	Quote struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"quote"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Signature string           `yaml:"signature"`
	Rules     classifier.Rules `yaml:"rules"`
	Plan      plan.Settings    `yaml:"plan"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine: defaults plus the environment must
// be enough to run.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Rules = classifier.DefaultRules()
	cfg.Plan = plan.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TOKEN"); v != "" && cfg.Telegram.BotToken == "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("BROADCAST_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse BROADCAST_CHAT_ID: %w", err)
		}
		cfg.Telegram.BroadcastChatID = id
	}
	if v := os.Getenv("OPERATOR_IDS"); v != "" {
		ids, err := parseIDList(v)
		if err != nil {
			return nil, fmt.Errorf("parse OPERATOR_IDS: %w", err)
		}
		cfg.Telegram.OperatorIDs = ids
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Quote.TimeoutSeconds == 0 {
		cfg.Quote.TimeoutSeconds = 10
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 20 * * *"
	}
	if cfg.Signature == "" {
		cfg.Signature = "For Premium contact @shsAdmin"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Quote.TimeoutSeconds < 0 {
		return fmt.Errorf("quote.timeout_seconds must not be negative")
	}
	return nil
}

func parseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
