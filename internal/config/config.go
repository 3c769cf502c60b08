package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		Debug    bool   `yaml:"debug"`
	} `yaml:"telegram"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Redis struct {
		Enabled          bool   `yaml:"enabled"`
		Address          string `yaml:"address"`
		Password         string `yaml:"password"`
		DB               int    `yaml:"db"`
		FamilyTTLSeconds int    `yaml:"family_ttl_seconds"`
	} `yaml:"redis"`

	Reminders struct {
		ScanIntervalMinutes  int    `yaml:"scan_interval_minutes"`
		DrainIntervalSeconds int    `yaml:"drain_interval_seconds"`
		CooldownMinutes      int    `yaml:"cooldown_minutes"`
		RetentionDays        int    `yaml:"retention_days"`
		Timezone             string `yaml:"timezone"`
		SendRatePerSecond    int    `yaml:"send_rate_per_second"`
	} `yaml:"reminders"`

	Export struct {
		Dir          string `yaml:"dir"`
		SheetsID     string `yaml:"sheets_id"`
		Credentials  string `yaml:"credentials"`
		HistoryLimit int    `yaml:"history_limit"`
	} `yaml:"export"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Admins []int64 `yaml:"admins"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/babycarebot.db"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ScanInterval() time.Duration {
	if c.Reminders.ScanIntervalMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Reminders.ScanIntervalMinutes) * time.Minute
}

func (c *Config) DrainInterval() time.Duration {
	if c.Reminders.DrainIntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Reminders.DrainIntervalSeconds) * time.Second
}

func (c *Config) CooldownWindow() time.Duration {
	if c.Reminders.CooldownMinutes <= 0 {
		return 600 * time.Minute
	}
	return time.Duration(c.Reminders.CooldownMinutes) * time.Minute
}

func (c *Config) LedgerRetention() time.Duration {
	if c.Reminders.RetentionDays <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.Reminders.RetentionDays) * 24 * time.Hour
}

func (c *Config) FamilyCacheTTL() time.Duration {
	if c.Redis.FamilyTTLSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.Redis.FamilyTTLSeconds) * time.Second
}

// Location resolves the configured display timezone, falling back to
// Asia/Bangkok and then UTC.
func (c *Config) Location() *time.Location {
	name := c.Reminders.Timezone
	if name == "" {
		name = "Asia/Bangkok"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsAdmin reports whether the user may run maintenance commands.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Admins {
		if id == userID {
			return true
		}
	}
	return false
}
