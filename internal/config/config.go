package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"aoc-inputs/internal/models"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "aoc-inputs"

type Config struct {
	StartYear   int    `yaml:"start_year"`
	InputDir    string `yaml:"input_dir"`
	BaseURL     string `yaml:"base_url"`
	HTTPTimeout string `yaml:"http_timeout"`
	UserAgent   string `yaml:"user_agent"`
	History     bool   `yaml:"history"`
}

// Env holds the secrets and overrides that only come from the environment.
type Env struct {
	Session        string
	InputDir       string
	TelegramToken  string
	TelegramChatID string
}

func LoadEnv() Env {
	return Env{
		Session:        os.Getenv("AOC_SESSION"),
		InputDir:       os.Getenv("AOC_INPUT_DIR"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
	}
}

func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Apply overlays environment overrides onto the file config.
func (c *Config) Apply(env Env) {
	if env.InputDir != "" {
		c.InputDir = env.InputDir
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.DataHome, appName, "history.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the default location). Keys missing
// from the file keep their default values. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.StartYear < models.FirstYear {
		return fmt.Errorf("start_year %d is before the first event (%d)", cfg.StartYear, models.FirstYear)
	}
	if cfg.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.HTTPTimeout != "" {
		if _, err := time.ParseDuration(cfg.HTTPTimeout); err != nil {
			return fmt.Errorf("http_timeout: %w", err)
		}
	}
	return nil
}
