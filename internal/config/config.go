package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	API struct {
		BaseURL string        `yaml:"base_url" env:"LAWCLIENT_API_BASE_URL" env-default:"http://localhost:8080"`
		Timeout time.Duration `yaml:"timeout" env:"LAWCLIENT_API_TIMEOUT" env-default:"15s"`
	} `yaml:"api"`

	Push struct {
		ControlPath    string        `yaml:"control_path" env:"LAWCLIENT_PUSH_CONTROL_PATH" env-default:"/ws"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay" env:"LAWCLIENT_PUSH_RECONNECT_DELAY" env-default:"5s"`
		Heartbeat      time.Duration `yaml:"heartbeat" env:"LAWCLIENT_PUSH_HEARTBEAT" env-default:"30s"`
	} `yaml:"push"`

	Storage struct {
		Path string `yaml:"path" env:"LAWCLIENT_CACHE_PATH"`
	} `yaml:"storage"`

	Log struct {
		Level string `yaml:"level" env:"LAWCLIENT_LOG_LEVEL" env-default:"info"`
	} `yaml:"log"`
}

// Load reads an optional YAML file, then environment overrides. An empty path
// means environment and defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment config: %w", err)
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultCachePath()
	}

	return cfg, nil
}

// PushEndpoint derives the push channel URL from the API origin: same host,
// ws(s) scheme, fixed control path. The control path is well known and never
// inherited from any request.
func (c *Config) PushEndpoint() (string, error) {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid API base URL %q: %w", c.API.BaseURL, err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported API scheme %q", u.Scheme)
	}

	u.Path = c.Push.ControlPath
	u.RawQuery = ""
	return u.String(), nil
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "lawclient.db"
	}
	return filepath.Join(home, ".lawclient", "cache.db")
}
