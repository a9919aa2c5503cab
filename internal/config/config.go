package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

// searchPath is looked up under the XDG config directories when no explicit file is given.
const searchPath = "tictactoe/config.yml"

type Config struct {
	LogLevel string  `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	HTTP     HTTP    `yaml:"http"`
	Session  Session `yaml:"session"`
}

type HTTP struct {
	Addr      string        `yaml:"addr" env:"TTT_HTTP_ADDR" env-default:":8080"`
	Heartbeat time.Duration `yaml:"heartbeat" env:"TTT_HTTP_HEARTBEAT" env-default:"15s"`
}

type Session struct {
	CookieName    string        `yaml:"cookie-name" env:"TTT_SESSION_COOKIE" env-default:"ttt_session"`
	TTL           time.Duration `yaml:"ttl" env:"TTT_SESSION_TTL" env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep-interval" env:"TTT_SESSION_SWEEP_INTERVAL" env-default:"1m"`
}

// Load reads path when set, otherwise the first config.yml found in the XDG
// config directories. Without a file, only environment variables and defaults apply.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		found, err := xdg.SearchConfigFile(searchPath)
		if err == nil {
			path = found
		}
	}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
		return config, config.Validate()
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}

	return config, config.Validate()
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

var (
	ErrEmptyAddr       = errors.New("http addr is empty")
	ErrEmptyCookieName = errors.New("session cookie name is empty")
	ErrNegativeTTL     = errors.New("session ttl is negative")
)

func (that *Config) Validate() error {
	switch {
	case that.HTTP.Addr == "":
		return ErrEmptyAddr
	case that.Session.CookieName == "":
		return ErrEmptyCookieName
	case that.Session.TTL < 0:
		return ErrNegativeTTL
	}
	return nil
}
