package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "tagdiff"
	configFileName = "config.json"

	defaultTimeoutSeconds = 60
	defaultServerAddr     = ":8080"
)

var validate = validator.New()

type ComparatorConfig struct {
	URL            string   `json:"url" yaml:"url" validate:"omitempty,url"`
	Command        []string `json:"command" yaml:"command" validate:"dive,required"`
	TimeoutSeconds int      `json:"timeout_seconds" yaml:"timeout_seconds" validate:"gte=0,lte=3600"`
}

func (c ComparatorConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" validate:"required,hostname_port"`
}

type LogConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Dir     string `json:"dir" yaml:"dir"`
	Level   string `json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type UIConfig struct {
	RegexDefault bool `json:"regex_default" yaml:"regex_default"`
}

type AppConfig struct {
	Comparator ComparatorConfig `json:"comparator" yaml:"comparator"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Log        LogConfig        `json:"log" yaml:"log"`
	UI         UIConfig         `json:"ui" yaml:"ui"`
}

func Default() AppConfig {
	return AppConfig{
		Comparator: ComparatorConfig{TimeoutSeconds: defaultTimeoutSeconds},
		Server:     ServerConfig{Addr: defaultServerAddr},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads the config from its default location. A missing file yields the
// defaults.
func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

func LoadFromPath(path string) (AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return AppConfig{}, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Comparator.URL = strings.TrimSpace(c.Comparator.URL)
	cmd := make([]string, 0, len(c.Comparator.Command))
	for _, arg := range c.Comparator.Command {
		if arg = strings.TrimSpace(arg); arg != "" {
			cmd = append(cmd, arg)
		}
	}
	c.Comparator.Command = cmd
	if c.Comparator.TimeoutSeconds == 0 {
		c.Comparator.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	if c.Server.Addr == "" {
		c.Server.Addr = defaultServerAddr
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

func (c AppConfig) Validate() error {
	if c.Comparator.URL != "" && len(c.Comparator.Command) > 0 {
		return errors.New("comparator: set either url or command, not both")
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config value for %s: failed %q check", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultPath prefers config.yaml when it exists next to config.json.
func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, configDirName)
	for _, name := range []string{"config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return filepath.Join(dir, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
