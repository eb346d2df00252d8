// Package config loads tada's settings: built-in defaults, then tada.yml,
// then the optional tada.local.yml overlay, then TADA_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gookit/config/v2"
	"github.com/gookit/config/v2/yaml"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "tada.yml"

// Config is the resolved application configuration.
type Config struct {
	TodosURL   string `config:"todos_url"`
	UsersURL   string `config:"users_url"`
	LogLevel   string `config:"log_level"`
	LogFile    string `config:"log_file"`
	PrefsPath  string `config:"prefs_path"`
	MaxVisible int    `config:"max_visible"`
}

func defaults() map[string]any {
	return map[string]any{
		"todos_url":   "http://localhost:8080/todo",
		"users_url":   "http://localhost:8080/users",
		"log_level":   "info",
		"log_file":    "",
		"prefs_path":  "",
		"max_visible": 5,
	}
}

// Load resolves the configuration. An explicit path must exist; without one
// DefaultFile is used if present.
func Load(path string) (*Config, error) {
	c := config.New("tada")
	c.WithOptions(func(opt *config.Options) {
		opt.ParseEnv = true
		opt.DecoderConfig.TagName = "config"
	})
	c.AddDriver(yaml.Driver)

	if err := c.LoadData(defaults()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := c.LoadFiles(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		path = DefaultFile
		if err := c.LoadExists(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := c.LoadExists(localOverlay(path)); err != nil {
		return nil, fmt.Errorf("load overlay: %w", err)
	}

	var cfg Config
	if err := c.BindStruct("", &cfg); err != nil {
		return nil, fmt.Errorf("bind config: %w", err)
	}
	if err := loadFromEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func localOverlay(path string) string {
	for _, ext := range []string{".yml", ".yaml"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext) + ".local" + ext
		}
	}
	return path + ".local"
}

func loadFromEnv(cfg *Config) error {
	str := map[string]*string{
		"TADA_TODOS_URL":  &cfg.TodosURL,
		"TADA_USERS_URL":  &cfg.UsersURL,
		"TADA_LOG_LEVEL":  &cfg.LogLevel,
		"TADA_LOG_FILE":   &cfg.LogFile,
		"TADA_PREFS_PATH": &cfg.PrefsPath,
	}
	for env, dst := range str {
		if v, ok := os.LookupEnv(env); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	if v, ok := os.LookupEnv("TADA_MAX_VISIBLE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TADA_MAX_VISIBLE: %w", err)
		}
		cfg.MaxVisible = n
	}
	return nil
}

// Validate checks the collection URLs and the pagination window.
func (c *Config) Validate() error {
	var errList []error
	for name, raw := range map[string]string{"todos_url": c.TodosURL, "users_url": c.UsersURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errList = append(errList, fmt.Errorf("%s: %q is not an absolute url", name, raw))
		}
	}
	if c.MaxVisible < 3 {
		errList = append(errList, fmt.Errorf("max_visible: must be at least 3, got %d", c.MaxVisible))
	}
	return errors.Join(errList...)
}
