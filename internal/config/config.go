// Package config loads server settings. Built-in defaults are overridden by an
// optional YAML/JSON file, and the environment (including .env) overrides both.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/RichardoC/support-chat/internal/llm"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var ErrMissingAPIKey = errors.New("GROQ_API_KEY is not set")

type Config struct {
	HTTPPort        string        `mapstructure:"http_port"`
	GroqAPIKey      string        `mapstructure:"groq_api_key"`
	ProviderBaseURL string        `mapstructure:"provider_base_url"`
	Model           string        `mapstructure:"model"`
	Preamble        string        `mapstructure:"preamble"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	LogLevel        string        `mapstructure:"log_level"`
}

func (c Config) Validate() error {
	if c.GroqAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.HTTPPort == "" {
		return errors.New("http_port must not be empty")
	}
	return nil
}

// LLM returns the provider settings carried by c.
func (c Config) LLM() llm.Config {
	return llm.Config{
		BaseURL:  c.ProviderBaseURL,
		APIKey:   c.GroqAPIKey,
		Model:    c.Model,
		Preamble: c.Preamble,
		Timeout:  c.ProviderTimeout,
	}
}

var defaults = map[string]any{
	"http_port":         "8080",
	"groq_api_key":      "",
	"provider_base_url": llm.DefaultBaseURL,
	"model":             llm.DefaultModel,
	"preamble":          llm.DefaultPreamble,
	"provider_timeout":  "60s",
	"allowed_origins":   []string{"*"},
	"log_level":         "info",
}

type Loader struct {
	v *viper.Viper

	mu      sync.RWMutex
	current Config

	// DotEnv is the .env file that was loaded, if any.
	DotEnv string
}

// Load reads configuration. path may be empty, in which case only defaults and
// the environment are consulted.
func Load(path string) (*Loader, error) {
	l := &Loader{v: viper.New()}

	if err := godotenv.Load(); err == nil {
		l.DotEnv = ".env"
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	for k, val := range defaults {
		l.v.SetDefault(k, val)
	}
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

func (l *Loader) decode() (Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) Get() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// File returns the config file in use, or "".
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch applies the config file whenever it changes and calls onChange with
// the previous and new values. Changes that fail to parse or validate are
// logged and ignored. It does nothing when no config file is in use.
func (l *Loader) Watch(logger *zap.Logger, onChange func(old, new Config)) {
	if l.File() == "" {
		return
	}

	var (
		mu         sync.Mutex
		timer      *time.Timer
		burstStart Config
	)
	// viper re-reads the file on its watcher goroutine before calling this, so
	// every viper access stays on that goroutine.
	l.v.OnConfigChange(func(e fsnotify.Event) {
		logger.Debug("Config file event", zap.String("file", e.Name), zap.Stringer("op", e.Op))

		old, cfg, err := l.apply()
		if err != nil {
			logger.Warn("Ignoring config change", zap.Error(err))
			return
		}
		if onChange == nil {
			return
		}

		// Coalesce the burst of events a single save produces.
		mu.Lock()
		defer mu.Unlock()
		if timer != nil && timer.Stop() {
			old = burstStart
		}
		burstStart = old
		timer = time.AfterFunc(reloadDebounce, func() {
			if !reflect.DeepEqual(old, cfg) {
				onChange(old, cfg)
			}
		})
	})
	l.v.WatchConfig()
}

const reloadDebounce = 100 * time.Millisecond

// reload re-reads the config file and applies it. It must not run while Watch
// is active.
func (l *Loader) reload(onChange func(old, new Config)) error {
	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to re-read config file: %w", err)
	}
	old, cfg, err := l.apply()
	if err != nil {
		return err
	}
	if onChange != nil {
		onChange(old, cfg)
	}
	return nil
}

// apply decodes what viper currently holds and, if it validates, makes it the
// current config.
func (l *Loader) apply() (old, cfg Config, err error) {
	cfg, err = l.decode()
	if err != nil {
		return Config{}, Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, Config{}, err
	}

	l.mu.Lock()
	old = l.current
	l.current = cfg
	l.mu.Unlock()
	return old, cfg, nil
}
