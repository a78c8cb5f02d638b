package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ncobase/facet/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the top-level application configuration.
type Config struct {
	AppName     string  `json:"app_name" yaml:"app_name"`
	Environment string  `json:"environment" yaml:"environment"`
	RunMode     string  `json:"run_mode" yaml:"run_mode" validate:"omitempty,oneof=debug release test"`
	Logger      *Logger `json:"logger" yaml:"logger"`
	Search      *Search `json:"search" yaml:"search"`
}

var (
	config *Config
	once   sync.Once
	mu     sync.RWMutex
	v      *viper.Viper
)

// Init initializes the configuration singleton, optionally from an
// explicit file path. Subsequent calls return the already loaded value.
func Init(configPath ...string) (*Config, error) {
	var err error
	once.Do(func() {
		config, err = LoadConfig(configPath...)
	})
	if err != nil {
		return nil, err
	}
	mu.RLock()
	defer mu.RUnlock()
	return config, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return config
}

// LoadConfig reads the configuration from file and environment.
// A missing config file is not an error, defaults and FACET_*
// environment variables still apply.
func LoadConfig(configPath ...string) (*Config, error) {
	v = viper.New()
	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/facet")
		v.AddConfigPath("$HOME/.facet")
		v.AddConfigPath(".")
		if exe, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(exe))
		}
	}
	v.SetEnvPrefix("FACET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := loadFromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:     getStringDefault(v, "app_name", "facet"),
		Environment: v.GetString("environment"),
		RunMode:     getStringDefault(v, "run_mode", "release"),
		Logger:      getLoggerConfig(v),
		Search:      getSearchConfig(v),
	}
}

// Validate reports configuration mistakes that must fail startup.
func (c *Config) Validate() error {
	if fieldErrors := validator.ValidateStruct(c); len(fieldErrors) > 0 {
		for field, msg := range fieldErrors {
			return fmt.Errorf("invalid config: %s %s", field, msg)
		}
	}
	if c.Search != nil {
		if err := c.Search.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Reload re-reads the configuration from the same sources.
func Reload() error {
	mu.Lock()
	defer mu.Unlock()
	if v == nil {
		return errors.New("config not initialized")
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	cfg := loadFromViper(v)
	if err := cfg.Validate(); err != nil {
		return err
	}
	config = cfg
	return nil
}

// Watch monitors the config file and invokes callback after each
// successful reload.
func Watch(callback func(*Config)) {
	if v == nil {
		return
	}
	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := Reload(); err != nil {
			return
		}
		callback(GetConfig())
	})
}

func getStringDefault(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getIntDefault(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}

func getBoolDefault(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
