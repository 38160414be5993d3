// Package config loads sitegen configuration from an optional YAML file,
// .env files and environment variables, in increasing order of precedence.
//
// Environment overrides are declared with the `env` struct tag:
//
//	type LLMConfig struct {
//	    Model string `yaml:"model" env:"SITEGEN_MODEL"`
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dshills/sitegen/internal/logger"
)

// DefaultModel is used when neither the config file nor SITEGEN_MODEL set one.
const DefaultModel = "anthropic:claude-sonnet-4-6"

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging logger.Config `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SITEGEN_PORT"  yaml:"port"`
	Debug           bool          `env:"SITEGEN_DEBUG" yaml:"debug"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LLMConfig selects and tunes the completion service.
type LLMConfig struct {
	// Model is "provider:model", e.g. "openai:gpt-4o".
	Model       string        `env:"SITEGEN_MODEL"       yaml:"model"`
	BaseURL     string        `env:"SITEGEN_LLM_BASE_URL" yaml:"base_url"`
	CallTimeout time.Duration `env:"SITEGEN_LLM_TIMEOUT" yaml:"call_timeout"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
}

// CacheSpec sizes one cache instance.
type CacheSpec struct {
	MaxSize int           `yaml:"max_size"`
	TTL     time.Duration `yaml:"ttl"`
	// CostPerCall is the estimated price of the model call a hit avoids.
	CostPerCall float64 `yaml:"cost_per_call"`
}

// CacheConfig holds the three pipeline caches.
type CacheConfig struct {
	Analysis CacheSpec `yaml:"analysis"`
	Content  CacheSpec `yaml:"content"`
	Results  CacheSpec `yaml:"results"`
}

// SetDefaults applies defaults to every unset field.
func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 3 * time.Minute
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.CallTimeout == 0 {
		c.LLM.CallTimeout = 45 * time.Second
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4096
	}
	// Analyses are expensive and reusable across template/tone tweaks, so
	// they get the widest cache.
	c.Cache.Analysis.setDefaults(500, 2*time.Hour, 0.004)
	c.Cache.Content.setDefaults(200, 30*time.Minute, 0.012)
	c.Cache.Results.setDefaults(100, time.Hour, 0.016)
	c.Logging.SetDefaults()
}

func (s *CacheSpec) setDefaults(size int, ttl time.Duration, cost float64) {
	if s.MaxSize == 0 {
		s.MaxSize = size
	}
	if s.TTL == 0 {
		s.TTL = ttl
	}
	if s.CostPerCall == 0 {
		s.CostPerCall = cost
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !strings.Contains(c.LLM.Model, ":") {
		return fmt.Errorf("llm.model must be provider:model, got %q", c.LLM.Model)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0.0 and 2.0, got %g", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0, got %d", c.LLM.MaxTokens)
	}
	for name, s := range map[string]CacheSpec{
		"analysis": c.Cache.Analysis,
		"content":  c.Cache.Content,
		"results":  c.Cache.Results,
	} {
		if s.MaxSize < 1 {
			return fmt.Errorf("cache.%s.max_size must be > 0, got %d", name, s.MaxSize)
		}
		if s.TTL <= 0 {
			return fmt.Errorf("cache.%s.ttl must be > 0, got %s", name, s.TTL)
		}
	}
	return nil
}

// Load reads path (which may be empty or missing), applies .env files and
// environment overrides, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(&cfg)
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// loadEnvFiles loads ENV_FILE if set, otherwise .env.local then .env.
// godotenv never overrides variables already present in the environment.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func applyEnvOverrides(cfg any) {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	applyEnvToStruct(v)
}

func applyEnvToStruct(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			applyEnvToStruct(field)
			continue
		}
		tag := t.Field(i).Tag.Get("env")
		if tag == "" {
			continue
		}
		if val := os.Getenv(tag); val != "" {
			setFieldFromString(field, val)
		}
	}
}

func setFieldFromString(field reflect.Value, val string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			if d, err := time.ParseDuration(val); err == nil {
				field.SetInt(int64(d))
			}
			return
		}
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Float64:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			field.SetFloat(f)
		}
	case reflect.Bool:
		s := strings.ToLower(strings.TrimSpace(val))
		field.SetBool(s == "true" || s == "1" || s == "yes")
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(val, ",")
			for i, p := range parts {
				parts[i] = strings.TrimSpace(p)
			}
			field.Set(reflect.ValueOf(parts))
		}
	}
}
