package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
)

const envPrefix = "QUIZGEN"

// Config is the effective configuration of a run.
type Config struct {
	LLM    LLMConfig    `mapstructure:"llm" yaml:"llm"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Store  StoreConfig  `mapstructure:"store" yaml:"store"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`

	file string
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider" yaml:"provider" validate:"oneof=openai anthropic gemini openrouter mock"`
	Model       string        `mapstructure:"model" yaml:"model,omitempty"`
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url,omitempty" validate:"omitempty,url"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key,omitempty"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens" validate:"gte=0"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
	Retry       RetryConfig   `mapstructure:"retry" yaml:"retry"`
	MockFile    string        `mapstructure:"mock_file" yaml:"mock_file,omitempty" validate:"omitempty,file"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts" validate:"gte=1,lte=10"`
	InitialWait time.Duration `mapstructure:"initial_wait" yaml:"initial_wait" validate:"gte=0"`
	MaxWait     time.Duration `mapstructure:"max_wait" yaml:"max_wait" validate:"gte=0"`
	Multiplier  float64       `mapstructure:"multiplier" yaml:"multiplier" validate:"gte=1"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr" yaml:"addr" validate:"required"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

type StoreConfig struct {
	// Path of the request-event database. Empty selects the default.
	Path     string `mapstructure:"path" yaml:"path,omitempty"`
	Disabled bool   `mapstructure:"disabled" yaml:"disabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. When empty, quizgen.yaml is looked
	// up in the working directory and then in the user config directory.
	File string

	// Flags, when set, override every other source for the keys in
	// FlagKeys whose flags were given on the command line.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"provider":  "llm.provider",
	"model":     "llm.model",
	"mock-file": "llm.mock_file",
	"log-level": "log.level",
	"log-file":  "log.file",
	"db":        "store.path",
	"no-log":    "store.disabled",
	"addr":      "server.addr",
}

// credentialEnv lists the conventional per-provider key variables used
// when llm.api_key is not set.
var credentialEnv = map[string]string{
	llm.ProviderOpenAI:     "OPENAI_API_KEY",
	llm.ProviderAnthropic:  "ANTHROPIC_API_KEY",
	llm.ProviderGemini:     "GEMINI_API_KEY",
	llm.ProviderOpenRouter: "OPENROUTER_API_KEY",
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.mock_file", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("store.path", "")
	v.SetDefault("store.disabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load resolves defaults, the config file, QUIZGEN_* variables and flags,
// in increasing order of precedence, and validates the result.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("quizgen")
		v.AddConfigPath(".")
		if dir, err := userConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for provider, env := range credentialEnv {
		if err := v.BindEnv("credentials."+provider, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.file = v.ConfigFileUsed()
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v.GetString("credentials." + cfg.LLM.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// File returns the config file that was read, or "" if none was found.
func (c *Config) File() string {
	return c.file
}

// ProviderConfig converts the settings into provider configuration. The
// configured API key, if any, is only a fallback for the credential given
// per request.
func (c *Config) ProviderConfig() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.Timeout = c.LLM.Timeout
	out.Retry = llm.RetryConfig{
		MaxAttempts: c.LLM.Retry.MaxAttempts,
		InitialWait: c.LLM.Retry.InitialWait,
		MaxWait:     c.LLM.Retry.MaxWait,
		Multiplier:  c.LLM.Retry.Multiplier,
	}
	out.Mock.ResponseFile = c.LLM.MockFile

	switch c.LLM.Provider {
	case llm.ProviderOpenAI:
		out.OpenAI.BaseURL = c.LLM.BaseURL
		if c.LLM.Model != "" {
			out.OpenAI.Model = c.LLM.Model
		}
	case llm.ProviderOpenRouter:
		out.OpenRouter.BaseURL = c.LLM.BaseURL
		if c.LLM.Model != "" {
			out.OpenRouter.Model = c.LLM.Model
		}
	case llm.ProviderAnthropic:
		if c.LLM.Model != "" {
			out.Anthropic.Model = c.LLM.Model
		}
	case llm.ProviderGemini:
		if c.LLM.Model != "" {
			out.Gemini.Model = c.LLM.Model
		}
	}
	return out.WithCredential(c.LLM.APIKey)
}

// QuizConfig returns the generation knobs.
func (c *Config) QuizConfig() quiz.Config {
	return quiz.Config{
		MaxTokens:   c.LLM.MaxTokens,
		Temperature: c.LLM.Temperature,
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	r := *c
	if r.LLM.APIKey != "" {
		r.LLM.APIKey = "********"
	}
	r.Server.CORSOrigins = append([]string(nil), c.Server.CORSOrigins...)
	return r
}

func userConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "quizgen"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quizgen"), nil
}

// DefaultLogFile is where the TUI writes logs when log.file is unset.
func DefaultLogFile() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "quizgen", "quizgen.log"), nil
}
