package docxpatch

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config contains the configuration options for labeling documents.
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// Provider selects the suggestion backend (openai, anthropic)
	Provider string
	// Model is the chat model asked for suggestions
	Model string
	// BaseURL overrides the API endpoint of the model provider
	BaseURL string
	// APIKey is used as-is when set
	APIKey string
	// APIKeyEnv names the environment variable holding the API key when APIKey is empty
	APIKeyEnv string
	// Temperature is the sampling temperature of the model
	Temperature float64
	// MaxOutputTokens limits the length of the model reply. 0 means no limit.
	MaxOutputTokens int
	// MaxInputTokens is the largest estimated prompt size sent to the model
	MaxInputTokens int
	// Timeout bounds one generation request. 0 means no timeout.
	Timeout time.Duration
}

// Suggestion providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default models per provider. DefaultConfig carries the OpenAI one.
const (
	DefaultOpenAIModel    = "gpt-5-nano"
	DefaultAnthropicModel = "claude-sonnet-4-5"
)

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		Provider:       ProviderOpenAI,
		Model:          DefaultOpenAIModel,
		APIKeyEnv:      "OPENAI_API_KEY",
		Temperature:    0.5,
		MaxInputTokens: 128000,
		Timeout:        5 * time.Minute,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	config.applyEnvironment()
	return config
}

func (c *Config) applyEnvironment() {
	// DOCXPATCH_LOG_LEVEL
	if val := os.Getenv("DOCXPATCH_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	// DOCXPATCH_PROVIDER
	if val := os.Getenv("DOCXPATCH_PROVIDER"); val != "" {
		c.Provider = val
	}

	// DOCXPATCH_MODEL
	if val := os.Getenv("DOCXPATCH_MODEL"); val != "" {
		c.Model = val
	}

	// DOCXPATCH_BASE_URL
	if val := os.Getenv("DOCXPATCH_BASE_URL"); val != "" {
		c.BaseURL = val
	}

	// DOCXPATCH_API_KEY
	if val := os.Getenv("DOCXPATCH_API_KEY"); val != "" {
		c.APIKey = val
	}

	// DOCXPATCH_API_KEY_ENV
	if val := os.Getenv("DOCXPATCH_API_KEY_ENV"); val != "" {
		c.APIKeyEnv = val
	}

	// DOCXPATCH_TEMPERATURE
	if val := os.Getenv("DOCXPATCH_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.Temperature = f
		}
	}

	// DOCXPATCH_MAX_OUTPUT_TOKENS
	if val := os.Getenv("DOCXPATCH_MAX_OUTPUT_TOKENS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.MaxOutputTokens = n
		}
	}

	// DOCXPATCH_MAX_INPUT_TOKENS
	if val := os.Getenv("DOCXPATCH_MAX_INPUT_TOKENS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.MaxInputTokens = n
		}
	}

	// DOCXPATCH_TIMEOUT
	if val := os.Getenv("DOCXPATCH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.Timeout = d
		}
	}
}

// fileConfig mirrors Config in a TOML file. Unset keys keep their
// default values.
type fileConfig struct {
	LogLevel        *string  `toml:"log_level"`
	Provider        *string  `toml:"provider"`
	Model           *string  `toml:"model"`
	BaseURL         *string  `toml:"base_url"`
	APIKey          *string  `toml:"api_key"`
	APIKeyEnv       *string  `toml:"api_key_env"`
	Temperature     *float64 `toml:"temperature"`
	MaxOutputTokens *int     `toml:"max_output_tokens"`
	MaxInputTokens  *int     `toml:"max_input_tokens"`
	Timeout         *string  `toml:"timeout"`
}

// ParseConfig decodes TOML configuration on top of the defaults.
// Environment variables are not consulted.
func ParseConfig(data []byte) (*Config, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		cerr := &ConfigError{Cause: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			cerr.Line, cerr.Column = derr.Position()
		}
		return nil, cerr
	}

	config := DefaultConfig()
	setString(&config.LogLevel, fc.LogLevel)
	setString(&config.Provider, fc.Provider)
	setString(&config.Model, fc.Model)
	setString(&config.BaseURL, fc.BaseURL)
	setString(&config.APIKey, fc.APIKey)
	setString(&config.APIKeyEnv, fc.APIKeyEnv)
	if fc.Temperature != nil {
		config.Temperature = *fc.Temperature
	}
	if fc.MaxOutputTokens != nil {
		config.MaxOutputTokens = *fc.MaxOutputTokens
	}
	if fc.MaxInputTokens != nil {
		config.MaxInputTokens = *fc.MaxInputTokens
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return nil, &ConfigError{Cause: fmt.Errorf("timeout: %w", err)}
		}
		config.Timeout = d
	}
	return config, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// LoadConfigFile reads a TOML configuration file and applies DOCXPATCH_*
// environment variables on top of it.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("read config", path, err)
	}
	config, err := ParseConfig(data)
	if err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return nil, err
	}
	config.applyEnvironment()
	return config, nil
}

// Validate checks if the configuration is valid. All problems are
// reported together in a *ValidationError.
func (c *Config) Validate() error {
	var issues []ValidationIssue

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		issues = append(issues, ValidationIssue{Field: "log_level", Message: "invalid log level: " + c.LogLevel})
	}
	switch strings.ToLower(c.Provider) {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		issues = append(issues, ValidationIssue{Field: "provider", Message: "unknown provider: " + c.Provider})
	}
	if strings.TrimSpace(c.Model) == "" {
		issues = append(issues, ValidationIssue{Field: "model", Message: "model must not be empty"})
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		issues = append(issues, ValidationIssue{Field: "temperature", Message: "temperature must be between 0 and 2"})
	}
	if c.MaxOutputTokens < 0 {
		issues = append(issues, ValidationIssue{Field: "max_output_tokens", Message: "max output tokens cannot be negative"})
	}
	if c.MaxInputTokens <= 0 {
		issues = append(issues, ValidationIssue{Field: "max_input_tokens", Message: "max input tokens must be positive"})
	}
	if c.Timeout < 0 {
		issues = append(issues, ValidationIssue{Field: "timeout", Message: "timeout cannot be negative"})
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ResolveAPIKey returns APIKey, or the value of the variable named by
// APIKeyEnv when APIKey is empty.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Outside the lock: the logger reads the config back.
	UpdateLoggerFromConfig()
}
