package docxpatch

import (
	"os"
	"strings"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/suggest"
)

const anthropicAPIKeyEnv = "ANTHROPIC_API_KEY"

// NewGenerator returns the suggestion generator described by config.
func NewGenerator(config *Config) (suggest.Generator, error) {
	if config == nil {
		config = GetGlobalConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(config.Provider) {
	case ProviderAnthropic:
		key := config.APIKey
		if key == "" {
			env := config.APIKeyEnv
			if env == "" || env == DefaultConfig().APIKeyEnv {
				env = anthropicAPIKeyEnv
			}
			key = os.Getenv(env)
		}
		model := config.Model
		if model == DefaultOpenAIModel {
			model = DefaultAnthropicModel
		}
		WithFields(Fields{"provider": ProviderAnthropic, "model": model}).Debug("Using generator")
		return suggest.NewAnthropic(suggest.AnthropicConfig{
			Model:           model,
			APIKey:          key,
			BaseURL:         config.BaseURL,
			Temperature:     config.Temperature,
			MaxOutputTokens: config.MaxOutputTokens,
			Timeout:         config.Timeout,
		}), nil
	default:
		WithFields(Fields{"provider": ProviderOpenAI, "model": config.Model}).Debug("Using generator")
		return suggest.NewOpenAI(suggest.OpenAIConfig{
			Model:           config.Model,
			APIKey:          config.ResolveAPIKey(),
			BaseURL:         config.BaseURL,
			Temperature:     config.Temperature,
			MaxOutputTokens: config.MaxOutputTokens,
			Timeout:         config.Timeout,
		}), nil
	}
}

// PromptOptions returns the generation options implied by config.
func (c *Config) PromptOptions() suggest.Options {
	return suggest.Options{MaxInputTokens: c.MaxInputTokens}
}
