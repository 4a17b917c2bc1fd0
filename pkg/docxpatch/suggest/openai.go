package suggest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/patch"
)

// OpenAIConfig configures an OpenAI generator.
type OpenAIConfig struct {
	Model           string
	APIKey          string
	BaseURL         string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
	// MaxRetries overrides the client's retry count. 0 keeps the client
	// default; a negative value disables retries.
	MaxRetries int
}

func (c OpenAIConfig) defaults() OpenAIConfig {
	if c.Model == "" {
		c.Model = "gpt-5-nano"
	}
	return c
}

// OpenAI asks an OpenAI-compatible chat completion endpoint for
// suggestions in JSON mode.
type OpenAI struct {
	client openai.Client
	cfg    OpenAIConfig
}

// NewOpenAI creates a generator. An empty API key is left to the client,
// which then falls back to the OPENAI_API_KEY environment variable.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	cfg = cfg.defaults()

	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	switch {
	case cfg.MaxRetries > 0:
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	case cfg.MaxRetries < 0:
		opts = append(opts, option.WithMaxRetries(0))
	}
	return &OpenAI{client: openai.NewClient(opts...), cfg: cfg}
}

// Model returns the configured model name.
func (g *OpenAI) Model() string { return g.cfg.Model }

// Generate builds the prompt for units, checks its size and returns the
// content of the model's reply.
func (g *OpenAI) Generate(ctx context.Context, units []patch.Unit, opts Options) ([]byte, error) {
	prompt, err := BuildPrompt(units, opts)
	if err != nil {
		return nil, err
	}
	if err := CheckSize(prompt, opts); err != nil {
		return nil, err
	}

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(g.cfg.Temperature),
	}
	if g.cfg.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(g.cfg.MaxOutputTokens))
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}
	return []byte(resp.Choices[0].Message.Content), nil
}
