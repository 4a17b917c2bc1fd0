package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/patch"
)

// DefaultAnthropicMaxTokens is used when AnthropicConfig.MaxOutputTokens
// is not set; the Messages API requires a limit.
const DefaultAnthropicMaxTokens = 8192

// jsonOnly is appended to the system prompt. The Messages API has no JSON
// response format, so the reply may still carry a code fence, which
// extraction strips.
const jsonOnly = "\n\nReply with a single JSON object and nothing else."

// AnthropicConfig configures an Anthropic generator.
type AnthropicConfig struct {
	Model           string
	APIKey          string
	BaseURL         string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
	// MaxRetries has the same meaning as in OpenAIConfig.
	MaxRetries int
}

// Anthropic asks the Anthropic Messages API for suggestions.
type Anthropic struct {
	client anthropic.Client
	cfg    AnthropicConfig
}

// NewAnthropic creates a generator. An empty API key is left to the
// client, which then reads ANTHROPIC_API_KEY.
func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = DefaultAnthropicMaxTokens
	}

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
	return &Anthropic{client: anthropic.NewClient(opts...), cfg: cfg}
}

// Model returns the configured model name.
func (g *Anthropic) Model() string { return g.cfg.Model }

// Generate builds the prompt for units, checks its size and returns the
// concatenated text blocks of the reply.
func (g *Anthropic) Generate(ctx context.Context, units []patch.Unit, opts Options) ([]byte, error) {
	if g.cfg.Model == "" {
		return nil, errors.New("anthropic: no model configured")
	}
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

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.cfg.Model),
		MaxTokens: int64(g.cfg.MaxOutputTokens),
		System: []anthropic.TextBlockParam{
			{Text: prompt.System + jsonOnly},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
		Temperature: anthropic.Float(g.cfg.Temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return nil, errors.New("messages: reply has no text")
	}
	return []byte(out.String()), nil
}
