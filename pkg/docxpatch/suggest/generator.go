package suggest

import (
	"context"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/patch"
)

// Generator produces raw suggestions for the given units.
type Generator interface {
	Generate(ctx context.Context, units []patch.Unit, opts Options) ([]byte, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, units []patch.Unit, opts Options) ([]byte, error)

func (f GeneratorFunc) Generate(ctx context.Context, units []patch.Unit, opts Options) ([]byte, error) {
	return f(ctx, units, opts)
}

// Static is a Generator that always returns the same output.
type Static []byte

func (s Static) Generate(ctx context.Context, _ []patch.Unit, _ Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]byte, len(s))
	copy(out, s)
	return out, nil
}

// Person describes a list of people the model may use in variable names,
// e.g. {"clients", "the person benefiting from the form"}.
type Person struct {
	Name        string `json:"name" toml:"name"`
	Description string `json:"description" toml:"description"`
}

// Options tune one generation request.
type Options struct {
	// People are offered to the model ahead of the built-in list names.
	People []Person
	// CustomPrompt replaces the default role description.
	CustomPrompt string
	// AdditionalInstructions are appended to the role description.
	AdditionalInstructions string
	// MaxInputTokens caps the estimated prompt size. 0 means DefaultMaxInputTokens.
	MaxInputTokens int
}

func (o Options) maxInputTokens() int {
	if o.MaxInputTokens > 0 {
		return o.MaxInputTokens
	}
	return DefaultMaxInputTokens
}

// Named is implemented by generators backed by a named model.
type Named interface {
	Model() string
}

// ModelName returns the model behind g, or "" when g does not name one.
func ModelName(g Generator) string {
	if n, ok := g.(Named); ok {
		return n.Model()
	}
	return ""
}
