// Package suggest produces suggested edits for a document's text units.
//
// A Generator receives the flattened units of a document and returns raw
// output, normally JSON from a language model, that names the runs to
// rewrite with template variables and the paragraphs to wrap in
// conditionals. The output is untrusted: callers pass it through
// patch.ExtractJSON and patch.Normalize before applying it.
//
// The OpenAI generator asks a chat model with the prompt built by
// BuildPrompt. Static and GeneratorFunc serve tests and offline runs:
//
//	gen := suggest.Static([]byte(`{"results": [[0, 1, "Dear {{ other_parties[0] }}:", 0]]}`))
//	raw, err := gen.Generate(ctx, units, suggest.Options{})
package suggest
