// Command docxpatch lists the text units of a DOCX file and patches them,
// either from a JSON list of edits or from a language model's suggestions.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tidwall/sjson"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch"
	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/suggest"
)

const version = "0.1.0"

// CLI defines the command-line interface for docxpatch.
var CLI struct {
	Globals

	Units   UnitsCmd   `cmd:"" help:"Print the text units of a document as JSON"`
	Text    TextCmd    `cmd:"" help:"Print the text at a paragraph and run"`
	Apply   ApplyCmd   `cmd:"" help:"Apply edits from a JSON file"`
	Label   LabelCmd   `cmd:"" help:"Ask a model for template edits and apply them"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Globals are flags shared by every command.
type Globals struct {
	Config   string `name:"config" short:"c" help:"TOML configuration file" type:"existingfile"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error, off)"`
}

// load builds the configuration from the config file or the environment,
// applies flag overrides and installs it globally.
func (g *Globals) load() (*docxpatch.Config, error) {
	config := docxpatch.ConfigFromEnvironment()
	if g.Config != "" {
		var err error
		if config, err = docxpatch.LoadConfigFile(g.Config); err != nil {
			return nil, err
		}
	}
	if g.LogLevel != "" {
		config.LogLevel = g.LogLevel
	}
	docxpatch.SetGlobalConfig(config)
	return config, nil
}

// UnitsCmd prints the units of a document.
type UnitsCmd struct {
	File   string `arg:"" help:"DOCX file" type:"existingfile"`
	Pretty bool   `help:"Indent the output"`
}

func (c *UnitsCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}
	doc, err := docxpatch.Open(c.File)
	if err != nil {
		return err
	}
	units, err := docxpatch.EnumerateUnits(doc)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, units, c.Pretty)
}

// TextCmd prints the text at one address.
type TextCmd struct {
	File      string `arg:"" help:"DOCX file" type:"existingfile"`
	Paragraph int    `arg:"" help:"Paragraph index"`
	RunIndex  int    `arg:"" name:"run" optional:"" default:"-1" help:"Run index; omit for the whole paragraph"`
}

func (c *TextCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}
	doc, err := docxpatch.Open(c.File)
	if err != nil {
		return err
	}
	text, err := docxpatch.RunText(doc, c.Paragraph, c.RunIndex)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// Output names where a patched document and its report go.
type Output struct {
	Out    string `short:"o" required:"" help:"Output DOCX file" type:"path"`
	Report string `help:"Write the batch report as JSON to this file ('-' for stdout)"`
}

func (o *Output) save(doc *docxpatch.Document, report *docxpatch.Report, source string) error {
	if err := doc.SaveFile(o.Out); err != nil {
		return err
	}
	docxpatch.WithFields(docxpatch.Fields{
		"replaced": report.Stats.Replaced,
		"appended": report.Stats.Appended,
		"inserted": report.Stats.InsertedBefore + report.Stats.InsertedAfter,
		"skipped":  report.Stats.Skipped,
	}).Info("Wrote %s", o.Out)

	if o.Report == "" {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if data, err = sjson.SetBytes(data, "source", source); err != nil {
		return err
	}
	if data, err = sjson.SetBytes(data, "output", o.Out); err != nil {
		return err
	}
	data = append(data, '\n')
	if o.Report == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(o.Report, data, 0o644)
}

// ApplyCmd applies edits read from a file.
type ApplyCmd struct {
	File  string `arg:"" help:"DOCX file" type:"existingfile"`
	Edits string `arg:"" help:"JSON edits file ('-' for stdin)"`

	Output `embed:""`
}

func (c *ApplyCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}
	raw, err := readInput(c.Edits)
	if err != nil {
		return err
	}
	doc, err := docxpatch.Open(c.File)
	if err != nil {
		return err
	}
	report, err := docxpatch.ApplyJSON(doc, raw)
	if err != nil {
		return err
	}
	return c.save(doc, report, c.File)
}

// LabelCmd runs the model-driven pipeline.
type LabelCmd struct {
	File         string   `arg:"" help:"DOCX file" type:"existingfile"`
	Provider     string   `help:"Suggestion provider (openai, anthropic)"`
	Model        string   `short:"m" help:"Model name"`
	People       []string `name:"person" sep:"none" help:"Extra people list as name=description (repeatable)"`
	PromptFile   string   `name:"prompt-file" help:"File replacing the default role description" type:"existingfile"`
	Instructions string   `help:"Additional instructions for the model"`

	Output `embed:""`
}

func (c *LabelCmd) Run(g *Globals) error {
	config, err := g.load()
	if err != nil {
		return err
	}
	if c.Provider != "" {
		config.Provider = c.Provider
	}
	if c.Model != "" {
		config.Model = c.Model
	}

	opts := config.PromptOptions()
	opts.AdditionalInstructions = c.Instructions
	if opts.People, err = parsePeople(c.People); err != nil {
		return err
	}
	if c.PromptFile != "" {
		prompt, err := os.ReadFile(c.PromptFile)
		if err != nil {
			return err
		}
		opts.CustomPrompt = string(prompt)
	}

	gen, err := docxpatch.NewGenerator(config)
	if err != nil {
		return err
	}
	doc, err := docxpatch.Open(c.File)
	if err != nil {
		return err
	}
	report, err := docxpatch.Label(context.Background(), doc, gen, opts)
	if err != nil {
		return err
	}
	return c.save(doc, report, c.File)
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("docxpatch version %s\n", version)
	return nil
}

// parsePeople reads name=description pairs. The description is optional.
func parsePeople(specs []string) ([]suggest.Person, error) {
	people := make([]suggest.Person, 0, len(specs))
	for _, spec := range specs {
		name, desc, _ := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --person %q: missing name", spec)
		}
		people = append(people, suggest.Person{Name: name, Description: strings.TrimSpace(desc)})
	}
	return people, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("docxpatch"),
		kong.Description("Turn DOCX documents into templates by patching their text runs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
