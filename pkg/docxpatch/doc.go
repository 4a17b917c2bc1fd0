// Package docxpatch turns Microsoft Word documents (DOCX) into templates by
// patching their text in place.
//
// A document is flattened into addressable text units, a generator (usually
// a language model) suggests which units to rewrite with template tags, and
// the suggestions are applied back to the document without disturbing the
// surrounding formatting.
//
// # Quick Start
//
//	doc, err := docxpatch.Open("form.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen := suggest.NewOpenAI(suggest.OpenAIConfig{Model: "gpt-5-nano"})
//	report, err := docxpatch.Label(ctx, doc, gen, suggest.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := doc.SaveFile("form.template.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Addressing
//
// EnumerateUnits lists every run of the document as a Unit:
//
//	[0, 1, "John Smith"]   // paragraph 0, run 1
//
// Paragraphs are numbered across the body, the tables (recursively), and
// then the headers and footers of each section. An Edit names a unit and
// says whether to replace its text or to insert a new paragraph before or
// after the paragraph that holds it:
//
//	{"paragraph": 0, "run": 1, "text": "{{ other_parties[0] }}", "new_paragraph": 0}
//	{"paragraph": 2, "run": 0, "text": "{%p if is_tenant %}", "new_paragraph": -1}
//
// # Applying edits without a model
//
//	edits := docxpatch.NormalizeEdits(patch.ExtractJSON(data))
//	stats, err := docxpatch.ApplyEdits(doc, edits)
//
// Edits addressing a missing paragraph are skipped; a replacement addressing
// a missing run appends a new run. Stats reports what happened.
//
// # Configuration
//
// Configuration comes from DOCXPATCH_* environment variables or a TOML file
// (LoadConfigFile):
//
//	log_level = "debug"
//	model = "gpt-5-nano"
//	temperature = 0.5
//	timeout = "2m"
//
// # Error Handling
//
// Structural problems with a document are reported as *DocumentError,
// generator failures as *GenerationError, and configuration problems as
// *ValidationError. Malformed suggestions are never errors: they are
// dropped and counted in the Report.
package docxpatch
