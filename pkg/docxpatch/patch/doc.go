// Package patch implements the addressing and patch-application contract
// used to turn a word-processing document into a template.
//
// The package works on an abstract document model rather than on DOCX
// directly. Anything that can yield paragraphs and nested tables from a
// body and from per-section headers and footers can be patched:
//
//	units, err := patch.Enumerate(doc)          // [(paragraph, run, text)...]
//	raw := patch.ExtractJSON(modelOutput)      // tolerant extraction
//	edits := patch.Normalize(raw)              // canonical Edit values
//	stats, err := patch.Apply(doc, edits)      // mutate the document
//
// # Addressing
//
// A unit is addressed by (paragraph index, run index). The paragraph index
// is the position of the paragraph in a flattened, depth-first walk: body
// paragraphs, body tables (row by row, cell by cell, recursively), then
// each section's header and footer variants in a fixed order. The run
// index is local to its paragraph.
//
// Addresses are valid until the next structural mutation. Apply therefore
// collects paragraphs once, sorts edits by descending address and mutates
// through the collected handles.
//
// # Untrusted input
//
// Normalize and Extract never fail. Entries that cannot be coerced into a
// canonical Edit are dropped; the caller sees a shorter list.
package patch
