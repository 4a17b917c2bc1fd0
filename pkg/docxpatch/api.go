package docxpatch

import (
	"context"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/patch"
	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/suggest"
)

// Re-exported engine types, so most callers only import this package.
type (
	Unit      = patch.Unit
	Edit      = patch.Edit
	Placement = patch.Placement
	Stats     = patch.Stats
)

const (
	InsertBefore   = patch.InsertBefore
	ReplaceInPlace = patch.ReplaceInPlace
	InsertAfter    = patch.InsertAfter
)

// pathOf returns the file a document came from, for error messages.
func pathOf(doc patch.Document) string {
	if d, ok := doc.(*Document); ok && d != nil {
		return d.Path()
	}
	return ""
}

// EnumerateUnits returns the addressable text units of doc.
func EnumerateUnits(doc patch.Document) ([]Unit, error) {
	units, err := patch.Enumerate(doc)
	if err != nil {
		return nil, NewDocumentError("enumerate", pathOf(doc), err)
	}
	Debug("Enumerated %d units", len(units))
	return units, nil
}

// RunText returns the text at (paragraph, run), the paragraph text when
// the run does not exist, or "" when the paragraph does not exist.
func RunText(doc patch.Document, paragraph, run int) (string, error) {
	text, err := patch.RunText(doc, paragraph, run)
	if err != nil {
		return "", NewDocumentError("read run", pathOf(doc), err)
	}
	return text, nil
}

// NormalizeEdits converts loosely shaped suggestions into canonical edits,
// dropping entries that cannot be interpreted.
func NormalizeEdits(raw []any) []Edit {
	edits := patch.Normalize(raw)
	if dropped := len(raw) - len(edits); dropped > 0 {
		WithField("dropped", dropped).Warn("Dropped %d of %d suggested edits", dropped, len(raw))
	}
	return edits
}

// ApplyEdits applies edits to doc. A panic raised while mutating the
// document is recovered and returned as a *DocumentError.
func ApplyEdits(doc patch.Document, edits []Edit) (stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewDocumentError("apply", pathOf(doc), RecoverError(r))
		}
	}()

	stats, err = patch.Apply(doc, edits)
	if err != nil {
		return stats, NewDocumentError("apply", pathOf(doc), err)
	}

	WithFields(Fields{
		"replaced":        stats.Replaced,
		"appended":        stats.Appended,
		"inserted_before": stats.InsertedBefore,
		"inserted_after":  stats.InsertedAfter,
		"skipped":         stats.Skipped,
	}).Info("Applied %d of %d edits", stats.Applied(), len(edits))
	if stats.Skipped > 0 {
		Debug("Skipped %d edits addressing missing paragraphs", stats.Skipped)
	}
	return stats, nil
}

// Label runs the whole pipeline on doc: enumerate its units, ask gen for
// suggestions, extract and normalize them, and apply the result. The
// returned report describes the batch; doc is modified in place.
func Label(ctx context.Context, doc *Document, gen suggest.Generator, opts suggest.Options) (*Report, error) {
	if doc == nil {
		return nil, NewDocumentError("label", "", ErrInvalidDocument)
	}

	report, err := NewReport(doc)
	if err != nil {
		return nil, err
	}
	log := WithField("batch", report.ID)

	units, err := EnumerateUnits(doc)
	if err != nil {
		return nil, err
	}
	report.Units = len(units)

	raw, err := gen.Generate(ctx, units, opts)
	if err != nil {
		return nil, NewGenerationError(suggest.ModelName(gen), err)
	}

	if err := report.apply(doc, raw); err != nil {
		return nil, err
	}
	log.Info("Labeled document with %d edits", report.Stats.Applied())
	return report, nil
}

// ApplyJSON extracts edits from raw generator-style JSON output, applies
// them to doc and reports the batch. It is Label without the generator.
func ApplyJSON(doc *Document, raw []byte) (*Report, error) {
	if doc == nil {
		return nil, NewDocumentError("apply", "", ErrInvalidDocument)
	}
	report, err := NewReport(doc)
	if err != nil {
		return nil, err
	}
	if err := report.apply(doc, raw); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *Report) apply(doc *Document, raw []byte) error {
	suggested := patch.ExtractJSON(raw)
	edits := NormalizeEdits(suggested)
	r.Suggested = len(suggested)
	r.Normalized = len(edits)
	r.Dropped = len(suggested) - len(edits)
	r.Edits = edits
	WithField("batch", r.ID).Debug("Extracted %d suggested edits, %d usable", len(suggested), len(edits))

	stats, err := ApplyEdits(doc, edits)
	if err != nil {
		return err
	}
	r.Stats = stats
	return r.Finish(doc)
}
