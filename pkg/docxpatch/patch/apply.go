package patch

import "sort"

// Apply applies edits to doc and reports what happened to each of them.
//
// Edits are processed in descending (paragraph, run) order against a
// single paragraph enumeration taken before the first mutation, so an
// insertion never changes what a pending edit's address refers to. Edits
// that address a missing paragraph are skipped. A replacement that
// addresses a missing run appends a new run to the paragraph instead.
//
// The only errors are those that make doc untraversable.
func Apply(doc Document, edits []Edit) (Stats, error) {
	var stats Stats

	paragraphs, err := CollectParagraphs(doc)
	if err != nil {
		return stats, err
	}

	for _, edit := range SortDescending(edits) {
		if edit.Paragraph < 0 || edit.Paragraph >= len(paragraphs) {
			stats.Skipped++
			continue
		}
		para := paragraphs[edit.Paragraph]

		switch edit.Placement {
		case InsertAfter:
			para.InsertAfter(edit.Text)
			stats.InsertedAfter++
		case InsertBefore:
			para.InsertBefore(edit.Text)
			stats.InsertedBefore++
		default:
			runs := para.Runs()
			run := edit.Run
			if run < 0 {
				run = 0
			}
			if run < len(runs) {
				runs[run].SetText(edit.Text)
				stats.Replaced++
			} else {
				para.AppendRun(edit.Text)
				stats.Appended++
			}
		}
	}

	return stats, nil
}

// SortDescending returns a copy of edits ordered by (paragraph, run),
// highest first. Edits with equal addresses keep their relative order.
func SortDescending(edits []Edit) []Edit {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Paragraph != sorted[j].Paragraph {
			return sorted[i].Paragraph > sorted[j].Paragraph
		}
		return sorted[i].Run > sorted[j].Run
	})
	return sorted
}
