// Package xml provides a lossless, mutable view of the WordprocessingML
// parts of a DOCX package.
//
// Parts are parsed into xmlquery trees and every node of the source is kept,
// including markup this package does not interpret (drawings, fields,
// bookmarks, revision marks). The wrapper types expose just the structure
// needed to address and patch text:
//
//   - document.go: Part, and Container (body, table cell, header, footer)
//   - paragraph.go: Paragraph, paragraph synthesis next to an anchor
//   - run.go: Run, run text reading, AppendText segmentation
//   - table.go: Table and Row
//   - section.go: SectionProperties and header/footer references
//   - write.go: serialization
//
// # Text encoding
//
// Text written into a run is split on tabs and newlines. A tab becomes
// <w:tab/>, a newline becomes <w:br/>, and every other segment becomes a
// <w:t> element that carries xml:space="preserve" when it begins or ends
// with whitespace:
//
//	run.SetText("A\tB\nC ")
//	// <w:r><w:t>A</w:t><w:tab/><w:t>B</w:t><w:br/><w:t xml:space="preserve">C </w:t></w:r>
//
// # Identity
//
// Wrapper values are created on demand and are cheap. The underlying
// *xmlquery.Node returned by Node identifies an element; it stays valid
// across insertions elsewhere in the tree.
package xml
