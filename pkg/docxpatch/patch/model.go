package patch

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned when the document handle cannot be
// traversed at all (nil document, missing body).
var ErrInvalidDocument = errors.New("invalid document")

// Document is the ownership root of a patchable document. The engine never
// owns it; it only addresses and mutates sub-elements through it.
type Document interface {
	// Body returns the main document container.
	Body() (Container, error)
	// Sections returns the layout sections in document order.
	Sections() ([]Section, error)
}

// HeaderFooterKind identifies one header or footer variant of a section.
type HeaderFooterKind int

const (
	HeaderDefault HeaderFooterKind = iota
	HeaderFirst
	HeaderEven
	FooterDefault
	FooterFirst
	FooterEven
)

// sectionKinds is the traversal order for header and footer variants.
var sectionKinds = []HeaderFooterKind{
	HeaderDefault,
	HeaderFirst,
	HeaderEven,
	FooterDefault,
	FooterFirst,
	FooterEven,
}

func (k HeaderFooterKind) String() string {
	switch k {
	case HeaderDefault:
		return "header"
	case HeaderFirst:
		return "first_page_header"
	case HeaderEven:
		return "even_page_header"
	case FooterDefault:
		return "footer"
	case FooterFirst:
		return "first_page_footer"
	case FooterEven:
		return "even_page_footer"
	default:
		return "unknown"
	}
}

// Section is a layout section carrying header and footer variants.
type Section interface {
	// HeaderFooter returns the container for kind, or nil when the section
	// does not define that variant.
	HeaderFooter(kind HeaderFooterKind) Container
}

// Container yields an ordered sequence of paragraphs and an ordered
// sequence of nested tables. Body, table cells, headers and footers are
// containers.
type Container interface {
	Paragraphs() []Paragraph
	Tables() []Table
}

// Table yields rows in document order.
type Table interface {
	Rows() []Row
}

// Row yields cells in document order. Each cell is a Container.
type Row interface {
	Cells() []Container
}

// Paragraph is an ordered sequence of runs plus opaque paragraph-level
// formatting.
type Paragraph interface {
	// Identity returns a comparable value that is equal for two handles
	// referring to the same underlying paragraph.
	Identity() any
	Runs() []Run
	Text() string
	// AppendRun adds a new run carrying text at the end of the paragraph.
	AppendRun(text string) Run
	// InsertBefore creates a paragraph immediately preceding this one,
	// copying this paragraph's formatting, with a single run holding text.
	InsertBefore(text string) Paragraph
	// InsertAfter is InsertBefore for the following position.
	InsertAfter(text string) Paragraph
}

// Run is the smallest addressable text-bearing unit.
type Run interface {
	Text() string
	SetText(text string)
}

// Unit is one addressable run of text.
type Unit struct {
	Paragraph int
	Run       int
	Text      string
}

// MarshalJSON encodes a unit as the compact array [paragraph, run, text].
func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{u.Paragraph, u.Run, u.Text})
}

// UnmarshalJSON accepts the array form produced by MarshalJSON.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("unit: expected 3 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &u.Paragraph); err != nil {
		return fmt.Errorf("unit paragraph: %w", err)
	}
	if err := json.Unmarshal(parts[1], &u.Run); err != nil {
		return fmt.Errorf("unit run: %w", err)
	}
	if err := json.Unmarshal(parts[2], &u.Text); err != nil {
		return fmt.Errorf("unit text: %w", err)
	}
	return nil
}

// Placement says where an edit's text goes relative to the anchor
// paragraph.
type Placement int

const (
	InsertBefore   Placement = -1
	ReplaceInPlace Placement = 0
	InsertAfter    Placement = 1
)

func (p Placement) String() string {
	switch p {
	case InsertBefore:
		return "insert_before"
	case ReplaceInPlace:
		return "replace"
	case InsertAfter:
		return "insert_after"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// Valid reports whether p is one of the three defined placements.
func (p Placement) Valid() bool {
	return p == InsertBefore || p == ReplaceInPlace || p == InsertAfter
}

// Edit is the canonical edit operation.
type Edit struct {
	Paragraph int       `json:"paragraph"`
	Run       int       `json:"run"`
	Text      string    `json:"text"`
	Placement Placement `json:"new_paragraph"`
}

func (e Edit) String() string {
	return fmt.Sprintf("%s(%d,%d,%q)", e.Placement, e.Paragraph, e.Run, e.Text)
}

// Stats summarizes one Apply batch.
type Stats struct {
	Replaced       int `json:"replaced"`
	Appended       int `json:"appended"`
	InsertedBefore int `json:"inserted_before"`
	InsertedAfter  int `json:"inserted_after"`
	Skipped        int `json:"skipped"`
}

// Applied returns the number of edits that changed the document.
func (s Stats) Applied() int {
	return s.Replaced + s.Appended + s.InsertedBefore + s.InsertedAfter
}
