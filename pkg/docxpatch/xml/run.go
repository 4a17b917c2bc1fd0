package xml

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"
)

// Run wraps a w:r element.
type Run struct {
	node *xmlquery.Node
}

// Node returns the underlying element.
func (r *Run) Node() *xmlquery.Node { return r.node }

// Text returns the text of the run the way Word presents it: tabs and
// text-wrapping breaks become '\t' and '\n', page and column breaks
// contribute nothing.
func (r *Run) Text() string {
	var b strings.Builder
	for c := r.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode || !inMain(c) {
			continue
		}
		switch c.Data {
		case "t":
			b.WriteString(c.InnerText())
		case "tab", "ptab":
			b.WriteByte('\t')
		case "br":
			if typ, _ := mainAttr(c, "type"); typ == "" || typ == "textWrapping" {
				b.WriteByte('\n')
			}
		case "cr":
			b.WriteByte('\n')
		case "noBreakHyphen":
			b.WriteByte('-')
		}
	}
	return b.String()
}

// SetText replaces the content of the run with text. Run properties
// (w:rPr) are kept; everything else, including drawings and fields, is
// removed.
func (r *Run) SetText(text string) {
	for c := r.node.FirstChild; c != nil; {
		next := c.NextSibling
		if !isElement(c, "rPr") {
			xmlquery.RemoveFromTree(c)
		}
		c = next
	}
	AppendText(r, text)
}

// AppendText appends text to the run. Each tab becomes a w:tab and each
// line break (\n, \r\n, \r, \v or \f) a w:br; the remaining non-empty
// segments become w:t elements, marked xml:space="preserve" when they begin
// or end with whitespace. Characters XML 1.0 cannot carry and invalid UTF-8
// are dropped.
func AppendText(r *Run, text string) {
	for _, seg := range splitSegments(cleanText(text)) {
		switch seg {
		case "\t":
			appendChild(r.node, newElement(r.node, "tab"))
		case "\n":
			appendChild(r.node, newElement(r.node, "br"))
		default:
			t := newElement(r.node, "t")
			if needsPreserve(seg) {
				t.Attr = append(t.Attr, preserveSpaceAttr())
			}
			appendChild(t, &xmlquery.Node{Type: xmlquery.TextNode, Data: seg})
			appendChild(r.node, t)
		}
	}
}

// cleanText folds every line break into '\n' and removes what cannot be
// written into a w:t element.
func cleanText(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Map(func(c rune) rune {
		switch c {
		case '\r', '\v', '\f':
			return '\n'
		}
		if !isXMLChar(c) {
			return -1
		}
		return c
	}, text)
}

func isXMLChar(c rune) bool {
	switch {
	case c == '\t' || c == '\n' || c == '\r':
		return true
	case c >= 0x20 && c <= 0xD7FF:
		return true
	case c >= 0xE000 && c <= 0xFFFD:
		return true
	case c >= 0x10000 && c <= utf8.MaxRune:
		return true
	}
	return false
}

// splitSegments splits text around every tab and newline, keeping the
// separators as their own segments and dropping empty text segments.
func splitSegments(text string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\t' && text[i] != '\n' {
			continue
		}
		if i > start {
			segs = append(segs, text[start:i])
		}
		segs = append(segs, text[i:i+1])
		start = i + 1
	}
	if start < len(text) {
		segs = append(segs, text[start:])
	}
	return segs
}

func needsPreserve(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(first) || unicode.IsSpace(last)
}
