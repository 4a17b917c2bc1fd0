package xml

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Paragraph wraps a w:p element.
type Paragraph struct {
	node *xmlquery.Node
}

// Node returns the underlying element. Two Paragraph values refer to the
// same paragraph exactly when their nodes are equal.
func (p *Paragraph) Node() *xmlquery.Node { return p.node }

// Runs returns the direct w:r children in document order. Runs nested in
// hyperlinks, fields or content controls are not included.
func (p *Paragraph) Runs() []*Run {
	nodes := children(p.node, "r")
	out := make([]*Run, len(nodes))
	for i, n := range nodes {
		out[i] = &Run{node: n}
	}
	return out
}

// Text returns the text of the paragraph, including runs inside
// hyperlinks.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for c := p.node.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isElement(c, "r"):
			b.WriteString((&Run{node: c}).Text())
		case isElement(c, "hyperlink"):
			for _, r := range children(c, "r") {
				b.WriteString((&Run{node: r}).Text())
			}
		}
	}
	return b.String()
}

// AppendRun adds an unformatted run holding text at the end of the
// paragraph.
func (p *Paragraph) AppendRun(text string) *Run {
	r := &Run{node: newElement(p.node, "r")}
	AppendText(r, text)
	appendChild(p.node, r.node)
	return r
}

// InsertBefore inserts a new paragraph holding text immediately before p
// and returns it.
func (p *Paragraph) InsertBefore(text string) *Paragraph {
	np := p.sibling(text)
	insertBefore(p.node, np.node)
	return np
}

// InsertAfter inserts a new paragraph holding text immediately after p
// and returns it.
func (p *Paragraph) InsertAfter(text string) *Paragraph {
	np := p.sibling(text)
	insertAfter(p.node, np.node)
	return np
}

// sibling builds a detached paragraph with the paragraph properties of p
// and a single run holding text. A section break in the copied properties
// is dropped so the new paragraph does not start a section of its own.
func (p *Paragraph) sibling(text string) *Paragraph {
	np := &Paragraph{node: newElement(p.node, "p")}
	if ppr := child(p.node, "pPr"); ppr != nil {
		cp := clone(ppr)
		for _, sect := range children(cp, "sectPr") {
			xmlquery.RemoveFromTree(sect)
		}
		appendChild(np.node, cp)
	}

	r := &Run{node: newElement(p.node, "r")}
	AppendText(r, text)
	appendChild(np.node, r.node)
	return np
}
