package xml

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// ErrNoBody is returned when a main document part has no w:body element.
var ErrNoBody = errors.New("document has no body")

var bodyExpr = xpath.MustCompile("/*[local-name()='document']/*[local-name()='body']")

// Part is one parsed XML part of a package, kept as a mutable tree that
// preserves every node of the source.
type Part struct {
	Name string
	doc  *xmlquery.Node
}

// ParsePart parses the XML content of the named part.
func ParsePart(name string, data []byte) (*Part, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return &Part{Name: name, doc: doc}, nil
}

// Root returns the document element of the part, or nil for an empty part.
func (p *Part) Root() *xmlquery.Node {
	for c := p.doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// Bytes serializes the part.
func (p *Part) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, p.doc); err != nil {
		return nil, fmt.Errorf("serializing %s: %w", p.Name, err)
	}
	return buf.Bytes(), nil
}

// Body returns the body container of a main document part.
func (p *Part) Body() (*Container, error) {
	body := xmlquery.QuerySelector(p.doc, bodyExpr)
	if body == nil {
		return nil, fmt.Errorf("%s: %w", p.Name, ErrNoBody)
	}
	return &Container{node: body}, nil
}

// Container returns the root element of a header or footer part as a
// container of paragraphs and tables.
func (p *Part) Container() *Container {
	root := p.Root()
	if root == nil {
		return nil
	}
	return &Container{node: root}
}

// Sections returns the section properties of a main document part in
// document order: those carried by paragraphs of the body, then the
// body's final w:sectPr.
func (p *Part) Sections() ([]*SectionProperties, error) {
	body, err := p.Body()
	if err != nil {
		return nil, err
	}

	var sections []*SectionProperties
	for c := body.node.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isElement(c, "p"):
			if ppr := child(c, "pPr"); ppr != nil {
				if sect := child(ppr, "sectPr"); sect != nil {
					sections = append(sections, &SectionProperties{node: sect})
				}
			}
		case isElement(c, "sectPr"):
			sections = append(sections, &SectionProperties{node: c})
		}
	}
	return sections, nil
}

// Container is an element whose direct children are paragraphs and
// tables: the document body, a table cell, a header or a footer.
type Container struct {
	node *xmlquery.Node
}

// Node returns the underlying element.
func (c *Container) Node() *xmlquery.Node { return c.node }

// Paragraphs returns the direct w:p children in document order.
func (c *Container) Paragraphs() []*Paragraph {
	nodes := children(c.node, "p")
	out := make([]*Paragraph, len(nodes))
	for i, n := range nodes {
		out[i] = &Paragraph{node: n}
	}
	return out
}

// Tables returns the direct w:tbl children in document order.
func (c *Container) Tables() []*Table {
	nodes := children(c.node, "tbl")
	out := make([]*Table, len(nodes))
	for i, n := range nodes {
		out[i] = &Table{node: n}
	}
	return out
}
