package patch

import "fmt"

// collector accumulates paragraphs in document order, skipping paragraphs
// already reached through another path.
type collector struct {
	paragraphs []Paragraph
	seen       map[any]struct{}
}

func (c *collector) container(container Container) {
	if container == nil {
		return
	}
	for _, para := range container.Paragraphs() {
		if para == nil {
			continue
		}
		id := para.Identity()
		if _, ok := c.seen[id]; ok {
			continue
		}
		c.seen[id] = struct{}{}
		c.paragraphs = append(c.paragraphs, para)
	}
	for _, table := range container.Tables() {
		c.table(table)
	}
}

func (c *collector) table(table Table) {
	if table == nil {
		return
	}
	for _, row := range table.Rows() {
		if row == nil {
			continue
		}
		for _, cell := range row.Cells() {
			c.container(cell)
		}
	}
}

// CollectParagraphs returns every paragraph of doc in addressing order:
// body paragraphs, body tables, then each section's header and footer
// variants. The position of a paragraph in the result is its paragraph
// index.
func CollectParagraphs(doc Document) ([]Paragraph, error) {
	if doc == nil {
		return nil, ErrInvalidDocument
	}

	body, err := doc.Body()
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("%w: missing body", ErrInvalidDocument)
	}

	sections, err := doc.Sections()
	if err != nil {
		return nil, fmt.Errorf("reading sections: %w", err)
	}

	c := &collector{
		paragraphs: make([]Paragraph, 0),
		seen:       make(map[any]struct{}),
	}
	c.container(body)
	for _, section := range sections {
		if section == nil {
			continue
		}
		for _, kind := range sectionKinds {
			c.container(section.HeaderFooter(kind))
		}
	}
	return c.paragraphs, nil
}

// Enumerate returns one Unit per run of every paragraph in doc. Paragraphs
// without runs contribute no units but still consume a paragraph index.
func Enumerate(doc Document) ([]Unit, error) {
	paragraphs, err := CollectParagraphs(doc)
	if err != nil {
		return nil, err
	}

	units := make([]Unit, 0, len(paragraphs))
	for pnum, para := range paragraphs {
		for rnum, run := range para.Runs() {
			units = append(units, Unit{Paragraph: pnum, Run: rnum, Text: run.Text()})
		}
	}
	return units, nil
}

// RunText returns the text of the run at (paragraph, run). When the run
// index is out of range the whole paragraph text is returned; when the
// paragraph index is out of range the result is empty.
func RunText(doc Document, paragraph, run int) (string, error) {
	paragraphs, err := CollectParagraphs(doc)
	if err != nil {
		return "", err
	}
	if paragraph < 0 || paragraph >= len(paragraphs) {
		return "", nil
	}

	para := paragraphs[paragraph]
	runs := para.Runs()
	if run >= 0 && run < len(runs) {
		return runs[run].Text(), nil
	}
	return para.Text(), nil
}
