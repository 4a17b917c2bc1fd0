package patch

import (
	"errors"
	"strings"
)

// fakeDoc is an in-memory Document used to exercise the engine without XML.
type fakeDoc struct {
	body     *fakeContainer
	sections []Section
	bodyErr  error
}

func (d *fakeDoc) Body() (Container, error) {
	if d.bodyErr != nil {
		return nil, d.bodyErr
	}
	if d.body == nil {
		return nil, nil
	}
	return d.body, nil
}

func (d *fakeDoc) Sections() ([]Section, error) { return d.sections, nil }

type fakeSection struct {
	parts map[HeaderFooterKind]*fakeContainer
}

func (s *fakeSection) HeaderFooter(kind HeaderFooterKind) Container {
	c, ok := s.parts[kind]
	if !ok {
		return nil
	}
	return c
}

type fakeContainer struct {
	paras  []*fakePara
	tables []*fakeTable
}

func (c *fakeContainer) Paragraphs() []Paragraph {
	out := make([]Paragraph, len(c.paras))
	for i, p := range c.paras {
		out[i] = p
	}
	return out
}

func (c *fakeContainer) Tables() []Table {
	out := make([]Table, len(c.tables))
	for i, t := range c.tables {
		out[i] = t
	}
	return out
}

// add appends a paragraph holding one run per text.
func (c *fakeContainer) add(style string, runs ...string) *fakePara {
	p := &fakePara{parent: c, style: style}
	for _, r := range runs {
		p.runs = append(p.runs, &fakeRun{text: r})
	}
	c.paras = append(c.paras, p)
	return p
}

func (c *fakeContainer) texts() []string {
	out := make([]string, len(c.paras))
	for i, p := range c.paras {
		out[i] = p.Text()
	}
	return out
}

type fakeTable struct {
	rows [][]*fakeContainer
}

func (t *fakeTable) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, cells := range t.rows {
		out[i] = fakeRow(cells)
	}
	return out
}

type fakeRow []*fakeContainer

func (r fakeRow) Cells() []Container {
	out := make([]Container, len(r))
	for i, c := range r {
		out[i] = c
	}
	return out
}

type fakePara struct {
	parent *fakeContainer
	style  string
	runs   []*fakeRun
}

func (p *fakePara) Identity() any { return p }

func (p *fakePara) Runs() []Run {
	out := make([]Run, len(p.runs))
	for i, r := range p.runs {
		out[i] = r
	}
	return out
}

func (p *fakePara) Text() string {
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.text)
	}
	return b.String()
}

func (p *fakePara) AppendRun(text string) Run {
	r := &fakeRun{text: text}
	p.runs = append(p.runs, r)
	return r
}

func (p *fakePara) InsertBefore(text string) Paragraph { return p.insert(text, 0) }

func (p *fakePara) InsertAfter(text string) Paragraph { return p.insert(text, 1) }

func (p *fakePara) insert(text string, offset int) Paragraph {
	idx := -1
	for i, sib := range p.parent.paras {
		if sib == p {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("paragraph detached from parent")
	}
	np := &fakePara{parent: p.parent, style: p.style, runs: []*fakeRun{{text: text}}}
	at := idx + offset
	paras := append([]*fakePara{}, p.parent.paras[:at]...)
	paras = append(paras, np)
	paras = append(paras, p.parent.paras[at:]...)
	p.parent.paras = paras
	return np
}

type fakeRun struct {
	text string
}

func (r *fakeRun) Text() string        { return r.text }
func (r *fakeRun) SetText(text string) { r.text = text }

var errBrokenBody = errors.New("broken body")
