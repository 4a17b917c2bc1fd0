package docxpatch

import (
	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/patch"
	dxml "github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/xml"
)

// The types below present the WordprocessingML tree through the patch
// interfaces.

type container struct{ c *dxml.Container }

func (c container) Paragraphs() []patch.Paragraph {
	paras := c.c.Paragraphs()
	out := make([]patch.Paragraph, len(paras))
	for i, p := range paras {
		out[i] = paragraph{p}
	}
	return out
}

func (c container) Tables() []patch.Table {
	tables := c.c.Tables()
	out := make([]patch.Table, len(tables))
	for i, t := range tables {
		out[i] = table{t}
	}
	return out
}

type table struct{ t *dxml.Table }

func (t table) Rows() []patch.Row {
	rows := t.t.Rows()
	out := make([]patch.Row, len(rows))
	for i, r := range rows {
		out[i] = row{r}
	}
	return out
}

type row struct{ r *dxml.Row }

func (r row) Cells() []patch.Container {
	cells := r.r.Cells()
	out := make([]patch.Container, len(cells))
	for i, c := range cells {
		out[i] = container{c}
	}
	return out
}

type paragraph struct{ p *dxml.Paragraph }

// Identity is the paragraph element itself.
func (p paragraph) Identity() any { return p.p.Node() }

func (p paragraph) Runs() []patch.Run {
	runs := p.p.Runs()
	out := make([]patch.Run, len(runs))
	for i, r := range runs {
		out[i] = r
	}
	return out
}

func (p paragraph) Text() string { return p.p.Text() }

func (p paragraph) AppendRun(text string) patch.Run { return p.p.AppendRun(text) }

func (p paragraph) InsertBefore(text string) patch.Paragraph {
	return paragraph{p.p.InsertBefore(text)}
}

func (p paragraph) InsertAfter(text string) patch.Paragraph {
	return paragraph{p.p.InsertAfter(text)}
}
