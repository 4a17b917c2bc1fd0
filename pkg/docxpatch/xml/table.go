package xml

import "github.com/antchfx/xmlquery"

// Table wraps a w:tbl element.
type Table struct {
	node *xmlquery.Node
}

// Node returns the underlying element.
func (t *Table) Node() *xmlquery.Node { return t.node }

// Rows returns the direct w:tr children in document order.
func (t *Table) Rows() []*Row {
	nodes := children(t.node, "tr")
	out := make([]*Row, len(nodes))
	for i, n := range nodes {
		out[i] = &Row{node: n}
	}
	return out
}

// Row wraps a w:tr element.
type Row struct {
	node *xmlquery.Node
}

// Node returns the underlying element.
func (r *Row) Node() *xmlquery.Node { return r.node }

// Cells returns the cells of the row. A cell that continues a vertical
// merge started in an earlier row is skipped: its content belongs to the
// cell that started the merge.
func (r *Row) Cells() []*Container {
	var out []*Container
	for _, tc := range children(r.node, "tc") {
		if continuesMerge(tc) {
			continue
		}
		out = append(out, &Container{node: tc})
	}
	return out
}

func continuesMerge(tc *xmlquery.Node) bool {
	props := child(tc, "tcPr")
	if props == nil {
		return false
	}
	vmerge := child(props, "vMerge")
	if vmerge == nil {
		return false
	}
	val, _ := mainAttr(vmerge, "val")
	return val != "restart"
}
