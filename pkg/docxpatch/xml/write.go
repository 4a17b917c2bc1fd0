package xml

import (
	"bufio"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\t", "&#9;",
		"\n", "&#10;",
		"\r", "&#13;",
	)
)

// writeNode serializes n exactly as stored: no indentation is added and no
// whitespace is trimmed, so untouched content round-trips unchanged.
// Elements without children are written self-closing.
func writeNode(w *bufio.Writer, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(w, c)
		}

	case xmlquery.DeclarationNode:
		w.WriteString("<?")
		w.WriteString(n.Data)
		for _, a := range n.Attr {
			w.WriteByte(' ')
			w.WriteString(a.Name.Local)
			w.WriteString(`="`)
			w.WriteString(attrEscaper.Replace(a.Value))
			w.WriteByte('"')
		}
		w.WriteString("?>")
		if n.NextSibling != nil && n.NextSibling.Type == xmlquery.ElementNode {
			w.WriteByte('\n')
		}

	case xmlquery.ElementNode:
		w.WriteByte('<')
		writeName(w, n.Prefix, n.Data)
		for _, a := range n.Attr {
			w.WriteByte(' ')
			space := a.Name.Space
			if space == NamespaceXML {
				space = "xml"
			}
			writeName(w, space, a.Name.Local)
			w.WriteString(`="`)
			w.WriteString(attrEscaper.Replace(a.Value))
			w.WriteByte('"')
		}
		if n.FirstChild == nil {
			w.WriteString("/>")
			return
		}
		w.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNode(w, c)
		}
		w.WriteString("</")
		writeName(w, n.Prefix, n.Data)
		w.WriteByte('>')

	case xmlquery.TextNode:
		w.WriteString(textEscaper.Replace(n.Data))

	case xmlquery.CharDataNode:
		w.WriteString("<![CDATA[")
		w.WriteString(n.Data)
		w.WriteString("]]>")

	case xmlquery.CommentNode:
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->")
	}
}

func writeName(w *bufio.Writer, prefix, local string) {
	if prefix != "" {
		w.WriteString(prefix)
		w.WriteByte(':')
	}
	w.WriteString(local)
}

// Write serializes the subtree rooted at n to out.
func Write(out io.Writer, n *xmlquery.Node) error {
	w := bufio.NewWriter(out)
	writeNode(w, n)
	return w.Flush()
}
