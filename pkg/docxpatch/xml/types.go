package xml

import (
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

// Namespace URIs used by the parts this package reads and writes.
const (
	NamespaceMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceXML           = "http://www.w3.org/XML/1998/namespace"
)

// isElement reports whether n is a WordprocessingML element with the given
// local name.
func isElement(n *xmlquery.Node, local string) bool {
	return n != nil && n.Type == xmlquery.ElementNode && n.Data == local && inMain(n)
}

func inMain(n *xmlquery.Node) bool {
	// Parts built by hand sometimes omit the namespace declaration; the
	// conventional prefix is accepted for them.
	return n.NamespaceURI == NamespaceMain || (n.NamespaceURI == "" && n.Prefix == "w")
}

// children returns the direct element children of n with the given local name.
func children(n *xmlquery.Node, local string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// child returns the first direct element child of n with the given local name.
func child(n *xmlquery.Node, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, local) {
			return c
		}
	}
	return nil
}

// attr returns the value of the attribute with the given local name whose
// namespace is either the URI or the prefix given in ns.
func attr(n *xmlquery.Node, ns, prefix, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local != local {
			continue
		}
		if a.NamespaceURI == ns || a.Name.Space == prefix || a.Name.Space == ns {
			return a.Value, true
		}
	}
	return "", false
}

// mainAttr returns a w:-qualified attribute value.
func mainAttr(n *xmlquery.Node, local string) (string, bool) {
	return attr(n, NamespaceMain, "w", local)
}

// newElement creates a detached WordprocessingML element that uses the same
// prefix as like, so that new content matches the namespace declarations of
// the part it is inserted into.
func newElement(like *xmlquery.Node, local string) *xmlquery.Node {
	prefix := "w"
	if like != nil && inMain(like) {
		prefix = like.Prefix
	}
	return &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         local,
		Prefix:       prefix,
		NamespaceURI: NamespaceMain,
	}
}

func preserveSpaceAttr() xmlquery.Attr {
	return xmlquery.Attr{
		Name:         xml.Name{Space: "xml", Local: "space"},
		Value:        "preserve",
		NamespaceURI: NamespaceXML,
	}
}

// appendChild links n as the last child of parent.
func appendChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.NextSibling = nil
	n.PrevSibling = parent.LastChild
	if parent.LastChild != nil {
		parent.LastChild.NextSibling = n
	} else {
		parent.FirstChild = n
	}
	parent.LastChild = n
}

// insertBefore links n as the sibling immediately preceding ref.
func insertBefore(ref, n *xmlquery.Node) {
	parent := ref.Parent
	n.Parent = parent
	n.NextSibling = ref
	n.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = n
	} else if parent != nil {
		parent.FirstChild = n
	}
	ref.PrevSibling = n
}

// insertAfter links n as the sibling immediately following ref.
func insertAfter(ref, n *xmlquery.Node) {
	parent := ref.Parent
	n.Parent = parent
	n.PrevSibling = ref
	n.NextSibling = ref.NextSibling
	if ref.NextSibling != nil {
		ref.NextSibling.PrevSibling = n
	} else if parent != nil {
		parent.LastChild = n
	}
	ref.NextSibling = n
}

// clone returns a deep, detached copy of n.
func clone(n *xmlquery.Node) *xmlquery.Node {
	c := &xmlquery.Node{
		Type:         n.Type,
		Data:         n.Data,
		Prefix:       n.Prefix,
		NamespaceURI: n.NamespaceURI,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]xmlquery.Attr, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		appendChild(c, clone(ch))
	}
	return c
}
