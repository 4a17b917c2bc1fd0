package xml

import "github.com/antchfx/xmlquery"

// Reference kinds.
const (
	HeaderReference = "header"
	FooterReference = "footer"
)

// Reference types as they appear in the w:type attribute.
const (
	TypeDefault = "default"
	TypeFirst   = "first"
	TypeEven    = "even"
)

// Reference points from a section to one of its header or footer parts.
type Reference struct {
	Kind string // HeaderReference or FooterReference
	Type string // TypeDefault, TypeFirst or TypeEven
	ID   string // relationship id of the target part
}

// SectionProperties wraps a w:sectPr element.
type SectionProperties struct {
	node *xmlquery.Node
}

// References returns the header and footer references of the section in
// the order they appear. A reference without w:type is a default one.
func (s *SectionProperties) References() []Reference {
	var refs []Reference
	for c := s.node.FirstChild; c != nil; c = c.NextSibling {
		var kind string
		switch {
		case isElement(c, "headerReference"):
			kind = HeaderReference
		case isElement(c, "footerReference"):
			kind = FooterReference
		default:
			continue
		}

		typ, ok := mainAttr(c, "type")
		if !ok || typ == "" {
			typ = TypeDefault
		}
		id, _ := attr(c, NamespaceRelationships, "r", "id")
		refs = append(refs, Reference{Kind: kind, Type: typ, ID: id})
	}
	return refs
}

// Reference returns the relationship id for the given kind and type.
func (s *SectionProperties) Reference(kind, typ string) (string, bool) {
	for _, ref := range s.References() {
		if ref.Kind == kind && ref.Type == typ && ref.ID != "" {
			return ref.ID, true
		}
	}
	return "", false
}
