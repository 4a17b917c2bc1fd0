package docxpatch

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/patch"
	dxml "github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/xml"
)

// Document is a DOCX package opened for patching. The main document part
// and every header and footer part referenced by a section are parsed;
// all other parts are carried through unchanged on Save.
//
// Document implements patch.Document. A Document is not safe for
// concurrent use.
type Document struct {
	path     string
	pkg      *Package
	main     *dxml.Part
	parts    map[string]*dxml.Part // header and footer parts by part name
	sections []*section
}

// Open reads and parses the DOCX file at path.
func Open(path string) (*Document, error) {
	pkg, err := PackageFromFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return load(pkg, path)
}

// Load parses a DOCX package read from r.
func Load(r io.ReaderAt, size int64) (*Document, error) {
	pkg, err := NewPackage(r, size)
	if err != nil {
		return nil, NewDocumentError("load", "", err)
	}
	return load(pkg, "")
}

// LoadBytes parses a DOCX package held in memory.
func LoadBytes(data []byte) (*Document, error) {
	return Load(bytes.NewReader(data), int64(len(data)))
}

func load(pkg *Package, path string) (*Document, error) {
	mainName, err := pkg.MainDocumentPart()
	if err != nil {
		return nil, NewDocumentError("load", path, fmt.Errorf("%w: %v", ErrInvalidDocument, err))
	}
	content, err := pkg.GetPart(mainName)
	if err != nil {
		return nil, NewDocumentError("load", path, err)
	}
	main, err := dxml.ParsePart(mainName, content)
	if err != nil {
		return nil, NewDocumentError("parse", path, err)
	}

	doc := &Document{
		path:  path,
		pkg:   pkg,
		main:  main,
		parts: make(map[string]*dxml.Part),
	}
	if err := doc.resolveSections(); err != nil {
		return nil, NewDocumentError("load", path, err)
	}

	WithFields(Fields{
		"part":     mainName,
		"sections": len(doc.sections),
		"headers":  len(doc.parts),
		"entries":  len(pkg.ListParts()),
	}).Debug("Loaded document")
	return doc, nil
}

// section holds the header and footer parts one w:sectPr refers to.
type section struct {
	parts map[patch.HeaderFooterKind]*dxml.Part
}

var referenceKinds = map[patch.HeaderFooterKind][2]string{
	patch.HeaderDefault: {dxml.HeaderReference, dxml.TypeDefault},
	patch.HeaderFirst:   {dxml.HeaderReference, dxml.TypeFirst},
	patch.HeaderEven:    {dxml.HeaderReference, dxml.TypeEven},
	patch.FooterDefault: {dxml.FooterReference, dxml.TypeDefault},
	patch.FooterFirst:   {dxml.FooterReference, dxml.TypeFirst},
	patch.FooterEven:    {dxml.FooterReference, dxml.TypeEven},
}

// resolveSections parses every header and footer the sections refer to.
// A part referenced by several sections is parsed once and shared, so its
// paragraphs keep one identity.
func (d *Document) resolveSections() error {
	props, err := d.main.Sections()
	if err != nil {
		// A main part without a body is reported when it is traversed.
		return nil
	}

	rels, err := d.pkg.GetRelationships(d.main.Name)
	if err != nil {
		return err
	}
	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		if rel.TargetMode == "External" {
			continue
		}
		if rel.Type == relTypeHeader || rel.Type == relTypeFooter {
			targets[rel.ID] = ResolveTarget(d.main.Name, rel.Target)
		}
	}

	for _, sp := range props {
		s := &section{parts: make(map[patch.HeaderFooterKind]*dxml.Part)}
		for kind, ref := range referenceKinds {
			id, ok := sp.Reference(ref[0], ref[1])
			if !ok {
				continue
			}
			name, ok := targets[id]
			if !ok {
				Debug("Section references unknown relationship %s", id)
				continue
			}
			part, err := d.part(name)
			if err != nil {
				return err
			}
			if part != nil {
				s.parts[kind] = part
			}
		}
		d.sections = append(d.sections, s)
	}
	return nil
}

// part returns the parsed part with the given name, parsing it on first
// use. A name missing from the package yields nil.
func (d *Document) part(name string) (*dxml.Part, error) {
	if p, ok := d.parts[name]; ok {
		return p, nil
	}
	if _, ok := d.pkg.Parts[name]; !ok {
		Debug("Referenced part %s is missing from the package", name)
		return nil, nil
	}
	content, err := d.pkg.GetPart(name)
	if err != nil {
		return nil, err
	}
	p, err := dxml.ParsePart(name, content)
	if err != nil {
		return nil, err
	}
	d.parts[name] = p
	return p, nil
}

// Path returns the file the document was opened from, if any.
func (d *Document) Path() string { return d.path }

// Body implements patch.Document.
func (d *Document) Body() (patch.Container, error) {
	body, err := d.main.Body()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return container{body}, nil
}

// Sections implements patch.Document.
func (d *Document) Sections() ([]patch.Section, error) {
	out := make([]patch.Section, len(d.sections))
	for i, s := range d.sections {
		out[i] = s
	}
	return out, nil
}

// HeaderFooter implements patch.Section.
func (s *section) HeaderFooter(kind patch.HeaderFooterKind) patch.Container {
	part, ok := s.parts[kind]
	if !ok {
		return nil
	}
	c := part.Container()
	if c == nil {
		return nil
	}
	return container{c}
}

// Save writes the document as a DOCX package to w.
func (d *Document) Save(w io.Writer) error {
	var errs []error
	replaced := make(map[string][]byte, len(d.parts)+1)

	for _, part := range append([]*dxml.Part{d.main}, d.partList()...) {
		content, err := part.Bytes()
		if err != nil {
			errs = append(errs, &PartError{Part: part.Name, Cause: err})
			continue
		}
		replaced[part.Name] = content
	}
	if len(errs) > 0 {
		return NewDocumentError("save", d.path, joinPartErrors(errs))
	}

	if err := d.pkg.Write(w, replaced); err != nil {
		return NewDocumentError("save", d.path, err)
	}
	return nil
}

func (d *Document) partList() []*dxml.Part {
	out := make([]*dxml.Part, 0, len(d.parts))
	for _, p := range d.parts {
		out = append(out, p)
	}
	return out
}

// SaveFile writes the document to path.
func (d *Document) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return NewDocumentError("save", path, err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return NewDocumentError("save", path, err)
	}
	return nil
}

// Bytes returns the document as a DOCX package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
