package docxpatch

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// fixturePart is an extra part of a test package, referenced from the
// main document by relID when relType is set.
type fixturePart struct {
	name    string
	relID   string
	relType string
	target  string
	content string
}

func headerPart(name, relID, text string) fixturePart {
	return fixturePart{
		name:    "word/" + name,
		relID:   relID,
		relType: relTypeHeader,
		target:  name,
		content: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
			`<w:hdr xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:hdr>`,
	}
}

func footerPart(name, relID, text string) fixturePart {
	return fixturePart{
		name:    "word/" + name,
		relID:   relID,
		relType: relTypeFooter,
		target:  name,
		content: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
			`<w:ftr xmlns:w="` + nsW + `" xmlns:r="` + nsR + `"><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:ftr>`,
	}
}

// createDOCXBytes builds a minimal DOCX package whose body holds the given
// WordprocessingML.
func createDOCXBytes(body string, extras ...fixturePart) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	rels, _ := w.Create("_rels/.rels")
	io.WriteString(rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="`+relTypeOfficeDocument+`" Target="word/document.xml"/>
</Relationships>`)

	var docRels strings.Builder
	docRels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	docRels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, p := range extras {
		if p.relType == "" {
			continue
		}
		docRels.WriteString(`<Relationship Id="` + p.relID + `" Type="` + p.relType + `" Target="` + p.target + `"/>`)
	}
	docRels.WriteString(`</Relationships>`)
	wordRels, _ := w.Create("word/_rels/document.xml.rels")
	io.WriteString(wordRels, docRels.String())

	doc, _ := w.Create("word/document.xml")
	io.WriteString(doc, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
		`<w:document xmlns:w="`+nsW+`" xmlns:r="`+nsR+`"><w:body>`+body+`</w:body></w:document>`)

	for _, p := range extras {
		f, _ := w.Create(p.name)
		io.WriteString(f, p.content)
	}

	ct, _ := w.Create("[Content_Types].xml")
	io.WriteString(ct, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	w.Close()
	return buf.Bytes()
}

// simpleParagraph returns a paragraph with one run per text.
func simpleParagraph(texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, t := range texts {
		b.WriteString(`<w:r><w:t xml:space="preserve">` + t + `</w:t></w:r>`)
	}
	b.WriteString("</w:p>")
	return b.String()
}

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + nsW + `"><w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/></w:style></w:styles>`

// layeredDOCX has body paragraphs, a table, two sections sharing a default
// header, a default footer and a first-page header.
func layeredDOCX() []byte {
	body := simpleParagraph("Dear ", "John Smith", ":") +
		`<w:p><w:pPr><w:sectPr>` +
		`<w:headerReference w:type="default" r:id="rId10"/>` +
		`<w:footerReference w:type="default" r:id="rId11"/>` +
		`</w:sectPr></w:pPr><w:r><w:t>End of section one</w:t></w:r></w:p>` +
		`<w:tbl><w:tr>` +
		`<w:tc>` + simpleParagraph("Name: ____") + `</w:tc>` +
		`<w:tc>` + simpleParagraph("Date: ____") + `</w:tc>` +
		`</w:tr></w:tbl>` +
		`<w:sectPr>` +
		`<w:headerReference w:type="default" r:id="rId10"/>` +
		`<w:headerReference w:type="first" r:id="rId12"/>` +
		`</w:sectPr>`

	return createDOCXBytes(body,
		headerPart("header1.xml", "rId10", "Header text"),
		footerPart("footer1.xml", "rId11", "Page footer"),
		headerPart("header2.xml", "rId12", "First page"),
		fixturePart{name: "word/styles.xml", content: stylesXML},
	)
}

func loadFixture(t *testing.T, data []byte) *Document {
	t.Helper()
	doc, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}
	return doc
}

// zipEntry returns the content of one entry of a zip archive.
func zipEntry(t *testing.T, data []byte, name string) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return content
	}
	t.Fatalf("entry %s not found", name)
	return nil
}
