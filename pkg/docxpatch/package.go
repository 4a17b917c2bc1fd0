package docxpatch

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"

	defaultMainPart = "word/document.xml"
)

// Package gives access to the parts of a DOCX (OPC) zip archive.
type Package struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// NewPackage indexes the zip archive read from r.
func NewPackage(r io.ReaderAt, size int64) (*Package, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	p := &Package{
		reader: zipReader,
		Parts:  make(map[string]*zip.File, len(zipReader.File)),
	}
	for _, file := range zipReader.File {
		p.Parts[file.Name] = file
	}
	return p, nil
}

// PackageFromFile reads the archive at path into memory and indexes it.
func PackageFromFile(path string) (*Package, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return NewPackage(bytes.NewReader(content), int64(len(content)))
}

// GetPart retrieves the content of a specific part
func (p *Package) GetPart(partName string) ([]byte, error) {
	file, ok := p.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}
	return content, nil
}

// ListParts returns the part names in archive order.
func (p *Package) ListParts() []string {
	parts := make([]string, 0, len(p.reader.File))
	for _, file := range p.reader.File {
		parts = append(parts, file.Name)
	}
	return parts
}

// GetRelationships retrieves relationships for a given part. A part
// without a relationships file has none.
func (p *Package) GetRelationships(partName string) ([]Relationship, error) {
	relPath := relationshipsPath(partName)
	if _, ok := p.Parts[relPath]; !ok {
		return []Relationship{}, nil
	}

	content, err := p.GetPart(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels.Relationship, nil
}

// MainDocumentPart returns the name of the main document part, found
// through the package relationships.
func (p *Package) MainDocumentPart() (string, error) {
	rels, err := p.GetRelationships("")
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if rel.Type == relTypeOfficeDocument {
			name := ResolveTarget("", rel.Target)
			if _, ok := p.Parts[name]; ok {
				return name, nil
			}
		}
	}
	if _, ok := p.Parts[defaultMainPart]; ok {
		return defaultMainPart, nil
	}
	return "", fmt.Errorf("not a valid DOCX file: missing %s", defaultMainPart)
}

// relationshipsPath returns the relationships part of partName, e.g.
// "word/document.xml" -> "word/_rels/document.xml.rels". The package
// itself is the empty part name.
func relationshipsPath(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// ResolveTarget returns the part name a relationship target of source
// refers to. Targets are relative to the directory of source unless they
// start with a slash.
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir("/"+source), target), "/")
}

// Write writes the package to w. Parts named in replaced are written
// with the given content; every other entry is copied unchanged.
func (p *Package) Write(w io.Writer, replaced map[string][]byte) error {
	zw := zip.NewWriter(w)

	for _, file := range p.reader.File {
		content, ok := replaced[file.Name]
		if !ok {
			if err := zw.Copy(file); err != nil {
				return fmt.Errorf("failed to copy %s: %w", file.Name, err)
			}
			continue
		}

		header := &zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: file.Modified,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file.Name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish zip: %w", err)
	}
	return nil
}
