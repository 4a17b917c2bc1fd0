package docxpatch

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// Report describes one labeling or apply batch.
type Report struct {
	ID           string `json:"id"`
	InputDigest  string `json:"input_digest"`
	OutputDigest string `json:"output_digest"`
	Units        int    `json:"units"`
	// Suggested counts the raw entries extracted from the generator
	// output; Dropped those that could not be normalized.
	Suggested  int    `json:"suggested"`
	Normalized int    `json:"normalized"`
	Dropped    int    `json:"dropped"`
	Stats      Stats  `json:"stats"`
	Edits      []Edit `json:"edits,omitempty"`
}

// Digest returns the hex encoded BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewReport starts a report for a batch applied to doc, recording the
// digest of the document before any edit.
func NewReport(doc *Document) (*Report, error) {
	data, err := doc.Bytes()
	if err != nil {
		return nil, err
	}
	return &Report{
		ID:          uuid.New().String(),
		InputDigest: Digest(data),
	}, nil
}

// Finish records the digest of doc after the batch.
func (r *Report) Finish(doc *Document) error {
	data, err := doc.Bytes()
	if err != nil {
		return err
	}
	r.OutputDigest = Digest(data)
	return nil
}
