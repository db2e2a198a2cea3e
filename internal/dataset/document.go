package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/fiidash/internal/contracts"
)

// ErrMissingFunds is returned when a document has no "fiis" key
var ErrMissingFunds = errors.New("dataset: document has no fiis key")

// TimestampLayout is how "atualizacao" is written (Python isoformat, local time)
const TimestampLayout = "2006-01-02T15:04:05.999999"

// Document is the JSON file exchanged between the pipeline and the dashboard
// ⭐ SSOT: 데이터 문서 형식은 여기서만
type Document struct {
	UpdatedAt    string                  `json:"atualizacao"`
	Funds        []*contracts.FundRecord `json:"fiis"`
	SettingsHash string                  `json:"settingsHash,omitempty"`
	RunID        string                  `json:"runId,omitempty"`
}

// NewDocument stamps funds with now
func NewDocument(funds []*contracts.FundRecord, now time.Time) *Document {
	if funds == nil {
		funds = []*contracts.FundRecord{}
	}
	return &Document{
		UpdatedAt: now.Format(TimestampLayout),
		Funds:     funds,
	}
}

// UpdatedTime parses UpdatedAt; both the Python isoformat and RFC3339 are accepted
func (d *Document) UpdatedTime() (time.Time, error) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, d.UpdatedAt, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid atualizacao %q", d.UpdatedAt)
}

// Decode reads a document. An empty fiis array is valid; a missing key is not.
func Decode(r io.Reader) (*Document, error) {
	var raw struct {
		UpdatedAt    string           `json:"atualizacao"`
		Funds        *json.RawMessage `json:"fiis"`
		SettingsHash string           `json:"settingsHash"`
		RunID        string           `json:"runId"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if raw.Funds == nil {
		return nil, ErrMissingFunds
	}

	doc := &Document{
		UpdatedAt:    raw.UpdatedAt,
		SettingsHash: raw.SettingsHash,
		RunID:        raw.RunID,
	}
	if err := json.Unmarshal(*raw.Funds, &doc.Funds); err != nil {
		return nil, fmt.Errorf("decode fiis: %w", err)
	}
	if doc.Funds == nil {
		return nil, ErrMissingFunds
	}
	return doc, nil
}

// Load reads a document from path
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes doc as indented UTF-8 JSON without HTML escaping
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Save writes doc to path atomically (temp file + rename)
func Save(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Archive saves a timestamped copy of doc into dir and returns its path
func Archive(dir string, doc *Document, now time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("fiis_%s.json", now.Format("20060102_150405")))
	if err := Save(path, doc); err != nil {
		return "", err
	}
	return path, nil
}
