package dataset

import (
	"context"

	"github.com/wonny/fiidash/pkg/metrics"
)

// FileSource serves the processed document straight from disk.
// Every call re-reads the file so a refresh is visible immediately.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file the source reads
func (s *FileSource) Path() string {
	return s.path
}

// Current loads the document
func (s *FileSource) Current(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	metrics.FundsLoaded.Set(float64(len(doc.Funds)))
	return doc, nil
}
