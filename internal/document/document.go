// Package document handles the PDFs the backend generates from templates.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrEmpty is returned for a zero-length document
var ErrEmpty = errors.New("empty document")

// Info describes a generated PDF
type Info struct {
	Pages int
	Size  int
}

var configOnce sync.Once

func newConfig() *model.Configuration {
	// keep pdfcpu from writing its config under the user's home
	configOnce.Do(func() {
		model.ConfigPath = "disable"
	})
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Inspect validates a PDF and returns its page count
func Inspect(pdf []byte) (*Info, error) {
	if len(pdf) == 0 {
		return nil, ErrEmpty
	}

	conf := newConfig()
	if err := api.Validate(bytes.NewReader(pdf), conf); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	pages, err := api.PageCount(bytes.NewReader(pdf), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	return &Info{Pages: pages, Size: len(pdf)}, nil
}

var unsafeName = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// FileName is the download name of a document: "<template> - <entity>.pdf"
func FileName(template, entity string) string {
	template = strings.TrimSpace(unsafeName.Replace(template))
	entity = strings.TrimSpace(unsafeName.Replace(entity))

	name := template
	switch {
	case name == "":
		name = entity
	case entity != "":
		name += " - " + entity
	}
	if name == "" {
		name = "documento"
	}
	return name + ".pdf"
}

// ExportFileName is the name of a contract spreadsheet exported on day
func ExportFileName(day time.Time) string {
	return "contratos_" + day.Format("2006-01-02") + ".xlsx"
}

// Save writes data to dir/name and returns the path
func Save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}
