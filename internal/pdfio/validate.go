package pdfio

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidationResult reports whether a file is a structurally valid PDF.
type ValidationResult struct {
	Path      string `json:"path"`
	Valid     bool   `json:"valid"`
	PageCount int    `json:"page_count,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ValidateFile checks that the file exists and passes relaxed pdfcpu
// structural validation, and reports its page count. The error return is for
// I/O level failures only; a malformed PDF yields Valid=false.
func ValidateFile(ctx context.Context, path string) (*ValidationResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	result := &ValidationResult{
		Path:      path,
		SizeBytes: info.Size(),
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		result.Error = err.Error()
		return result, nil
	}
	result.Valid = true

	if count, err := api.PageCountFile(path); err == nil {
		result.PageCount = count
	}

	return result, nil
}
