package pdfio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendError(t *testing.T) {
	cause := errors.New("boom")
	err := &BackendError{Backend: BackendLedongthuc, Op: "extract_page", Err: cause}

	assert.Contains(t, err.Error(), "ledongthuc")
	assert.Contains(t, err.Error(), "extract_page")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestRenderedPageCloseNoTempFile(t *testing.T) {
	r := &RenderedPage{}
	assert.NoError(t, r.Close())
}

func TestRenderedPageCloseRemovesTempFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "render-*.png")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	r := &RenderedPage{TempPath: f.Name()}
	require.NoError(t, r.Close())

	_, err = os.Stat(f.Name())
	assert.True(t, os.IsNotExist(err))

	// Second close is a no-op.
	assert.NoError(t, r.Close())
}

func TestValidateFileMissing(t *testing.T) {
	_, err := ValidateFile(context.Background(), "/nonexistent/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestValidateFileNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 512)), 0o644))

	result, err := ValidateFile(context.Background(), path)
	require.NoError(t, err, "a malformed PDF is a result, not an error")
	require.NotNil(t, result)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, int64(512), result.SizeBytes)
}

func TestLedongthucExtractorBackend(t *testing.T) {
	l := NewLedongthucExtractor()
	assert.Equal(t, BackendLedongthuc, l.Backend())
	assert.NoError(t, l.Close())
}

func TestLedongthucExtractorOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	l := NewLedongthucExtractor()

	_, err := l.ExtractPage(context.Background(), path, 1)
	require.Error(t, err)
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, BackendLedongthuc, backendErr.Backend)
	assert.Equal(t, "extract_page", backendErr.Op)

	_, err = l.PageCount(context.Background(), path)
	require.Error(t, err)
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "page_count", backendErr.Op)
}
