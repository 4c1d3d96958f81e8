package extractor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-summary-server/internal/extractor"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestExtractText_InvalidPDF(t *testing.T) {
	e := extractor.NewPDFExtractor()
	path := writeTempFile(t, "broken.pdf", []byte("это вообще не PDF"))

	pages, err := e.ExtractText(context.Background(), path)

	require.Error(t, err)
	assert.Nil(t, pages)

	var extractErr *extractor.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "не удалось открыть PDF", extractErr.Reason)
}

func TestExtractText_MissingFile(t *testing.T) {
	e := extractor.NewPDFExtractor()

	_, err := e.ExtractText(context.Background(), filepath.Join(t.TempDir(), "нет-такого.pdf"))

	var extractErr *extractor.ExtractionError
	require.ErrorAs(t, err, &extractErr)
}

func TestExtractionError_Message(t *testing.T) {
	err := &extractor.ExtractionError{Reason: "не удалось открыть PDF"}
	assert.Contains(t, err.Error(), "не удалось открыть PDF")
}
