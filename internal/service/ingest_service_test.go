package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tangle_play_backend/internal/config"
	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/util"
	"tangle_play_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func localIngest(t *testing.T) (*IngestService, string) {
	t.Helper()
	dir := t.TempDir()
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{Type: "local", LocalPath: dir},
	}}
	return NewIngestService(storage), dir
}

// three page objects plus the page-tree node that must not be counted
var samplePDF = []byte(`%PDF-1.4
1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj
2 0 obj << /Type /Pages /Kids [3 0 R 4 0 R 5 0 R] /Count 3 >> endobj
3 0 obj << /Type /Page /Parent 2 0 R >> endobj
4 0 obj << /Type /Page /Parent 2 0 R >> endobj
5 0 obj << /Type /Page /Parent 2 0 R >> endobj
%%EOF`)

func TestCountPDFPages(t *testing.T) {
	assert.Equal(t, 3, countPDFPages(samplePDF))
	// compact writers omit the space after /Type
	assert.Equal(t, 2, countPDFPages([]byte("%PDF /Type/Pages /Type/Page /Type/Page")))
	// no recognizable page objects still yields one level
	assert.Equal(t, 1, countPDFPages([]byte("%PDF-1.4 garbage")))
}

func TestExtractPagesRejectsBadInput(t *testing.T) {
	svc, _ := localIngest(t)
	ctx := context.Background()

	_, err := svc.ExtractPages(ctx, model.CategoryTangle, nil)
	assert.True(t, errors.Is(err, util.ErrValidation))

	_, err = svc.ExtractPages(ctx, model.CategoryTangle, []byte("not a pdf"))
	assert.True(t, errors.Is(err, util.ErrValidation))

	huge := make([]byte, maxUploadBytes+1)
	copy(huge, "%PDF")
	_, err = svc.ExtractPages(ctx, model.CategoryTangle, huge)
	assert.True(t, errors.Is(err, util.ErrValidation))
}

func TestExtractPages(t *testing.T) {
	svc, dir := localIngest(t)

	pages, err := svc.ExtractPages(context.Background(), model.CategoryTangle, samplePDF)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	for i, page := range pages {
		assert.Equal(t, i+1, page.PageNumber)
		assert.Contains(t, page.OutlineURL, "/uploads/outlines/tangle/")
	}

	// the original document is archived alongside the outlines
	archives, err := filepath.Glob(filepath.Join(dir, "documents", "tangle", "*.pdf"))
	require.NoError(t, err)
	assert.Len(t, archives, 1)

	outlines, err := filepath.Glob(filepath.Join(dir, "outlines", "tangle", "*.svg"))
	require.NoError(t, err)
	require.Len(t, outlines, 3)

	// placeholders label the page only; level numbers are assigned later by
	// the registry and may shift on a lost create race
	data, err := os.ReadFile(outlines[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "TANGLE Puzzle")
	assert.Contains(t, string(data), "Page 1")
	assert.NotContains(t, string(data), "Level")
}
