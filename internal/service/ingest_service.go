package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/util"
	"tangle_play_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PageOutline is one ordered page produced by document ingestion, the
// opaque input to level creation.
type PageOutline struct {
	PageNumber int    `json:"pageNumber"`
	OutlineURL string `json:"outlineUrl"`
}

// PageExtractor turns an uploaded document into ordered page outlines.
type PageExtractor interface {
	ExtractPages(ctx context.Context, category model.Category, document []byte) ([]PageOutline, error)
}

// IngestService is the document-to-level collaborator. Real outline
// extraction is a manual admin step; the service counts pages, archives the
// original PDF and stores one placeholder outline per page.
type IngestService struct {
	Storage *StorageService
}

func NewIngestService(storage *StorageService) *IngestService {
	return &IngestService{Storage: storage}
}

const maxUploadBytes = 50 << 20

func (s *IngestService) ExtractPages(ctx context.Context, category model.Category, document []byte) ([]PageOutline, error) {
	if len(document) == 0 {
		return nil, fmt.Errorf("%w: empty document", util.ErrValidation)
	}
	if len(document) > maxUploadBytes {
		return nil, fmt.Errorf("%w: document exceeds 50MB", util.ErrValidation)
	}
	if !bytes.HasPrefix(document, []byte("%PDF")) {
		return nil, fmt.Errorf("%w: only PDF documents are accepted", util.ErrValidation)
	}

	pageCount := countPDFPages(document)

	batch := uuid.New().String()
	archiveName := fmt.Sprintf("documents/%s/%s.pdf", category, batch)
	if _, err := s.Storage.Provider.Upload(ctx, archiveName, bytes.NewReader(document), int64(len(document)), "application/pdf"); err != nil {
		return nil, err
	}

	pages := make([]PageOutline, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		svg := placeholderOutline(category, i)
		name := fmt.Sprintf("outlines/%s/%s-p%d.svg", category, batch, i)
		url, err := s.Storage.Provider.Upload(ctx, name, strings.NewReader(svg), int64(len(svg)), "image/svg+xml")
		if err != nil {
			return nil, err
		}
		pages = append(pages, PageOutline{PageNumber: i, OutlineURL: url})
	}

	logger.Log.Info("document ingested",
		zap.String("category", string(category)),
		zap.String("batch", batch),
		zap.Int("pages", pageCount))

	return pages, nil
}

// countPDFPages counts page objects in the raw PDF. Good enough for the
// scanned puzzle sheets admins upload; a malformed file still yields one
// level that the admin can edit or delete.
func countPDFPages(document []byte) int {
	count := bytes.Count(document, []byte("/Type /Page")) - bytes.Count(document, []byte("/Type /Pages"))
	if count < 1 {
		count = bytes.Count(document, []byte("/Type/Page")) - bytes.Count(document, []byte("/Type/Pages"))
	}
	if count < 1 {
		return 1
	}
	return count
}

// placeholderOutline names the page, not the level: final numbers are only
// settled once the registry write wins its slot.
func placeholderOutline(category model.Category, pageNumber int) string {
	svg := fmt.Sprintf(`<svg width="400" height="300" xmlns="http://www.w3.org/2000/svg">
  <rect width="400" height="300" fill="#f0f0f0" stroke="#333" stroke-width="2"/>
  <text x="200" y="150" text-anchor="middle" font-size="16" fill="#333">%s Puzzle</text>
  <text x="200" y="180" text-anchor="middle" font-size="14" fill="#666">Page %d</text>
</svg>`, strings.ToUpper(string(category)), pageNumber)
	return svg
}
