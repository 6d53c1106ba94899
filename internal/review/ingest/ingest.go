package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/adapter/utils"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/commonModels"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/jobModel"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/embedding"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/vectorDB"
	"github.com/2CentsCapitalHR/adgm-review-api/pkg/logger_i"
)

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var logger *logger_i.Logger

func init() {
	logger = logger_i.NewLogger("Reference Ingestion")
}

// BuildReferenceIndex turns a run's reference uploads into a queryable
// collection. It happens exactly once per run, before any candidate is
// reviewed; every document in the batch then queries the same collection.
// A failure here fails the whole run - there is nothing to review against.
func BuildReferenceIndex(ctx context.Context, collectionName string, refs []jobModel.StoredFile, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) error {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if len(refs) == 0 {
		return errors.New("no reference files")
	}

	err := vectorDatabase.CreateCollection(ctx, collectionName)
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", collectionName, err)
	}

	var allChunks []commonModels.DocChunk
	for _, ref := range refs {
		docType := getDocType(ref.Path)
		if docType == commonModels.ERR {
			return fmt.Errorf("unsupported reference file: %s", ref.Name)
		}

		doc := commonModels.Document{
			Id:                  utils.GetNewUUID(),
			Name:                ref.Name,
			LastIngestTimestamp: time.Now(),
			ContentType:         docType,
		}

		pages, err := extractText(ref.Path, docType)
		if err != nil {
			return fmt.Errorf("extracting reference %s: %w", ref.Name, err)
		}

		chunks := PrepareChunks(pages, doc, config.GoogleEmbeddingModel)
		log.Debug("Prepared reference", "file", ref.Name, "pages", len(pages), "chunks", len(chunks))
		allChunks = append(allChunks, chunks...)
	}

	return BatchIngest(ctx, collectionName, allChunks, vectorDatabase, e)
}
