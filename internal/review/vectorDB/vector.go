package vectorDB

import (
	"context"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/commonModels"
)

// DataProcessor is the reference-index capability the review pipeline
// consumes. Collections are named per review run: created before ingest,
// queried during review, dropped when the run is over.
type DataProcessor interface {
	CreateCollection(ctx context.Context, collectionName string) error
	DeleteCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error
	Search(ctx context.Context, collectionName string, vectorVal []float32, limit uint64) ([]string, error)
}
