package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/adapter/utils"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/config"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/commonModels"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/embedding"
	"github.com/2CentsCapitalHR/adgm-review-api/internal/review/vectorDB"
)

//splitter

func splitTextIntoChunks(text string, limit int, overlap int) []string {
	var chunks []string

	if len(text) <= limit {
		return []string{text}
	}

	// Separators ordered from "best" to "worst" for semantic meaning
	separators := []string{"\n\n", "\n", ". ", " ", ""}

	var splitChar string
	found := false
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			found = true
			break
		}
	}

	if !found {
		// Hard cut if no separator found (rare)
		return []string{text[:limit]}
	}

	parts := strings.Split(text, splitChar)
	var currentChunk strings.Builder

	for _, part := range parts {
		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			// Start the next chunk with the tail of the previous one so
			// meaning is not cut mid-thought
			overlapContent := ""
			if currentChunk.Len() > overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}

		if currentChunk.Len() > 0 && splitChar != "" {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".txt", ".rtf", ".odt":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

func extractText(path string, contentType commonModels.DocType) ([]rawPage, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.TXT:
		return extractTxtRtfOdt(path)

	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

func PrepareChunks(pages []rawPage, doc commonModels.Document, embeddingModel string) []commonModels.DocChunk {
	var allChunks []commonModels.DocChunk

	for _, page := range pages {
		stringChunks := splitTextIntoChunks(page.Content, config.ChunkSize, config.ChunkOverlap)

		// Image-only or scanned pages extract to empty text; they carry
		// nothing to embed and must not reach the vector store.
		order := 0
		for _, text := range stringChunks {
			if strings.TrimSpace(text) == "" {
				continue
			}
			allChunks = append(allChunks, commonModels.DocChunk{
				Doc:                doc,
				ChunkId:            utils.GetNewUUID(),
				Chunk:              text,
				PageNum:            page.Number,
				ChunkPageOrder:     order,
				EmbeddingDimension: embeddingModel,
			})
			order++
		}
	}

	return allChunks
}

// BatchIngest embeds reference chunks in batches of 100 and upserts each
// batch into the run's collection.
func BatchIngest(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectorDB vectorDB.DataProcessor, embedder embedding.Embedder) error {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	batchSize := 100

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		// Empty chunks are dropped from the batch itself, not just the
		// embed call, so chunks and vectors stay paired one to one.
		currentBatch := make([]commonModels.DocChunk, 0, end-i)
		var texts []string
		for _, c := range chunks[i:end] {
			if c.Chunk != "" {
				currentBatch = append(currentBatch, c)
				texts = append(texts, c.Chunk)
			}
		}
		if len(currentBatch) == 0 {
			continue
		}

		log.Debug("Starting embedding call", "batch length", len(currentBatch), "texts", len(texts))
		vectors, err := embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		err = vectorDB.UpsertBatch(ctx, collectionName, currentBatch, vectors)
		if err != nil {
			return fmt.Errorf("upserting to qdrant failed: %w", err)
		}
	}

	return nil
}
