package review_test

import (
	"context"

	"github.com/2CentsCapitalHR/adgm-review-api/internal/domain/commonModels"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnSearch           func(ctx context.Context, collection string, vectorVal []float32, limit uint64) ([]string, error)
	OnCreateCollection func(ctx context.Context, name string) error
	OnDeleteCollection func(ctx context.Context, name string) error
	OnUpsertBatch      func(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error

	DeletedCollections []string
}

func (m *MockVectorDB) Search(ctx context.Context, collection string, v []float32, limit uint64) ([]string, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, collection, v, limit)
	}
	return []string{"default reference passage"}, nil
}

func (m *MockVectorDB) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) DeleteCollection(ctx context.Context, name string) error {
	m.DeletedCollections = append(m.DeletedCollections, name)
	if m.OnDeleteCollection != nil {
		return m.OnDeleteCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks, vectors)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	// Return dummy vectors matching chunk size
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnReview func(ctx context.Context, instruction string) (string, error)
}

func (m *MockLLM) Review(ctx context.Context, instruction string) (string, error) {
	if m.OnReview != nil {
		return m.OnReview(ctx, instruction)
	}
	return `{"document":"mock","issues":[]}`, nil
}
