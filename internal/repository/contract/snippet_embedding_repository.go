package contract

import (
	"context"

	"email-responder-be/internal/entity"
	"email-responder-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredSnippetEmbedding wraps SnippetEmbedding with its similarity score
type ScoredSnippetEmbedding struct {
	Embedding  *entity.SnippetEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type SnippetEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.SnippetEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.SnippetEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySnippetId(ctx context.Context, snippetId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SnippetEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity
	// scores for one intent, filtered by threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, intent string, threshold float64) ([]*ScoredSnippetEmbedding, error)
}
