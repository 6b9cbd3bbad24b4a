package implementation

import (
	"context"

	"email-responder-be/internal/entity"
	"email-responder-be/internal/mapper"
	"email-responder-be/internal/model"
	"email-responder-be/internal/repository/contract"
	"email-responder-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SnippetEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SnippetEmbeddingMapper
}

func NewSnippetEmbeddingRepository(db *gorm.DB) contract.SnippetEmbeddingRepository {
	return &SnippetEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewSnippetEmbeddingMapper(),
	}
}

func (r *SnippetEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SnippetEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.SnippetEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *SnippetEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.SnippetEmbedding) error {
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *SnippetEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SnippetEmbedding{}, id).Error
}

func (r *SnippetEmbeddingRepositoryImpl) DeleteBySnippetId(ctx context.Context, snippetId uuid.UUID) error {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.BySnippetId{SnippetId: snippetId})
	return query.Delete(&model.SnippetEmbedding{}).Error
}

func (r *SnippetEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SnippetEmbedding, error) {
	var models []*model.SnippetEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SnippetEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SnippetEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore runs a cosine similarity search scoped to one
// intent. pgvector's <=> operator is cosine distance, so similarity is
// 1 - distance.
func (r *SnippetEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, intent string, threshold float64) ([]*contract.ScoredSnippetEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.SnippetEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("snippet_embeddings").
		Select("snippet_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN knowledge_snippets ON knowledge_snippets.id = snippet_embeddings.snippet_id").
		Where("knowledge_snippets.intent = ?", intent).
		Where("snippet_embeddings.deleted_at IS NULL").
		Where("knowledge_snippets.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredSnippetEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredSnippetEmbedding{
			Embedding:  r.mapper.ToEntity(&res.SnippetEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
