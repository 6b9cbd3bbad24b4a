package mapper

import (
	"time"

	"email-responder-be/internal/entity"
	"email-responder-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SnippetEmbeddingMapper struct{}

func NewSnippetEmbeddingMapper() *SnippetEmbeddingMapper {
	return &SnippetEmbeddingMapper{}
}

func (m *SnippetEmbeddingMapper) ToEntity(e *model.SnippetEmbedding) *entity.SnippetEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.SnippetEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		SnippetId:      e.SnippetId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *SnippetEmbeddingMapper) ToModel(e *entity.SnippetEmbedding) *model.SnippetEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.SnippetEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		SnippetId:      e.SnippetId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *SnippetEmbeddingMapper) ToEntities(embeddings []*model.SnippetEmbedding) []*entity.SnippetEmbedding {
	entities := make([]*entity.SnippetEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *SnippetEmbeddingMapper) ToModels(embeddings []*entity.SnippetEmbedding) []*model.SnippetEmbedding {
	models := make([]*model.SnippetEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
