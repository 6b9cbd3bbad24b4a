package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeSnippet is one fact the reply generator can ground on,
// scoped to the email intent it is relevant for.
type KnowledgeSnippet struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string
	Content   string
	Intent    string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type SnippetEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	SnippetId      uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
