package contract

import (
	"context"

	"email-responder-be/internal/entity"
	"email-responder-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeSnippetRepository interface {
	Create(ctx context.Context, snippet *entity.KnowledgeSnippet) error
	Update(ctx context.Context, snippet *entity.KnowledgeSnippet) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeSnippet, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeSnippet, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DistinctIntents lists the intent labels that have at least one
	// live snippet.
	DistinctIntents(ctx context.Context) ([]string, error)
}
