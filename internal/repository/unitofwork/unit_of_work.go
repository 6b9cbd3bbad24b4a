package unitofwork

import (
	"context"

	"email-responder-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KnowledgeSnippetRepository() contract.KnowledgeSnippetRepository
	SnippetEmbeddingRepository() contract.SnippetEmbeddingRepository
}
