package service

import (
	"context"
	"fmt"

	"email-responder-be/internal/repository/unitofwork"
	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/embedding"
	"email-responder-be/pkg/retrieval"
)

// Similarity floor below which a snippet is noise rather than context.
const minSnippetSimilarity = 0.35

// snippetRetriever grounds reply generation on the knowledge base using
// pgvector cosine similarity.
type snippetRetriever struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewSnippetRetriever(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) retrieval.Retriever {
	return &snippetRetriever{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (r *snippetRetriever) Search(ctx context.Context, query string, intent string, limit int) ([]retrieval.Snippet, error) {
	res, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.SnippetEmbeddingRepository().SearchSimilarWithScore(
		ctx, res.Embedding.Values, limit, intent, minSnippetSimilarity)
	if err != nil {
		return nil, err
	}

	snippets := make([]retrieval.Snippet, len(scored))
	for i, s := range scored {
		snippets[i] = retrieval.Snippet{
			Content: s.Embedding.Document,
			Score:   s.Similarity,
			Intent:  intent,
		}
	}
	return snippets, nil
}

// CoveredIntents limits retrieval-augmented replies to the intents the
// knowledge base is curated for.
func (r *snippetRetriever) CoveredIntents() []string {
	return []string{classify.IntentAcademic, classify.IntentInternship, classify.IntentSupport}
}
