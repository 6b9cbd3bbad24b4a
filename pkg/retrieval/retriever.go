package retrieval

import "context"

// Snippet is one knowledge fragment returned by a similarity search,
// scored in [0,1] where higher is more relevant.
type Snippet struct {
	Content string
	Score   float64
	Intent  string
}

// Retriever finds knowledge snippets relevant to an email, scoped to the
// intents the knowledge base covers.
type Retriever interface {
	// Search returns up to limit snippets ordered by descending score.
	// An empty slice means the knowledge base has nothing useful.
	Search(ctx context.Context, query string, intent string, limit int) ([]Snippet, error)

	// CoveredIntents lists the intent labels the knowledge base can ground.
	CoveredIntents() []string
}
