package specification

import "gorm.io/gorm"

// ByIntent filters knowledge snippets by intent label
type ByIntent struct {
	Intent string
}

func (s ByIntent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("intent = ?", s.Intent)
}

// BySnippetId filters embeddings by their parent snippet
type BySnippetId struct {
	SnippetId interface{}
}

func (s BySnippetId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("snippet_id = ?", s.SnippetId)
}
