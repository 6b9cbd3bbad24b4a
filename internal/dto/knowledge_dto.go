package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSnippetRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	Intent  string `json:"intent" validate:"required,oneof=academic internship meeting support complaint general"`
}

type CreateSnippetResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateSnippetRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   string    `json:"title" validate:"required,max=255"`
	Content string    `json:"content" validate:"required"`
	Intent  string    `json:"intent" validate:"required,oneof=academic internship meeting support complaint general"`
}

type SnippetResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Intent    string    `json:"intent"`
	CreatedAt time.Time `json:"created_at"`
}

type ListSnippetsResponse struct {
	Snippets []SnippetResponse `json:"snippets"`
	Intents  []string          `json:"intents"`
}

// PublishEmbedSnippetMessage is the async embed-pipeline payload.
type PublishEmbedSnippetMessage struct {
	SnippetId uuid.UUID `json:"snippet_id"`
}
