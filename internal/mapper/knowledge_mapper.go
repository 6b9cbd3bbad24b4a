package mapper

import (
	"time"

	"email-responder-be/internal/entity"
	"email-responder-be/internal/model"

	"gorm.io/gorm"
)

type KnowledgeSnippetMapper struct{}

func NewKnowledgeSnippetMapper() *KnowledgeSnippetMapper {
	return &KnowledgeSnippetMapper{}
}

func (m *KnowledgeSnippetMapper) ToEntity(s *model.KnowledgeSnippet) *entity.KnowledgeSnippet {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeSnippet{
		Id:        s.Id,
		Title:     s.Title,
		Content:   s.Content,
		Intent:    s.Intent,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *KnowledgeSnippetMapper) ToModel(s *entity.KnowledgeSnippet) *model.KnowledgeSnippet {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.KnowledgeSnippet{
		Id:        s.Id,
		Title:     s.Title,
		Content:   s.Content,
		Intent:    s.Intent,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *KnowledgeSnippetMapper) ToEntities(snippets []*model.KnowledgeSnippet) []*entity.KnowledgeSnippet {
	entities := make([]*entity.KnowledgeSnippet, len(snippets))
	for i, s := range snippets {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
