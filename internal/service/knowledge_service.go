package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"email-responder-be/internal/dto"
	"email-responder-be/internal/entity"
	"email-responder-be/internal/repository/specification"
	"email-responder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Create(ctx context.Context, req *dto.CreateSnippetRequest) (*dto.CreateSnippetResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SnippetResponse, error)
	List(ctx context.Context, intent string, limit, offset int) (*dto.ListSnippetsResponse, error)
	Update(ctx context.Context, req *dto.UpdateSnippetRequest) (*dto.SnippetResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// knowledgeService manages the reply knowledge base. Writes enqueue an
// embed job so retrieval stays in sync without blocking the request.
type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *knowledgeService) Create(ctx context.Context, req *dto.CreateSnippetRequest) (*dto.CreateSnippetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	snippet := entity.KnowledgeSnippet{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Intent:    req.Intent,
		CreatedAt: time.Now(),
	}

	err := uow.KnowledgeSnippetRepository().Create(ctx, &snippet)
	if err != nil {
		return nil, err
	}

	if err := s.enqueueEmbed(ctx, snippet.Id); err != nil {
		return nil, err
	}

	return &dto.CreateSnippetResponse{Id: snippet.Id}, nil
}

func (s *knowledgeService) Show(ctx context.Context, id uuid.UUID) (*dto.SnippetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	snippet, err := uow.KnowledgeSnippetRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if snippet == nil {
		return nil, nil // Not found
	}

	res := toSnippetResponse(snippet)
	return &res, nil
}

func (s *knowledgeService) List(ctx context.Context, intent string, limit, offset int) (*dto.ListSnippetsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.KnowledgeSnippetRepository()

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if intent != "" {
		specs = append(specs, specification.ByIntent{Intent: intent})
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}

	snippets, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	intents, err := repo.DistinctIntents(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.ListSnippetsResponse{
		Snippets: make([]dto.SnippetResponse, 0, len(snippets)),
		Intents:  intents,
	}
	for _, snippet := range snippets {
		res.Snippets = append(res.Snippets, toSnippetResponse(snippet))
	}
	return res, nil
}

func (s *knowledgeService) Update(ctx context.Context, req *dto.UpdateSnippetRequest) (*dto.SnippetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	snippet, err := uow.KnowledgeSnippetRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if snippet == nil {
		return nil, fmt.Errorf("snippet %s not found", req.Id)
	}

	now := time.Now()
	snippet.Title = req.Title
	snippet.Content = req.Content
	snippet.Intent = req.Intent
	snippet.UpdatedAt = &now

	err = uow.KnowledgeSnippetRepository().Update(ctx, snippet)
	if err != nil {
		return nil, err
	}

	// Content changed, so the stored embeddings are stale.
	if err := s.enqueueEmbed(ctx, snippet.Id); err != nil {
		return nil, err
	}

	res := toSnippetResponse(snippet)
	return &res, nil
}

func (s *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	err = uow.SnippetEmbeddingRepository().DeleteBySnippetId(ctx, id)
	if err != nil {
		return err
	}

	err = uow.KnowledgeSnippetRepository().Delete(ctx, id)
	if err != nil {
		return err
	}

	return uow.Commit()
}

func (s *knowledgeService) enqueueEmbed(ctx context.Context, snippetId uuid.UUID) error {
	msgPayload := dto.PublishEmbedSnippetMessage{
		SnippetId: snippetId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

func toSnippetResponse(snippet *entity.KnowledgeSnippet) dto.SnippetResponse {
	return dto.SnippetResponse{
		Id:        snippet.Id,
		Title:     snippet.Title,
		Content:   snippet.Content,
		Intent:    snippet.Intent,
		CreatedAt: snippet.CreatedAt,
	}
}
