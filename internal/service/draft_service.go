package service

import (
	"context"
	"fmt"

	"email-responder-be/internal/dto"
	"email-responder-be/pkg/draftstore"
	"email-responder-be/pkg/events"
	pktNats "email-responder-be/pkg/nats"
)

type IDraftService interface {
	List(ctx context.Context) (*dto.ListDraftsResponse, error)
	Show(ctx context.Context, messageId string) (*dto.DraftResponse, error)
	UpdateText(ctx context.Context, operatorId, messageId string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error)
	Discard(ctx context.Context, operatorId, messageId string) error
}

// draftService is the REST view over the pending-draft queue. The chat
// flow goes through the approval machine instead; both share the store.
type draftService struct {
	drafts    *draftstore.Store
	publisher *pktNats.Publisher
}

func NewDraftService(drafts *draftstore.Store, publisher *pktNats.Publisher) IDraftService {
	return &draftService{
		drafts:    drafts,
		publisher: publisher,
	}
}

func (s *draftService) List(ctx context.Context) (*dto.ListDraftsResponse, error) {
	ids, err := s.drafts.ListIds()
	if err != nil {
		return nil, err
	}
	return &dto.ListDraftsResponse{Ids: ids}, nil
}

func (s *draftService) Show(ctx context.Context, messageId string) (*dto.DraftResponse, error) {
	record, ok, err := s.drafts.Get(messageId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil // Not found
	}
	res := toDraftResponse(record)
	return &res, nil
}

func (s *draftService) UpdateText(ctx context.Context, operatorId, messageId string, req *dto.UpdateDraftRequest) (*dto.DraftResponse, error) {
	updated, err := s.drafts.UpdateText(messageId, req.Text)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, nil // Not found
	}

	s.publishDisposition(ctx, events.TypeDraftModified, messageId, operatorId)

	record, ok, err := s.drafts.Get(messageId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("draft %s disappeared after update", messageId)
	}
	res := toDraftResponse(record)
	return &res, nil
}

func (s *draftService) Discard(ctx context.Context, operatorId, messageId string) error {
	removed, err := s.drafts.Remove(messageId)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("draft %s not found", messageId)
	}

	s.publishDisposition(ctx, events.TypeDraftDiscarded, messageId, operatorId)
	return nil
}

func (s *draftService) publishDisposition(ctx context.Context, eventType, messageId, operatorId string) {
	if s.publisher == nil {
		return
	}
	event := events.NewDraftDispositionEvent(eventType, messageId, operatorId)
	// Auxiliary, the draft mutation already succeeded.
	_ = s.publisher.Publish(ctx, event)
}

func toDraftResponse(record draftstore.Record) dto.DraftResponse {
	return dto.DraftResponse{
		MessageId: record.MessageId,
		Text:      record.Text,
		Sender:    record.Email.Sender,
		Subject:   record.Email.Subject,
		Body:      record.Email.Body,
	}
}
