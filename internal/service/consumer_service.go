package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"email-responder-be/internal/dto"
	"email-responder-be/internal/entity"
	"email-responder-be/internal/repository/specification"
	"email-responder-be/internal/repository/unitofwork"
	"email-responder-be/pkg/embedding"
	"email-responder-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds knowledge snippets in the background so writes
// to the knowledge base return immediately.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedSnippetMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for SnippetId: %s", payload.SnippetId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	snippet, err := uow.KnowledgeSnippetRepository().FindOne(ctx, specification.ByID{ID: payload.SnippetId})
	if err != nil {
		log.Printf("[ERROR] Failed to get snippet %s: %v", payload.SnippetId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if snippet == nil {
		log.Printf("[ERROR] Snippet not found: %s", payload.SnippetId)
		msg.Ack() // Snippet deleted? Ack.
		return
	}

	content := fmt.Sprintf(`Snippet Title: %s
Intent: %s

%s`,
		snippet.Title,
		snippet.Intent,
		snippet.Content,
	)

	// ChunkSize 1500 chars with 200 overlap keeps chunks well inside the
	// embedding model's context limit.
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.SnippetEmbedding

	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of snippet %s: %v", i, payload.SnippetId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.SnippetEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			SnippetId:      snippet.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.SnippetEmbeddingRepository().DeleteBySnippetId(ctx, snippet.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.SnippetEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create bulk embeddings: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Snippet embedded: %d chunks for SnippetId: %s", len(newEmbeddings), payload.SnippetId)
	msg.Ack()
}
