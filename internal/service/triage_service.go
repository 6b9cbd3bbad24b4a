package service

import (
	"context"
	"fmt"

	"email-responder-be/internal/dto"
	"email-responder-be/internal/pkg/logger"
	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/decision"
	"email-responder-be/pkg/draftstore"
	"email-responder-be/pkg/email"
	"email-responder-be/pkg/events"
	"email-responder-be/pkg/generation"
	"email-responder-be/pkg/ingestion"
	pktNats "email-responder-be/pkg/nats"
	"email-responder-be/pkg/validation"

	"github.com/google/uuid"
)

type ITriageService interface {
	Triage(ctx context.Context, req *dto.TriageRequest) (*dto.TriageResponse, error)
	TriageRaw(ctx context.Context, req *dto.RawTriageRequest) (*dto.TriageResponse, error)
	TriageBatch(ctx context.Context, req *dto.TriageBatchRequest) (*dto.TriageBatchResponse, error)
}

// triageService runs the full pipeline: preprocess, classify, decide,
// generate, validate, and queue the draft for operator approval.
type triageService struct {
	parser       *ingestion.Parser
	preprocessor *ingestion.Preprocessor
	intents      *classify.IntentClassifier
	urgency      *classify.UrgencyDetector
	sentiment    *classify.SentimentAnalyzer
	engine       *decision.Engine
	orchestrator *generation.Orchestrator
	validator    *validation.Validator
	drafts       *draftstore.Store
	publisher    *pktNats.Publisher
	logger       logger.ILogger
}

func NewTriageService(
	orchestrator *generation.Orchestrator,
	drafts *draftstore.Store,
	publisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) ITriageService {
	return &triageService{
		parser:       ingestion.NewParser(),
		preprocessor: ingestion.NewPreprocessor(),
		intents:      classify.NewIntentClassifier(),
		urgency:      classify.NewUrgencyDetector(),
		sentiment:    classify.NewSentimentAnalyzer(),
		engine:       decision.NewEngine(nil, 0),
		orchestrator: orchestrator,
		validator:    validation.NewValidator(nil),
		drafts:       drafts,
		publisher:    publisher,
		logger:       sysLogger,
	}
}

func (s *triageService) Triage(ctx context.Context, req *dto.TriageRequest) (*dto.TriageResponse, error) {
	msg := email.Message{
		Id:      req.Id,
		Sender:  req.Sender,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if msg.Id == "" {
		msg.Id = uuid.NewString()
	}
	return s.triageMessage(ctx, msg)
}

// TriageRaw accepts an unparsed RFC 822 message and runs it through the
// same pipeline.
func (s *triageService) TriageRaw(ctx context.Context, req *dto.RawTriageRequest) (*dto.TriageResponse, error) {
	msg, err := s.parser.Parse(req.Raw, req.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse raw email: %w", err)
	}
	return s.triageMessage(ctx, msg)
}

func (s *triageService) triageMessage(ctx context.Context, msg email.Message) (*dto.TriageResponse, error) {
	cleaned := s.preprocessor.Preprocess(msg)
	classifiable := email.Message{
		Id:      msg.Id,
		Sender:  msg.Sender,
		Subject: cleaned.CleanedSubject,
		Body:    cleaned.CleanedBody,
	}

	intent := s.intents.Classify(classifiable)
	urgency := s.urgency.Detect(classifiable)
	sentiment := s.sentiment.Analyze(classifiable)

	verdict := s.engine.Decide(intent, urgency, sentiment.Signal)

	s.logger.Info("Triage", "Message classified", map[string]interface{}{
		"message_id": msg.Id,
		"intent":     intent.Label,
		"urgency":    urgency.Label,
		"sentiment":  sentiment.Label,
		"action":     string(verdict.Action),
	})

	res := &dto.TriageResponse{
		Id:        msg.Id,
		Action:    string(verdict.Action),
		Reason:    verdict.Reason,
		Intent:    toSignalResponse(intent),
		Urgency:   toSignalResponse(urgency),
		Sentiment: toSignalResponse(sentiment.Signal),
	}

	switch verdict.Action {
	case decision.ActionIgnore:
		s.publish(ctx, events.NewMessageIgnoredEvent(msg.Id, msg.Sender, verdict.Reason))
		return res, nil
	case decision.ActionEscalate:
		s.publish(ctx, events.NewMessageEscalatedEvent(msg.Id, msg.Sender, verdict.Reason))
		return res, nil
	}

	generated := s.orchestrator.Generate(ctx, classifiable, intent, urgency, sentiment)
	res.Method = string(generated.Method)
	res.Confidence = generated.Confidence

	if generated.Escalate {
		res.Action = string(decision.ActionEscalate)
		res.Reason = generated.Reason
		s.publish(ctx, events.NewMessageEscalatedEvent(msg.Id, msg.Sender, generated.Reason))
		return res, nil
	}

	report := s.validator.Validate(validation.Input{
		Draft:                    generated.Draft,
		Intent:                   intent.Label,
		Sentiment:                sentiment.Label,
		GenerationConfidence:     generated.Confidence,
		ClassificationConfidence: minConfidence(intent, urgency, sentiment.Signal),
	})
	res.Validation = &report

	if report.Recommendation == validation.RecommendEscalate {
		res.Action = string(decision.ActionEscalate)
		res.Reason = "draft failed validation"
		s.publish(ctx, events.NewMessageEscalatedEvent(msg.Id, msg.Sender, res.Reason))
		return res, nil
	}

	if err := s.drafts.Put(draftstore.Record{
		MessageId: msg.Id,
		Text:      generated.Draft,
		Email:     msg,
	}); err != nil {
		return nil, fmt.Errorf("failed to queue draft: %w", err)
	}
	res.Draft = generated.Draft

	s.publish(ctx, events.NewDraftCreatedEvent(msg.Id, msg.Sender, string(generated.Method), generated.Confidence))

	return res, nil
}

func (s *triageService) TriageBatch(ctx context.Context, req *dto.TriageBatchRequest) (*dto.TriageBatchResponse, error) {
	results := make([]dto.TriageResponse, 0, len(req.Emails))
	for i := range req.Emails {
		res, err := s.Triage(ctx, &req.Emails[i])
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return &dto.TriageBatchResponse{Results: results}, nil
}

func (s *triageService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Triage", "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

func toSignalResponse(signal classify.Signal) dto.SignalResponse {
	return dto.SignalResponse{
		Label:      signal.Label,
		Confidence: signal.Confidence,
		Reasoning:  signal.Reasoning,
	}
}

func minConfidence(signals ...classify.Signal) float64 {
	min := 1.0
	for _, s := range signals {
		if s.Confidence < min {
			min = s.Confidence
		}
	}
	return min
}
