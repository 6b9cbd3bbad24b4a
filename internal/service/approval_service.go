package service

import (
	"context"
	"fmt"
	"strings"

	"email-responder-be/internal/pkg/logger"
	"email-responder-be/pkg/approval"
	"email-responder-be/pkg/draftstore"
	"email-responder-be/pkg/events"
	pktNats "email-responder-be/pkg/nats"
)

type IApprovalService interface {
	HandleOperatorMessage(ctx context.Context, operatorId, input string) (string, error)
}

// approvalService is the conversational layer over the approval state
// machine. Operator chat messages come in over the websocket, get routed
// through the machine, and dispositions are announced on the event bus.
type approvalService struct {
	machine   *approval.Machine
	drafts    *draftstore.Store
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewApprovalService(
	sessions approval.SessionRepository,
	drafts *draftstore.Store,
	publisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IApprovalService {
	return &approvalService{
		machine:   approval.NewMachine(sessions, drafts),
		drafts:    drafts,
		publisher: publisher,
		logger:    sysLogger,
	}
}

// HandleOperatorMessage interprets one chat line from an operator.
// "list" enumerates pending drafts, "/draft <id>" focuses one, anything
// else is fed to the state machine for the focused draft. When the
// machine is awaiting modification text those commands are suspended;
// the message is the new draft body.
func (s *approvalService) HandleOperatorMessage(ctx context.Context, operatorId, input string) (string, error) {
	trimmed := strings.TrimSpace(input)

	var (
		reply approval.Reply
		err   error
	)

	switch {
	case s.machine.AwaitingText(operatorId):
		// The whole message is the replacement draft body, even one
		// that looks like a command.
		reply, err = s.machine.Handle(operatorId, input)
	case strings.EqualFold(trimmed, "list"):
		return s.listDrafts()
	case strings.HasPrefix(trimmed, "/draft "):
		draftId := strings.TrimSpace(strings.TrimPrefix(trimmed, "/draft "))
		reply, err = s.machine.Focus(operatorId, draftId)
	default:
		reply, err = s.machine.Handle(operatorId, input)
	}
	if err != nil {
		s.logger.Error("Approval", "Operator command failed", map[string]interface{}{
			"operator_id": operatorId,
			"error":       err.Error(),
		})
		return "", err
	}

	s.publishOutcome(ctx, operatorId, reply)
	return reply.Text, nil
}

func (s *approvalService) listDrafts() (string, error) {
	ids, err := s.drafts.ListIds()
	if err != nil {
		return "", fmt.Errorf("failed to list drafts: %w", err)
	}
	if len(ids) == 0 {
		return "No drafts pending approval.", nil
	}

	var b strings.Builder
	b.WriteString("Pending drafts:\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "- /draft %s\n", id)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *approvalService) publishOutcome(ctx context.Context, operatorId string, reply approval.Reply) {
	var eventType string
	switch reply.Outcome {
	case approval.OutcomeSent:
		eventType = events.TypeDraftDispatched
	case approval.OutcomeDiscarded:
		eventType = events.TypeDraftDiscarded
	case approval.OutcomeModified:
		eventType = events.TypeDraftModified
	default:
		return
	}

	if s.publisher == nil {
		return
	}
	event := events.NewDraftDispositionEvent(eventType, reply.DraftId, operatorId)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Approval", "Failed to publish disposition event", map[string]interface{}{
			"event_type": eventType,
			"draft_id":   reply.DraftId,
			"error":      err.Error(),
		})
	}
}
