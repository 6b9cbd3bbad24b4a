package events

import "time"

// Event type codes carried on the bus. Subscribers filter on
// "events.<TYPE>" subjects.
const (
	TypeDraftCreated     = "DRAFT_CREATED"
	TypeMessageEscalated = "MESSAGE_ESCALATED"
	TypeMessageIgnored   = "MESSAGE_IGNORED"
	TypeDraftDispatched  = "DRAFT_DISPATCHED"
	TypeDraftDiscarded   = "DRAFT_DISCARDED"
	TypeDraftModified    = "DRAFT_MODIFIED"
)

func NewDraftCreatedEvent(messageId, sender, method string, confidence float64) Event {
	return BaseEvent{
		Type: TypeDraftCreated,
		Data: map[string]interface{}{
			"message_id": messageId,
			"sender":     sender,
			"method":     method,
			"confidence": confidence,
		},
		OccurredAt: time.Now(),
	}
}

func NewMessageEscalatedEvent(messageId, sender, reason string) Event {
	return BaseEvent{
		Type: TypeMessageEscalated,
		Data: map[string]interface{}{
			"message_id": messageId,
			"sender":     sender,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewMessageIgnoredEvent(messageId, sender, reason string) Event {
	return BaseEvent{
		Type: TypeMessageIgnored,
		Data: map[string]interface{}{
			"message_id": messageId,
			"sender":     sender,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewDraftDispositionEvent(eventType, messageId, operatorId string) Event {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"message_id":  messageId,
			"operator_id": operatorId,
		},
		OccurredAt: time.Now(),
	}
}
