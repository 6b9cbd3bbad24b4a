package decision

import (
	"fmt"

	"email-responder-be/pkg/classify"
)

// Action is the routing outcome for one message.
type Action string

const (
	ActionEscalate   Action = "ESCALATE"
	ActionIgnore     Action = "IGNORE"
	ActionDraftReply Action = "DRAFT_REPLY"
)

// Decision carries the action plus a human-readable reason.
// Derived, never stored: recomputed on each run.
type Decision struct {
	Action Action `json:"action"`
	Reason string `json:"reason"`
}

// DefaultThresholds returns the per-intent confidence floor table.
// Intents absent from the table use DefaultThreshold.
func DefaultThresholds() map[string]float64 {
	return map[string]float64{
		classify.IntentAcademic:   0.80,
		classify.IntentInternship: 0.75,
		classify.IntentMeeting:    0.70,
		classify.IntentSpam:       0.0,
	}
}

// DefaultThreshold applies to any intent not in the threshold table.
// Intentionally conservative.
const DefaultThreshold = 0.85

// Engine maps the three classification signals to an action.
// Pure and stateless: no side effects, nothing retained between calls.
type Engine struct {
	thresholds       map[string]float64
	defaultThreshold float64
}

func NewEngine(thresholds map[string]float64, defaultThreshold float64) *Engine {
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultThreshold
	}
	return &Engine{
		thresholds:       thresholds,
		defaultThreshold: defaultThreshold,
	}
}

// Decide applies, in strict order: the aggressive-tone safety override, the
// per-intent confidence floor, the spam short-circuit, then DRAFT_REPLY.
func (e *Engine) Decide(intent, urgency classify.Signal, tone classify.Signal) Decision {
	if tone.Label == classify.ToneAggressive {
		return Decision{
			Action: ActionEscalate,
			Reason: "Aggressive tone detected",
		}
	}

	minConfidence := min3(intent.Confidence, urgency.Confidence, tone.Confidence)
	threshold, ok := e.thresholds[intent.Label]
	if !ok {
		threshold = e.defaultThreshold
	}

	if minConfidence < threshold {
		return Decision{
			Action: ActionEscalate,
			Reason: fmt.Sprintf("Low confidence (%.2f)", minConfidence),
		}
	}

	if intent.Label == classify.IntentSpam {
		return Decision{
			Action: ActionIgnore,
			Reason: "Spam detected",
		}
	}

	return Decision{
		Action: ActionDraftReply,
		Reason: "Safe to draft response",
	}
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
