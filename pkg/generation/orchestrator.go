package generation

import (
	"context"
	"fmt"

	"email-responder-be/internal/pkg/logger"
	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/email"
)

// Acceptance thresholds, overridable through the orchestrator options.
const (
	DefaultRAGAcceptThreshold = 0.75
	DefaultLLMAcceptThreshold = 0.70
	fallbackConfidence        = 0.60
)

// StrategyEntry pairs a strategy with its acceptance threshold. A result is
// accepted only when its confidence exceeds the threshold; a zero threshold
// makes the strategy authoritative (first result wins).
type StrategyEntry struct {
	Strategy        Strategy
	AcceptThreshold float64
}

// Orchestrator sequences the generation strategies in preference order with
// greedy first-to-clear-threshold selection. It never returns an error to
// the caller: every internal failure degrades to a lower-confidence fallback.
type Orchestrator struct {
	entries  []StrategyEntry
	userName string
	logger   logger.ILogger
}

func NewOrchestrator(entries []StrategyEntry, userName string, log logger.ILogger) *Orchestrator {
	return &Orchestrator{
		entries:  entries,
		userName: userName,
		logger:   log,
	}
}

// Generate produces the best available draft for a message. The sentiment
// escalation flag short-circuits before any strategy runs, mirroring the
// decision engine's aggressive-tone override.
func (o *Orchestrator) Generate(ctx context.Context, msg email.Message, intent, urgency classify.Signal, sentiment classify.SentimentSignal) Result {
	if sentiment.Escalate {
		return Result{
			Method:   MethodEscalated,
			Reason:   "Aggressive tone detected - requires human review",
			Escalate: true,
		}
	}

	for _, entry := range o.entries {
		if !entry.Strategy.Applies(intent.Label) {
			continue
		}

		result := o.attempt(ctx, entry.Strategy, msg, intent, urgency, sentiment)
		if result == nil {
			continue
		}

		if entry.AcceptThreshold == 0 || result.Confidence > entry.AcceptThreshold {
			o.logger.Info("Generation", "Strategy accepted", map[string]interface{}{
				"message_id": msg.Id,
				"strategy":   entry.Strategy.Name(),
				"method":     string(result.Method),
				"confidence": result.Confidence,
			})
			return *result
		}

		o.logger.Debug("Generation", "Strategy below acceptance threshold", map[string]interface{}{
			"message_id": msg.Id,
			"strategy":   entry.Strategy.Name(),
			"confidence": result.Confidence,
			"threshold":  entry.AcceptThreshold,
		})
	}

	return Result{
		Draft:      FallbackDraft(o.userName),
		Method:     MethodFallback,
		Confidence: fallbackConfidence,
		Reason:     "All generation strategies failed",
	}
}

// attempt isolates one strategy call: errors and panics are logged and
// converted to "no result" so the chain continues.
func (o *Orchestrator) attempt(ctx context.Context, s Strategy, msg email.Message, intent, urgency classify.Signal, sentiment classify.SentimentSignal) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Generation", "Strategy panicked", map[string]interface{}{
				"message_id": msg.Id,
				"strategy":   s.Name(),
				"panic":      fmt.Sprint(r),
			})
			result = nil
		}
	}()

	result, err := s.Generate(ctx, msg, intent, urgency, sentiment)
	if err != nil {
		o.logger.Warn("Generation", "Strategy failed", map[string]interface{}{
			"message_id": msg.Id,
			"strategy":   s.Name(),
			"error":      err.Error(),
		})
		return nil
	}
	return result
}

// FallbackDraft is the fixed generic acknowledgment used when every strategy
// is disabled or produced nothing usable.
func FallbackDraft(userName string) string {
	return fmt.Sprintf("Hello,\n\nThank you for your email. I will respond shortly.\n\nBest regards,\n%s", userName)
}
