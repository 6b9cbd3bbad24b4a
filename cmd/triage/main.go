package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"email-responder-be/internal/pkg/logger"
	"email-responder-be/internal/repository/memory"
	"email-responder-be/pkg/approval"
	"email-responder-be/pkg/classify"
	"email-responder-be/pkg/decision"
	"email-responder-be/pkg/draftstore"
	"email-responder-be/pkg/email"
	"email-responder-be/pkg/generation"
	"email-responder-be/pkg/generation/template"
	"email-responder-be/pkg/ingestion"
	"email-responder-be/pkg/validation"

	"github.com/fatih/color"
)

// Offline walkthrough of the triage pipeline: runs a batch of sample
// emails end to end, then drops into the operator approval chat on
// stdin. No database, broker, or LLM backend required.

const operatorName = "Sam"

var sampleEmails = []email.Message{
	{
		Id:      "email-001",
		Sender:  "prof.jones@university.edu",
		Subject: "Question about the midterm exam",
		Body:    "Hi,\n\nCould you clarify which chapters the midterm will cover? The deadline is March 15 for study group signups.\n\nThanks,\nProf. Jones",
	},
	{
		Id:      "email-002",
		Sender:  "recruiting@techcorp.com",
		Subject: "Internship opportunity - Summer 2026",
		Body:    "Hello,\n\nWe reviewed your resume and would like to discuss a summer internship position with our platform team. Are you available for a call this week?\n\nBest,\nTechCorp Recruiting",
	},
	{
		Id:      "email-003",
		Sender:  "angry.customer@example.com",
		Subject: "URGENT: this is unacceptable",
		Body:    "This is absolutely ridiculous and unacceptable. I demand an immediate response or I will escalate this further!!!",
	},
	{
		Id:      "email-004",
		Sender:  "promo@deals4you.biz",
		Subject: "You won a FREE prize! Click here now",
		Body:    "Congratulations!!! You have been selected for a limited time offer. Click here to claim your free prize now! Act now, 100% free, no credit card required!",
	},
	{
		Id:      "email-005",
		Sender:  "classmate@university.edu",
		Subject: "Re: Meeting about the group project",
		Body:    "Hey,\n\nCan we schedule a meeting tomorrow to sync on the group project? I'm free after 2pm.\n\nCheers",
	},
}

func main() {
	headline := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)
	warning := color.New(color.FgYellow)
	danger := color.New(color.FgRed)

	preprocessor := ingestion.NewPreprocessor()
	intents := classify.NewIntentClassifier()
	urgency := classify.NewUrgencyDetector()
	sentiment := classify.NewSentimentAnalyzer()
	engine := decision.NewEngine(nil, 0)
	validator := validation.NewValidator(nil)

	orchestrator := generation.NewOrchestrator(
		[]generation.StrategyEntry{
			{Strategy: template.NewStrategy(operatorName)},
		},
		operatorName,
		logger.NewNoopLogger(),
	)

	drafts := draftstore.NewStore("data/demo_drafts.json")
	ctx := context.Background()

	headline.Println("=== Email Triage Walkthrough ===")

	for _, msg := range sampleEmails {
		fmt.Println()
		headline.Printf("--- %s | %s ---\n", msg.Sender, msg.Subject)

		cleaned := preprocessor.Preprocess(msg)
		classifiable := email.Message{
			Id:      msg.Id,
			Sender:  msg.Sender,
			Subject: cleaned.CleanedSubject,
			Body:    cleaned.CleanedBody,
		}

		intentSignal := intents.Classify(classifiable)
		urgencySignal := urgency.Detect(classifiable)
		sentimentSignal := sentiment.Analyze(classifiable)

		fmt.Printf("Intent:    %s (%.2f)\n", intentSignal.Label, intentSignal.Confidence)
		fmt.Printf("Urgency:   %s (%.2f)\n", urgencySignal.Label, urgencySignal.Confidence)
		fmt.Printf("Sentiment: %s (%.2f)\n", sentimentSignal.Label, sentimentSignal.Confidence)

		verdict := engine.Decide(intentSignal, urgencySignal, sentimentSignal.Signal)
		switch verdict.Action {
		case decision.ActionIgnore:
			warning.Printf("Action: IGNORE (%s)\n", verdict.Reason)
			continue
		case decision.ActionEscalate:
			danger.Printf("Action: ESCALATE (%s)\n", verdict.Reason)
			continue
		}

		generated := orchestrator.Generate(ctx, classifiable, intentSignal, urgencySignal, sentimentSignal)
		if generated.Escalate {
			danger.Printf("Action: ESCALATE (%s)\n", generated.Reason)
			continue
		}

		report := validator.Validate(validation.Input{
			Draft:                    generated.Draft,
			Intent:                   intentSignal.Label,
			Sentiment:                sentimentSignal.Label,
			GenerationConfidence:     generated.Confidence,
			ClassificationConfidence: intentSignal.Confidence,
		})
		if report.Recommendation == validation.RecommendEscalate {
			danger.Println("Action: ESCALATE (draft failed validation)")
			continue
		}

		if err := drafts.Put(draftstore.Record{MessageId: msg.Id, Text: generated.Draft, Email: msg}); err != nil {
			log.Fatalf("Failed to queue draft: %v", err)
		}

		success.Printf("Action: DRAFT QUEUED via %s (%.2f)\n", generated.Method, generated.Confidence)
		fmt.Println()
		fmt.Println(indent(generated.Draft, "    "))
	}

	runApprovalChat(drafts, headline, success)
}

// runApprovalChat lets the operator review the queued drafts from stdin
// using the same state machine as the websocket surface.
func runApprovalChat(drafts *draftstore.Store, headline, success *color.Color) {
	machine := approval.NewMachine(memory.NewSessionRepository(0), drafts)

	fmt.Println()
	headline.Println("=== Approval Chat ===")
	fmt.Println("Type a draft id to focus it, then 'send', 'modify', or 'ignore'. 'list' shows pending drafts, 'quit' exits.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		ids, err := drafts.ListIds()
		if err != nil {
			log.Fatalf("Failed to list drafts: %v", err)
		}
		if len(ids) == 0 {
			success.Println("All drafts handled. Done.")
			return
		}

		fmt.Printf("\n> ")
		if !scanner.Scan() {
			return
		}
		input := scanner.Text()
		trimmed := strings.TrimSpace(input)

		// While the machine awaits modification text, everything is
		// draft body, even "list" or a draft id.
		awaiting := machine.AwaitingText(operatorName)
		if !awaiting {
			switch {
			case strings.EqualFold(trimmed, "quit"), strings.EqualFold(trimmed, "exit"):
				return
			case strings.EqualFold(trimmed, "list"):
				fmt.Println("Pending drafts:")
				for _, id := range ids {
					fmt.Printf("  %s\n", id)
				}
				continue
			}
		}

		var reply approval.Reply
		if !awaiting && isDraftId(ids, trimmed) {
			reply, err = machine.Focus(operatorName, trimmed)
		} else {
			reply, err = machine.Handle(operatorName, input)
		}
		if err != nil {
			log.Fatalf("Approval error: %v", err)
		}
		fmt.Println(reply.Text)
	}
}

func isDraftId(ids []string, input string) bool {
	for _, id := range ids {
		if id == input {
			return true
		}
	}
	return false
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
