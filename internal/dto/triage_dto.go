package dto

import "email-responder-be/pkg/validation"

type TriageRequest struct {
	Id      string `json:"id"`
	Sender  string `json:"sender" validate:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" validate:"required"`
}

type SignalResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type TriageResponse struct {
	Id         string             `json:"id"`
	Action     string             `json:"action"`
	Reason     string             `json:"reason"`
	Intent     SignalResponse     `json:"intent"`
	Urgency    SignalResponse     `json:"urgency"`
	Sentiment  SignalResponse     `json:"sentiment"`
	Method     string             `json:"method,omitempty"`
	Confidence float64            `json:"confidence,omitempty"`
	Draft      string             `json:"draft,omitempty"`
	Validation *validation.Result `json:"validation,omitempty"`
}

// RawTriageRequest carries an unparsed RFC 822 message.
type RawTriageRequest struct {
	Id  string `json:"id"`
	Raw string `json:"raw" validate:"required"`
}

type TriageBatchRequest struct {
	Emails []TriageRequest `json:"emails" validate:"required,min=1,dive"`
}

type TriageBatchResponse struct {
	Results []TriageResponse `json:"results"`
}
