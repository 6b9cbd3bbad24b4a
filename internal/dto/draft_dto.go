package dto

type DraftResponse struct {
	MessageId string `json:"message_id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type UpdateDraftRequest struct {
	Text string `json:"text" validate:"required"`
}

type ListDraftsResponse struct {
	Ids []string `json:"ids"`
}
