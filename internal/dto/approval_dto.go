package dto

type ApprovalCommandRequest struct {
	Input string `json:"input" validate:"required"`
}

type ApprovalCommandResponse struct {
	Reply string `json:"reply"`
}
