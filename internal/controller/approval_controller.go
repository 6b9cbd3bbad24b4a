package controller

import (
	"email-responder-be/internal/dto"
	"email-responder-be/internal/pkg/serverutils"
	"email-responder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IApprovalController interface {
	RegisterRoutes(r fiber.Router)
	Command(ctx *fiber.Ctx) error
}

type approvalController struct {
	approvalService service.IApprovalService
}

func NewApprovalController(approvalService service.IApprovalService) IApprovalController {
	return &approvalController{
		approvalService: approvalService,
	}
}

func (c *approvalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/approval/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("command", c.Command)
}

// Command is the REST counterpart of the websocket chat: one operator
// instruction in, one reply out.
func (c *approvalController) Command(ctx *fiber.Ctx) error {
	operatorId, _ := ctx.Locals("user_id").(string)

	var req dto.ApprovalCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	reply, err := c.approvalService.HandleOperatorMessage(ctx.Context(), operatorId, req.Input)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success handle approval command", dto.ApprovalCommandResponse{Reply: reply}))
}
