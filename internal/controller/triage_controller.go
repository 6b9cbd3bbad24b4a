package controller

import (
	"email-responder-be/internal/dto"
	"email-responder-be/internal/pkg/serverutils"
	"email-responder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITriageController interface {
	RegisterRoutes(r fiber.Router)
	Triage(ctx *fiber.Ctx) error
	TriageRaw(ctx *fiber.Ctx) error
	TriageBatch(ctx *fiber.Ctx) error
}

type triageController struct {
	triageService service.ITriageService
}

func NewTriageController(triageService service.ITriageService) ITriageController {
	return &triageController{
		triageService: triageService,
	}
}

func (c *triageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/triage/v1")
	h.Post("", c.Triage)
	h.Post("raw", c.TriageRaw)
	h.Post("batch", c.TriageBatch)
}

func (c *triageController) TriageRaw(ctx *fiber.Ctx) error {
	var req dto.RawTriageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.triageService.TriageRaw(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success triage raw email", res))
}

func (c *triageController) Triage(ctx *fiber.Ctx) error {
	var req dto.TriageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.triageService.Triage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success triage email", res))
}

func (c *triageController) TriageBatch(ctx *fiber.Ctx) error {
	var req dto.TriageBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.triageService.TriageBatch(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success triage email batch", res))
}
