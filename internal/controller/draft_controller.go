package controller

import (
	"email-responder-be/internal/dto"
	"email-responder-be/internal/pkg/serverutils"
	"email-responder-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDraftController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type draftController struct {
	draftService service.IDraftService
}

func NewDraftController(draftService service.IDraftService) IDraftController {
	return &draftController{
		draftService: draftService,
	}
}

func (c *draftController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/draft/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *draftController) List(ctx *fiber.Ctx) error {
	res, err := c.draftService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list drafts", res))
}

func (c *draftController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.draftService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Draft not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show draft", res))
}

func (c *draftController) Update(ctx *fiber.Ctx) error {
	operatorId, _ := ctx.Locals("user_id").(string)
	id := ctx.Params("id")

	var req dto.UpdateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.draftService.UpdateText(ctx.Context(), operatorId, id, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Draft not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update draft", res))
}

func (c *draftController) Delete(ctx *fiber.Ctx) error {
	operatorId, _ := ctx.Locals("user_id").(string)
	id := ctx.Params("id")

	err := c.draftService.Discard(ctx.Context(), operatorId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success discard draft", nil))
}
