// FILE: internal/controller/media_controller.go
package controller

import (
	"errors"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type mediaController struct {
	mediaService service.IMediaService
}

func NewMediaController(mediaService service.IMediaService) IMediaController {
	return &mediaController{
		mediaService: mediaService,
	}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/media/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *mediaController) Upload(ctx *fiber.Ctx) error {
	var req dto.UploadMediaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing 'file' form field")
	}

	res, err := c.mediaService.Upload(ctx.Context(), &req, file)
	if err != nil {
		return mapMediaError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload media", res))
}

func (c *mediaController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid media id")
	}

	res, err := c.mediaService.Get(ctx.Context(), id)
	if err != nil {
		return mapMediaError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show media", res))
}

func (c *mediaController) List(ctx *fiber.Ctx) error {
	var page dto.PageRequest
	if err := ctx.QueryParser(&page); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid pagination parameters")
	}

	res, err := c.mediaService.List(ctx.Context(), page)
	if err != nil {
		return mapMediaError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list media", res))
}

func (c *mediaController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid media id")
	}

	if err := c.mediaService.Delete(ctx.Context(), id); err != nil {
		return mapMediaError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete media", nil))
}

func mapMediaError(err error) error {
	if errors.Is(err, service.ErrMediaNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}
