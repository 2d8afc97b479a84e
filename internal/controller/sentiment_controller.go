// FILE: internal/controller/sentiment_controller.go
package controller

import (
	"errors"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/limiter"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISentimentController interface {
	RegisterRoutes(r fiber.Router)
	Predict(ctx *fiber.Ctx) error
}

type sentimentController struct {
	sentimentService service.ISentimentService
	rateLimiter      limiter.Limiter
}

func NewSentimentController(sentimentService service.ISentimentService, rateLimiter limiter.Limiter) ISentimentController {
	return &sentimentController{
		sentimentService: sentimentService,
		rateLimiter:      rateLimiter,
	}
}

func (c *sentimentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/nlp/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("sentiment", c.Predict)
}

func (c *sentimentController) Predict(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	allowed, err := c.rateLimiter.Allow(ctx.Context(), userId.String())
	if err != nil {
		return err
	}
	if !allowed {
		return fiber.NewError(fiber.StatusTooManyRequests, "Sentiment quota exceeded, try again later")
	}

	var req dto.SentimentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sentimentService.Predict(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrModelUnavailable) {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success predict sentiment", res))
}
