// FILE: internal/controller/pubsub_controller.go
package controller

import (
	"encoding/base64"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IPubSubController accepts push deliveries from an external pub/sub broker.
// The endpoint is unauthenticated; the broker is trusted at the network layer.
type IPubSubController interface {
	RegisterRoutes(r fiber.Router)
	Push(ctx *fiber.Ctx) error
}

type pubSubController struct {
	publisherService service.IPublisherService
}

func NewPubSubController(publisherService service.IPublisherService) IPubSubController {
	return &pubSubController{
		publisherService: publisherService,
	}
}

func (c *pubSubController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/pubsub")
	h.Post("push", c.Push)
}

// Push unwraps the {"message": {"data": base64}} envelope and forwards the
// decoded task to the internal worker topic.
func (c *pubSubController) Push(ctx *fiber.Ctx) error {
	var envelope dto.PubSubEnvelope
	if err := ctx.BodyParser(&envelope); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid push envelope")
	}
	if envelope.Message == nil || envelope.Message.Data == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Push envelope has no message data")
	}

	payload, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Message data is not valid base64")
	}

	if err := c.publisherService.Publish(ctx.Context(), payload); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
