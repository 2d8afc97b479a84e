// FILE: internal/websocket/handler.go
package websocket

import (
	"context"
	"errors"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/limiter"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"

	"github.com/google/uuid"
)

// Conn is the JSON message surface of a websocket connection. Satisfied by
// *websocket.Conn; tests plug in a fake.
type Conn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
}

// Handler owns the per-connection chat loop. Each connection is served by
// one goroutine; there is no shared hub because frames only ever go back to
// the connection that sent the message.
type Handler struct {
	chatService service.IChatService
	uowFactory  unitofwork.RepositoryFactory
	presence    contract.PresenceRepository
	rateLimiter limiter.Limiter
	log         logger.ILogger
}

func NewHandler(
	chatService service.IChatService,
	uowFactory unitofwork.RepositoryFactory,
	presence contract.PresenceRepository,
	rateLimiter limiter.Limiter,
	log logger.ILogger,
) *Handler {
	return &Handler{
		chatService: chatService,
		uowFactory:  uowFactory,
		presence:    presence,
		rateLimiter: rateLimiter,
		log:         log,
	}
}

// ServeConn runs the read loop until the peer disconnects. Errors inside a
// turn are reported as in-band error frames; the connection stays open.
func (h *Handler) ServeConn(ctx context.Context, conn Conn, userId uuid.UUID) {
	uow := h.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByID{ID: userId},
		specification.ActiveOnly{},
	)
	if err != nil || user == nil {
		if err != nil {
			h.log.Error("ws", "user lookup failed", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
		h.writeError(conn, constant.WSUserNotFoundText, nil)
		return
	}

	connectionId := uuid.NewString()
	record := &entity.Presence{
		UserId:       userId,
		ConnectionId: connectionId,
		ConnectedAt:  time.Now(),
	}
	if err := h.presence.Save(ctx, record); err != nil {
		h.log.Warn("ws", "failed to save presence record", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
	defer func() {
		if err := h.presence.Delete(ctx, userId, connectionId); err != nil {
			h.log.Warn("ws", "failed to delete presence record", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}()

	h.log.Info("ws", "connection opened", map[string]interface{}{
		"user_id":       userId,
		"connection_id": connectionId,
	})

	for {
		var inbound dto.WSUserMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			h.log.Info("ws", "connection closed", map[string]interface{}{
				"user_id":       userId,
				"connection_id": connectionId,
			})
			return
		}

		// The path-derived identity always wins over the payload.
		inbound.UserId = userId

		h.handleTurn(ctx, conn, &inbound)
	}
}

func (h *Handler) handleTurn(ctx context.Context, conn Conn, inbound *dto.WSUserMessage) {
	allowed, err := h.rateLimiter.Allow(ctx, inbound.UserId.String())
	if err != nil {
		h.log.Error("ws", "rate limiter failed", map[string]interface{}{
			"user_id": inbound.UserId,
			"error":   err.Error(),
		})
		h.writeError(conn, constant.WSGenericErrorText, inbound.SessionId)
		return
	}
	if !allowed {
		h.writeError(conn, constant.WSGenericErrorText, inbound.SessionId)
		return
	}

	req := dto.SendMessageRequest{
		Content: inbound.Message,
		Role:    constant.ChatRoleUser,
	}

	observer := &frameObserver{conn: conn, log: h.log}
	res, err := h.chatService.SendMessageWithObserver(ctx, inbound.UserId, inbound.SessionId, &req, observer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionForbidden):
			h.writeError(conn, constant.WSInvalidSessionText, inbound.SessionId)
		default:
			h.log.Error("ws", "chat turn failed", map[string]interface{}{
				"user_id": inbound.UserId,
				"error":   err.Error(),
			})
			h.writeError(conn, constant.WSGenericErrorText, inbound.SessionId)
		}
		return
	}

	end := dto.ChatFrame{
		Sender:    dto.FrameSenderBot,
		Message:   res.AssistantMessage.Content,
		Type:      dto.FrameTypeEnd,
		MessageId: res.AssistantMessage.Id.String(),
		Id:        uuid.NewString(),
		SessionId: &res.SessionId,
	}
	if err := conn.WriteJSON(end); err != nil {
		h.log.Warn("ws", "failed to write end frame", map[string]interface{}{
			"user_id": inbound.UserId,
			"error":   err.Error(),
		})
	}
}

func (h *Handler) writeError(conn Conn, message string, sessionId *uuid.UUID) {
	frame := dto.ChatFrame{
		Sender:    dto.FrameSenderBot,
		Message:   message,
		Type:      dto.FrameTypeError,
		Id:        uuid.NewString(),
		SessionId: sessionId,
	}
	if err := conn.WriteJSON(frame); err != nil {
		h.log.Warn("ws", "failed to write error frame", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// frameObserver streams turn progress back to the peer while the turn is
// still running.
type frameObserver struct {
	conn Conn
	log  logger.ILogger
}

var _ service.TurnObserver = &frameObserver{}

// UserMessagePersisted echoes the accepted user message.
func (o *frameObserver) UserMessagePersisted(msg *dto.MessageResponse) {
	frame := dto.ChatFrame{
		Sender:    dto.FrameSenderYou,
		Message:   msg.Content,
		Type:      dto.FrameTypeStream,
		MessageId: msg.Id.String(),
		Id:        uuid.NewString(),
		SessionId: &msg.SessionId,
	}
	if err := o.conn.WriteJSON(frame); err != nil {
		o.log.Warn("ws", "failed to write stream frame", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// GenerationStarted tells the peer the assistant reply is in flight.
func (o *frameObserver) GenerationStarted(sessionId uuid.UUID) {
	frame := dto.ChatFrame{
		Sender:    dto.FrameSenderBot,
		Type:      dto.FrameTypeStart,
		Id:        uuid.NewString(),
		SessionId: &sessionId,
	}
	if err := o.conn.WriteJSON(frame); err != nil {
		o.log.Warn("ws", "failed to write start frame", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
