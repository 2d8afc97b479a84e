// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"strings"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/events"
	"ai-chat-be/pkg/genai"
	pktNats "ai-chat-be/pkg/nats"

	"github.com/google/uuid"
)

// TurnObserver receives progress callbacks during one chat turn. The realtime
// transport uses it to stream frames while the turn is still running; the
// HTTP path passes nil.
type TurnObserver interface {
	// UserMessagePersisted fires after the user message is durable.
	UserMessagePersisted(msg *dto.MessageResponse)
	// GenerationStarted fires right before the generation call.
	GenerationStarted(sessionId uuid.UUID)
}

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSessions(ctx context.Context, userId uuid.UUID, page dto.PageRequest) (*dto.PageResponse[dto.SessionResponse], error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error)
	UpdateSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, page dto.PageRequest) (*dto.PageResponse[dto.MessageResponse], error)
	SendMessage(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatTurnResponse, error)
	SendMessageWithObserver(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, req *dto.SendMessageRequest, observer TurnObserver) (*dto.ChatTurnResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	genClient      genai.Client
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	genClient genai.Client,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		genClient:      genClient,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (c *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		CreatedAt: time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return sessionToResponse(&session), nil
}

func (c *chatService) GetSessions(ctx context.Context, userId uuid.UUID, page dto.PageRequest) (*dto.PageResponse[dto.SessionResponse], error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	page = page.Normalize()

	ownedBy := specification.UserOwnedBy{UserID: userId}

	total, err := uow.ChatSessionRepository().Count(ctx, ownedBy)
	if err != nil {
		return nil, err
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		ownedBy,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: page.Size, Offset: page.Offset()},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, *sessionToResponse(s))
	}

	return &dto.PageResponse[dto.SessionResponse]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
	}, nil
}

func (c *chatService) GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

func (c *chatService) UpdateSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := c.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		session.Title = req.Title
	}
	now := time.Now()
	session.UpdatedAt = &now

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

func (c *chatService) GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, page dto.PageRequest) (*dto.PageResponse[dto.MessageResponse], error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	page = page.Normalize()

	// Ownership gate before touching messages.
	if _, err := c.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	inSession := specification.ByChatSessionID{ChatSessionID: sessionId}

	total, err := uow.ChatMessageRepository().Count(ctx, inSession)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		inSession,
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: page.Size, Offset: page.Offset()},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, *messageToResponse(m))
	}

	return &dto.PageResponse[dto.MessageResponse]{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
	}, nil
}

func (c *chatService) SendMessage(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatTurnResponse, error) {
	return c.SendMessageWithObserver(ctx, userId, sessionId, req, nil)
}

// SendMessageWithObserver runs one full chat turn. The user message is made
// durable before the generation attempt, so a provider failure never loses
// client input. Generation failures are contained: the turn still completes
// with a diagnostic assistant message.
func (c *chatService) SendMessageWithObserver(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, req *dto.SendMessageRequest, observer TurnObserver) (*dto.ChatTurnResponse, error) {
	role := req.Role
	if role == "" {
		role = constant.ChatRoleUser
	}
	if !constant.IsValidChatRole(role) || role != constant.ChatRoleUser {
		return nil, ErrInvalidRole
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	var session *entity.ChatSession
	var err error
	if sessionId == nil {
		session = &entity.ChatSession{
			Id:        uuid.New(),
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			return nil, err
		}
	} else {
		session, err = c.findOwnedSession(ctx, uow, userId, *sessionId)
		if err != nil {
			return nil, err
		}
	}

	// First user message names the session. Never overwritten afterwards.
	if session.Title == nil {
		title := deriveTitle(req.Content)
		session.Title = &title
		now := time.Now()
		session.UpdatedAt = &now
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return nil, err
		}
	}

	authorId := userId
	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		AuthorId:      &authorId,
		Role:          constant.ChatRoleUser,
		Content:       req.Content,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	userRes := messageToResponse(&userMessage)
	if observer != nil {
		observer.UserMessagePersisted(userRes)
		observer.GenerationStarted(session.Id)
	}

	reply, genErr := c.genClient.Generate(ctx, req.Content)
	if genErr != nil {
		c.log.Error("chat", "generation call failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      genErr.Error(),
		})
		reply = constant.GenerationFailureText + genErr.Error()
	}

	assistantMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		AuthorId:      nil,
		Role:          constant.ChatRoleAssistant,
		Content:       reply,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	c.publishTurnCompleted(ctx, session.Id, userId)

	return &dto.ChatTurnResponse{
		SessionId:        session.Id,
		UserMessage:      userRes,
		AssistantMessage: messageToResponse(&assistantMessage),
	}, nil
}

func (c *chatService) publishTurnCompleted(ctx context.Context, sessionId, userId uuid.UUID) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: "CHAT_TURN_COMPLETED",
		Data: map[string]interface{}{
			"session_id": sessionId,
			"user_id":    userId,
		},
		OccurredAt: time.Now(),
	}
	// Auxiliary, never fails the turn.
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		c.log.Warn("chat", "failed to publish CHAT_TURN_COMPLETED event", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (c *chatService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.UserId != userId {
		return nil, ErrSessionForbidden
	}
	return session, nil
}

// deriveTitle takes a character prefix of the trimmed first message.
func deriveTitle(content string) string {
	trimmed := strings.TrimSpace(content)
	runes := []rune(trimmed)
	if len(runes) > constant.SessionTitleMaxLen {
		runes = runes[:constant.SessionTitleMaxLen]
	}
	return string(runes)
}

func sessionToResponse(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func messageToResponse(m *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		SessionId: m.ChatSessionId,
		AuthorId:  m.AuthorId,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
