package controller

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	turn *dto.ChatTurnResponse
	err  error
}

func (s *fakeChatService) CreateSession(context.Context, uuid.UUID, *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeChatService) GetSessions(context.Context, uuid.UUID, dto.PageRequest) (*dto.PageResponse[dto.SessionResponse], error) {
	return nil, errors.New("not implemented")
}

func (s *fakeChatService) GetSession(context.Context, uuid.UUID, uuid.UUID) (*dto.SessionResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeChatService) UpdateSession(context.Context, uuid.UUID, uuid.UUID, *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeChatService) GetMessages(context.Context, uuid.UUID, uuid.UUID, dto.PageRequest) (*dto.PageResponse[dto.MessageResponse], error) {
	return nil, errors.New("not implemented")
}

func (s *fakeChatService) SendMessage(context.Context, uuid.UUID, *uuid.UUID, *dto.SendMessageRequest) (*dto.ChatTurnResponse, error) {
	return s.turn, s.err
}

func (s *fakeChatService) SendMessageWithObserver(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, req *dto.SendMessageRequest, _ service.TurnObserver) (*dto.ChatTurnResponse, error) {
	return s.SendMessage(ctx, userId, sessionId, req)
}

func completedTurn(sessionId uuid.UUID) *dto.ChatTurnResponse {
	msgId := uuid.New()
	return &dto.ChatTurnResponse{
		SessionId: sessionId,
		UserMessage: &dto.MessageResponse{
			Id: uuid.New(), SessionId: sessionId,
			Role: constant.ChatRoleUser, Content: "hi", CreatedAt: time.Now(),
		},
		AssistantMessage: &dto.MessageResponse{
			Id: msgId, SessionId: sessionId,
			Role: constant.ChatRoleAssistant, Content: "hello", CreatedAt: time.Now(),
		},
	}
}

func newTestApp(svc service.IChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func bearerToken(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return "Bearer " + signed
}

func postJSON(app *fiber.App, path, auth, body string) (int, error) {
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

func TestSendMessageExistingSessionReturnsCreated(t *testing.T) {
	sessionId := uuid.New()
	app := newTestApp(&fakeChatService{turn: completedTurn(sessionId)})
	auth := bearerToken(t, uuid.New())

	status, err := postJSON(app, "/api/chat/v1/sessions/"+sessionId.String()+"/messages", auth, `{"content":"hi"}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestSendMessageNewSessionReturnsCreated(t *testing.T) {
	app := newTestApp(&fakeChatService{turn: completedTurn(uuid.New())})
	auth := bearerToken(t, uuid.New())

	status, err := postJSON(app, "/api/chat/v1/messages", auth, `{"content":"hi"}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestSendMessageUnknownSessionReturnsNotFound(t *testing.T) {
	app := newTestApp(&fakeChatService{err: service.ErrSessionNotFound})
	auth := bearerToken(t, uuid.New())

	status, err := postJSON(app, "/api/chat/v1/sessions/"+uuid.NewString()+"/messages", auth, `{"content":"hi"}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSendMessageWithoutTokenReturnsUnauthorized(t *testing.T) {
	app := newTestApp(&fakeChatService{turn: completedTurn(uuid.New())})

	status, err := postJSON(app, "/api/chat/v1/messages", "", `{"content":"hi"}`)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
