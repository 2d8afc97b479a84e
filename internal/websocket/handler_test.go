// FILE: internal/websocket/handler_test.go
package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/pkg/limiter"
	"ai-chat-be/internal/repository/contract"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeConn feeds scripted inbound messages and records every written frame.
type fakeConn struct {
	inbound []dto.WSUserMessage
	written []dto.ChatFrame
}

func (c *fakeConn) ReadJSON(v interface{}) error {
	if len(c.inbound) == 0 {
		return io.EOF
	}
	msg := c.inbound[0]
	c.inbound = c.inbound[1:]
	*(v.(*dto.WSUserMessage)) = msg
	return nil
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.written = append(c.written, v.(dto.ChatFrame))
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	var id uuid.UUID
	activeOnly := false
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			id = v.ID
		case specification.ActiveOnly:
			activeOnly = true
		}
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if activeOnly && !u.IsActive {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeUow struct {
	users *fakeUserRepo
}

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error               { return nil }
func (u *fakeUow) Rollback() error             { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository               { return u.users }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return nil }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return nil }
func (u *fakeUow) MediaRepository() contract.MediaRepository             { return nil }
func (u *fakeUow) SentimentPredictionRepository() contract.SentimentPredictionRepository {
	return nil
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeChatService drives the observer the way the real orchestrator does.
type fakeChatService struct {
	reply      string
	err        error
	sessionIds []uuid.UUID
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

func (s *fakeChatService) SendMessage(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatTurnResponse, error) {
	return s.SendMessageWithObserver(ctx, userId, sessionId, req, nil)
}

func (s *fakeChatService) SendMessageWithObserver(_ context.Context, userId uuid.UUID, sessionId *uuid.UUID, req *dto.SendMessageRequest, observer service.TurnObserver) (*dto.ChatTurnResponse, error) {
	if s.err != nil {
		return nil, s.err
	}

	sid := uuid.New()
	if sessionId != nil {
		sid = *sessionId
	}
	s.sessionIds = append(s.sessionIds, sid)

	authorId := userId
	userMsg := dto.MessageResponse{
		Id:        uuid.New(),
		SessionId: sid,
		AuthorId:  &authorId,
		Role:      constant.ChatRoleUser,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if observer != nil {
		observer.UserMessagePersisted(&userMsg)
		observer.GenerationStarted(sid)
	}

	assistantMsg := dto.MessageResponse{
		Id:        uuid.New(),
		SessionId: sid,
		Role:      constant.ChatRoleAssistant,
		Content:   s.reply,
		CreatedAt: time.Now(),
	}
	return &dto.ChatTurnResponse{
		SessionId:        sid,
		UserMessage:      &userMsg,
		AssistantMessage: &assistantMsg,
	}, nil
}

// recordingPresence remembers every save and delete so tests can check the
// connection record is removed once the loop exits.
type recordingPresence struct {
	saved   []string
	deleted []string
}

func presenceKey(userId uuid.UUID, connectionId string) string {
	return userId.String() + ":" + connectionId
}

func (p *recordingPresence) Save(_ context.Context, record *entity.Presence) error {
	p.saved = append(p.saved, presenceKey(record.UserId, record.ConnectionId))
	return nil
}

func (p *recordingPresence) Exists(_ context.Context, userId uuid.UUID, connectionId string) (bool, error) {
	key := presenceKey(userId, connectionId)
	for _, k := range p.deleted {
		if k == key {
			return false, nil
		}
	}
	for _, k := range p.saved {
		if k == key {
			return true, nil
		}
	}
	return false, nil
}

func (p *recordingPresence) Delete(_ context.Context, userId uuid.UUID, connectionId string) error {
	p.deleted = append(p.deleted, presenceKey(userId, connectionId))
	return nil
}

func newTestHandler(chatSvc service.IChatService, users map[uuid.UUID]*entity.User) (*Handler, *recordingPresence) {
	presence := &recordingPresence{}
	h := NewHandler(
		chatSvc,
		&fakeFactory{uow: &fakeUow{users: &fakeUserRepo{users: users}}},
		presence,
		limiter.NewMemoryLimiter(100, time.Hour),
		nopLogger{},
	)
	return h, presence
}

func activeUser() (uuid.UUID, map[uuid.UUID]*entity.User) {
	id := uuid.New()
	return id, map[uuid.UUID]*entity.User{
		id: {Id: id, Email: "user@example.com", IsActive: true},
	}
}

// ---- tests ----

func TestServeConnFrameOrder(t *testing.T) {
	userId, users := activeUser()
	svc := &fakeChatService{reply: "assistant says hi"}
	h, _ := newTestHandler(svc, users)

	conn := &fakeConn{inbound: []dto.WSUserMessage{{Message: "hello"}}}
	h.ServeConn(context.Background(), conn, userId)

	require.Len(t, conn.written, 3)

	stream := conn.written[0]
	assert.Equal(t, dto.FrameTypeStream, stream.Type)
	assert.Equal(t, dto.FrameSenderYou, stream.Sender)
	assert.Equal(t, "hello", stream.Message)

	start := conn.written[1]
	assert.Equal(t, dto.FrameTypeStart, start.Type)
	assert.Equal(t, dto.FrameSenderBot, start.Sender)

	end := conn.written[2]
	assert.Equal(t, dto.FrameTypeEnd, end.Type)
	assert.Equal(t, dto.FrameSenderBot, end.Sender)
	assert.Equal(t, "assistant says hi", end.Message)
	require.NotNil(t, end.SessionId)
}

func TestServeConnPathIdentityWins(t *testing.T) {
	userId, users := activeUser()
	svc := &fakeChatService{reply: "ok"}
	h, _ := newTestHandler(svc, users)

	// Payload claims a different user id; the path one must be used.
	conn := &fakeConn{inbound: []dto.WSUserMessage{{Message: "hi", UserId: uuid.New()}}}
	h.ServeConn(context.Background(), conn, userId)

	require.Len(t, conn.written, 3)
	assert.NotEmpty(t, conn.written[0].MessageId)
	require.NotNil(t, conn.written[2].SessionId)
}

func TestServeConnInvalidSessionKeepsConnection(t *testing.T) {
	userId, users := activeUser()
	svc := &fakeChatService{err: service.ErrSessionForbidden}
	h, _ := newTestHandler(svc, users)

	conn := &fakeConn{inbound: []dto.WSUserMessage{
		{Message: "first"},
		{Message: "second"},
	}}
	h.ServeConn(context.Background(), conn, userId)

	// One error frame per failed turn, connection not torn down in between.
	require.Len(t, conn.written, 2)
	for _, frame := range conn.written {
		assert.Equal(t, dto.FrameTypeError, frame.Type)
		assert.Equal(t, constant.WSInvalidSessionText, frame.Message)
	}
}

func TestServeConnGenericErrorFrame(t *testing.T) {
	userId, users := activeUser()
	svc := &fakeChatService{err: errors.New("db down")}
	h, _ := newTestHandler(svc, users)

	conn := &fakeConn{inbound: []dto.WSUserMessage{{Message: "hi"}}}
	h.ServeConn(context.Background(), conn, userId)

	require.Len(t, conn.written, 1)
	assert.Equal(t, dto.FrameTypeError, conn.written[0].Type)
	assert.Equal(t, constant.WSGenericErrorText, conn.written[0].Message)
}

func TestServeConnUnknownUser(t *testing.T) {
	_, users := activeUser()
	svc := &fakeChatService{reply: "ok"}
	h, presence := newTestHandler(svc, users)

	conn := &fakeConn{inbound: []dto.WSUserMessage{{Message: "hi"}}}
	h.ServeConn(context.Background(), conn, uuid.New())

	require.Len(t, conn.written, 1)
	assert.Equal(t, dto.FrameTypeError, conn.written[0].Type)
	assert.Equal(t, constant.WSUserNotFoundText, conn.written[0].Message)
	assert.Empty(t, presence.saved, "rejected connections never register presence")
}

func TestServeConnPresenceRemovedOnDisconnect(t *testing.T) {
	userId, users := activeUser()
	svc := &fakeChatService{reply: "ok"}
	h, presence := newTestHandler(svc, users)

	conn := &fakeConn{inbound: []dto.WSUserMessage{{Message: "hi"}}}
	h.ServeConn(context.Background(), conn, userId)

	require.Len(t, presence.saved, 1)
	require.Len(t, presence.deleted, 1)
	assert.Equal(t, presence.saved[0], presence.deleted[0],
		"the record saved on connect must be the one removed on disconnect")
}

func TestServeConnPresenceRemovedAfterFailedTurns(t *testing.T) {
	userId, users := activeUser()
	svc := &fakeChatService{err: errors.New("db down")}
	h, presence := newTestHandler(svc, users)

	conn := &fakeConn{inbound: []dto.WSUserMessage{
		{Message: "first"},
		{Message: "second"},
	}}
	h.ServeConn(context.Background(), conn, userId)

	require.Len(t, presence.saved, 1)
	assert.Equal(t, presence.saved, presence.deleted,
		"turn failures must not leak the presence record")
}

func TestServeConnInactiveUser(t *testing.T) {
	id := uuid.New()
	users := map[uuid.UUID]*entity.User{
		id: {Id: id, Email: "gone@example.com", IsActive: false},
	}
	svc := &fakeChatService{reply: "ok"}
	h, _ := newTestHandler(svc, users)

	conn := &fakeConn{inbound: []dto.WSUserMessage{{Message: "hi"}}}
	h.ServeConn(context.Background(), conn, id)

	require.Len(t, conn.written, 1)
	assert.Equal(t, constant.WSUserNotFoundText, conn.written[0].Message)
}

func TestServeConnRateLimited(t *testing.T) {
	userId, users := activeUser()
	svc := &fakeChatService{reply: "ok"}
	presence := memory.NewPresenceRepository()
	h := NewHandler(
		svc,
		&fakeFactory{uow: &fakeUow{users: &fakeUserRepo{users: users}}},
		presence,
		limiter.NewMemoryLimiter(1, time.Hour),
		nopLogger{},
	)

	conn := &fakeConn{inbound: []dto.WSUserMessage{
		{Message: "allowed"},
		{Message: "denied"},
	}}
	h.ServeConn(context.Background(), conn, userId)

	// 3 frames from the allowed turn, then 1 error frame.
	require.Len(t, conn.written, 4)
	assert.Equal(t, dto.FrameTypeEnd, conn.written[2].Type)
	assert.Equal(t, dto.FrameTypeError, conn.written[3].Type)
	assert.Equal(t, constant.WSGenericErrorText, conn.written[3].Message)
}
