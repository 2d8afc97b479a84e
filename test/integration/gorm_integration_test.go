package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-chat-be/internal/constant"
	"ai-chat-be/internal/entity"
	"ai-chat-be/internal/repository/specification"
	"ai-chat-be/internal/repository/unitofwork"
	"ai-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	require.NoError(t, database.Migrate(gormDB))

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.ChatMessageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Chat Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ChatMessage count: %d", count)
	})

	t.Run("Session and Message Roundtrip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		title := "integration session"
		session := &entity.ChatSession{
			Id:        uuid.New(),
			UserId:    userId,
			Title:     &title,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))

		authorId := userId
		userMsg := &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			AuthorId:      &authorId,
			Role:          constant.ChatRoleUser,
			Content:       "integration hello",
			CreatedAt:     time.Now(),
		}
		require.NoError(t, uow.ChatMessageRepository().Create(ctx, userMsg))

		assistantMsg := &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			Role:          constant.ChatRoleAssistant,
			Content:       "integration reply",
			CreatedAt:     time.Now(),
		}
		require.NoError(t, uow.ChatMessageRepository().Create(ctx, assistantMsg))

		messages, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.ByChatSessionID{ChatSessionID: session.Id},
			specification.OrderBy{Field: "created_at", Desc: false},
		)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, constant.ChatRoleUser, messages[0].Role)
		assert.Equal(t, constant.ChatRoleAssistant, messages[1].Role)
		assert.Nil(t, messages[1].AuthorId)

		found, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: session.Id},
			specification.UserOwnedBy{UserID: userId},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, title, *found.Title)

		t.Log("Successfully created session with messages")
	})
}
