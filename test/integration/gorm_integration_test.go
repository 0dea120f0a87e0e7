package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/repository/specification"
	"ai-learning-be/internal/repository/unitofwork"
	"ai-learning-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
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

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.CourseRepository())
	assert.NotNil(t, uow.ChatSessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Chapter Progress Repository", func(t *testing.T) {
		count, err := uow.ChapterProgressRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chapter progress count: %d", count)
	})

	t.Run("Check Transactional Message Append", func(t *testing.T) {
		ctx := context.Background()

		course := &entity.Course{
			Id:    uuid.New(),
			Slug:  "integration-course-" + uuid.New().String(),
			Title: "Integration Course",
		}
		err := uow.CourseRepository().Create(ctx, course)
		assert.NoError(t, err)

		chapter := &entity.Chapter{
			Id:       uuid.New(),
			CourseId: course.Id,
			Key:      "intro",
			Title:    "Introduction",
			Ordinal:  1,
		}
		err = uow.ChapterRepository().Create(ctx, chapter)
		assert.NoError(t, err)

		session := &entity.ChatSession{
			Id:        uuid.New(),
			UserId:    uuid.New(),
			CourseId:  course.Id,
			ChapterId: chapter.Id,
			Title:     constant.DefaultSessionTitle,
			CreatedAt: time.Now(),
		}
		err = uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		locked, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: session.Id},
			specification.LockForUpdate{},
		)
		assert.NoError(t, err)
		assert.NotNil(t, locked)

		position, err := uow.ChatMessageRepository().NextPosition(ctx, session.Id)
		assert.NoError(t, err)
		assert.Equal(t, 0, position)

		message := &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: session.Id,
			Role:          constant.ChatMessageRoleUser,
			Body:          entity.TextBody("hello"),
			Position:      position,
			CreatedAt:     time.Now(),
		}
		err = uow.ChatMessageRepository().Create(ctx, message)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		history, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.ByChatSessionID{ChatSessionID: session.Id},
			specification.OrderBy{Field: "position"},
		)
		assert.NoError(t, err)
		assert.Len(t, history, 1)

		t.Log("Successfully appended message inside a transaction")
	})
}
