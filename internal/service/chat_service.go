package service

import (
	"context"
	"errors"
	"time"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/entity"
	"ai-learning-be/internal/pkg/logger"
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/repository/memory"
	"ai-learning-be/internal/repository/specification"
	"ai-learning-be/internal/repository/unitofwork"
	"ai-learning-be/pkg/continuity"
	"ai-learning-be/pkg/events"
	pktNats "ai-learning-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type IChatService interface {
	ContinueCourse(ctx context.Context, userId uuid.UUID, req *dto.ContinueCourseRequest) (*dto.ContinueCourseResponse, error)
	CreateOrResumeSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetSessions(ctx context.Context, userId, courseId uuid.UUID, chapterKey string) ([]*dto.SessionResponse, error)
	GetChatHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
	PostMessage(ctx context.Context, userId uuid.UUID, req *dto.PostMessageRequest) (*dto.PostMessageResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	resolver       *continuity.Resolver
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	catalogCache *memory.CatalogCache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	resolver := continuity.NewResolver(
		&progressLedger{uowFactory: uowFactory},
		&chapterCatalog{uowFactory: uowFactory, cache: catalogCache},
		&sessionStore{uowFactory: uowFactory},
	)
	return &chatService{
		uowFactory:     uowFactory,
		resolver:       resolver,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *chatService) ContinueCourse(ctx context.Context, userId uuid.UUID, req *dto.ContinueCourseRequest) (*dto.ContinueCourseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: req.CourseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, serverutils.NotFound("course not found")
	}

	res, err := s.resolver.ResolveCourse(ctx, userId, req.CourseId, false)
	if err != nil {
		if errors.Is(err, continuity.ErrNoChapters{}) {
			return nil, serverutils.NotFound("course has no chapters")
		}
		return nil, err
	}

	if res.IsNewSession {
		s.publishSessionCreated(ctx, userId, res.Chapter, res.Session)
	}

	return &dto.ContinueCourseResponse{
		ChapterKey:   res.Chapter.Key,
		ChapterTitle: res.Chapter.Title,
		SessionId:    res.Session.Id,
		IsNewSession: res.IsNewSession,
	}, nil
}

func (s *chatService) CreateOrResumeSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := s.findChapter(ctx, uow, req.CourseId, req.ChapterKey)
	if err != nil {
		return nil, err
	}

	res, err := s.resolver.ResolveChapter(ctx, userId, chapter, req.ForceNew)
	if err != nil {
		return nil, err
	}

	if res.IsNewSession {
		if req.Title != "" {
			now := time.Now()
			res.Session.Title = req.Title
			res.Session.UpdatedAt = &now
			if err := uow.ChatSessionRepository().Update(ctx, res.Session); err != nil {
				return nil, err
			}
		}
		s.publishSessionCreated(ctx, userId, chapter, res.Session)
	}

	response := &dto.CreateSessionResponse{
		Session:      toSessionResponse(res.Session, chapter.Key),
		IsNewSession: res.IsNewSession,
	}

	if req.ForceNew {
		sessions, err := uow.ChatSessionRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.ByChapterID{ChapterID: chapter.Id},
		)
		if err != nil {
			return nil, err
		}
		continuity.SortMostRecentFirst(sessions)
		response.Sessions = toSessionResponses(sessions, chapter.Key)
	}

	return response, nil
}

func (s *chatService) GetSessions(ctx context.Context, userId, courseId uuid.UUID, chapterKey string) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chapter, err := s.findChapter(ctx, uow, courseId, chapterKey)
	if err != nil {
		return nil, err
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByChapterID{ChapterID: chapter.Id},
	)
	if err != nil {
		return nil, err
	}

	continuity.SortMostRecentFirst(sessions)
	return toSessionResponses(sessions, chapter.Key), nil
}

func (s *chatService) GetChatHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NotFound("chat session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.MessageResponse, len(messages))
	for i, msg := range messages {
		response[i] = toMessageResponse(msg)
	}
	return response, nil
}

// PostMessage appends one message to a session. The session row is locked for
// the whole transaction so position assignment and the timestamp bump cannot
// interleave with a concurrent append; the unique (session, position) index
// turns anything that slips through into a Conflict.
func (s *chatService) PostMessage(ctx context.Context, userId uuid.UUID, req *dto.PostMessageRequest) (*dto.PostMessageResponse, error) {
	if err := req.Body.Validate(); err != nil {
		return nil, serverutils.InvalidInput(err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.ChatSessionId},
		specification.UserOwnedBy{UserID: userId},
		specification.LockForUpdate{},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NotFound("chat session not found")
	}

	position, err := uow.ChatMessageRepository().NextPosition(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	message := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          req.Role,
		Body:          req.Body,
		Position:      position,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &message); err != nil {
		if isUniqueViolation(err) {
			return nil, serverutils.Conflict("concurrent append on chat session")
		}
		return nil, err
	}

	now := time.Now()
	session.UpdatedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, serverutils.Conflict("concurrent append on chat session")
		}
		return nil, err
	}

	return &dto.PostMessageResponse{
		Message:          toMessageResponse(&message),
		SessionUpdatedAt: now,
	}, nil
}

func (s *chatService) RenameSession(ctx context.Context, userId uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NotFound("chat session not found")
	}

	now := time.Now()
	session.Title = req.Title
	session.UpdatedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	chapter, err := uow.ChapterRepository().FindOne(ctx, specification.ByID{ID: session.ChapterId})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, constant.EventSessionRenamed, map[string]interface{}{
		"title":      session.Title,
		"session_id": session.Id,
		"user_id":    userId,
	})

	chapterKey := ""
	if chapter != nil {
		chapterKey = chapter.Key
	}
	return toSessionResponse(session, chapterKey), nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.NotFound("chat session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	return uow.Commit()
}

// findChapter resolves a (course, key) pair to its chapter row. An unknown
// key is a caller mistake, not a missing resource.
func (s *chatService) findChapter(ctx context.Context, uow unitofwork.UnitOfWork, courseId uuid.UUID, chapterKey string) (*entity.Chapter, error) {
	chapter, err := uow.ChapterRepository().FindOne(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.ByChapterKey{Key: chapterKey},
	)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, serverutils.InvalidInput("unknown chapter key")
	}
	return chapter, nil
}

func (s *chatService) publishSessionCreated(ctx context.Context, userId uuid.UUID, chapter *entity.Chapter, session *entity.ChatSession) {
	s.publishEvent(ctx, constant.EventSessionCreated, map[string]interface{}{
		"title":       session.Title,
		"session_id":  session.Id,
		"chapter_key": chapter.Key,
		"course_id":   chapter.CourseId,
		"user_id":     userId,
	})
}

func (s *chatService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("ChatService", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func toSessionResponse(session *entity.ChatSession, chapterKey string) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:         session.Id,
		CourseId:   session.CourseId,
		ChapterKey: chapterKey,
		Title:      session.Title,
		CreatedAt:  session.CreatedAt,
		UpdatedAt:  session.UpdatedAt,
	}
}

func toSessionResponses(sessions []*entity.ChatSession, chapterKey string) []*dto.SessionResponse {
	out := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		out[i] = toSessionResponse(session, chapterKey)
	}
	return out
}

func toMessageResponse(msg *entity.ChatMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        msg.Id,
		Role:      msg.Role,
		Body:      msg.Body,
		Position:  msg.Position,
		CreatedAt: msg.CreatedAt,
	}
}
