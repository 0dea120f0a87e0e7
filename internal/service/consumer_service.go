package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-learning-be/internal/constant"
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/pkg/mailer"
	"ai-learning-be/internal/repository/specification"
	"ai-learning-be/internal/repository/unitofwork"
	"ai-learning-be/pkg/events"
	pktNats "ai-learning-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the course-completed topic: it sends the
// congratulation email and fans the event out to the notification bus, off
// the request path so a slow SMTP server never delays the completing call.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CourseCompletedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: payload.CourseId})
	if err != nil {
		log.Printf("[ERROR] Failed to get course %s: %v", payload.CourseId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if course == nil {
		log.Printf("[ERROR] Course not found: %s", payload.CourseId)
		msg.Ack() // Course removed? Ack.
		return
	}

	if cs.emailService != nil && payload.UserEmail != "" {
		if err := cs.emailService.SendCourseCompleted(payload.UserEmail, course.Title); err != nil {
			log.Printf("[ERROR] Failed to send completion email for course %s: %v", course.Id, err)
			msg.Nack()
			return
		}
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.EventCourseCompleted,
			Data: map[string]interface{}{
				"title":     course.Title,
				"course_id": course.Id,
				"user_id":   payload.UserId,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish COURSE_COMPLETED event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Course completion processed for user %s, course %s", payload.UserId, course.Id)
	msg.Ack()
}
