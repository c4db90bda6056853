package service

import (
	"context"
	"encoding/json"

	"facelog-be/internal/dto"
	"facelog-be/internal/entity"
	"facelog-be/internal/pkg/logger"
	"facelog-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// SessionBroadcaster pushes a payload to every live viewer of a session.
type SessionBroadcaster interface {
	BroadcastToSession(sessionId string, payload []byte)
}

// verificationLogConsumer drains recognition outcomes off the in-process bus,
// persists them as audit rows and feeds the live session websocket. Keeping
// this out of the frame path keeps recognition latency bounded by detection
// and matching only.
type verificationLogConsumer struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	broadcaster SessionBroadcaster
	logger      logger.ILogger
}

func NewVerificationLogConsumer(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	broadcaster SessionBroadcaster,
	log logger.ILogger,
) IConsumerService {
	return &verificationLogConsumer{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		logger:      log,
	}
}

func (cs *verificationLogConsumer) Consume(ctx context.Context) error {
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

func (cs *verificationLogConsumer) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RecognitionOutcomeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal recognition outcome", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages to prevent infinite retry.
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	logRow := &entity.FaceVerificationLog{
		SessionId: payload.SessionId,
		UserId:    payload.StudentId,
		Status:    payload.Outcome,
		Distance:  payload.Distance,
		Details:   payload.Details,
	}
	if err := uow.FaceVerificationLogRepository().Create(ctx, logRow); err != nil {
		cs.logger.Error("consumer", "failed to persist verification log", map[string]interface{}{
			"error":     err.Error(),
			"sessionId": payload.SessionId.String(),
		})
		msg.Nack()
		return
	}

	if cs.broadcaster != nil {
		cs.broadcaster.BroadcastToSession(payload.SessionId.String(), msg.Payload)
	}

	msg.Ack()
}
