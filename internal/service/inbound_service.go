package service

import (
	"context"
	"encoding/json"

	"legalbot-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IInboundService accepts webhook messages and queues them for the
// dispatch worker, keeping the HTTP edge fast.
type IInboundService interface {
	Enqueue(ctx context.Context, msg dto.InboundChatMessage) error
}

type inboundService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewInboundService(topicName string, pubSub *gochannel.GoChannel) IInboundService {
	return &inboundService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *inboundService) Enqueue(ctx context.Context, msg dto.InboundChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
}
