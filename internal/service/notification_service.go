package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/events"
)

// NotificationService logs account and content lifecycle events. Outbound
// delivery (email, webhooks) is stubbed; the subscription wiring is real.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventPostCreated, n.handlePostCreated)
	n.dispatcher.Subscribe(events.EventPostDeleted, n.handlePostDeleted)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("subject_id", event.SubjectID))
	return nil
}

func (n *NotificationService) handlePostCreated(_ context.Context, event events.Event) error {
	n.logger.Info("PostCreated", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePostDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("PostDeleted", zap.String("subject_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}
