package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/config"
	"github.com/spec-kit/lawfirm-api/internal/events"
)

// NotificationService turns domain events into (stubbed) outbound mail.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events. wrap, when set, decorates every
// handler before it is subscribed; the worker uses it to move delivery off
// the publishing request.
func (n *NotificationService) RegisterHandlers(wrap func(events.EventHandler) events.EventHandler) {
	if n.dispatcher == nil {
		return
	}
	if wrap == nil {
		wrap = func(h events.EventHandler) events.EventHandler { return h }
	}
	n.dispatcher.Subscribe(events.EventContactSubmitted, wrap(n.handleContactSubmitted))
	n.dispatcher.Subscribe(events.EventAppointmentBooked, wrap(n.handleAppointmentChanged))
	n.dispatcher.Subscribe(events.EventAppointmentRescheduled, wrap(n.handleAppointmentChanged))
	n.dispatcher.Subscribe(events.EventAppointmentStatus, wrap(n.handleAppointmentChanged))
	n.dispatcher.Subscribe(events.EventUserRegistered, wrap(n.handleUserRegistered))
}

func (n *NotificationService) handleContactSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ContactSubmitted", zap.String("contact_id", event.SubjectID))
	payload, ok := event.Payload.(events.ContactSubmittedPayload)
	if !ok {
		return nil
	}
	n.sendEmailStub(ctx, event, n.cfg.OfficeEmail, "New contact: "+payload.Subject)
	n.sendEmailStub(ctx, event, payload.Email, "We received your message")
	return nil
}

func (n *NotificationService) handleAppointmentChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("AppointmentChanged",
		zap.String("appointment_id", event.SubjectID),
		zap.String("event_type", string(event.Type)),
		zap.Any("payload", event.Payload))
	n.sendEmailStub(ctx, event, n.cfg.OfficeEmail, "Appointment update")
	return nil
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.sendEmailStub(ctx, event, payload.Email, "Welcome")
	return nil
}

// sendEmailStub logs the message that would be sent. No mail transport is
// wired.
func (n *NotificationService) sendEmailStub(_ context.Context, event events.Event, to, subject string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || strings.TrimSpace(to) == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
