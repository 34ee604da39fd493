package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/config"
	"github.com/spec-kit/brokerage-crm/internal/events"
)

// OutboundService relays domain events to external channels (email, webhook).
// Both channels are stubs that log the would-be delivery.
type OutboundService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewOutboundService creates the service.
func NewOutboundService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *OutboundService {
	return &OutboundService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *OutboundService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLeadCreated, n.handleLeadCreated)
	n.dispatcher.Subscribe(events.EventLeadStageChanged, n.handleLeadStageChanged)
	n.dispatcher.Subscribe(events.EventLeadOwnerChanged, n.handleLeadOwnerChanged)
	n.dispatcher.Subscribe(events.EventLeadQualified, n.handleLeadQualified)
	n.dispatcher.Subscribe(events.EventAppointmentBooked, n.handleAppointmentBooked)
	n.dispatcher.Subscribe(events.EventApplicationScored, n.handleApplicationScored)
}

func (n *OutboundService) handleLeadCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("LeadCreated", zap.String("lead_id", event.LeadID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *OutboundService) handleLeadStageChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("LeadStageChanged", zap.String("lead_id", event.LeadID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *OutboundService) handleLeadOwnerChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("LeadOwnerChanged", zap.String("lead_id", event.LeadID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *OutboundService) handleLeadQualified(ctx context.Context, event events.Event) error {
	n.logger.Info("LeadQualified", zap.String("lead_id", event.LeadID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *OutboundService) handleAppointmentBooked(ctx context.Context, event events.Event) error {
	n.logger.Info("AppointmentBooked", zap.String("lead_id", event.LeadID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *OutboundService) handleApplicationScored(ctx context.Context, event events.Event) error {
	n.logger.Info("ApplicationScored", zap.String("lead_id", event.LeadID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *OutboundService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("lead_id", event.LeadID),
		zap.String("event_type", string(event.Type)))
}

func (n *OutboundService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("lead_id", event.LeadID),
		zap.String("event_type", string(event.Type)))
}
