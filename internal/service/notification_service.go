package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/getaroom/rental-service/internal/config"
	"github.com/getaroom/rental-service/internal/events"
)

// NotificationService turns domain events into outbound notifications. Email
// delivery is a log-only stub; webhook delivery posts the event JSON when a
// webhook URL is configured.
type NotificationService struct {
	cfg    config.NotificationConfig
	logger *zap.Logger
	client *http.Client
}

// NewNotificationService constructs the service.
func NewNotificationService(cfg config.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// RegisterHandlers subscribes the service to every event the lifecycle emits.
func (s *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	for _, eventType := range []events.EventType{
		events.EventBookingSubmitted,
		events.EventBookingDecided,
		events.EventFaultReported,
		events.EventBidPlaced,
		events.EventBidAccepted,
		events.EventJobCompleted,
		events.EventTicketResolved,
		events.EventComplaintFiled,
		events.EventWarningIssued,
		events.EventLeaseExtensionDecided,
	} {
		dispatcher.Subscribe(eventType, s.handle)
	}
}

func (s *NotificationService) handle(ctx context.Context, event events.Event) error {
	s.logger.Info("notification",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.String("actor_id", event.Actor.ID),
	)

	if recipient, subject := s.describe(event); recipient != "" {
		s.sendEmail(recipient, subject)
	}
	if s.cfg.WebhookURL != "" {
		s.postWebhook(ctx, event)
	}
	return nil
}

// describe picks the notification recipient and subject line for an event.
// Recipients are account IDs; address resolution lives with the delivery
// channel.
func (s *NotificationService) describe(event events.Event) (recipient, subject string) {
	switch payload := event.Payload.(type) {
	case events.BookingSubmittedPayload:
		return payload.LandlordID, "New booking application received"
	case events.BookingDecidedPayload:
		return payload.TenantID, fmt.Sprintf("Your booking application was %s", payload.Decision)
	case events.FaultReportedPayload:
		return payload.LandlordID, fmt.Sprintf("Fault reported: %s", payload.Category)
	case events.BidPlacedPayload:
		return payload.ServiceProviderID, "Bid placed on fault ticket"
	case events.BidAcceptedPayload:
		return payload.ServiceProviderID, "Your bid was accepted"
	case events.JobCompletedPayload:
		return payload.ServiceProviderID, "Job marked complete, awaiting confirmation"
	case events.TicketResolvedPayload:
		return payload.TenantID, "Fault ticket resolved"
	case events.ComplaintFiledPayload:
		return payload.AgainstID, "A complaint was filed against you"
	case events.WarningIssuedPayload:
		return payload.TenantID, "You received a warning from your landlord"
	case events.LeaseExtensionDecidedPayload:
		return payload.TenantID, fmt.Sprintf("Lease extension %s", payload.Decision)
	}
	return "", ""
}

func (s *NotificationService) sendEmail(recipient, subject string) {
	// No SMTP integration yet; the send is recorded in the log stream.
	s.logger.Info("email notification",
		zap.String("from", s.cfg.EmailFrom),
		zap.String("recipient", recipient),
		zap.String("subject", subject),
	)
}

func (s *NotificationService) postWebhook(ctx context.Context, event events.Event) {
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("webhook payload encoding failed", zap.Error(err))
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		s.logger.Warn("webhook request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("webhook delivery failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		s.logger.Warn("webhook delivery rejected", zap.Int("status", resp.StatusCode))
	}
}
