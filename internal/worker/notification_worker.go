package worker

import (
	"go.uber.org/zap"

	"github.com/getaroom/rental-service/internal/events"
	"github.com/getaroom/rental-service/internal/service"
)

// StartNotificationWorker wires the notification service into the dispatcher.
// Delivery is synchronous with publication; this registration is the only
// startup step.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, logger *zap.Logger) {
	notifications.RegisterHandlers(dispatcher)
	logger.Info("notification worker registered")
}
