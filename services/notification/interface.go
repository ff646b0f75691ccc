package notification

import (
	"context"

	"go.uber.org/zap"

	"medibook/utils"
)

// NotificationService is the capability booking flows use to reach patients
// and doctors. Delivery transport (push, email, sockets) is out of scope
// here; implementations are injected so the scheduling code never depends
// on one.
type NotificationService interface {
	NotifyPatient(ctx context.Context, patientID, title, body string, data map[string]string) error
	NotifyDoctor(ctx context.Context, doctorID, title, body string, data map[string]string) error
}

// LogNotificationService writes notifications to the structured log. It is
// the default wiring for environments without a delivery channel.
type LogNotificationService struct{}

func (s *LogNotificationService) NotifyPatient(_ context.Context, patientID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("notify patient",
		zap.String("patientID", patientID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}

func (s *LogNotificationService) NotifyDoctor(_ context.Context, doctorID, title, body string, data map[string]string) error {
	utils.GetLogger().Info("notify doctor",
		zap.String("doctorID", doctorID),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}
