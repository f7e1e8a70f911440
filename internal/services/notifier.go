package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/evaluation-service/internal/events"
	"github.com/SAP-F-2025/evaluation-service/internal/models"
)

// NotificationSender delivers one notification to one recipient. Delivery
// transport (mail gateway, in-app inbox) lives behind this interface.
type NotificationSender interface {
	Send(ctx context.Context, recipient events.Recipient, subject, body string) error
}

// PostponementNotifier fans a postponement out to the committee. Each
// recipient is attempted independently; one failed delivery never blocks
// the others and never fails the postponement itself.
type PostponementNotifier struct {
	sender NotificationSender
	logger *slog.Logger
}

func NewPostponementNotifier(sender NotificationSender, logger *slog.Logger) *PostponementNotifier {
	return &PostponementNotifier{
		sender: sender,
		logger: logger,
	}
}

// Notify sends the postponement to every recipient except office
// assistants, who process the record change but are not personally
// notified. Returns the number of successful deliveries.
func (n *PostponementNotifier) Notify(ctx context.Context, event *events.EvaluationPostponedEvent) int {
	if n.sender == nil {
		return 0
	}

	subject := fmt.Sprintf("Evaluation postponed: %s", event.StudentName)
	body := fmt.Sprintf("The evaluation of %s (semester %d) has been postponed to %s. Reason: %s",
		event.StudentName, event.Semester, event.PostponedTo.Format("2006-01-02"), event.Reason)

	sent := 0
	for _, recipient := range event.Recipients {
		if recipient.Role == string(models.RoleOfficeAssistant) {
			continue
		}

		if err := n.sender.Send(ctx, recipient, subject, body); err != nil {
			n.logger.ErrorContext(ctx, "Failed to notify recipient",
				"error", err,
				"evaluation_id", event.EvaluationID,
				"recipient", recipient.Email)
			continue
		}
		sent++
	}

	n.logger.Info("Postponement notifications dispatched",
		"evaluation_id", event.EvaluationID,
		"sent", sent,
		"recipients", len(event.Recipients))

	return sent
}

// LogSender is the default NotificationSender: it records the notification
// in the structured log. Real delivery is handled by the notification
// service consuming the Kafka topic.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, recipient events.Recipient, subject, body string) error {
	s.logger.InfoContext(ctx, "Notification queued",
		"recipient", recipient.Email,
		"role", recipient.Role,
		"subject", subject)
	return nil
}
