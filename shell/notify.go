package shell

import (
	"context"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

// DeliveryReport tells which notifications of a batch could not be delivered.
type DeliveryReport struct {
	Delivered int
	Failed    core.Notifications
}

// AllDelivered reports whether every notification went out.
func (r DeliveryReport) AllDelivered() bool {
	return len(r.Failed) == 0
}

// DeliverNotifications sends each notification, failures are logged and counted but never abort the batch.
// It must only run after the unit of work that produced the notifications committed.
func DeliverNotifications(
	ctx context.Context,
	notifier Notifier,
	notifications core.Notifications,
	logger Logger,
	metrics MetricsCollector,
) DeliveryReport {
	report := DeliveryReport{}

	for _, notification := range notifications {
		err := notifier.Send(ctx, notification.MemberID, notification.Subject, notification.Body)
		if err == nil {
			report.Delivered++
			continue
		}

		report.Failed = append(report.Failed, notification)

		if logger != nil {
			logger.Warn(
				LogMsgNotificationFailed,
				LogAttrMemberID, notification.MemberID,
				LogAttrSubject, notification.Subject,
				LogAttrError, err.Error(),
			)
		}

		Instrumentation{Metrics: metrics}.count(ctx, NotificationsFailedMetric, map[string]string{})
	}

	return report
}
