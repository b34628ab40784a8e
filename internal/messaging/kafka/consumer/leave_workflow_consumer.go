package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/naywayne90/arti-key-web/internal/events"
	"github.com/naywayne90/arti-key-web/internal/notification"
)

// ConsumeLeaveWorkflow materializes in-app notifications from workflow
// events. Delivery is at-least-once; the notification service deduplicates
// redelivered events through deterministic notification IDs.
func ConsumeLeaveWorkflow(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_workflow")
	log.Info("leave workflow consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave workflow consumer stopped")
				return
			}
			log.Error("fetch leave workflow message failed", zap.Error(err))
			continue
		}

		var event events.LeaveWorkflowEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave workflow event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.Dispatch(ctx, event); err != nil {
			// Not committed, the message will be redelivered.
			log.Error("dispatch leave workflow event failed",
				zap.String("request_id", event.RequestID),
				zap.String("action", event.Action),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave workflow message failed", zap.Error(err))
			continue
		}

		log.Info("leave workflow event consumed",
			zap.String("request_id", event.RequestID),
			zap.String("action", event.Action),
			zap.String("new_status", event.NewStatus),
		)
	}
}
