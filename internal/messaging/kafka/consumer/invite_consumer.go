package consumer

import (
	"context"
	"encoding/json"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/events"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/mail"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeInviteRequests reads invite events and sends the mails. A failed
// send is logged and the message committed anyway: invites are attempted
// at most once, never replayed.
func ConsumeInviteRequests(
	ctx context.Context,
	reader *kafkago.Reader,
	mailer mail.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.user_invite")
	log.Info("user invite consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("user invite consumer stopped")
				return
			}
			log.Error("fetch invite message failed", zap.Error(err))
			continue
		}

		var event events.UserInviteRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode user_invite_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := mailer.SendInvite(ctx, event.Email, event.DisplayName); err != nil {
			log.Warn("send invite mail failed",
				zap.String("email", event.Email),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
		} else {
			log.Info("invite mail sent",
				zap.String("email", event.Email),
				zap.String("company_id", event.CompanyID),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit invite message failed", zap.Error(err))
		}
	}
}
