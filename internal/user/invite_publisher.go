package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/events"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/messaging/kafka"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/contextutil"

	"github.com/google/uuid"
)

// OutboxInviteNotifier records invite requests in the outbox; the relay
// worker ships them to the invite topic and the consumer sends the mail.
// The core writes the event once per created user and never retries mail.
type OutboxInviteNotifier struct {
	outbox kafka.OutboxRepository
}

func NewOutboxInviteNotifier(outbox kafka.OutboxRepository) *OutboxInviteNotifier {
	return &OutboxInviteNotifier{outbox: outbox}
}

// RequestInvite writes the invite event. When tx is given the write joins
// it, committing or rolling back together with the user row.
func (n *OutboxInviteNotifier) RequestInvite(ctx context.Context, tx *sql.Tx, u *User) error {
	event := events.UserInviteRequestedEvent{
		EventType:   "user_invite_requested",
		RequestID:   contextutil.GetRequestID(ctx),
		UserID:      u.ID.String(),
		CompanyID:   u.CompanyID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		OccurredAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outbox := n.outbox
	if tx != nil {
		outbox = n.outbox.WithTx(tx)
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     event.RequestID,
		AggregateType: "user",
		AggregateID:   event.UserID,
		EventType:     event.EventType,
		Topic:         events.UserInviteRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
