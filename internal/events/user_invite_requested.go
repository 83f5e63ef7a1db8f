package events

import "time"

const UserInviteRequestedTopic = "timesheet.user.invite.v1"

type UserInviteRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	UserID      string    `json:"user_id"`
	CompanyID   string    `json:"company_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}
