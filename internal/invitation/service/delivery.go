package service

import (
	"context"

	"github.com/wattlehq/gatepass/pkg/slogx"
)

// Delivery context field names shared with notification hook implementations.
// Caller-supplied extras override these on key collision.
const (
	CtxInvitationKey      = "invitation_key"
	CtxInvitationURL      = "invitation_url"
	CtxExpirationDate     = "expiration_date"
	CtxExpirationDays     = "expiration_days"
	CtxFromUser           = "from_user"
	CtxRecipientEmail     = "recipient_email"
	CtxRecipientFirstName = "recipient_first_name"
	CtxRecipientLastName  = "recipient_last_name"
	CtxRecipientOther     = "recipient_other"
	CtxToken              = "token"
)

// DeliveryContext is the bag of values a notification hook needs to render
// and transmit an invitation.
type DeliveryContext map[string]any

// NotificationHook transmits an invitation to its recipient (email, chat,
// whatever the deployment wires in). A hook error never rolls back the
// created key.
type NotificationHook interface {
	SendInvitation(ctx context.Context, dc DeliveryContext) error
}

// LogNotificationHook is the fallback hook when no transport is configured:
// it records the invitation instead of delivering it.
type LogNotificationHook struct{}

func (LogNotificationHook) SendInvitation(ctx context.Context, dc DeliveryContext) error {
	slogx.FromContext(ctx).Info("invitation ready for delivery",
		"recipient", dc[CtxRecipientEmail],
		"invitation_url", dc[CtxInvitationURL],
	)
	return nil
}
