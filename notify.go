package bring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// activityReaction is the reaction block of a stream-reaction notification.
type activityReaction struct {
	ModuleUUID   string `json:"moduleUuid"`
	ModuleType   string `json:"moduleType"`
	ReactionType string `json:"reactionType"`
}

type notificationPayload struct {
	Arguments                  []string          `json:"arguments"`
	ListNotificationType       string            `json:"listNotificationType"`
	SenderPublicUserUUID       string            `json:"senderPublicUserUuid"`
	ReceiverPublicUserUUID     string            `json:"receiverPublicUserUuid,omitempty"`
	ListActivityStreamReaction *activityReaction `json:"listActivityStreamReaction,omitempty"`
}

// NotifyOptions carries the type-dependent arguments of a notification.
//
// NotificationUrgentMessage requires ItemName. NotificationStreamReaction
// requires Reaction plus either Activity, or the ActivityUUID/Receiver/
// ActivityType triple identifying the entry being reacted to.
type NotifyOptions struct {
	ItemName     string
	Activity     *Activity
	ActivityUUID string
	Receiver     string
	ActivityType ActivityType
	Reaction     ReactionType
}

// Notify sends a push notification to all other members of a shared list.
func (c *Client) Notify(ctx context.Context, listUUID string, notificationType NotificationType, opts NotifyOptions) error {
	payload := notificationPayload{
		Arguments:            []string{},
		ListNotificationType: string(notificationType),
		SenderPublicUserUUID: c.session.publicUUID,
	}

	switch notificationType {
	case NotificationGoingShopping, NotificationChangedList, NotificationShoppingDone:
	case NotificationUrgentMessage:
		if opts.ItemName == "" {
			return errors.New("notification type is URGENT_MESSAGE but argument ItemName missing")
		}
		payload.Arguments = []string{opts.ItemName}
	case NotificationStreamReaction:
		switch {
		case opts.Activity != nil && opts.Reaction != "":
			payload.ReceiverPublicUserUUID = opts.Activity.Content.PublicUserUUID
			payload.ListActivityStreamReaction = &activityReaction{
				ModuleUUID:   opts.Activity.Content.UUID,
				ModuleType:   string(opts.Activity.Type),
				ReactionType: string(opts.Reaction),
			}
		case opts.ActivityUUID != "" && opts.Receiver != "" && opts.ActivityType != "" && opts.Reaction != "":
			payload.ReceiverPublicUserUUID = opts.Receiver
			payload.ListActivityStreamReaction = &activityReaction{
				ModuleUUID:   opts.ActivityUUID,
				ModuleType:   string(opts.ActivityType),
				ReactionType: string(opts.Reaction),
			}
		default:
			return fmt.Errorf("notification type is LIST_ACTIVITY_STREAM_REACTION but a parameter is missing [receiver=%q, activityUuid=%q, activityType=%q, reaction=%q]",
				opts.Receiver, opts.ActivityUUID, opts.ActivityType, opts.Reaction)
		}
	default:
		return fmt.Errorf("notification type %q not supported", notificationType)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	rel := &url.URL{Path: "v2/bringnotifications/lists/" + listUUID}
	_, err = c.do(ctx, http.MethodPost, rel, body, contentTypeJSON)
	return err
}
