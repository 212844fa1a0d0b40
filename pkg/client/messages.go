package client

import (
	"context"
	"net/http"

	"github.com/samber/lo"

	"github.com/wataki/wataki-go/pkg/models"
)

type Messages struct {
	client *Client
}

// Messages returns a handle on the message endpoints.
func (c *Client) Messages() *Messages {
	return &Messages{client: c}
}

func messagePath(instanceID, messageID string) string {
	return instancePath(instanceID) + "/messages/" + pathID(messageID)
}

// List returns the messages of one chat, newest first.
func (m *Messages) List(ctx context.Context, instanceID, chatID string, params *models.ListParams) (*models.MessageList, error) {
	err := (&validator{}).
		required("instance id", instanceID).
		required("chat_id", chatID).
		err()
	if err != nil {
		return nil, err
	}
	query := listQuery(params)
	query.Set("chat_id", chatID)

	var res models.MessageList
	err = m.client.get(ctx, "Messages.List", instancePath(instanceID)+"/messages", query, &res)
	return &res, err
}

// Send queues a message. When req.IdempotencyKey is set it is sent as the
// Idempotency-Key header and the request may be retried safely.
func (m *Messages) Send(ctx context.Context, instanceID string, req *models.SendMessageRequest) (*models.Message, error) {
	if req == nil {
		req = &models.SendMessageRequest{}
	}
	err := (&validator{}).
		required("instance id", instanceID).
		required("chat_id", req.ChatID).
		required("type", string(req.Type)).
		err()
	if err != nil {
		return nil, err
	}

	r := &request{
		op:     "Messages.Send",
		method: http.MethodPost,
		path:   instancePath(instanceID) + "/messages",
		body:   req,
	}
	if req.IdempotencyKey != "" {
		r.header = http.Header{}
		r.header.Set(headerIdempotencyKey, req.IdempotencyKey)
	}

	var res models.Message
	err = m.client.do(ctx, r, &res)
	return &res, err
}

func (m *Messages) Get(ctx context.Context, instanceID, messageID string) (*models.Message, error) {
	err := (&validator{}).
		required("instance id", instanceID).
		required("message id", messageID).
		err()
	if err != nil {
		return nil, err
	}
	var res models.Message
	err = m.client.get(ctx, "Messages.Get", messagePath(instanceID, messageID), nil, &res)
	return &res, err
}

// React sets emoji as the reaction to a message. An empty emoji removes it.
func (m *Messages) React(ctx context.Context, instanceID, messageID, emoji string) (*models.Message, error) {
	err := (&validator{}).
		required("instance id", instanceID).
		required("message id", messageID).
		err()
	if err != nil {
		return nil, err
	}
	var res models.Message
	body := map[string]string{"emoji": emoji}
	err = m.client.post(ctx, "Messages.React", messagePath(instanceID, messageID)+"/react", body, &res)
	return &res, err
}

func (m *Messages) MarkRead(ctx context.Context, instanceID, messageID string) (*models.ReadReceipt, error) {
	err := (&validator{}).
		required("instance id", instanceID).
		required("message id", messageID).
		err()
	if err != nil {
		return nil, err
	}
	var res models.ReadReceipt
	err = m.client.post(ctx, "Messages.MarkRead", messagePath(instanceID, messageID)+"/read", nil, &res)
	return &res, err
}

// SendPresence shows a typing or recording indicator in a chat.
func (m *Messages) SendPresence(ctx context.Context, instanceID string, req *models.PresenceRequest) (*models.PresenceResponse, error) {
	if req == nil {
		req = &models.PresenceRequest{}
	}
	err := (&validator{}).
		required("instance id", instanceID).
		required("chat_id", req.ChatID).
		check(lo.Contains(models.PresenceStates, req.State), "state must be one of %v, got %q", models.PresenceStates, req.State).
		err()
	if err != nil {
		return nil, err
	}
	var res models.PresenceResponse
	err = m.client.post(ctx, "Messages.SendPresence", instancePath(instanceID)+"/presence", req, &res)
	return &res, err
}
