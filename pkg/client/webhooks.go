package client

import (
	"context"
	"net/url"

	"github.com/wataki/wataki-go/pkg/models"
)

type Webhooks struct {
	client *Client
}

// Webhooks returns a handle on the webhook endpoints.
func (c *Client) Webhooks() *Webhooks {
	return &Webhooks{client: c}
}

func webhooksPath(instanceID string) string {
	return instancePath(instanceID) + "/webhooks"
}

func (w *Webhooks) List(ctx context.Context, instanceID string) (*models.WebhookList, error) {
	if err := requireID("instance id", instanceID); err != nil {
		return nil, err
	}
	var res models.WebhookList
	err := w.client.get(ctx, "Webhooks.List", webhooksPath(instanceID), nil, &res)
	return &res, err
}

func (w *Webhooks) Create(ctx context.Context, instanceID string, req *models.CreateWebhookRequest) (*models.Webhook, error) {
	if req == nil {
		req = &models.CreateWebhookRequest{}
	}
	err := (&validator{}).
		required("instance id", instanceID).
		required("url", req.URL).
		check(req.URL == "" || validWebhookURL(req.URL), "url must be an absolute http(s) address, got %q", req.URL).
		check(len(req.Events) > 0, "at least one event is required").
		err()
	if err != nil {
		return nil, err
	}
	var res models.Webhook
	err = w.client.post(ctx, "Webhooks.Create", webhooksPath(instanceID), req, &res)
	return &res, err
}

func (w *Webhooks) Update(ctx context.Context, instanceID, webhookID string, req *models.UpdateWebhookRequest) (*models.Webhook, error) {
	v := (&validator{}).
		required("instance id", instanceID).
		required("webhook id", webhookID)
	if req != nil && req.URL != nil {
		v.check(validWebhookURL(*req.URL), "url must be an absolute http(s) address, got %q", *req.URL)
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	var res models.Webhook
	err := w.client.patch(ctx, "Webhooks.Update", webhooksPath(instanceID)+"/"+pathID(webhookID), req, &res)
	return &res, err
}

func (w *Webhooks) Delete(ctx context.Context, instanceID, webhookID string) error {
	err := (&validator{}).
		required("instance id", instanceID).
		required("webhook id", webhookID).
		err()
	if err != nil {
		return err
	}
	return w.client.delete(ctx, "Webhooks.Delete", webhooksPath(instanceID)+"/"+pathID(webhookID))
}

func validWebhookURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
