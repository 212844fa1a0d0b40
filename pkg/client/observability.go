package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/wataki/wataki-go/pkg/models"
)

type Observability struct {
	client *Client
}

// Observability returns a handle on the usage and health reports.
func (c *Client) Observability() *Observability {
	return &Observability{client: c}
}

func observabilityQuery(params *models.ObservabilityParams) url.Values {
	q := url.Values{}
	if params == nil {
		return q
	}
	if !params.Since.IsZero() {
		q.Set("since", params.Since.UTC().Format(time.RFC3339))
	}
	if !params.Until.IsZero() {
		q.Set("until", params.Until.UTC().Format(time.RFC3339))
	}
	if params.InstanceID != "" {
		q.Set("instance_id", params.InstanceID)
	}
	if params.Bucket != "" {
		q.Set("bucket", params.Bucket)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	return q
}

func validateObservability(params *models.ObservabilityParams) error {
	if params == nil {
		return nil
	}
	return (&validator{}).
		check(params.Bucket == "" || params.Bucket == "hour" || params.Bucket == "day",
			"bucket must be hour or day, got %q", params.Bucket).
		check(params.Since.IsZero() || params.Until.IsZero() || !params.Until.Before(params.Since),
			"until must not be before since").
		err()
}

func (o *Observability) report(ctx context.Context, op, path string, params *models.ObservabilityParams, out interface{}) error {
	if err := validateObservability(params); err != nil {
		return err
	}
	return o.client.get(ctx, op, "/v1/observability/"+path, observabilityQuery(params), out)
}

func (o *Observability) Overview(ctx context.Context, params *models.ObservabilityParams) (*models.ObservabilityOverview, error) {
	var res models.ObservabilityOverview
	err := o.report(ctx, "Observability.Overview", "overview", params, &res)
	return &res, err
}

func (o *Observability) Messages(ctx context.Context, params *models.ObservabilityParams) (*models.ObservabilityMessageStats, error) {
	var res models.ObservabilityMessageStats
	err := o.report(ctx, "Observability.Messages", "messages", params, &res)
	return &res, err
}

func (o *Observability) Webhooks(ctx context.Context, params *models.ObservabilityParams) (*models.ObservabilityWebhookStats, error) {
	var res models.ObservabilityWebhookStats
	err := o.report(ctx, "Observability.Webhooks", "webhooks", params, &res)
	return &res, err
}

func (o *Observability) APIUsage(ctx context.Context, params *models.ObservabilityParams) (*models.ObservabilityAPIUsage, error) {
	var res models.ObservabilityAPIUsage
	err := o.report(ctx, "Observability.APIUsage", "api-usage", params, &res)
	return &res, err
}

func (o *Observability) Instances(ctx context.Context) (*models.ObservabilityInstanceHealthList, error) {
	var res models.ObservabilityInstanceHealthList
	err := o.report(ctx, "Observability.Instances", "instances", nil, &res)
	return &res, err
}

func (o *Observability) Errors(ctx context.Context, params *models.ObservabilityParams) (*models.ObservabilityErrors, error) {
	var res models.ObservabilityErrors
	err := o.report(ctx, "Observability.Errors", "errors", params, &res)
	return &res, err
}
