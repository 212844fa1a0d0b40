package client

import (
	"context"

	"github.com/samber/lo"

	"github.com/wataki/wataki-go/pkg/models"
)

type Billing struct {
	client *Client
}

// Billing returns a handle on the billing endpoints.
func (c *Client) Billing() *Billing {
	return &Billing{client: c}
}

func (b *Billing) Plans(ctx context.Context) (*models.BillingPlans, error) {
	var res models.BillingPlans
	err := b.client.get(ctx, "Billing.Plans", "/v1/billing/plans", nil, &res)
	return &res, err
}

func (b *Billing) Usage(ctx context.Context) (*models.BillingUsage, error) {
	var res models.BillingUsage
	err := b.client.get(ctx, "Billing.Usage", "/v1/billing/usage", nil, &res)
	return &res, err
}

// Upgrade starts a checkout for one of models.PaidPlans.
func (b *Billing) Upgrade(ctx context.Context, plan string) (*models.BillingUpgradeResponse, error) {
	err := (&validator{}).
		check(lo.Contains(models.PaidPlans, plan), "plan must be one of %v, got %q", models.PaidPlans, plan).
		err()
	if err != nil {
		return nil, err
	}
	var res models.BillingUpgradeResponse
	err = b.client.post(ctx, "Billing.Upgrade", "/v1/billing/upgrade", map[string]string{"plan": plan}, &res)
	return &res, err
}
