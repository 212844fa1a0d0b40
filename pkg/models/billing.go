package models

type BillingPlan struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	PriceCents       int64  `json:"price_cents"`
	IncludedMessages int64  `json:"included_messages"`
}

type BillingPlans struct {
	Data []BillingPlan `json:"data"`
}

type BillingUsage struct {
	Plan struct {
		BillingPlan
		CancelsAtCycleEnd bool `json:"cancels_at_cycle_end"`
	} `json:"plan"`
	BillingCycle struct {
		Start         *string `json:"start"`
		End           *string `json:"end"`
		DaysRemaining int     `json:"days_remaining"`
	} `json:"billing_cycle"`
	Usage struct {
		Sent      int64 `json:"sent"`
		Included  int64 `json:"included"`
		Remaining int64 `json:"remaining"`
	} `json:"usage"`
}

type BillingUpgradeResponse struct {
	Plan        string  `json:"plan"`
	CheckoutURL *string `json:"checkout_url"`
	SessionID   string  `json:"session_id"`
}

// PaidPlans are the plans a tenant can upgrade to.
var PaidPlans = []string{"growth", "scale"}
