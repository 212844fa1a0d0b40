package models

import "time"

// ObservabilityParams filters observability reports. Zero values are omitted
// from the query.
type ObservabilityParams struct {
	Since      time.Time
	Until      time.Time
	InstanceID string
	// Bucket is either "hour" or "day".
	Bucket string
	Limit  int
}

type MessageBreakdown struct {
	Direction string `json:"direction"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Count     int64  `json:"count"`
}

type APIBreakdown struct {
	Method       string  `json:"method"`
	Path         string  `json:"path"`
	StatusBucket string  `json:"status_bucket"`
	Count        int64   `json:"count"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

type WebhookSummary struct {
	Total        int64   `json:"total"`
	SuccessCount int64   `json:"success_count"`
	FailureCount int64   `json:"failure_count"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

type ObservabilityInstanceHealth struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        InstanceStatus `json:"status"`
	PhoneNumber   *string        `json:"phone_number"`
	JID           *string        `json:"jid"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	MessageCount  int64          `json:"message_count"`
	InboundCount  int64          `json:"inbound_count"`
	OutboundCount int64          `json:"outbound_count"`
	MediaCount    int64          `json:"media_count"`
}

type ObservabilityOverview struct {
	Messages struct {
		Total     int64              `json:"total"`
		Breakdown []MessageBreakdown `json:"breakdown"`
	} `json:"messages"`
	Instances struct {
		Total     int64                         `json:"total"`
		Connected int64                         `json:"connected"`
		Health    []ObservabilityInstanceHealth `json:"health"`
	} `json:"instances"`
	Webhooks struct {
		WebhookSummary
		SuccessRate float64 `json:"success_rate"`
	} `json:"webhooks"`
	API struct {
		TotalRequests int64          `json:"total_requests"`
		Breakdown     []APIBreakdown `json:"breakdown"`
	} `json:"api"`
}

type ObservabilityMessageStats struct {
	Stats      []MessageBreakdown `json:"stats"`
	TimeSeries []struct {
		Bucket    string `json:"bucket"`
		Direction string `json:"direction"`
		Count     int64  `json:"count"`
	} `json:"time_series"`
}

type WebhookDelivery struct {
	ID         string  `json:"id"`
	WebhookID  string  `json:"webhook_id"`
	InstanceID string  `json:"instance_id"`
	Event      string  `json:"event"`
	URL        string  `json:"url"`
	StatusCode *int    `json:"status_code"`
	Success    bool    `json:"success"`
	LatencyMs  *int64  `json:"latency_ms"`
	Error      *string `json:"error"`
	Attempt    int     `json:"attempt"`
	CreatedAt  string  `json:"created_at"`
}

type ObservabilityWebhookStats struct {
	Stats      WebhookSummary `json:"stats"`
	TimeSeries []struct {
		Bucket       string  `json:"bucket"`
		Success      int64   `json:"success"`
		Failed       int64   `json:"failed"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	} `json:"time_series"`
	RecentFailures []WebhookDelivery `json:"recent_failures"`
}

type ObservabilityAPIUsage struct {
	Stats      []APIBreakdown `json:"stats"`
	TimeSeries []struct {
		Bucket       string  `json:"bucket"`
		Count        int64   `json:"count"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	} `json:"time_series"`
}

type ObservabilityInstanceHealthList struct {
	Data []ObservabilityInstanceHealth `json:"data"`
}

type ObservabilityErrors struct {
	FailedMessages   int64 `json:"failed_messages"`
	FailedWebhooks   int64 `json:"failed_webhooks"`
	API5xx           int64 `json:"api_5xx"`
	ErroredInstances int64 `json:"errored_instances"`
}
