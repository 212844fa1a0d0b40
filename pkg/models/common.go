package models

// PageInfo carries the cursor of the next page. A nil NextCursor means the
// last page was returned.
type PageInfo struct {
	NextCursor *string `json:"next_cursor,omitempty"`
}

// HasMore reports whether another page can be fetched.
func (p PageInfo) HasMore() bool {
	return p.NextCursor != nil && *p.NextCursor != ""
}

// ListParams are the pagination parameters shared by list endpoints.
type ListParams struct {
	Limit  int
	Cursor string
}

type HealthStatus struct {
	Status  string                 `json:"status"`
	UptimeS float64                `json:"uptime_s"`
	Checks  map[string]interface{} `json:"checks"`
}

// IsOK reports whether the platform reported itself healthy.
func (h HealthStatus) IsOK() bool {
	return h.Status == "ok"
}
