package models

type Tenant struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Plan           string  `json:"plan"`
	Status         string  `json:"status"`
	DodoCustomerID *string `json:"dodo_customer_id,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

type SignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SignupResponse struct {
	Tenant Tenant `json:"tenant"`
	APIKey string `json:"api_key"`
}

type APIKeySummary struct {
	ID         string  `json:"id"`
	KeyPrefix  string  `json:"key_prefix"`
	Name       string  `json:"name"`
	CreatedAt  string  `json:"created_at,omitempty"`
	LastUsedAt *string `json:"last_used_at,omitempty"`
}

type APIKeyList struct {
	Data []APIKeySummary `json:"data"`
}

type APIKeyCreateResponse struct {
	ID        string `json:"id"`
	APIKey    string `json:"api_key"`
	KeyPrefix string `json:"key_prefix"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}
