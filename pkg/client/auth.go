package client

import (
	"context"

	"github.com/wataki/wataki-go/pkg/models"
)

type Auth struct {
	client *Client
}

// Auth returns a handle on the tenant and API key endpoints.
func (c *Client) Auth() *Auth {
	return &Auth{client: c}
}

// Signup creates a tenant. The returned API key is shown only once; it is
// not installed on the client.
func (a *Auth) Signup(ctx context.Context, req *models.SignupRequest) (*models.SignupResponse, error) {
	if req == nil {
		req = &models.SignupRequest{}
	}
	err := (&validator{}).
		required("name", req.Name).
		required("email", req.Email).
		err()
	if err != nil {
		return nil, err
	}
	var res models.SignupResponse
	err = a.client.post(ctx, "Auth.Signup", "/v1/auth/signup", req, &res)
	return &res, err
}

// Me returns the tenant owning the current API key.
func (a *Auth) Me(ctx context.Context) (*models.Tenant, error) {
	var res models.Tenant
	err := a.client.get(ctx, "Auth.Me", "/v1/auth/me", nil, &res)
	return &res, err
}

func (a *Auth) ListAPIKeys(ctx context.Context) (*models.APIKeyList, error) {
	var res models.APIKeyList
	err := a.client.get(ctx, "Auth.ListAPIKeys", "/v1/auth/api-keys", nil, &res)
	return &res, err
}

// CreateAPIKey issues a new key. name is optional.
func (a *Auth) CreateAPIKey(ctx context.Context, name string) (*models.APIKeyCreateResponse, error) {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	var res models.APIKeyCreateResponse
	err := a.client.post(ctx, "Auth.CreateAPIKey", "/v1/auth/api-keys", body, &res)
	return &res, err
}

func (a *Auth) DeleteAPIKey(ctx context.Context, keyID string) error {
	if err := requireID("key id", keyID); err != nil {
		return err
	}
	return a.client.delete(ctx, "Auth.DeleteAPIKey", "/v1/auth/api-keys/"+pathID(keyID))
}
