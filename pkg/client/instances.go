package client

import (
	"context"

	"github.com/wataki/wataki-go/pkg/models"
)

type Instances struct {
	client *Client
}

// Instances returns a handle on the instance endpoints.
func (c *Client) Instances() *Instances {
	return &Instances{client: c}
}

func instancePath(id string) string {
	return "/v1/instances/" + pathID(id)
}

func (i *Instances) List(ctx context.Context, params *models.ListParams) (*models.InstanceList, error) {
	var res models.InstanceList
	err := i.client.get(ctx, "Instances.List", "/v1/instances", listQuery(params), &res)
	return &res, err
}

func (i *Instances) Create(ctx context.Context, req *models.CreateInstanceRequest) (*models.Instance, error) {
	if req == nil {
		req = &models.CreateInstanceRequest{}
	}
	if err := requireID("name", req.Name); err != nil {
		return nil, err
	}
	var res models.Instance
	err := i.client.post(ctx, "Instances.Create", "/v1/instances", req, &res)
	return &res, err
}

func (i *Instances) Get(ctx context.Context, id string) (*models.Instance, error) {
	if err := requireID("instance id", id); err != nil {
		return nil, err
	}
	var res models.Instance
	err := i.client.get(ctx, "Instances.Get", instancePath(id), nil, &res)
	return &res, err
}

// Update changes the fields that are set in req.
func (i *Instances) Update(ctx context.Context, id string, req *models.UpdateInstanceRequest) (*models.Instance, error) {
	if err := requireID("instance id", id); err != nil {
		return nil, err
	}
	var res models.Instance
	err := i.client.patch(ctx, "Instances.Update", instancePath(id), req, &res)
	return &res, err
}

func (i *Instances) Delete(ctx context.Context, id string) error {
	if err := requireID("instance id", id); err != nil {
		return err
	}
	return i.client.delete(ctx, "Instances.Delete", instancePath(id))
}

// Connect starts pairing the instance with its phone. The response carries a
// QR code when the instance is not paired yet; later codes and the final
// state arrive on the instance's event stream.
func (i *Instances) Connect(ctx context.Context, id string) (*models.ConnectResponse, error) {
	if err := requireID("instance id", id); err != nil {
		return nil, err
	}
	var res models.ConnectResponse
	err := i.client.post(ctx, "Instances.Connect", instancePath(id)+"/connect", nil, &res)
	return &res, err
}

func (i *Instances) Status(ctx context.Context, id string) (*models.InstanceStatus, error) {
	if err := requireID("instance id", id); err != nil {
		return nil, err
	}
	var res models.InstanceStatus
	err := i.client.get(ctx, "Instances.Status", instancePath(id)+"/status", nil, &res)
	return &res, err
}

func (i *Instances) Disconnect(ctx context.Context, id string) (*models.InstanceStatus, error) {
	if err := requireID("instance id", id); err != nil {
		return nil, err
	}
	var res models.InstanceStatus
	err := i.client.post(ctx, "Instances.Disconnect", instancePath(id)+"/disconnect", nil, &res)
	return &res, err
}
