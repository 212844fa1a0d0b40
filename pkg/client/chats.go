package client

import (
	"context"

	"github.com/wataki/wataki-go/pkg/models"
)

type Chats struct {
	client *Client
}

// Chats returns a handle on the chat endpoints.
func (c *Client) Chats() *Chats {
	return &Chats{client: c}
}

func (ch *Chats) List(ctx context.Context, instanceID string, params *models.ListParams) (*models.ChatList, error) {
	if err := requireID("instance id", instanceID); err != nil {
		return nil, err
	}
	var res models.ChatList
	err := ch.client.get(ctx, "Chats.List", instancePath(instanceID)+"/chats", listQuery(params), &res)
	return &res, err
}

// Get fetches one chat. Chat IDs such as 123@s.whatsapp.net are escaped.
func (ch *Chats) Get(ctx context.Context, instanceID, chatID string) (*models.Chat, error) {
	err := (&validator{}).
		required("instance id", instanceID).
		required("chat id", chatID).
		err()
	if err != nil {
		return nil, err
	}
	var res models.Chat
	err = ch.client.get(ctx, "Chats.Get", instancePath(instanceID)+"/chats/"+pathID(chatID), nil, &res)
	return &res, err
}

type Groups struct {
	client *Client
}

// Groups returns a handle on the group endpoints.
func (c *Client) Groups() *Groups {
	return &Groups{client: c}
}

func (g *Groups) List(ctx context.Context, instanceID string, params *models.ListParams) (*models.GroupList, error) {
	if err := requireID("instance id", instanceID); err != nil {
		return nil, err
	}
	var res models.GroupList
	err := g.client.get(ctx, "Groups.List", instancePath(instanceID)+"/groups", listQuery(params), &res)
	return &res, err
}
