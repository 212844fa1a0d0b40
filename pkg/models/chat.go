package models

type Chat struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	IsGroup          bool    `json:"is_group"`
	ParticipantCount *int    `json:"participant_count,omitempty"`
	LastMessageID    *string `json:"last_message_id,omitempty"`
}

type ChatList struct {
	Data []Chat   `json:"data"`
	Page PageInfo `json:"page"`
}

type Group struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	ParticipantCount *int    `json:"participant_count,omitempty"`
}

type GroupList struct {
	Data []Group  `json:"data"`
	Page PageInfo `json:"page"`
}
