package models

type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeImage    MessageType = "image"
	MessageTypeVideo    MessageType = "video"
	MessageTypeAudio    MessageType = "audio"
	MessageTypeDocument MessageType = "document"
	MessageTypeSticker  MessageType = "sticker"
	MessageTypeLocation MessageType = "location"
	MessageTypeContacts MessageType = "contacts"
	MessageTypeButtons  MessageType = "buttons"
	MessageTypeList     MessageType = "list"
	MessageTypeTemplate MessageType = "template"
	MessageTypeReaction MessageType = "reaction"
)

// MessageTypes lists every MessageType.
var MessageTypes = []MessageType{
	MessageTypeText, MessageTypeImage, MessageTypeVideo, MessageTypeAudio,
	MessageTypeDocument, MessageTypeSticker, MessageTypeLocation, MessageTypeContacts,
	MessageTypeButtons, MessageTypeList, MessageTypeTemplate, MessageTypeReaction,
}

type MessageStatus string

const (
	MessageStatusQueued    MessageStatus = "queued"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
	MessageStatusFailed    MessageStatus = "failed"
)

type MessageDirection string

const (
	DirectionInbound  MessageDirection = "inbound"
	DirectionOutbound MessageDirection = "outbound"
)

type Message struct {
	ID        string                 `json:"id"`
	ChatID    string                 `json:"chat_id"`
	From      string                 `json:"from"`
	To        string                 `json:"to"`
	Direction MessageDirection       `json:"direction"`
	Type      MessageType            `json:"type"`
	Content   map[string]interface{} `json:"content"`
	Status    MessageStatus          `json:"status,omitempty"`
	Timestamp string                 `json:"timestamp"`
	Raw       map[string]interface{} `json:"raw,omitempty"`
}

// Text returns the body of a text message, or an empty string for any other
// message type.
func (m Message) Text() string {
	if m.Type != MessageTypeText {
		return ""
	}
	text, _ := m.Content["text"].(string)
	return text
}

type MessageList struct {
	Data []Message `json:"data"`
	Page PageInfo  `json:"page"`
}

type SendMessageRequest struct {
	ChatID   string                 `json:"chat_id"`
	Type     MessageType            `json:"type"`
	Content  map[string]interface{} `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IdempotencyKey is sent as the Idempotency-Key header, not in the body.
	IdempotencyKey string `json:"-"`
}

// NewTextMessage builds a request sending a plain text message.
func NewTextMessage(chatID, text string) *SendMessageRequest {
	return &SendMessageRequest{
		ChatID:  chatID,
		Type:    MessageTypeText,
		Content: map[string]interface{}{"text": text},
	}
}

type ReadReceipt struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type PresenceState string

const (
	PresenceComposing PresenceState = "composing"
	PresencePaused    PresenceState = "paused"
	PresenceRecording PresenceState = "recording"
)

var PresenceStates = []PresenceState{PresenceComposing, PresencePaused, PresenceRecording}

type PresenceRequest struct {
	ChatID string        `json:"chat_id"`
	State  PresenceState `json:"state"`
}

type PresenceResponse struct {
	ChatID    string `json:"chat_id"`
	State     string `json:"state"`
	Timestamp string `json:"timestamp"`
}
