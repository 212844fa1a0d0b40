package models

// InstanceStatusState is the connection state of a WhatsApp instance.
type InstanceStatusState string

const (
	InstanceStateDisconnected InstanceStatusState = "disconnected"
	InstanceStateConnecting   InstanceStatusState = "connecting"
	InstanceStateQRRequired   InstanceStatusState = "qr_required"
	InstanceStateConnected    InstanceStatusState = "connected"
	InstanceStateReconnecting InstanceStatusState = "reconnecting"
	InstanceStateLoggedOut    InstanceStatusState = "logged_out"
	InstanceStateError        InstanceStatusState = "error"
)

// InstanceConfig controls which chats an instance reacts to and how it
// handles media and reconnection on the server side.
type InstanceConfig struct {
	AllowedGroups         []string `json:"allowed_groups,omitempty"`
	AllowedDMs            []string `json:"allowed_dms,omitempty"`
	RespondToMentionsOnly *bool    `json:"respond_to_mentions_only,omitempty"`
	AutoReconnect         *bool    `json:"auto_reconnect,omitempty"`
	DownloadMedia         *bool    `json:"download_media,omitempty"`
	EmitRaw               *bool    `json:"emit_raw,omitempty"`
}

type InstanceStatus struct {
	State     InstanceStatusState `json:"state"`
	LastError *string             `json:"last_error,omitempty"`
	UpdatedAt string              `json:"updated_at,omitempty"`
}

type Instance struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      InstanceStatus  `json:"status"`
	Config      *InstanceConfig `json:"config,omitempty"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	JID         *string         `json:"jid,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

type InstanceList struct {
	Data []Instance `json:"data"`
	Page PageInfo   `json:"page"`
}

// ConnectResponse is returned when an instance starts connecting. QR is set
// when the instance needs to be paired with a phone.
type ConnectResponse struct {
	Status         InstanceStatus `json:"status"`
	QR             *string        `json:"qr,omitempty"`
	QRImageDataURL *string        `json:"qr_image_data_url,omitempty"`
}

type CreateInstanceRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Config      *InstanceConfig `json:"config,omitempty"`
}

type UpdateInstanceRequest struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Config      *InstanceConfig `json:"config,omitempty"`
}
