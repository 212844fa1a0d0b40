package config

// Config keys. The matching environment variable is the key upper-cased,
// with dots replaced by underscores and a WATAKI_ prefix, e.g. WATAKI_API_KEY.
const (
	APIURL                     = "api.url"
	APIKey                     = "api.key"
	APITimeout                 = "api.timeout"
	APIRetryMax                = "api.retrymax"
	StreamReconnect            = "stream.reconnect"
	StreamReconnectInterval    = "stream.reconnectinterval"
	StreamMaxReconnectAttempts = "stream.maxreconnectattempts"
	InstanceID                 = "instance.id"
)

// Keys lists every supported key.
var Keys = []string{
	APIURL,
	APIKey,
	APITimeout,
	APIRetryMax,
	StreamReconnect,
	StreamReconnectInterval,
	StreamMaxReconnectAttempts,
	InstanceID,
}

// IsKey reports whether key is one of Keys.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
