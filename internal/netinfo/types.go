package netinfo

// ConnectionType classifies how an adapter reaches the network.
type ConnectionType string

const (
	ConnectionWiFi     ConnectionType = "wifi"
	ConnectionEthernet ConnectionType = "ethernet"
	ConnectionUnknown  ConnectionType = "unknown"
)

// InterfaceInfo describes one discovered network adapter. Platform-specific
// fields (link speed, SSID, signal) are populated only where the OS exposes
// them; absence is expected, not an error. MAC is the natural key across
// enumerations.
type InterfaceInfo struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	MACAddress     string         `json:"mac_address,omitempty"`
	ConnectionType ConnectionType `json:"connection_type"`
	LinkSpeedMbps  *int           `json:"link_speed_mbps,omitempty"`
	LinkQuality    string         `json:"link_quality,omitempty"`
	SignalQuality  *int           `json:"signal_quality,omitempty"`
	SSID           string         `json:"ssid,omitempty"`
	OSIndex        *int           `json:"os_index,omitempty"`
	IsUp           bool           `json:"is_up"`
}
