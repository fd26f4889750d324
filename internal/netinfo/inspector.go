package netinfo

import (
	"errors"
	"fmt"
	stdnet "net"
	"strings"

	"github.com/shirou/gopsutil/v4/net"
)

// ErrEnumerationFailed means the OS interface table itself could not be
// read. Partial per-interface data is never reported as this error.
var ErrEnumerationFailed = errors.New("interface enumeration failed")

// Inspector enumerates local network adapters. It holds no state: every
// ListInterfaces call re-reads the OS interface table.
type Inspector struct{}

// NewInspector creates an inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// ListInterfaces returns a fresh view of all non-loopback adapters.
func (i *Inspector) ListInterfaces() ([]InterfaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrEnumerationFailed)
	}

	infos := make([]InterfaceInfo, 0, len(ifaces))
	for _, iface := range ifaces {
		if hasFlag(iface.Flags, "loopback") {
			continue
		}

		index := iface.Index
		info := InterfaceInfo{
			Name:    iface.Name,
			OSIndex: &index,
			IsUp:    hasFlag(iface.Flags, "up"),
		}

		if mac := normalizeHardwareAddr(iface.HardwareAddr); mac != "" {
			info.MACAddress = mac
		}

		wireless := isWireless(iface.Name)
		info.ConnectionType = classifyName(iface.Name, wireless)

		if speed := linkSpeedMbps(iface.Name); speed != nil {
			info.LinkSpeedMbps = speed
			info.LinkQuality = qualityForSpeed(*speed)
		}

		if wireless {
			info.SignalQuality = signalQuality(iface.Name)
			info.SSID = currentSSID(iface.Name)
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// classifyName maps an interface to a connection type. Wireless detection
// from the platform wins; otherwise common naming conventions decide.
func classifyName(name string, wireless bool) ConnectionType {
	if wireless {
		return ConnectionWiFi
	}

	lower := strings.ToLower(name)
	for _, token := range []string{"wi-fi", "wifi", "wlan", "wireless", "wlp"} {
		if strings.Contains(lower, token) {
			return ConnectionWiFi
		}
	}
	for _, prefix := range []string{"eth", "en", "em", "lan"} {
		if strings.HasPrefix(lower, prefix) {
			return ConnectionEthernet
		}
	}
	return ConnectionUnknown
}

// qualityForSpeed tiers link speed the way operators read it: gigabit-class
// strong, broadband-class moderate, anything slower poor.
func qualityForSpeed(mbps int) string {
	switch {
	case mbps >= 100:
		return "strong"
	case mbps >= 20:
		return "moderate"
	case mbps > 0:
		return "poor"
	default:
		return ""
	}
}

// normalizeHardwareAddr validates a MAC string and returns its canonical
// lower-case colon form, or "" when the value is missing or malformed.
func normalizeHardwareAddr(s string) string {
	if s == "" {
		return ""
	}
	hw, err := stdnet.ParseMAC(s)
	if err != nil || len(hw) != 6 {
		return ""
	}
	return strings.ToLower(hw.String())
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}
