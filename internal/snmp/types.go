package snmp

import "time"

// ResolutionStatus is the terminal state of one MAC-to-port lookup. Every
// value is an expected, explainable outcome: the point of the status is to
// tell the operator exactly which stage of the walk stopped.
type ResolutionStatus string

const (
	// StatusResolved means the switch's forwarding table currently
	// associates the MAC with the reported port. The association can be
	// stale; it never implies a cable is physically attached right now.
	StatusResolved ResolutionStatus = "resolved"

	// StatusMacNotFound means the FDB was walkable but carried no entry for
	// the MAC. Forwarding tables age entries out within minutes of
	// inactivity, so this is the common, non-fatal case.
	StatusMacNotFound ResolutionStatus = "mac_not_found"

	// StatusBridgePortNotFound means the FDB named a bridge port that has
	// no dot1dBasePortIfIndex cross-reference.
	StatusBridgePortNotFound ResolutionStatus = "bridge_port_not_found"

	// StatusIfIndexNotFound means IF-MIB has no name for the resolved
	// ifIndex (malformed or partial switch data).
	StatusIfIndexNotFound ResolutionStatus = "if_index_not_found"

	// StatusSnmpUnreachable means no SNMP response arrived within the
	// bounded timeout and retries.
	StatusSnmpUnreachable ResolutionStatus = "snmp_unreachable"
)

// LookupRequest configures one resolution attempt. SwitchIP, Community and
// ClientMAC are required; Timeout, Retries and Port default to safe values.
type LookupRequest struct {
	SwitchIP  string        `json:"switch_ip"`
	Community string        `json:"community"`
	ClientMAC string        `json:"client_mac"`
	Timeout   time.Duration `json:"-"`
	Retries   int           `json:"retries,omitempty"`
	Port      uint16        `json:"port,omitempty"`
}

// PortMapping is the result of one lookup, serialized as-is so the
// presentation layer can show the exact failing stage. Status is
// StatusResolved only when all three resolution fields are populated and
// mutually consistent.
type PortMapping struct {
	ClientMAC     string           `json:"client_mac"`
	SwitchIP      string           `json:"switch_ip"`
	BridgePort    *int             `json:"bridge_port,omitempty"`
	IfIndex       *int             `json:"if_index,omitempty"`
	InterfaceName string           `json:"interface_name,omitempty"`
	Status        ResolutionStatus `json:"resolution_status"`
}
