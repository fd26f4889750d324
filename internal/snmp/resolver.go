package snmp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
)

// Standard BRIDGE-MIB and IF-MIB columns the walk traverses, in stage order.
const (
	oidSysUpTime            = ".1.3.6.1.2.1.1.3.0"
	oidDot1dTpFdbPort       = ".1.3.6.1.2.1.17.4.3.1.2"
	oidDot1dBasePortIfIndex = ".1.3.6.1.2.1.17.1.4.1.2"
	oidIfName               = ".1.3.6.1.2.1.31.1.1.1.1"
	oidIfDescr              = ".1.3.6.1.2.1.2.2.1.2"
)

const (
	// DefaultTimeout bounds each SNMP request.
	DefaultTimeout = 1500 * time.Millisecond
	// DefaultRetries is the fixed retry count for the connection attempt.
	DefaultRetries = 2
	// DefaultPort is the standard SNMP agent port.
	DefaultPort uint16 = 161
)

// conn is the slice of the SNMP client the resolver needs. Production uses
// gosnmp; tests substitute a scripted transport.
type conn interface {
	Connect() error
	Get(oids []string) (*gosnmp.SnmpPacket, error)
	WalkAll(rootOID string) ([]gosnmp.SnmpPDU, error)
	Close() error
}

// dialFunc builds a session for one lookup. Each in-flight lookup owns its
// session exclusively; nothing is pooled or shared.
type dialFunc func(ctx context.Context, req LookupRequest) conn

// Resolver maps a client MAC to a switch interface name via a four-stage
// BRIDGE-MIB/IF-MIB walk. It holds no state across lookups, so concurrent
// calls for different MACs or switches never interfere.
type Resolver struct {
	dial           dialFunc
	defaultTimeout time.Duration
	defaultRetries int
}

// NewResolver creates a resolver with fallback timeout/retry values applied
// to requests that leave them unset.
func NewResolver(timeout time.Duration, retries int) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if retries < 0 {
		retries = DefaultRetries
	}
	return &Resolver{
		dial:           dialGosnmp,
		defaultTimeout: timeout,
		defaultRetries: retries,
	}
}

// Resolve runs the walk for one request. The returned mapping always carries
// a terminal status; an error is returned only for malformed input. Stages
// run strictly in sequence and the walk short-circuits on the first failing
// stage; later stages are never probed speculatively.
func (r *Resolver) Resolve(ctx context.Context, req LookupRequest) (*PortMapping, error) {
	if req.SwitchIP == "" {
		return nil, fmt.Errorf("switch_ip is required")
	}
	if req.Community == "" {
		return nil, fmt.Errorf("community is required")
	}

	canonical, err := NormalizeMAC(req.ClientMAC)
	if err != nil {
		return nil, err
	}
	suffix, _ := macOIDSuffix(canonical)

	if req.Timeout <= 0 {
		req.Timeout = r.defaultTimeout
	}
	if req.Retries <= 0 {
		req.Retries = r.defaultRetries
	}
	if req.Port == 0 {
		req.Port = DefaultPort
	}

	mapping := &PortMapping{ClientMAC: canonical, SwitchIP: req.SwitchIP}
	mapping.Status = r.walk(ctx, req, suffix, mapping)
	return mapping, nil
}

// walk executes the four stages against a fresh session and returns the
// terminal status. Intermediate results are recorded on the mapping as each
// stage succeeds, so a later failure still shows how far the walk got.
func (r *Resolver) walk(ctx context.Context, req LookupRequest, macSuffix string, mapping *PortMapping) ResolutionStatus {
	session := r.dial(ctx, req)

	// Stage 1: Connect. One sysUpTime probe proves the agent answers at
	// all; the probe carries the request's bounded timeout and retries.
	if err := session.Connect(); err != nil {
		return StatusSnmpUnreachable
	}
	defer session.Close()

	if _, err := session.Get([]string{oidSysUpTime}); err != nil {
		return StatusSnmpUnreachable
	}

	// Stage 2: MacLookup. Walk the forwarding database and match the MAC's
	// OID suffix. An absent entry is normal aging, not a transport fault.
	pdus, err := session.WalkAll(oidDot1dTpFdbPort)
	if err != nil {
		return StatusSnmpUnreachable
	}

	bridgePort, found := findBridgePort(pdus, macSuffix)
	if !found {
		return StatusMacNotFound
	}
	mapping.BridgePort = &bridgePort

	// Stage 3: PortToIfIndex.
	ifIndex, ok, err := r.getInt(session, oidDot1dBasePortIfIndex+"."+strconv.Itoa(bridgePort))
	if err != nil {
		return StatusSnmpUnreachable
	}
	if !ok {
		return StatusBridgePortNotFound
	}
	mapping.IfIndex = &ifIndex

	// Stage 4: IfIndexToName. Prefer ifName, fall back to the older ifDescr.
	name, ok, err := r.getName(session, ifIndex)
	if err != nil {
		return StatusSnmpUnreachable
	}
	if !ok {
		return StatusIfIndexNotFound
	}
	mapping.InterfaceName = name

	return StatusResolved
}

// findBridgePort scans FDB rows for the one indexed by the MAC's decimal
// OID suffix and returns its bridge port value.
func findBridgePort(pdus []gosnmp.SnmpPDU, macSuffix string) (int, bool) {
	for _, pdu := range pdus {
		if !strings.HasSuffix(pdu.Name, "."+macSuffix) {
			continue
		}
		if port, ok := pduInt(pdu); ok {
			return port, true
		}
	}
	return 0, false
}

// getInt performs a single GET and decodes an integer value. The bool is
// false when the agent answered but the instance does not exist.
func (r *Resolver) getInt(session conn, oid string) (int, bool, error) {
	pdu, err := getSingle(session, oid)
	if err != nil {
		return 0, false, err
	}
	if pdu == nil {
		return 0, false, nil
	}
	value, ok := pduInt(*pdu)
	return value, ok, nil
}

// getName resolves an ifIndex to its IF-MIB name, trying ifName then ifDescr.
func (r *Resolver) getName(session conn, ifIndex int) (string, bool, error) {
	for _, column := range []string{oidIfName, oidIfDescr} {
		pdu, err := getSingle(session, column+"."+strconv.Itoa(ifIndex))
		if err != nil {
			return "", false, err
		}
		if pdu == nil {
			continue
		}
		if name, ok := pduString(*pdu); ok && name != "" {
			return name, true, nil
		}
	}
	return "", false, nil
}

// getSingle returns the PDU for one instance OID, nil when the agent
// answered with a no-such marker or an SNMP-level error, and err only on
// transport failure.
func getSingle(session conn, oid string) (*gosnmp.SnmpPDU, error) {
	packet, err := session.Get([]string{oid})
	if err != nil {
		return nil, err
	}
	if packet == nil || packet.Error != gosnmp.NoError || len(packet.Variables) == 0 {
		return nil, nil
	}

	pdu := packet.Variables[0]
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return nil, nil
	}
	return &pdu, nil
}

func pduInt(pdu gosnmp.SnmpPDU) (int, bool) {
	switch v := pdu.Value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	default:
		return 0, false
	}
}

func pduString(pdu gosnmp.SnmpPDU) (string, bool) {
	switch v := pdu.Value.(type) {
	case []byte:
		return string(v), true
	case string:
		return v, true
	default:
		return "", false
	}
}

// gosnmpConn adapts gosnmp.GoSNMP to the conn interface.
type gosnmpConn struct {
	g *gosnmp.GoSNMP
}

func (c *gosnmpConn) Connect() error { return c.g.Connect() }

func (c *gosnmpConn) Get(oids []string) (*gosnmp.SnmpPacket, error) { return c.g.Get(oids) }

func (c *gosnmpConn) WalkAll(rootOID string) ([]gosnmp.SnmpPDU, error) {
	return c.g.WalkAll(rootOID)
}

func (c *gosnmpConn) Close() error {
	if c.g.Conn != nil {
		return c.g.Conn.Close()
	}
	return nil
}

// dialGosnmp builds a v2c session honoring the caller's context deadline, so
// a canceled lookup aborts cleanly instead of leaving a dangling socket.
func dialGosnmp(ctx context.Context, req LookupRequest) conn {
	return &gosnmpConn{g: &gosnmp.GoSNMP{
		Target:             req.SwitchIP,
		Port:               req.Port,
		Community:          req.Community,
		Version:            gosnmp.Version2c,
		Timeout:            req.Timeout,
		Retries:            req.Retries,
		ExponentialTimeout: true,
		Context:            ctx,
		MaxOids:            gosnmp.MaxOids,
	}}
}
