package snmp

import (
	"context"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMAC    = "aa:bb:cc:dd:ee:ff"
	testSuffix = "170.187.204.221.238.255"
)

// fakeConn is a scripted SNMP transport. Unknown GET instances answer with
// NoSuchInstance, matching a well-behaved v2c agent.
type fakeConn struct {
	connectErr error
	probeErr   error
	probeDelay time.Duration
	walkPDUs   []gosnmp.SnmpPDU
	walkErr    error
	responses  map[string]gosnmp.SnmpPDU
	getErr     error

	closed bool
	gets   []string
	walks  int
}

func (f *fakeConn) Connect() error { return f.connectErr }

func (f *fakeConn) Get(oids []string) (*gosnmp.SnmpPacket, error) {
	f.gets = append(f.gets, oids...)
	oid := oids[0]

	if oid == oidSysUpTime {
		if f.probeDelay > 0 {
			time.Sleep(f.probeDelay)
		}
		if f.probeErr != nil {
			return nil, f.probeErr
		}
		return &gosnmp.SnmpPacket{Variables: []gosnmp.SnmpPDU{
			{Name: oidSysUpTime, Type: gosnmp.TimeTicks, Value: uint32(123456)},
		}}, nil
	}

	if f.getErr != nil {
		return nil, f.getErr
	}
	if pdu, ok := f.responses[oid]; ok {
		return &gosnmp.SnmpPacket{Variables: []gosnmp.SnmpPDU{pdu}}, nil
	}
	return &gosnmp.SnmpPacket{Variables: []gosnmp.SnmpPDU{
		{Name: oid, Type: gosnmp.NoSuchInstance},
	}}, nil
}

func (f *fakeConn) WalkAll(rootOID string) ([]gosnmp.SnmpPDU, error) {
	f.walks++
	if f.walkErr != nil {
		return nil, f.walkErr
	}
	return f.walkPDUs, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func testResolver(c conn) *Resolver {
	return &Resolver{
		dial:           func(context.Context, LookupRequest) conn { return c },
		defaultTimeout: DefaultTimeout,
		defaultRetries: DefaultRetries,
	}
}

func fdbEntry(suffix string, port int) gosnmp.SnmpPDU {
	return gosnmp.SnmpPDU{
		Name:  oidDot1dTpFdbPort + "." + suffix,
		Type:  gosnmp.Integer,
		Value: port,
	}
}

// healthySwitch scripts a switch where the test MAC sits on bridge port 7,
// which crosses to ifIndex 10007, named Gi1/0/7.
func healthySwitch() *fakeConn {
	return &fakeConn{
		walkPDUs: []gosnmp.SnmpPDU{
			fdbEntry("0.1.2.3.4.5", 2),
			fdbEntry(testSuffix, 7),
			fdbEntry("16.32.48.64.80.96", 12),
		},
		responses: map[string]gosnmp.SnmpPDU{
			oidDot1dBasePortIfIndex + ".7": {Type: gosnmp.Integer, Value: 10007},
			oidIfName + ".10007":           {Type: gosnmp.OctetString, Value: []byte("Gi1/0/7")},
		},
	}
}

func lookupFor(mac string) LookupRequest {
	return LookupRequest{SwitchIP: "10.0.0.1", Community: "public", ClientMAC: mac}
}

func TestResolve_Resolved(t *testing.T) {
	fake := healthySwitch()
	mapping, err := testResolver(fake).Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)

	assert.Equal(t, StatusResolved, mapping.Status)
	require.NotNil(t, mapping.BridgePort)
	require.NotNil(t, mapping.IfIndex)
	assert.Equal(t, 7, *mapping.BridgePort)
	assert.Equal(t, 10007, *mapping.IfIndex)
	assert.Equal(t, "Gi1/0/7", mapping.InterfaceName)
	assert.Equal(t, testMAC, mapping.ClientMAC)
	assert.Equal(t, "10.0.0.1", mapping.SwitchIP)
	assert.True(t, fake.closed)
}

func TestResolve_MacSpellingsAreEquivalent(t *testing.T) {
	for _, spelling := range []string{"AA:BB:CC:DD:EE:FF", "aa-bb-cc-dd-ee-ff", "aabbccddeeff"} {
		mapping, err := testResolver(healthySwitch()).Resolve(context.Background(), lookupFor(spelling))
		require.NoError(t, err, "spelling %q", spelling)
		assert.Equal(t, StatusResolved, mapping.Status, "spelling %q", spelling)
		assert.Equal(t, testMAC, mapping.ClientMAC)
	}
}

func TestResolve_MacNotFound(t *testing.T) {
	fake := healthySwitch()
	mapping, err := testResolver(fake).Resolve(context.Background(), lookupFor("11:22:33:44:55:66"))
	require.NoError(t, err)

	assert.Equal(t, StatusMacNotFound, mapping.Status)
	assert.Nil(t, mapping.BridgePort)
	assert.Nil(t, mapping.IfIndex)
	assert.Empty(t, mapping.InterfaceName)

	// Short-circuit: no cross-reference GET was attempted after the walk.
	assert.Equal(t, []string{oidSysUpTime}, fake.gets)
	assert.Equal(t, 1, fake.walks)
	assert.True(t, fake.closed)
}

func TestResolve_BridgePortNotFound(t *testing.T) {
	fake := healthySwitch()
	delete(fake.responses, oidDot1dBasePortIfIndex+".7")

	mapping, err := testResolver(fake).Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)

	assert.Equal(t, StatusBridgePortNotFound, mapping.Status)
	require.NotNil(t, mapping.BridgePort)
	assert.Equal(t, 7, *mapping.BridgePort)
	assert.Nil(t, mapping.IfIndex)
	assert.Empty(t, mapping.InterfaceName)
}

func TestResolve_IfIndexNotFound(t *testing.T) {
	fake := healthySwitch()
	delete(fake.responses, oidIfName+".10007")

	mapping, err := testResolver(fake).Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)

	assert.Equal(t, StatusIfIndexNotFound, mapping.Status)
	require.NotNil(t, mapping.IfIndex)
	assert.Equal(t, 10007, *mapping.IfIndex)
	assert.Empty(t, mapping.InterfaceName)
}

func TestResolve_IfDescrFallback(t *testing.T) {
	fake := healthySwitch()
	delete(fake.responses, oidIfName+".10007")
	fake.responses[oidIfDescr+".10007"] = gosnmp.SnmpPDU{
		Type: gosnmp.OctetString, Value: []byte("GigabitEthernet1/0/7"),
	}

	mapping, err := testResolver(fake).Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)

	assert.Equal(t, StatusResolved, mapping.Status)
	assert.Equal(t, "GigabitEthernet1/0/7", mapping.InterfaceName)
}

func TestResolve_Unreachable_ConnectFails(t *testing.T) {
	fake := &fakeConn{connectErr: assert.AnError}
	mapping, err := testResolver(fake).Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)

	assert.Equal(t, StatusSnmpUnreachable, mapping.Status)
	assert.Nil(t, mapping.BridgePort)
	assert.Empty(t, fake.gets)
}

func TestResolve_Unreachable_NoResponseBounded(t *testing.T) {
	// The transport gives up after roughly retries x timeout; the resolver
	// must surface that as unreachable without retrying on its own.
	perAttempt := 40 * time.Millisecond
	fake := &fakeConn{probeDelay: 3 * perAttempt, probeErr: assert.AnError}

	start := time.Now()
	mapping, err := testResolver(fake).Resolve(context.Background(), lookupFor(testMAC))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, StatusSnmpUnreachable, mapping.Status)
	assert.GreaterOrEqual(t, elapsed, 3*perAttempt)
	assert.Less(t, elapsed, 20*perAttempt)
	assert.Equal(t, []string{oidSysUpTime}, fake.gets)
	assert.True(t, fake.closed)
}

func TestResolve_Unreachable_WalkTransportFailure(t *testing.T) {
	fake := &fakeConn{walkErr: assert.AnError}
	mapping, err := testResolver(fake).Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)

	assert.Equal(t, StatusSnmpUnreachable, mapping.Status)
	assert.True(t, fake.closed)
}

func TestResolve_InputValidation(t *testing.T) {
	r := testResolver(healthySwitch())

	_, err := r.Resolve(context.Background(), LookupRequest{Community: "public", ClientMAC: testMAC})
	assert.Error(t, err)

	_, err = r.Resolve(context.Background(), LookupRequest{SwitchIP: "10.0.0.1", ClientMAC: testMAC})
	assert.Error(t, err)

	_, err = r.Resolve(context.Background(), lookupFor("not-a-mac"))
	assert.Error(t, err)
}

func TestResolve_DefaultsApplied(t *testing.T) {
	var dialed LookupRequest
	r := &Resolver{
		dial: func(_ context.Context, req LookupRequest) conn {
			dialed = req
			return healthySwitch()
		},
		defaultTimeout: DefaultTimeout,
		defaultRetries: DefaultRetries,
	}

	_, err := r.Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeout, dialed.Timeout)
	assert.Equal(t, DefaultRetries, dialed.Retries)
	assert.Equal(t, DefaultPort, dialed.Port)
}

func TestResolve_StatelessAcrossLookups(t *testing.T) {
	r := testResolver(healthySwitch())

	first, err := r.Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), lookupFor(testMAC))
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.NotSame(t, first, second)
}
