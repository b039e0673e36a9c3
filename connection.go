package gatt

import "sync"

// ConnectionData is the per-link state the transport allocates when an
// L2CAP connection is established and destroys when it tears down. It
// carries no reference back into the Server; every dispatch call is
// handed a *ConnectionData explicitly.
//
// clientMTU is read on every dispatch and written only by Exchange MTU
// negotiation, so it is kept outside the mutex that
// guards the CCC bitset — the two never need to be consistent with
// each other.
type ConnectionData struct {
	serverMTU uint16
	clientMTU uint16

	mu      sync.Mutex
	cccMu   sync.Mutex
	cccBits map[int]uint16
}

// NewConnectionData allocates connection state for a new link. Per the
// spec's Connection Data invariants, serverMTU is clamped to the
// protocol floor of 23 and clientMTU starts at that same floor until
// Exchange MTU negotiates otherwise.
func NewConnectionData(serverMTU uint16) *ConnectionData {
	if serverMTU < defaultATTMTU {
		serverMTU = defaultATTMTU
	}
	return &ConnectionData{
		serverMTU: serverMTU,
		clientMTU: defaultATTMTU,
		cccBits:   make(map[int]uint16),
	}
}

// ServerMTU returns the MTU the server advertised at construction.
func (c *ConnectionData) ServerMTU() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverMTU
}

// ClientMTU returns the MTU the client negotiated, or the default if
// Exchange MTU has not yet run on this connection.
func (c *ConnectionData) ClientMTU() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clientMTU
}

// setClientMTU records the client's negotiated MTU. Only the Exchange
// MTU handler calls this.
func (c *ConnectionData) setClientMTU(mtu uint16) {
	c.mu.Lock()
	c.clientMTU = mtu
	c.mu.Unlock()
}

// NegotiatedMTU returns min(server_mtu, client_mtu), the ceiling every
// dispatch response is clipped to.
func (c *ConnectionData) NegotiatedMTU() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clientMTU < c.serverMTU {
		return c.clientMTU
	}
	return c.serverMTU
}

// cccEnabled reports whether flag (gattCCCNotifyFlag or
// gattCCCIndicateFlag) is set for the characteristic at cccIndex.
func (c *ConnectionData) cccEnabled(cccIndex int, flag uint16) bool {
	c.cccMu.Lock()
	defer c.cccMu.Unlock()
	return c.cccBits[cccIndex]&flag != 0
}

// readCCC serves a read or read-blob of a Client Characteristic
// Configuration descriptor: its 2-byte little-endian enable bitmask,
// per-connection rather than in the shared attribute table.
func readCCC(conn *ConnectionData, cccIndex int, out []byte, offset uint16) (int, AccessResult) {
	if conn == nil {
		return 0, ResultReadNotPermitted
	}

	conn.cccMu.Lock()
	bits := conn.cccBits[cccIndex]
	conn.cccMu.Unlock()

	var buf [2]byte
	write16(buf[:], bits)
	args := &ReadArgs{Out: out, Offset: offset}
	rc := readStatic(args, buf[:])
	return args.BufferSize, rc
}

// writeCCC applies a client write to a CCC descriptor. The Bluetooth
// Core Specification requires the value to be exactly 2 octets; any
// other length is a length error, surfaced the same way
// characteristic.go maps errInvalidAttrValueLength.
func writeCCC(conn *ConnectionData, cccIndex int, data []byte) AccessResult {
	if conn == nil {
		return ResultWriteNotPermitted
	}
	if len(data) != 2 {
		return ResultWriteOverflow
	}

	conn.cccMu.Lock()
	conn.cccBits[cccIndex] = read16(data)
	conn.cccMu.Unlock()
	return ResultSuccess
}
