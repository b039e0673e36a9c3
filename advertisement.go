package gatt

// MaxEIRPacketLength is the maximum allowed length of an advertising or
// scan response packet.
const MaxEIRPacketLength = 31

// advertising data field types, per the Bluetooth Core Specification
// Supplement's "Common Data Types".
const (
	typeFlags            = 0x01 // Flags
	typeSomeUUID16       = 0x02 // Incomplete List of 16-bit Service Class UUIDs
	typeAllUUID16        = 0x03 // Complete List of 16-bit Service Class UUIDs
	typeSomeUUID128      = 0x06 // Incomplete List of 128-bit Service Class UUIDs
	typeAllUUID128       = 0x07 // Complete List of 128-bit Service Class UUIDs
	typeShortName        = 0x08 // Shortened Local Name
	typeCompleteName     = 0x09 // Complete Local Name
	typeManufacturerData = 0xFF // Manufacturer Specific Data
)

// flag bits for the Flags AD type.
const (
	flagLimitedDiscoverable = 1 << iota // LE Limited Discoverable Mode
	flagGeneralDiscoverable             // LE General Discoverable Mode
	flagLEOnly                          // BR/EDR Not Supported
)

// advPacket is a small append-only builder for advertising/scan-response
// packets, used by Server.AdvertisingData (advertise.go) to build the
// server's Flags-then-name packet.
type advPacket struct {
	data []byte
}

// appendField appends a BLE advertising packet field: len, typ, data.
func (p *advPacket) appendField(typ byte, data []byte) {
	p.data = append(p.data, byte(len(data)+1))
	p.data = append(p.data, typ)
	p.data = append(p.data, data...)
}

// appendUUIDFit appends an advertised service UUID field if it fits in
// a packet no longer than MaxEIRPacketLength, and reports whether it fit.
func (p *advPacket) appendUUIDFit(u UUID) bool {
	if len(p.data)+u.Len()+2 > MaxEIRPacketLength {
		return false
	}
	switch u.Len() {
	case 2:
		p.appendField(typeSomeUUID16, u.Bytes())
	case 16:
		p.appendField(typeSomeUUID128, u.Bytes())
	}
	return true
}
