package gatt

import "encoding/binary"

// ATT request opcodes handled by the dispatcher, and the response
// opcodes it produces. The server never initiates a request, so no
// other response opcodes are used.
const (
	opError              = 0x01
	opExchangeMTUReq     = 0x02
	opExchangeMTUResp    = 0x03
	opFindInfoReq        = 0x04
	opFindInfoResp       = 0x05
	opFindByTypeValueReq = 0x06
	opFindByTypeValueRes = 0x07
	opReadByTypeReq      = 0x08
	opReadByTypeResp     = 0x09
	opReadReq            = 0x0a
	opReadResp           = 0x0b
	opReadBlobReq        = 0x0c
	opReadBlobResp       = 0x0d
	opReadByGroupReq     = 0x10
	opReadByGroupResp    = 0x11
	opWriteReq           = 0x12
	opWriteResp          = 0x13
	opHandleNotify       = 0x1b
)

// ATT error codes, per the Bluetooth Core Specification.
const (
	errInvalidHandle          = 0x01
	errReadNotPermitted       = 0x02
	errWriteNotPermitted      = 0x03
	errInvalidPDU             = 0x04
	errRequestNotSupported    = 0x06
	errInvalidOffset          = 0x07
	errAttrNotFound           = 0x0a
	errInvalidAttrValueLength = 0x0d
	errUnsupportedGroupType   = 0x10
)

// defaultATTMTU is the ATT MTU assumed before Exchange MTU negotiates
// a larger value.
const defaultATTMTU = 23

// readHandle reads a little-endian 16-bit handle at b[0:2].
func readHandle(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

// writeHandle writes handle h little-endian at b[0:2] and returns b[2:].
func writeHandle(b []byte, h uint16) []byte {
	binary.LittleEndian.PutUint16(b, h)
	return b[2:]
}

// read16 reads a little-endian uint16 at b[0:2].
func read16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

// write16 writes v little-endian at b[0:2] and returns b[2:].
func write16(b []byte, v uint16) []byte {
	binary.LittleEndian.PutUint16(b, v)
	return b[2:]
}

// errorResponse writes a 5-byte ATT error response PDU to out and
// returns its length. If out cannot hold 5 bytes, it writes nothing and
// returns 0 — the dispatcher's contract for "no response fits".
func errorResponse(out []byte, reqOpcode byte, handle uint16, code byte) int {
	if len(out) < 5 {
		return 0
	}
	out[0] = opError
	out[1] = reqOpcode
	binary.LittleEndian.PutUint16(out[2:4], handle)
	out[4] = code
	return 5
}
