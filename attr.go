package gatt

// internal128BitUUID is the sentinel attribute-type UUID that marks a
// Characteristic Value Declaration whose real 128-bit type UUID is not
// stored inline; it is recovered by reading the preceding Characteristic
// Declaration attribute instead (see characteristic128BitUUID below).
// 0x0000 is reserved and never assigned to a real GATT attribute type,
// so it is safe to use as a marker.
var internal128BitUUID = UUID16(0x0000)

// attr is one slot of the flat, 1-indexed attribute table. h is the
// attribute's handle; access is its polymorphic read/write/compare
// operation. cccIndex is >= 0 only for Client Characteristic
// Configuration descriptors, whose storage lives in per-connection
// state rather than in the (process-lived, shared) attribute table;
// groupEnd is set only on Primary Service Declaration attributes, to
// the last handle in that service's group.
type attr struct {
	h        uint16
	uuid     UUID
	access   AccessFunc
	cccIndex int
	groupEnd uint16
}

func (a attr) isCCCD() bool { return a.cccIndex >= 0 }

// isPrimaryServiceDecl reports whether a declares a primary service group.
func (a attr) isPrimaryServiceDecl() bool {
	return a.groupEnd != 0
}

// attrRange is a contiguous, 1-indexed run of attributes: handle h maps
// to slot h-base in aa.
type attrRange struct {
	aa   []attr
	base uint16 // handle number of aa[0]
}

const (
	tooSmall = -1
	tooLarge = -2
)

func (r *attrRange) idx(h int) int {
	if h < int(r.base) {
		return tooSmall
	}
	if h >= int(r.base)+len(r.aa) {
		return tooLarge
	}
	return h - int(r.base)
}

// At returns the attribute with handle h.
func (r *attrRange) At(h uint16) (attr, bool) {
	i := r.idx(int(h))
	if i < 0 {
		return attr{}, false
	}
	return r.aa[i], true
}

// count returns the total number of attributes in the table.
func (r *attrRange) count() int { return len(r.aa) }

// Subrange returns the attributes with handles in [start, end]. It
// never panics on out-of-range start/end and may return an empty slice.
func (r *attrRange) Subrange(start, end uint16) []attr {
	startIdx := r.idx(int(start))
	switch startIdx {
	case tooSmall:
		startIdx = 0
	case tooLarge:
		return []attr{}
	}

	endIdx := r.idx(int(end) + 1) // [start, end] is inclusive of end
	switch endIdx {
	case tooSmall:
		return []attr{}
	case tooLarge:
		endIdx = len(r.aa)
	}
	if startIdx > endIdx {
		return []attr{}
	}
	return r.aa[startIdx:endIdx]
}

// Characteristic property flags; bit positions match the Bluetooth
// Core Specification's Characteristic Properties field.
const (
	charPropBroadcast = 0x01
	charPropRead      = 0x02
	charPropWriteNR   = 0x04
	charPropWrite     = 0x08
	charPropNotify    = 0x10
	charPropIndicate  = 0x20
)

// accessRead performs a read or read-blob against a. CCCD attributes are
// served from conn's per-connection bitset instead of a's static
// closure, since CCC state is owned by the connection, not the server.
func accessRead(a attr, conn *ConnectionData, out []byte, offset uint16) (int, AccessResult) {
	if a.isCCCD() {
		return readCCC(conn, a.cccIndex, out, offset)
	}
	if a.access == nil {
		return 0, ResultReadNotPermitted
	}
	args := &ReadArgs{Out: out, Offset: offset}
	rc := a.access(args, a.h)
	return args.BufferSize, rc
}

// accessWrite performs a write against a.
func accessWrite(a attr, conn *ConnectionData, data []byte) AccessResult {
	if a.isCCCD() {
		return writeCCC(conn, a.cccIndex, data)
	}
	if a.access == nil {
		return ResultWriteNotPermitted
	}
	return a.access(&WriteArgs{Data: data}, a.h)
}

// accessCompare evaluates the value-equality filter against a, used by
// Find By Type Value.
func accessCompare(a attr, data []byte) AccessResult {
	if a.access == nil {
		return ResultValueNotEqual
	}
	return a.access(&CompareArgs{Data: data}, a.h)
}

// characteristic128BitUUID recovers the full 128-bit type UUID of the
// Characteristic Value Declaration at handle valueHandle, by reading
// the preceding Characteristic Declaration attribute and extracting
// bytes [3:19] of its 19-byte payload (1 properties + 2 value handle +
// 16 UUID). This indirection is load-bearing: it must be preserved even
// if the in-memory table representation changes.
func characteristic128BitUUID(table *attrRange, valueHandle uint16) UUID {
	declAttr, ok := table.At(valueHandle - 1)
	if !ok {
		return UUID{}
	}
	buf := make([]byte, 19)
	n, rc := accessRead(declAttr, nil, buf, 0)
	if rc != ResultSuccess && rc != ResultReadTruncated {
		return UUID{}
	}
	if n < 19 {
		return UUID{}
	}
	return UUID{append([]byte(nil), buf[3:19]...)}
}
