package gatt

// The collectors below are the stateful visitors that assemble each
// multi-attribute PDU response body: each is driven by a walker
// (walk.go) and is responsible for refusing to overflow the
// caller-supplied, MTU-clipped output slice. They never allocate beyond
// small fixed-size scratch buffers.

const maxReadByTypeValueSize = 253

// collectHandleUUIDTuples backs Find Information. It appends
// [handle, uuid] tuples for attributes in [start, end] whose UUID
// format (16-bit vs 128-bit) matches only16, stopping before the first
// tuple that would not fit. 128-bit UUIDs are recovered via the
// preceding Characteristic Declaration, per the indirection invariant
// in attr.go.
func collectHandleUUIDTuples(table *attrRange, start, end uint16, only16 bool, out []byte) int {
	cur := 0
	walkAttrs(table, start, end, func(a attr) bool {
		isSentinel := a.uuid.Equal(internal128BitUUID)
		if only16 == isSentinel {
			return true // wrong format for this response; skip
		}

		uuidBytes := a.uuid.Bytes()
		if isSentinel {
			uuidBytes = characteristic128BitUUID(table, a.h).Bytes()
		}

		need := 2 + len(uuidBytes)
		if cur+need > len(out) {
			return false
		}
		writeHandle(out[cur:], a.h)
		copy(out[cur+2:], uuidBytes)
		cur += need
		return true
	})
	return cur
}

// collectFindByTypeGroups backs Find By Type Value. It
// appends [group_start, group_end] handle pairs for every primary
// service in [start, end] whose declaration compares equal under
// filter.
func collectFindByTypeGroups(table *attrRange, start, end uint16, filter valueFilter, out []byte) int {
	cur := 0
	walkServiceGroups(table, start, end, func(a attr) bool {
		if !filter.match(a) {
			return true
		}
		if cur+4 > len(out) {
			return false
		}
		writeHandle(out[cur:], a.h)
		writeHandle(out[cur+2:], a.groupEnd)
		cur += 4
		return true
	})
	return cur
}

// collectReadByType backs Read By Type. The first matching attribute
// fixes the uniform record value size; later attributes are included
// only if their own read size matches it, and are otherwise skipped
// rather than treated as an error.
func collectReadByType(table *attrRange, conn *ConnectionData, start, end uint16, filter typeFilter, out []byte) (recordSize, total int) {
	cur := 0
	first := true

	walkAttrs(table, start, end, func(a attr) bool {
		if !filter.match(a) {
			return true
		}
		if len(out)-cur < 2 {
			return false
		}

		maxData := len(out) - cur - 2
		if maxData > maxReadByTypeValueSize {
			maxData = maxReadByTypeValueSize
		}

		n, rc := accessRead(a, conn, out[cur+2:cur+2+maxData], 0)
		if !(rc == ResultSuccess || (rc == ResultReadTruncated && n == maxReadByTypeValueSize)) {
			return true // this attribute's access failed; keep looking
		}

		if first {
			recordSize = n + 2
			first = false
		}
		if n+2 != recordSize {
			return true // different size than the established record; skip
		}

		writeHandle(out[cur:], a.h)
		cur += recordSize
		return true
	})

	return recordSize, cur
}

// collectPrimaryServiceGroups backs Read By Group Type. The
// first in-range service fixes the uniform UUID length (2 or 16
// bytes); later services are included only if their own UUID length
// matches it.
func collectPrimaryServiceGroups(table *attrRange, start, end uint16, out []byte) (recordSize, total int) {
	cur := 0
	first := true
	var uuidBuf [16]byte

	walkServiceGroups(table, start, end, func(a attr) bool {
		n, rc := accessRead(a, nil, uuidBuf[:], 0)
		if rc != ResultSuccess && rc != ResultReadTruncated {
			return true
		}

		size := 4 + n
		if first {
			recordSize = size
			first = false
		}
		if size != recordSize {
			return true
		}
		if cur+recordSize > len(out) {
			return false
		}

		writeHandle(out[cur:], a.h)
		writeHandle(out[cur+2:], a.groupEnd)
		copy(out[cur+4:], uuidBuf[:n])
		cur += recordSize
		return true
	})

	return recordSize, cur
}
