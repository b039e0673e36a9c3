package gatt

import "github.com/sirupsen/logrus"

// checkSizeAndHandleRange validates a PDU of the form
// [opcode, start_lo, start_hi, end_lo, end_hi, ...], accepting exactly
// sizeA or (if nonzero) sizeB bytes.
func checkSizeAndHandleRange(input []byte, sizeA, sizeB, attrCount int) (start, end uint16, code byte, ok bool) {
	if len(input) != sizeA && (sizeB == 0 || len(input) != sizeB) {
		return 0, 0, errInvalidPDU, false
	}
	start = readHandle(input[1:3])
	end = readHandle(input[3:5])
	if start == 0 || start > end {
		return start, end, errInvalidHandle, false
	}
	if int(start) > attrCount {
		return start, end, errAttrNotFound, false
	}
	return start, end, 0, true
}

// checkSizeAndHandle validates a PDU of the form [opcode, handle_lo,
// handle_hi, ...].
func checkSizeAndHandle(input []byte, sizeA, sizeB, attrCount int) (handle uint16, code byte, ok bool) {
	if len(input) != sizeA && (sizeB == 0 || len(input) != sizeB) {
		return 0, errInvalidPDU, false
	}
	handle = readHandle(input[1:3])
	if handle == 0 {
		return handle, errInvalidHandle, false
	}
	if int(handle) > attrCount {
		return handle, errAttrNotFound, false
	}
	return handle, 0, true
}

// L2CAPInput is the ATT dispatcher: it parses input[0] as an opcode,
// runs the matching handler against the server's attribute table and
// conn's per-connection state, and returns the number of bytes written
// to output. output is first clipped to conn's negotiated MTU. Returns
// 0 when input is empty, when conn is nil, or when even a 5-byte error
// response would not fit.
func (s *Server) L2CAPInput(input []byte, output []byte, conn *ConnectionData) int {
	s.build()

	if len(input) < 1 || conn == nil {
		return 0
	}

	if mtu := int(conn.NegotiatedMTU()); mtu < len(output) {
		output = output[:mtu]
	}

	opcode := input[0]
	switch opcode {
	case opExchangeMTUReq:
		return s.handleExchangeMTU(input, output, conn)
	case opFindInfoReq:
		return s.handleFindInformation(input, output)
	case opFindByTypeValueReq:
		return s.handleFindByTypeValue(input, output, conn)
	case opReadByTypeReq:
		return s.handleReadByType(input, output, conn)
	case opReadReq:
		return s.handleRead(input, output, conn)
	case opReadBlobReq:
		return s.handleReadBlob(input, output, conn)
	case opReadByGroupReq:
		return s.handleReadByGroupType(input, output)
	case opWriteReq:
		return s.handleWrite(input, output, conn)
	default:
		return s.errResp(output, opcode, 0, errRequestNotSupported)
	}
}

// errResp writes an ATT error response and logs it at debug level.
func (s *Server) errResp(output []byte, reqOpcode byte, handle uint16, code byte) int {
	n := errorResponse(output, reqOpcode, handle, code)
	s.log.WithFields(logrus.Fields{
		"opcode": reqOpcode,
		"handle": handle,
		"error":  code,
	}).Debug("gatt: error response")
	return n
}

func (s *Server) handleExchangeMTU(input, output []byte, conn *ConnectionData) int {
	if len(input) != 3 {
		return s.errResp(output, opExchangeMTUReq, 0, errInvalidPDU)
	}
	clientMTU := read16(input[1:3])
	if clientMTU < defaultATTMTU {
		return s.errResp(output, opExchangeMTUReq, 0, errInvalidPDU)
	}
	conn.setClientMTU(clientMTU)

	if len(output) < 3 {
		return 0
	}
	output[0] = opExchangeMTUResp
	write16(output[1:3], conn.ServerMTU())
	return 3
}

func (s *Server) handleFindInformation(input, output []byte) int {
	start, end, code, ok := checkSizeAndHandleRange(input, 5, 0, s.table.count())
	if !ok {
		return s.errResp(output, opFindInfoReq, start, code)
	}

	first, found := s.table.At(start)
	only16 := !found || !first.uuid.Equal(internal128BitUUID)
	format := byte(0x01)
	if !only16 {
		format = 0x02
	}

	if len(output) < 2 {
		return 0
	}
	output[0] = opFindInfoResp
	output[1] = format
	n := collectHandleUUIDTuples(s.table, start, end, only16, output[2:])
	return 2 + n
}

func (s *Server) handleFindByTypeValue(input, output []byte, conn *ConnectionData) int {
	if len(input) < 9 || len(input) > int(conn.NegotiatedMTU()) {
		return s.errResp(output, opFindByTypeValueReq, 0, errInvalidPDU)
	}
	start := readHandle(input[1:3])
	end := readHandle(input[3:5])
	if start == 0 || start > end {
		return s.errResp(output, opFindByTypeValueReq, start, errInvalidHandle)
	}
	if int(start) > s.table.count() {
		return s.errResp(output, opFindByTypeValueReq, start, errAttrNotFound)
	}

	typeUUID := UUID16(read16(input[5:7]))
	if !typeUUID.Equal(gattAttrPrimaryServiceUUID) {
		return s.errResp(output, opFindByTypeValueReq, start, errUnsupportedGroupType)
	}

	filter := valueFilter{conn: conn, data: input[7:]}
	if len(output) < 1 {
		return 0
	}
	n := collectFindByTypeGroups(s.table, start, end, filter, output[1:])
	if n == 0 {
		return s.errResp(output, opFindByTypeValueReq, start, errAttrNotFound)
	}
	output[0] = opFindByTypeValueRes
	return 1 + n
}

func (s *Server) handleReadByType(input, output []byte, conn *ConnectionData) int {
	start, end, code, ok := checkSizeAndHandleRange(input, 7, 21, s.table.count())
	if !ok {
		return s.errResp(output, opReadByTypeReq, start, code)
	}

	typeUUID := parseTypeUUID(input)
	filter := typeFilter{want: typeUUID}

	if len(output) < 2 {
		return 0
	}
	recordSize, n := collectReadByType(s.table, conn, start, end, filter, output[2:])
	if n == 0 {
		return s.errResp(output, opReadByTypeReq, start, errAttrNotFound)
	}
	output[0] = opReadByTypeResp
	output[1] = byte(recordSize)
	return 2 + n
}

func (s *Server) handleRead(input, output []byte, conn *ConnectionData) int {
	handle, code, ok := checkSizeAndHandle(input, 3, 0, s.table.count())
	if !ok {
		return s.errResp(output, opReadReq, handle, code)
	}
	a, _ := s.table.At(handle)

	if len(output) < 1 {
		return 0
	}
	n, rc := accessRead(a, conn, output[1:], 0)
	if rc != ResultSuccess && rc != ResultReadTruncated {
		return s.errResp(output, opReadReq, handle, errReadNotPermitted)
	}
	output[0] = opReadResp
	return 1 + n
}

func (s *Server) handleReadBlob(input, output []byte, conn *ConnectionData) int {
	handle, code, ok := checkSizeAndHandle(input, 5, 0, s.table.count())
	if !ok {
		return s.errResp(output, opReadBlobReq, handle, code)
	}
	offset := read16(input[3:5])
	a, _ := s.table.At(handle)

	if len(output) < 1 {
		return 0
	}
	n, rc := accessRead(a, conn, output[1:], offset)
	switch rc {
	case ResultSuccess, ResultReadTruncated:
		output[0] = opReadBlobResp
		return 1 + n
	case ResultInvalidOffset:
		return s.errResp(output, opReadBlobReq, handle, errInvalidOffset)
	default:
		return s.errResp(output, opReadBlobReq, handle, errReadNotPermitted)
	}
}

func (s *Server) handleReadByGroupType(input, output []byte) int {
	start, end, code, ok := checkSizeAndHandleRange(input, 7, 21, s.table.count())
	if !ok {
		return s.errResp(output, opReadByGroupReq, start, code)
	}

	groupUUID := parseTypeUUID(input)
	if !groupUUID.Equal(gattAttrPrimaryServiceUUID) {
		return s.errResp(output, opReadByGroupReq, start, errUnsupportedGroupType)
	}

	if len(output) < 2 {
		return 0
	}
	recordSize, n := collectPrimaryServiceGroups(s.table, start, end, output[2:])
	if n == 0 {
		return s.errResp(output, opReadByGroupReq, start, errAttrNotFound)
	}
	output[0] = opReadByGroupResp
	output[1] = byte(recordSize)
	return 2 + n
}

func (s *Server) handleWrite(input, output []byte, conn *ConnectionData) int {
	if len(input) < 3 {
		return s.errResp(output, opWriteReq, 0, errInvalidPDU)
	}
	handle := readHandle(input[1:3])
	if handle == 0 {
		return s.errResp(output, opWriteReq, handle, errInvalidHandle)
	}
	if int(handle) > s.table.count() {
		return s.errResp(output, opWriteReq, handle, errAttrNotFound)
	}
	a, _ := s.table.At(handle)
	data := input[3:]

	var rc AccessResult
	if a.isCCCD() {
		rc = s.handleCCCWrite(a, conn, data)
	} else {
		rc = accessWrite(a, conn, data)
	}

	switch rc {
	case ResultSuccess:
		if len(output) < 1 {
			return 0
		}
		output[0] = opWriteResp
		return 1
	case ResultWriteOverflow:
		return s.errResp(output, opWriteReq, handle, errInvalidAttrValueLength)
	default:
		return s.errResp(output, opWriteReq, handle, errWriteNotPermitted)
	}
}

// handleCCCWrite writes a CCCD and, on a 0->1 notify-bit transition,
// starts the owning characteristic's NotifyHandler: it is invoked on
// every such transition on conn, not only the first.
func (s *Server) handleCCCWrite(a attr, conn *ConnectionData, data []byte) AccessResult {
	wasEnabled := conn.cccEnabled(a.cccIndex, gattCCCNotifyFlag)
	rc := writeCCC(conn, a.cccIndex, data)
	if rc != ResultSuccess || wasEnabled || !conn.cccEnabled(a.cccIndex, gattCCCNotifyFlag) {
		return rc
	}
	if a.cccIndex >= len(s.cccChars) {
		return rc
	}
	c := s.cccChars[a.cccIndex]
	if c.nhandler != nil {
		go c.nhandler.ServeNotify(Request{Service: c.service, Characteristic: c}, newConnNotifier(s, c, conn))
	}
	return rc
}

// parseTypeUUID parses the 16- or 128-bit type UUID trailing a Read By
// Type / Read By Group Type request, whose total size (7 or 21 bytes)
// already fixes the UUID's width.
func parseTypeUUID(input []byte) UUID {
	if len(input) == 7 {
		return UUID16(read16(input[5:7]))
	}
	return UUID{append([]byte(nil), input[5:21]...)}
}
