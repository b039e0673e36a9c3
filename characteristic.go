package gatt

import (
	"bytes"
	"fmt"
)

// Supported statuses for GATT characteristic read/write operations,
// re-exported from the ATT error code space so handler code never
// needs to import wire.go's unexported constants.
const (
	StatusSuccess         = 0x00
	StatusInvalidOffset   = errInvalidOffset
	StatusUnexpectedError = 0x0e
)

// A Request is the context for a request against one characteristic.
type Request struct {
	Service        *Service
	Characteristic *Characteristic
}

// A ReadRequest is a characteristic read request.
type ReadRequest struct {
	Request
	Cap    int // maximum allowed reply length
	Offset int // request value offset
}

// ReadResponseWriter collects the result of a read handler.
type ReadResponseWriter interface {
	// Write writes data to return as the characteristic value.
	Write([]byte) (int, error)
	// SetStatus reports the result of the read operation. See the Status* constants.
	SetStatus(byte)
}

// A ReadHandler handles GATT read requests.
type ReadHandler interface {
	ServeRead(resp ReadResponseWriter, req *ReadRequest)
}

// ReadHandlerFunc is an adapter to allow the use of ordinary functions
// as ReadHandlers.
type ReadHandlerFunc func(resp ReadResponseWriter, req *ReadRequest)

func (f ReadHandlerFunc) ServeRead(resp ReadResponseWriter, req *ReadRequest) { f(resp, req) }

// A WriteHandler handles GATT write requests.
type WriteHandler interface {
	ServeWrite(r Request, data []byte) (status byte)
}

// WriteHandlerFunc is an adapter to allow the use of ordinary functions
// as WriteHandlers.
type WriteHandlerFunc func(r Request, data []byte) byte

func (f WriteHandlerFunc) ServeWrite(r Request, data []byte) byte { return f(r, data) }

// A NotifyHandler is invoked each time a connection's CCCD for the
// characteristic is written so that its notify bit goes from clear to
// set, so it can start producing values via the given Notifier.
type NotifyHandler interface {
	ServeNotify(r Request, n Notifier)
}

// NotifyHandlerFunc is an adapter to allow the use of ordinary functions
// as NotifyHandlers.
type NotifyHandlerFunc func(r Request, n Notifier)

func (f NotifyHandlerFunc) ServeNotify(r Request, n Notifier) { f(r, n) }

// A Notifier lets a NotifyHandler push notification values to the
// server's NotifyWriter without holding a reference to the
// characteristic itself. It does not go through Server.Notify.
type Notifier interface {
	// Write sends data to be notified to connected centrals.
	Write(data []byte) (int, error)

	// Done reports whether notifications for this characteristic have
	// been disabled (no connection currently has the CCCD notify bit set).
	Done() bool

	// Cap returns the maximum number of bytes that may be sent in a
	// single notification at the connection's negotiated MTU.
	Cap() int
}

// A Characteristic is a BLE characteristic: a value with a type UUID,
// declared properties, and optional descriptors. Values are bound
// either to a static byte slice (SetValue) or to read/write/notify
// handlers backed by host variables (HandleRead/HandleWrite/HandleNotify).
type Characteristic struct {
	uuid     UUID
	props    uint
	value    []byte
	descs    []*desc
	declH    uint16 // handle of the characteristic declaration
	valueH   uint16 // handle of the characteristic value declaration
	cccIndex int    // index into ConnectionData.ccc, or -1 if not notifiable
	rhandler ReadHandler
	whandler WriteHandler
	nhandler NotifyHandler

	service *Service
}

// SetValue gives the characteristic a fixed, read-only value. It is
// mutually exclusive with HandleRead/HandleWrite.
func (c *Characteristic) SetValue(b []byte) *Characteristic {
	c.value = b
	c.props |= charPropRead
	return c
}

// Notifiable adds the Client Characteristic Configuration descriptor
// and marks the characteristic as notifiable, so Server.Notify can push
// its current value (as set by SetValue) to a subscribed connection.
// Use HandleNotify instead when values are produced on demand through a
// NotifyHandler/Notifier rather than read back from a static value.
func (c *Characteristic) Notifiable() *Characteristic {
	c.props |= charPropNotify
	return c
}

// HandleRead makes the characteristic support read requests, routed to h.
// HandleRead must be called before the server containing c is started.
func (c *Characteristic) HandleRead(h ReadHandler) {
	c.props |= charPropRead
	c.rhandler = h
}

// HandleReadFunc calls HandleRead(ReadHandlerFunc(f)).
func (c *Characteristic) HandleReadFunc(f func(resp ReadResponseWriter, req *ReadRequest)) {
	c.HandleRead(ReadHandlerFunc(f))
}

// HandleWrite makes the characteristic support write requests, routed
// to h. HandleWrite must be called before the server containing c is
// started.
func (c *Characteristic) HandleWrite(h WriteHandler) {
	c.props |= charPropWrite
	c.whandler = h
}

// HandleWriteFunc calls HandleWrite(WriteHandlerFunc(f)).
func (c *Characteristic) HandleWriteFunc(f func(r Request, data []byte) (status byte)) {
	c.HandleWrite(WriteHandlerFunc(f))
}

// HandleNotify makes the characteristic support notifications and adds
// the Client Characteristic Configuration descriptor that enables
// them. HandleNotify must be called before the server containing c is
// started.
func (c *Characteristic) HandleNotify(h NotifyHandler) {
	c.props |= charPropNotify
	c.nhandler = h
}

// HandleNotifyFunc calls HandleNotify(NotifyHandlerFunc(f)).
func (c *Characteristic) HandleNotifyFunc(f func(r Request, n Notifier)) {
	c.HandleNotify(NotifyHandlerFunc(f))
}

// AddDescriptor attaches a static, read-only descriptor to the
// characteristic.
func (c *Characteristic) AddDescriptor(u UUID, value []byte) *Characteristic {
	c.descs = append(c.descs, &desc{uuid: u, value: value})
	return c
}

// UUID returns the characteristic's UUID.
func (c *Characteristic) UUID() UUID { return c.uuid }

// numberOfAttributes returns how many attribute-table slots this
// characteristic occupies: declaration + value + CCCD (if notifiable)
// + user descriptors.
func (c *Characteristic) numberOfAttributes() uint16 {
	n := uint16(2)
	if c.props&charPropNotify != 0 {
		n++
	}
	n += uint16(len(c.descs))
	return n
}

// generateAttrs appends this characteristic's attributes (declaration,
// value, CCCD, descriptors) to the table being built by b, starting at
// handle n.
func (c *Characteristic) generateAttrs(n uint16, b *tableBuilder) uint16 {
	c.declH = n
	c.valueH = n + 1

	declIdx := len(b.attrs)
	b.attrs = append(b.attrs, attr{h: n, uuid: gattAttrCharacteristicUUID, cccIndex: -1})
	n++

	valueUUID := c.uuid
	if !valueUUID.Is16Bit() {
		valueUUID = internal128BitUUID
	}
	b.attrs = append(b.attrs, attr{h: n, uuid: valueUUID, access: c.valueAccess(), cccIndex: -1})
	n++

	b.attrs[declIdx].access = c.declarationAccess()

	if c.props&charPropNotify != 0 {
		c.cccIndex = b.addCCCD(c)
		b.attrs = append(b.attrs, attr{h: n, uuid: gattAttrClientCharacteristicConfigUUID, cccIndex: c.cccIndex})
		n++
	} else {
		c.cccIndex = -1
	}

	for _, d := range c.descs {
		b.attrs = append(b.attrs, d.toAttr(n))
		n++
	}

	return n
}

// declarationAccess builds the read-only access closure for the
// Characteristic Declaration attribute: properties(1) + value handle(2)
// + type UUID (2 or 16 bytes).
func (c *Characteristic) declarationAccess() AccessFunc {
	props := byte(c.props)
	valueH := c.valueH
	uuidBytes := c.uuid.Bytes()
	payload := make([]byte, 3+len(uuidBytes))
	payload[0] = props
	payload[1] = byte(valueH)
	payload[2] = byte(valueH >> 8)
	copy(payload[3:], uuidBytes)

	return func(args interface{}, _ uint16) AccessResult {
		ra, ok := args.(*ReadArgs)
		if !ok {
			return ResultReadNotPermitted
		}
		return readStatic(ra, payload)
	}
}

// valueAccess builds the access closure for the Characteristic Value
// Declaration attribute, bridging to the static value or to the
// registered read/write handlers.
func (c *Characteristic) valueAccess() AccessFunc {
	return func(args interface{}, handle uint16) AccessResult {
		switch a := args.(type) {
		case *ReadArgs:
			if c.rhandler != nil {
				w := newReadResponseWriter(len(a.Out))
				c.rhandler.ServeRead(w, &ReadRequest{
					Request: Request{Service: c.service, Characteristic: c},
					Cap:     len(a.Out),
					Offset:  int(a.Offset),
				})
				if w.status != StatusSuccess {
					return ResultReadNotPermitted
				}
				n := copy(a.Out, w.bytes())
				a.BufferSize = n
				if n < w.buf.Len() {
					return ResultReadTruncated
				}
				return ResultSuccess
			}
			if c.props&charPropRead == 0 {
				return ResultReadNotPermitted
			}
			return readStatic(a, c.value)
		case *WriteArgs:
			if c.whandler == nil {
				return ResultWriteNotPermitted
			}
			status := c.whandler.ServeWrite(Request{Service: c.service, Characteristic: c}, a.Data)
			switch status {
			case StatusSuccess:
				return ResultSuccess
			case errInvalidAttrValueLength:
				return ResultWriteOverflow
			default:
				return ResultWriteNotPermitted
			}
		case *CompareArgs:
			if bytesEqual(a.Data, c.value) {
				return ResultValueEqual
			}
			return ResultValueNotEqual
		default:
			return ResultReadNotPermitted
		}
	}
}

// readResponseWriter is the default implementation of ReadResponseWriter.
type readResponseWriter struct {
	capacity int
	buf      *bytes.Buffer
	status   byte
}

func newReadResponseWriter(c int) *readResponseWriter {
	return &readResponseWriter{capacity: c, buf: new(bytes.Buffer), status: StatusSuccess}
}

func (w *readResponseWriter) Write(b []byte) (int, error) {
	if avail := w.capacity - w.buf.Len(); avail < len(b) {
		return 0, fmt.Errorf("gatt: requested write %d bytes, %d available", len(b), avail)
	}
	return w.buf.Write(b)
}

func (w *readResponseWriter) SetStatus(status byte) { w.status = status }
func (w *readResponseWriter) bytes() []byte         { return w.buf.Bytes() }
