package gatt

import "encoding/binary"

// Notify sends a Handle Value Notification carrying the characteristic's
// current value (as set by SetValue) for the characteristic identified
// by ref, if there is an attached connection and that connection's CCCD
// has the notify bit set. ref is the Go stand-in for the characteristic
// to notify: since Go has no compile-time pointer-identity trait
// matching, the corresponding characteristic is named directly by
// passing its *Characteristic. The characteristic must have been
// marked with Notifiable; handler-backed characteristics (HandleNotify)
// publish through their own Notifier instead and are not valid targets
// for Notify.
//
// Notify is safe to call from any goroutine, including concurrently
// with L2CAPInput on the same connection; it never blocks on the
// dispatcher.
func (s *Server) Notify(ref interface{}) {
	c, ok := ref.(*Characteristic)
	if !ok || c.cccIndex < 0 || c.nhandler != nil {
		return
	}

	conn := s.currentConn()
	if conn == nil || !conn.cccEnabled(c.cccIndex, gattCCCNotifyFlag) {
		return
	}

	value := c.value

	mtu := int(conn.NegotiatedMTU())
	maxValue := mtu - 3
	if maxValue < 0 {
		maxValue = 0
	}
	if len(value) > maxValue {
		value = value[:maxValue]
	}

	pdu := make([]byte, 3+len(value))
	pdu[0] = opHandleNotify
	binary.LittleEndian.PutUint16(pdu[1:3], c.valueH)
	copy(pdu[3:], value)

	if s.notifyOut != nil {
		s.notifyOut(pdu)
	}
}

// connNotifier adapts a Server/Characteristic/connection triple to the
// Notifier interface handed to a NotifyHandler.
type connNotifier struct {
	s    *Server
	char *Characteristic
	conn *ConnectionData
}

func newConnNotifier(s *Server, c *Characteristic, conn *ConnectionData) *connNotifier {
	return &connNotifier{s: s, char: c, conn: conn}
}

func (n *connNotifier) Write(data []byte) (int, error) {
	if n.Done() {
		return 0, errNotifyDisabled
	}

	maxValue := n.Cap()
	if len(data) > maxValue {
		data = data[:maxValue]
	}

	pdu := make([]byte, 3+len(data))
	pdu[0] = opHandleNotify
	binary.LittleEndian.PutUint16(pdu[1:3], n.char.valueH)
	copy(pdu[3:], data)

	if n.s.notifyOut != nil {
		n.s.notifyOut(pdu)
	}
	return len(data), nil
}

func (n *connNotifier) Done() bool {
	return n.conn == nil || n.char.cccIndex < 0 || !n.conn.cccEnabled(n.char.cccIndex, gattCCCNotifyFlag)
}

func (n *connNotifier) Cap() int {
	mtu := int(n.conn.NegotiatedMTU())
	if mtu < 3 {
		return 0
	}
	return mtu - 3
}

type notifyDisabledError string

func (e notifyDisabledError) Error() string { return string(e) }

const errNotifyDisabled = notifyDisabledError("gatt: notifications disabled for this characteristic")
