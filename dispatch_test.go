package gatt

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func discardLogEntry() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// rawServer builds a Server around a hand-assembled table (bypassing
// AddService/build's default GAP/GATT prefix), so tests can pin exact
// handle numbers.
func rawServer(svcs ...*Service) (*Server, *attrRange) {
	b := &tableBuilder{}
	n := uint16(1)
	for _, s := range svcs {
		n = s.generateAttrs(n, b)
	}
	table := &attrRange{aa: b.attrs, base: 1}
	return &Server{table: table, cccChars: b.cccChars, built: true, log: discardLogEntry()}, table
}

func TestExchangeMTU(t *testing.T) {
	srv := NewServer(ServerMTU(100))
	conn := NewConnectionData(100)

	in := []byte{0x02, 0x40, 0x00}
	out := make([]byte, 64)
	n := srv.L2CAPInput(in, out, conn)

	want := []byte{0x03, 0x64, 0x00}
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("Exchange MTU: got % X want % X", got, want)
	}
	if got := conn.NegotiatedMTU(); got != 64 {
		t.Errorf("NegotiatedMTU() = %d, want 64", got)
	}
}

func TestExchangeMTUTooSmall(t *testing.T) {
	srv := NewServer(ServerMTU(100))
	conn := NewConnectionData(100)

	in := []byte{0x02, 0x05, 0x00} // client MTU 5, below the protocol floor
	out := make([]byte, 64)
	n := srv.L2CAPInput(in, out, conn)

	want := []byte{0x01, 0x02, 0x00, 0x00, errInvalidPDU}
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("Exchange MTU (too small): got % X want % X", got, want)
	}
}

func TestUnknownOpcode(t *testing.T) {
	srv := NewServer()
	conn := NewConnectionData(23)

	out := make([]byte, 23)
	n := srv.L2CAPInput([]byte{0xFF}, out, conn)

	want := []byte{0x01, 0xFF, 0x00, 0x00, 0x06}
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("unknown opcode: got % X want % X", got, want)
	}
}

func TestReadInvalidHandle(t *testing.T) {
	srv := NewServer()
	conn := NewConnectionData(23)

	out := make([]byte, 23)
	n := srv.L2CAPInput([]byte{0x0A, 0x00, 0x00}, out, conn)

	want := []byte{0x01, 0x0A, 0x00, 0x00, 0x01}
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("read invalid handle: got % X want % X", got, want)
	}
}

func TestReadByGroupTypePrimaryService(t *testing.T) {
	// One primary service at handle 1 spanning 5 attributes, UUID
	// 0x180F: input 10 01 00 FF FF 00 28 -> output
	// 11 06 01 00 05 00 0F 18.
	svc := NewService(UUID16(0x180F))
	svc.AddCharacteristic(UUID16(0x2A19)).SetValue([]byte{100})
	svc.AddCharacteristic(UUID16(0x2A1A)).SetValue([]byte{0})

	srv, table := rawServer(svc)
	if table.count() != 5 {
		t.Fatalf("test setup: table has %d attributes, want 5", table.count())
	}

	in := []byte{0x10, 0x01, 0x00, 0xFF, 0xFF, 0x00, 0x28}
	out := make([]byte, 64)
	n := srv.handleReadByGroupType(in, out)

	want := []byte{0x11, 0x06, 0x01, 0x00, 0x05, 0x00, 0x0F, 0x18}
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("Read By Group Type: got % X want % X", got, want)
	}
}

func TestFindInformationBoundary(t *testing.T) {
	// Find Information over [1,3] with attribute types 0x2800,
	// 0x2803, 0x2A00 -> output 05 01 01 00 00 28 02 00 03 28 03 00 00 2A.
	svc := NewService(UUID16(0x1800))
	svc.AddCharacteristic(UUID16(0x2A00)).SetValue([]byte("x"))

	srv, table := rawServer(svc)
	if table.count() != 3 {
		t.Fatalf("test setup: table has %d attributes, want 3", table.count())
	}

	in := []byte{0x04, 0x01, 0x00, 0x03, 0x00}
	out := make([]byte, 64)
	n := srv.handleFindInformation(in, out)

	want := []byte{0x05, 0x01, 0x01, 0x00, 0x00, 0x28, 0x02, 0x00, 0x03, 0x28, 0x03, 0x00, 0x00, 0x2A}
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("Find Information: got % X want % X", got, want)
	}
}

func TestWriteOverflow(t *testing.T) {
	// A write whose length exceeds what the handler accepts ->
	// output 01 12 03 00 0D (invalid_attribute_value_length).
	svc := NewService(UUID16(0x1234))
	svc.AddCharacteristic(UUID16(0x5678)).HandleWriteFunc(func(r Request, data []byte) byte {
		if len(data) > 1 {
			return errInvalidAttrValueLength
		}
		return StatusSuccess
	})

	srv, _ := rawServer(svc)
	conn := NewConnectionData(23)

	in := []byte{0x12, 0x03, 0x00, 0xAA, 0xBB, 0xCC}
	out := make([]byte, 23)
	n := srv.handleWrite(in, out, conn)

	want := []byte{0x01, 0x12, 0x03, 0x00, 0x0D}
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("write overflow: got % X want % X", got, want)
	}
}

func TestWriteThenRead(t *testing.T) {
	var stored []byte
	svc := NewService(UUID16(0x1234))
	ch := svc.AddCharacteristic(UUID16(0x5678))
	ch.HandleWriteFunc(func(r Request, data []byte) byte {
		stored = append([]byte(nil), data...)
		return StatusSuccess
	})
	ch.HandleReadFunc(func(resp ReadResponseWriter, req *ReadRequest) {
		resp.Write(stored)
	})

	srv, _ := rawServer(svc)
	conn := NewConnectionData(23)

	writeIn := []byte{0x12, 0x03, 0x00, 'h', 'i'}
	out := make([]byte, 23)
	n := srv.handleWrite(writeIn, out, conn)
	if got, want := out[:n], []byte{0x13}; !bytes.Equal(got, want) {
		t.Fatalf("write: got % X want % X", got, want)
	}

	readIn := []byte{0x0A, 0x03, 0x00}
	n = srv.handleRead(readIn, out, conn)
	want := append([]byte{0x0B}, 'h', 'i')
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("read after write: got % X want %X", got, want)
	}
}

func TestFindByTypeValueUnsupportedGroupType(t *testing.T) {
	svc := NewService(UUID16(0x1800))
	srv, _ := rawServer(svc)
	conn := NewConnectionData(23)

	in := []byte{0x06, 0x01, 0x00, 0xFF, 0xFF, 0x01, 0x28, 'x', 'y'}
	out := make([]byte, 23)
	n := srv.handleFindByTypeValue(in, out, conn)

	want := []byte{0x01, 0x06, 0x01, 0x00, errUnsupportedGroupType}
	if got := out[:n]; !bytes.Equal(got, want) {
		t.Errorf("find by type value: got % X want % X", got, want)
	}
}

func TestOutputTooSmallForError(t *testing.T) {
	srv := NewServer()
	conn := NewConnectionData(23)
	out := make([]byte, 4) // smaller than a 5-byte error response
	n := srv.L2CAPInput([]byte{0xFF}, out, conn)
	if n != 0 {
		t.Errorf("got n=%d, want 0 when even an error response does not fit", n)
	}
}
