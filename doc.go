// Package gatt implements a transport-agnostic Generic Attribute
// Profile (GATT) / Attribute Protocol (ATT) server core for Bluetooth
// Low Energy.
//
// The server owns the attribute table, the ATT opcode dispatcher, and
// per-connection state. It does not open a radio, an HCI device, or a
// socket: callers feed it raw ATT PDUs through L2CAPInput and hand the
// PDUs it produces to whatever transport carries them (a BlueZ socket,
// an HCI UART, a unit test). This mirrors the split between the ATT
// core and the link layer in the Bluetooth Core Specification itself.
//
// USAGE
//
// GATT servers are constructed by creating a new server, declaring
// services and characteristics, and dispatching ATT requests to it:
//
//	srv := gatt.NewServer(gatt.Name("gophergatt"))
//	svc := srv.AddService(gatt.MustParseUUID("09fc95c0-c111-11e3-9904-0002a5d5c51b"))
//
//	// A read characteristic that counts how many times it has been read.
//	n := 0
//	rchar := svc.AddCharacteristic(gatt.MustParseUUID("11fac9e0-c111-11e3-9246-0002a5d5c51b"))
//	rchar.HandleReadFunc(func(resp gatt.ReadResponseWriter, req *gatt.ReadRequest) {
//		fmt.Fprintf(resp, "count: %d", n)
//		n++
//	})
//
//	// A write characteristic that logs what it receives.
//	wchar := svc.AddCharacteristic(gatt.MustParseUUID("16fe0d80-c111-11e3-b8c8-0002a5d5c51b"))
//	wchar.HandleWriteFunc(func(r gatt.Request, data []byte) byte {
//		log.Println("wrote:", string(data))
//		return gatt.StatusSuccess
//	})
//
//	conn := gatt.NewConnectionData(185)
//	srv.Attach(conn)
//	size := srv.L2CAPInput(pdu, out, conn) // feed it a real ATT PDU
//
// See cmd/blegattd for a runnable demo that replays hex-encoded ATT
// frames from stdin.
package gatt
