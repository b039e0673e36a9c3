package gatt

import (
	"bytes"
	"testing"
)

func TestAdvertisingDataFlagsAndName(t *testing.T) {
	srv := NewServer(Name("gopher"))
	buf := make([]byte, 31)
	n := srv.AdvertisingData(buf)

	want := []byte{
		0x02, typeFlags, flagGeneralDiscoverable | flagLEOnly,
		0x07, typeCompleteName, 'g', 'o', 'p', 'h', 'e', 'r',
	}
	if got := buf[:n]; !bytes.Equal(got, want) {
		t.Errorf("got % X want % X", got, want)
	}
}

func TestAdvertisingDataNoName(t *testing.T) {
	srv := NewServer()
	buf := make([]byte, 31)
	n := srv.AdvertisingData(buf)

	want := []byte{0x02, typeFlags, flagGeneralDiscoverable | flagLEOnly}
	if got := buf[:n]; !bytes.Equal(got, want) {
		t.Errorf("got % X want % X", got, want)
	}
}

func TestAdvertisingDataNameTruncated(t *testing.T) {
	srv := NewServer(Name("a-rather-long-device-name-indeed"))
	buf := make([]byte, 10) // 3 bytes for flags, 7 left for the name field
	n := srv.AdvertisingData(buf)

	want := []byte{
		0x02, typeFlags, flagGeneralDiscoverable | flagLEOnly,
		0x06, typeShortName, 'a', '-', 'r', 'a', 't',
	}
	if got := buf[:n]; !bytes.Equal(got, want) {
		t.Errorf("got % X want % X", got, want)
	}
}

func TestAdvertisingDataTinyBuffer(t *testing.T) {
	srv := NewServer(Name("x"))
	buf := make([]byte, 2) // not even room for the Flags AD
	n := srv.AdvertisingData(buf)
	if n != 0 {
		t.Errorf("got n=%d, want 0", n)
	}
}
