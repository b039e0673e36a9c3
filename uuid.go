package gatt

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// A UUID is a BLE attribute type UUID, either 2 or 16 bytes, stored
// little-endian the way it appears on the wire.
type UUID struct {
	b []byte
}

// UUID16 converts a uint16 (such as 0x1800) into a 2-byte UUID.
func UUID16(i uint16) UUID {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, i)
	return UUID{b}
}

// ParseUUID parses a standard-format UUID string, such as "1800" or
// "34DA3AD1-7110-41A1-B1EF-4430F509CDE7", into its little-endian wire
// representation.
func ParseUUID(s string) (UUID, error) {
	s = strings.Replace(s, "-", "", -1)
	b, err := hex.DecodeString(s)
	if err != nil {
		return UUID{}, err
	}
	if err := uuidLenErr(len(b)); err != nil {
		return UUID{}, err
	}
	return UUID{reverse(b)}, nil
}

// MustParseUUID parses like ParseUUID but panics on error. Intended for
// use with UUID literals known at compile time.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

func uuidLenErr(n int) error {
	switch n {
	case 2, 16:
		return nil
	}
	return fmt.Errorf("gatt: UUIDs must have length 2 or 16 bytes, got %d", n)
}

// Len reports the UUID length in bytes: 2 for a 16-bit UUID, 16 for a
// 128-bit UUID.
func (u UUID) Len() int { return len(u.b) }

// Is16Bit reports whether u is a 16-bit GATT type UUID.
func (u UUID) Is16Bit() bool { return len(u.b) == 2 }

// String hex-encodes u in standard big-endian display order.
func (u UUID) String() string { return fmt.Sprintf("%X", reverse(u.b)) }

// Equal reports whether u and v represent the same UUID.
func (u UUID) Equal(v UUID) bool { return bytes.Equal(u.b, v.b) }

// Bytes returns the little-endian wire bytes of u.
func (u UUID) Bytes() []byte { return u.b }

// Contains reports whether u is present in s. A nil s matches everything,
// following the convention used for unrestricted service filters.
func Contains(s []UUID, u UUID) bool {
	if s == nil {
		return true
	}
	for _, a := range s {
		if a.Equal(u) {
			return true
		}
	}
	return false
}

// reverse returns a reversed copy of b, converting between the wire's
// little-endian UUID order and the conventional big-endian display order.
func reverse(b []byte) []byte {
	l := len(b)
	if l == 2 {
		return []byte{b[1], b[0]}
	}
	r := make([]byte, l)
	for i := 0; i < l/2+1; i++ {
		r[i], r[l-i-1] = b[l-i-1], b[i]
	}
	return r
}
