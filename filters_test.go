package gatt

import "testing"

func TestTypeFilterMatch(t *testing.T) {
	svc := NewService(UUID16(0x1800))
	svc.AddCharacteristic(UUID16(0x2A00)).SetValue([]byte("x"))

	_, table := rawServer(svc)
	declAttr, ok := table.At(1)
	if !ok {
		t.Fatal("expected attribute at handle 1")
	}

	f := typeFilter{want: gattAttrPrimaryServiceUUID}
	if !f.match(declAttr) {
		t.Error("typeFilter should match the service declaration's own type")
	}

	f2 := typeFilter{want: gattAttrCharacteristicUUID}
	if f2.match(declAttr) {
		t.Error("typeFilter should not match an unrelated type UUID")
	}
}

func TestValueFilterMatch(t *testing.T) {
	svc := NewService(UUID16(0x180F))
	_, table := rawServer(svc)
	declAttr, ok := table.At(1)
	if !ok {
		t.Fatal("expected attribute at handle 1")
	}

	match := valueFilter{data: UUID16(0x180F).Bytes()}
	if !match.match(declAttr) {
		t.Error("valueFilter should match the service's own UUID bytes")
	}

	noMatch := valueFilter{data: UUID16(0x1234).Bytes()}
	if noMatch.match(declAttr) {
		t.Error("valueFilter should not match unrelated bytes")
	}
}

func TestBytesEqual(t *testing.T) {
	cases := []struct {
		a, b []byte
		want bool
	}{
		{nil, nil, true},
		{[]byte{}, nil, true},
		{[]byte{1, 2}, []byte{1, 2}, true},
		{[]byte{1, 2}, []byte{1, 3}, false},
		{[]byte{1, 2}, []byte{1, 2, 3}, false},
	}
	for _, c := range cases {
		if got := bytesEqual(c.a, c.b); got != c.want {
			t.Errorf("bytesEqual(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
