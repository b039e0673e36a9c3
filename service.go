package gatt

// A Service is a BLE GATT service: a contiguous run of attributes
// starting with a Primary Service Declaration and followed by its
// characteristics. Calls to AddCharacteristic must occur before the
// owning Server builds its attribute table (the first L2CAPInput or
// Attach).
type Service struct {
	uuid  UUID
	chars []*Characteristic
}

// NewService creates a standalone Service with the given UUID. Most
// callers instead use Server.AddService, which also registers it.
func NewService(u UUID) *Service {
	return &Service{uuid: u}
}

// AddCharacteristic adds a characteristic to a service. AddCharacteristic
// panics if the service already contains another characteristic with
// the same UUID.
func (s *Service) AddCharacteristic(u UUID) *Characteristic {
	for _, c := range s.chars {
		if c.uuid.Equal(u) {
			panic("gatt: service already contains a characteristic with uuid " + u.String())
		}
	}

	c := &Characteristic{service: s, uuid: u}
	s.chars = append(s.chars, c)
	return c
}

// UUID returns the service's UUID.
func (s *Service) UUID() UUID { return s.uuid }

// numberOfAttributes returns the number of attribute-table slots this
// service occupies: one for the service declaration, plus each
// characteristic's own slots.
func (s *Service) numberOfAttributes() uint16 {
	n := uint16(1)
	for _, c := range s.chars {
		n += c.numberOfAttributes()
	}
	return n
}

// generateAttrs appends this service's attributes to the table being
// built by b, starting at handle n, and returns the next free handle.
// The service declaration's groupEnd is filled in once the full span is
// known: reserve the slot, walk the characteristics, then patch it.
func (s *Service) generateAttrs(n uint16, b *tableBuilder) uint16 {
	declIdx := len(b.attrs)
	start := n
	b.attrs = append(b.attrs, attr{h: n, uuid: gattAttrPrimaryServiceUUID, cccIndex: -1})
	n++

	for _, c := range s.chars {
		n = c.generateAttrs(n, b)
	}

	end := n - 1
	b.attrs[declIdx].groupEnd = end
	b.attrs[declIdx].access = primaryServiceAccess(s.uuid, start, end)
	return n
}

// primaryServiceAccess builds the access closure for a Primary Service
// Declaration attribute: a read returns the service's UUID bytes; a
// compare (used by Find By Type Value) matches against those same
// bytes.
func primaryServiceAccess(u UUID, start, end uint16) AccessFunc {
	value := u.Bytes()
	return func(args interface{}, _ uint16) AccessResult {
		switch a := args.(type) {
		case *ReadArgs:
			return readStatic(a, value)
		case *CompareArgs:
			if bytesEqual(a.Data, value) {
				return ResultValueEqual
			}
			return ResultValueNotEqual
		default:
			return ResultWriteNotPermitted
		}
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// readStatic implements the common "read a fixed byte slice, honoring
// offset and the caller's buffer capacity" access pattern shared by
// every read-only attribute (service/characteristic declarations,
// static descriptors, and read-only characteristic values backed by a
// plain []byte).
func readStatic(a *ReadArgs, value []byte) AccessResult {
	if int(a.Offset) > len(value) {
		return ResultInvalidOffset
	}
	src := value[a.Offset:]
	n := copy(a.Out, src)
	a.BufferSize = n
	if n < len(src) {
		return ResultReadTruncated
	}
	return ResultSuccess
}
