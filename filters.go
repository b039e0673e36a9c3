package gatt

// typeFilter matches attributes whose type UUID equals want. It backs
// Read By Type's explicit type UUID. Find Information and Read By Group
// Type do not use it.
type typeFilter struct {
	want UUID
}

func (f typeFilter) match(a attr) bool { return a.uuid.Equal(f.want) }

// valueFilter matches attributes whose value compares equal to data,
// using the attribute's CompareArgs access path. It backs Find By Type
// Value.
type valueFilter struct {
	conn *ConnectionData
	data []byte
}

func (f valueFilter) match(a attr) bool {
	return accessCompare(a, f.data) == ResultValueEqual
}
