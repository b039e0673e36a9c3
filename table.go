package gatt

// tableBuilder accumulates attribute-table slots and the set of
// notifiable characteristics (indexed by their CCCD position) while
// walking the declared service list. It exists so generation can be
// expressed as ordinary recursive append calls instead of threading a
// growing slice by value through every generateAttrs call.
type tableBuilder struct {
	attrs    []attr
	cccChars []*Characteristic
}

// addCCCD registers c as notifiable and returns its index into the
// per-connection CCC bitset.
func (b *tableBuilder) addCCCD(c *Characteristic) int {
	idx := len(b.cccChars)
	b.cccChars = append(b.cccChars, c)
	return idx
}

// generateAttrTable materializes the flat attribute table for name (the
// GAP device name) and the declared services svcs, with handles
// numbered starting at base (1, per the BLE spec). It prepends the
// standard GAP and GATT services ahead of svcs.
func generateAttrTable(name string, svcs []*Service, base uint16) (*attrRange, []*Characteristic) {
	all := append(defaultServices(name), svcs...)

	b := &tableBuilder{}
	n := base
	for _, svc := range all {
		n = svc.generateAttrs(n, b)
	}

	return &attrRange{aa: b.attrs, base: base}, b.cccChars
}

// defaultServices returns the Generic Access and Generic Attribute
// services every GATT server exposes: device name + appearance, and an
// empty, service-changed-free GATT service.
func defaultServices(name string) []*Service {
	gap := &Service{uuid: gattAttrGAPUUID}
	gap.AddCharacteristic(gattAttrDeviceNameUUID).SetValue([]byte(name))
	gap.AddCharacteristic(gattAttrAppearanceUUID).SetValue(gapCharAppearanceGenericComputer)

	gatt := &Service{uuid: gattAttrGATTUUID}

	return []*Service{gap, gatt}
}
