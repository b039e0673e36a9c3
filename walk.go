package gatt

// walkAttrs visits every attribute with a handle in [start, end], in
// handle order, calling visit for each. It stops early if visit
// returns false.
func walkAttrs(table *attrRange, start, end uint16, visit func(a attr) bool) {
	for _, a := range table.Subrange(start, end) {
		if !visit(a) {
			return
		}
	}
}

// walkServiceGroups visits every Primary Service Declaration attribute
// whose handle falls in [start, end], in handle order. Unlike
// walkAttrs, group membership is decided on the declaration's own
// handle rather than a sub-range of the table: a service whose start
// handle is in range is included whole, even if its later attributes
// spill past end.
func walkServiceGroups(table *attrRange, start, end uint16, visit func(a attr) bool) {
	for _, a := range table.aa {
		if !a.isPrimaryServiceDecl() {
			continue
		}
		if a.h < start || a.h > end {
			continue
		}
		if !visit(a) {
			return
		}
	}
}
