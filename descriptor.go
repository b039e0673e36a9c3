package gatt

// desc is a static, read-only GATT descriptor attached to a characteristic.
type desc struct {
	uuid  UUID
	value []byte
}

// UUID returns the descriptor's UUID.
func (d *desc) UUID() UUID { return d.uuid }

// toAttr builds the attribute-table slot for this descriptor at handle h.
func (d *desc) toAttr(h uint16) attr {
	value := d.value
	return attr{
		h:        h,
		uuid:     d.uuid,
		cccIndex: -1,
		access: func(args interface{}, _ uint16) AccessResult {
			ra, ok := args.(*ReadArgs)
			if !ok {
				return ResultWriteNotPermitted
			}
			return readStatic(ra, value)
		},
	}
}
