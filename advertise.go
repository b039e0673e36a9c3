package gatt

// AdvertisingData fills buf with the advertising packet the server
// would broadcast: a Flags AD type (general-discoverable, LE-only), then
// a device name AD if one is configured, each only emitted while at
// least 3 bytes remain (1 length + 1 type + >=1 data byte). It returns
// the number of bytes written.
//
// A name that doesn't fit whole is carried as a Shortened Local Name
// instead of a Complete Local Name, truncated to what's left, rather
// than silently dropped.
func (s *Server) AdvertisingData(buf []byte) int {
	p := &advPacket{}

	if len(buf) >= 3 {
		p.appendField(typeFlags, []byte{flagGeneralDiscoverable | flagLEOnly})
	}

	if s.name != "" {
		if remaining := len(buf) - len(p.data); remaining >= 3 {
			room := remaining - 2
			name := []byte(s.name)
			if len(name) <= room {
				p.appendField(typeCompleteName, name)
			} else {
				p.appendField(typeShortName, name[:room])
			}
		}
	}

	return copy(buf, p.data)
}
