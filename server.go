package gatt

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// A Server is a GATT/ATT server core: an attribute table built from a
// declared list of Services, dispatched against by L2CAPInput. It owns
// no transport, radio, or connection — those are the caller's
// responsibility.
type Server struct {
	name      string
	serverMTU uint16
	log       *logrus.Entry

	services []*Service
	built    bool

	table    *attrRange
	cccChars []*Characteristic

	notifyOut func(pdu []byte)

	connMu sync.Mutex
	conn   *ConnectionData
}

// NewServer creates a Server with the specified options. See also
// Server.Option.
// See http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis for more discussion.
func NewServer(opts ...option) *Server {
	s := &Server{
		serverMTU: defaultATTMTU,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddService registers a new Service with the server. All services
// must be added before the first call to L2CAPInput or Attach, which
// build the attribute table; once it is built, AddService returns nil.
func (s *Server) AddService(u UUID) *Service {
	if s.built {
		return nil
	}
	svc := &Service{uuid: u}
	s.services = append(s.services, svc)
	return svc
}

// Register attaches an already-built Service (e.g. one assembled by a
// helper function away from the Server) to the server, as an
// alternative to the AddService(uuid)-then-mutate style above.
func (s *Server) Register(svc *Service) {
	if s.built {
		return
	}
	s.services = append(s.services, svc)
}

// build lazily materializes the attribute table on first use. The
// table is immutable once built.
func (s *Server) build() {
	if s.built {
		return
	}
	s.table, s.cccChars = generateAttrTable(s.name, s.services, 1)
	s.built = true
	s.log.WithFields(logrus.Fields{
		"attributes": s.table.count(),
		"services":   len(s.services),
	}).Debug("gatt: attribute table built")
}

// Attach installs conn as the server's current connection, whose CCCD
// bits and negotiated MTU Notify uses. CCCD-triggered NotifyHandlers
// use the connection the CCCD write arrived on instead. Only
// one connection is tracked at a time, matching the single-central
// model most embedded GATT servers are built around.
func (s *Server) Attach(conn *ConnectionData) {
	s.build()
	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()
}

// Detach clears the current connection, e.g. when the link tears down.
func (s *Server) Detach() {
	s.connMu.Lock()
	s.conn = nil
	s.connMu.Unlock()
}

func (s *Server) currentConn() *ConnectionData {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.conn
}

type option func(*Server) option

// Option sets the options specified. It returns an option to restore
// the last arg's previous value. See http://commandcenter.blogspot.com.au/2014/01/self-referential-functions-and-design.html
// for more discussion.
func (s *Server) Option(opts ...option) (prev option) {
	for _, opt := range opts {
		prev = opt(s)
	}
	return prev
}

// Name sets the device name, exposed via the Generic Access Service
// (0x1800) and in AdvertisingData. Changing the name after the
// attribute table is built does not change the Generic Access Service's
// device name value.
func Name(n string) option {
	return func(s *Server) option {
		prev := s.name
		s.name = n
		return Name(prev)
	}
}

// ServerMTU records the server's own ATT MTU. Values below 23, the
// protocol floor, are raised to 23. The dispatcher does not read this
// value: Exchange MTU replies and response clipping use the server MTU
// given to NewConnectionData.
func ServerMTU(mtu uint16) option {
	return func(s *Server) option {
		prev := s.serverMTU
		if mtu < defaultATTMTU {
			mtu = defaultATTMTU
		}
		s.serverMTU = mtu
		return ServerMTU(prev)
	}
}

// NotifyWriter sets the function Notify and NotifyHandler-driven
// notifications hand their composed PDU to, for delivery on the
// transport's next outbound opportunity. Without one installed, Notify
// is a no-op.
func NotifyWriter(f func(pdu []byte)) option {
	return func(s *Server) option {
		prev := s.notifyOut
		s.notifyOut = f
		return NotifyWriter(prev)
	}
}

// Logger overrides the server's logrus entry, e.g. to attach
// request-scoped fields.
func Logger(l *logrus.Entry) option {
	return func(s *Server) option {
		prev := s.log
		s.log = l
		return Logger(prev)
	}
}
