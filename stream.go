package droidlink

import (
	"errors"
	"sync"
	"sync/atomic"
)

// OnPacketFunc is a callback for decoded inbound packets.
type OnPacketFunc func(Packet)

// OnErrorFunc is a callback for receive errors.
type OnErrorFunc func(error)

// PacketStream pumps inbound packets from a communicator to callbacks on a
// background goroutine. Read timeouts are treated as an idle link and keep
// the loop running. Protocol-level failures (unknown, malformed or
// undecodable frames) are reported and the loop continues; a transport
// failure is reported and ends the loop, leaving the reconnect decision to
// the owner.
type PacketStream struct {
	comm     *Communicator
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	onPacket atomic.Value // OnPacketFunc
	onError  atomic.Value // OnErrorFunc
}

// NewPacketStream creates a stream over an open communicator.
func NewPacketStream(comm *Communicator) *PacketStream {
	return &PacketStream{
		comm:   comm,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// SetOnPacket sets the callback for decoded packets.
func (s *PacketStream) SetOnPacket(fn OnPacketFunc) {
	s.onPacket.Store(fn)
}

// SetOnError sets the callback for receive errors.
func (s *PacketStream) SetOnError(fn OnErrorFunc) {
	s.onError.Store(fn)
}

// Start launches the receive loop. Call it once.
func (s *PacketStream) Start() {
	go s.run()
}

func (s *PacketStream) run() {
	defer close(s.doneCh)
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		pkt, err := s.comm.Receive()
		if err != nil {
			switch {
			case errors.Is(err, ErrReadTimeout):
				// Idle link; keep listening.
				continue
			case errors.Is(err, ErrPortClosed):
				return
			case isProtocolError(err):
				s.reportError(err)
				continue
			default:
				s.reportError(err)
				return
			}
		}

		if cb := s.onPacket.Load(); cb != nil {
			cb.(OnPacketFunc)(pkt)
		}
	}
}

func (s *PacketStream) reportError(err error) {
	if cb := s.onError.Load(); cb != nil {
		cb.(OnErrorFunc)(err)
	}
}

// isProtocolError reports whether err means one bad frame rather than a
// broken transport.
func isProtocolError(err error) bool {
	var decodeErr *DecodeError
	var unknownErr *UnknownPacketError
	var malformedErr *MalformedFrameError
	return errors.As(err, &decodeErr) ||
		errors.As(err, &unknownErr) ||
		errors.As(err, &malformedErr)
}

// Stop signals the loop to exit. A loop blocked in a read notices the stop
// at the next read timeout at the latest. Stop is idempotent.
func (s *PacketStream) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Done is closed once the receive loop has exited.
func (s *PacketStream) Done() <-chan struct{} {
	return s.doneCh
}
