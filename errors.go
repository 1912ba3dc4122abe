package droidlink

import (
	"errors"
	"fmt"
)

var (
	// ErrPortClosed is returned by send/receive operations after the
	// communicator (or its transport) has been closed.
	ErrPortClosed = errors.New("droidlink: serial port is closed")

	// ErrReadTimeout is returned when no complete frame arrives within the
	// configured read timeout. The transport stays open; the caller may
	// simply retry.
	ErrReadTimeout = errors.New("droidlink: read timed out waiting for a frame")
)

// ConfigError reports an invalid communicator configuration value. It is
// fatal: the communicator is never opened with a bad device or baud rate.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("droidlink: invalid config field %q: %s", e.Field, e.Reason)
}

// RangeError reports a value that falls outside a Limit. The offending value
// and the violated bounds are carried so callers can correct their input.
type RangeError struct {
	Value  int
	Min    int
	Max    int
	HasMin bool
	HasMax bool
}

func (e *RangeError) Error() string {
	switch {
	case e.HasMin && e.HasMax:
		return fmt.Sprintf("droidlink: value %d outside range %d..%d", e.Value, e.Min, e.Max)
	case e.HasMin:
		return fmt.Sprintf("droidlink: value %d below minimum %d", e.Value, e.Min)
	default:
		return fmt.Sprintf("droidlink: value %d above maximum %d", e.Value, e.Max)
	}
}

// DecodeError reports a payload that does not reconstruct into a valid
// packet variant: wrong payload length, or a field outside its limit.
type DecodeError struct {
	Variant string
	Reason  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("droidlink: cannot decode %s packet: %s", e.Variant, e.Reason)
}

// UnknownPacketError reports a (type, sub-type) pair with no registered
// packet variant. The frame is dropped; the link stays open.
type UnknownPacketError struct {
	Type    PacketType
	SubType byte
}

func (e *UnknownPacketError) Error() string {
	return fmt.Sprintf("droidlink: no packet registered for type 0x%02X sub-type 0x%02X",
		byte(e.Type), e.SubType)
}

// MalformedFrameError reports a frame too short to carry a packet type and
// sub-type byte. A zero-length frame (terminator with no payload) is
// reported the same way rather than silently dropped.
type MalformedFrameError struct {
	Length int
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("droidlink: frame of %d bytes is too short for a packet header", e.Length)
}
