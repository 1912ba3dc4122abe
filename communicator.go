package droidlink

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	serial "github.com/hootrhino/goserial"
)

// Config holds the serial link parameters consumed at Open.
type Config struct {
	// Device is the serial device name, e.g. "/dev/ttyACM0" or "COM3".
	Device string
	// BaudRate is the communication rate; must be positive.
	BaudRate int
	// ReadTimeout bounds each frame read. Zero means DefaultReadTimeout.
	ReadTimeout time.Duration
}

// DefaultConfig returns a Config for the given device with the protocol
// defaults filled in.
func DefaultConfig(device string) Config {
	return Config{
		Device:      device,
		BaudRate:    9600,
		ReadTimeout: DefaultReadTimeout,
	}
}

func (c Config) validate() error {
	if c.Device == "" {
		return &ConfigError{Field: "Device", Reason: "must not be empty"}
	}
	if c.BaudRate <= 0 {
		return &ConfigError{Field: "BaudRate", Reason: fmt.Sprintf("must be > 0, got %d", c.BaudRate)}
	}
	return nil
}

// Communicator owns a serial transport for its lifetime and orchestrates
// packet send/receive over it. It is open from construction until Close;
// send and receive on a closed communicator fail with ErrPortClosed. A
// mutex guards the transport handle so Send and Receive may be called from
// separate goroutines, though the protocol itself assumes one writer and
// one reader.
type Communicator struct {
	mu        sync.Mutex
	config    Config
	transport *FrameTransport
	logger    io.Writer
}

// Open validates the configuration, acquires the serial device and returns
// an open communicator. Invalid configuration fails with *ConfigError
// before the device is touched.
func Open(config Config) (*Communicator, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = DefaultReadTimeout
	}

	port, err := serial.Open(&serial.Config{
		Address:  config.Device,
		BaudRate: config.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  config.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("droidlink: failed to open %s: %w", config.Device, err)
	}
	return NewCommunicator(port, config), nil
}

// NewCommunicator wraps an already-open port. It exists for tests and for
// callers bringing their own transport; Open is the normal entry point.
func NewCommunicator(port io.ReadWriteCloser, config Config) *Communicator {
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = DefaultReadTimeout
	}
	return &Communicator{
		config:    config,
		transport: NewFrameTransport(port, config.ReadTimeout),
	}
}

// SetLogger directs the communicator's frame and error logging to w.
// A *Logger works here; so does any io.Writer.
func (c *Communicator) SetLogger(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = w
}

func (c *Communicator) logf(format string, args ...any) {
	c.mu.Lock()
	w := c.logger
	c.mu.Unlock()
	if w != nil {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// Device returns the configured serial device name.
func (c *Communicator) Device() string { return c.config.Device }

// BaudRate returns the configured baud rate.
func (c *Communicator) BaudRate() int { return c.config.BaudRate }

// IsOpen reports whether the communicator still owns an open transport.
func (c *Communicator) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transport != nil
}

// Send encodes the packet, frames it and writes it to the link. Range and
// transport errors propagate unchanged. Nothing is retried.
func (c *Communicator) Send(p Packet) error {
	c.mu.Lock()
	tr := c.transport
	c.mu.Unlock()
	if tr == nil {
		return ErrPortClosed
	}

	data, err := p.Encode()
	if err != nil {
		c.logf("ERROR: encode failed: %v", err)
		return err
	}

	c.logf("DEBUG: send frame %s", formatFrameHex(data))
	if err := tr.WriteFrame(data); err != nil {
		c.logf("ERROR: write failed: %v", err)
		return err
	}
	return nil
}

// Receive reads the next frame and decodes it into a packet. A timeout
// surfaces as ErrReadTimeout and leaves the link open for retry. Frames
// that do not parse are dropped with the decode failure surfaced; the
// communicator stays open either way.
func (c *Communicator) Receive() (Packet, error) {
	c.mu.Lock()
	tr := c.transport
	c.mu.Unlock()
	if tr == nil {
		return nil, ErrPortClosed
	}

	frame, err := tr.ReadFrame()
	if err != nil {
		if !errors.Is(err, ErrReadTimeout) {
			c.logf("ERROR: read failed: %v", err)
		}
		return nil, err
	}

	pkt, err := DecodePacket(frame)
	if err != nil {
		c.logf("WARNING: dropping frame %s: %v", formatFrameHex(frame), err)
		return nil, err
	}

	c.logf("DEBUG: received frame %s", formatFrameHex(frame))
	return pkt, nil
}

// Close releases the serial transport. It is idempotent: the transport is
// closed exactly once, and later calls return nil.
func (c *Communicator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transport == nil {
		return nil
	}
	err := c.transport.Close()
	c.transport = nil
	return err
}
