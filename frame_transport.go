package droidlink

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// DefaultReadTimeout bounds how long ReadFrame waits for a terminator when
// the configuration does not say otherwise.
const DefaultReadTimeout = 2 * time.Second

type readResult struct {
	line []byte
	err  error
}

// FrameTransport frames packets with the terminator byte over a raw byte
// stream. Writes append the terminator; reads block until one is observed
// or the read timeout elapses. The transport assumes a single writer and a
// single reader; its mutex serializes access to the underlying port, and a
// blocked read does not hold up writes.
type FrameTransport struct {
	mu          sync.Mutex
	port        io.ReadWriteCloser
	reader      *bufio.Reader
	readTimeout time.Duration

	// pending holds the result channel of an outstanding reader goroutine.
	// A timed-out read leaves its goroutine parked here so the next
	// ReadFrame picks up the same byte stream instead of racing it.
	pending chan readResult
}

// NewFrameTransport wraps an open port. A non-positive readTimeout falls
// back to DefaultReadTimeout.
func NewFrameTransport(port io.ReadWriteCloser, readTimeout time.Duration) *FrameTransport {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &FrameTransport{
		port:        port,
		reader:      bufio.NewReader(port),
		readTimeout: readTimeout,
	}
}

// SetReadTimeout updates the frame read timeout.
func (t *FrameTransport) SetReadTimeout(timeout time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timeout > 0 {
		t.readTimeout = timeout
	}
}

// IsOpen reports whether the transport still owns its port.
func (t *FrameTransport) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port != nil
}

// WriteFrame appends the terminator to data and writes the framed bytes.
// The payload must not contain the terminator byte: the protocol has no
// escaping, so such a frame would be split by the receiver. That limitation
// is surfaced here instead of corrupting the stream.
func (t *FrameTransport) WriteFrame(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return ErrPortClosed
	}
	if len(data) == 0 {
		return fmt.Errorf("droidlink: cannot write an empty frame")
	}
	if bytes.IndexByte(data, FrameTerminator) >= 0 {
		return fmt.Errorf("droidlink: frame payload contains the terminator byte 0x%02X", FrameTerminator)
	}

	framed := make([]byte, 0, len(data)+1)
	framed = append(framed, data...)
	framed = append(framed, FrameTerminator)

	n, err := t.port.Write(framed)
	if err != nil {
		return fmt.Errorf("droidlink: write failed after %d bytes: %w", n, err)
	}
	if n != len(framed) {
		return fmt.Errorf("droidlink: partial write: expected %d bytes, wrote %d", len(framed), n)
	}
	return nil
}

// ReadFrame blocks until a terminator arrives or the read timeout elapses,
// then returns the frame with the terminator stripped. It fails with
// ErrReadTimeout on elapse (the transport stays open), a wrapped transport
// error if the stream fails mid-read, and *MalformedFrameError for an empty
// frame.
func (t *FrameTransport) ReadFrame() ([]byte, error) {
	t.mu.Lock()
	if t.port == nil {
		t.mu.Unlock()
		return nil, ErrPortClosed
	}
	pending := t.pending
	if pending == nil {
		pending = make(chan readResult, 1)
		t.pending = pending
		reader := t.reader
		go func() {
			line, err := reader.ReadBytes(FrameTerminator)
			pending <- readResult{line: line, err: err}
		}()
	}
	timeout := t.readTimeout
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case res := <-pending:
		t.mu.Lock()
		t.pending = nil
		t.mu.Unlock()

		if res.err != nil {
			return nil, fmt.Errorf("droidlink: read failed: %w", res.err)
		}
		frame := res.line[:len(res.line)-1]
		if len(frame) == 0 {
			return nil, &MalformedFrameError{Length: 0}
		}
		return frame, nil
	case <-ctx.Done():
		// The reader goroutine stays parked on the port; the next call
		// reuses it via t.pending.
		return nil, ErrReadTimeout
	}
}

// Close releases the underlying port exactly once. Further calls are no-ops.
func (t *FrameTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	return err
}
