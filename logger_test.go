package droidlink

import (
	"bytes"
	"strings"
	"testing"
)

type captureWriter struct {
	bytes.Buffer
}

func (c *captureWriter) Close() error { return nil }

func TestLoggerFiltersBelowLevel(t *testing.T) {
	out := &captureWriter{}
	logger := NewLogger(out, LevelWarning, "serial")

	logger.Write([]byte("DEBUG: send frame 01[00]"))
	logger.Write([]byte("INFO: link opened"))
	if out.Len() != 0 {
		t.Fatalf("messages below WARNING were written: %q", out.String())
	}

	logger.Write([]byte("ERROR: write failed: broken pipe"))
	line := out.String()
	if !strings.Contains(line, "[ERROR]") {
		t.Errorf("missing level tag in %q", line)
	}
	if !strings.Contains(line, "<serial>") {
		t.Errorf("missing prefix in %q", line)
	}
	if !strings.Contains(line, "write failed: broken pipe") {
		t.Errorf("missing message in %q", line)
	}
}

func TestLoggerLevelNone(t *testing.T) {
	out := &captureWriter{}
	logger := NewLogger(out, LevelNone, "serial")
	logger.Write([]byte("ERROR: should be dropped"))
	if out.Len() != 0 {
		t.Errorf("LevelNone still wrote: %q", out.String())
	}
}

func TestLoggerDefaultsUnprefixedToInfo(t *testing.T) {
	out := &captureWriter{}
	logger := NewLogger(out, LevelInfo, "serial")
	logger.Write([]byte("link opened"))
	if !strings.Contains(out.String(), "[INFO]") {
		t.Errorf("unprefixed message not treated as INFO: %q", out.String())
	}
}

func TestLoggerSetLevel(t *testing.T) {
	out := &captureWriter{}
	logger := NewLogger(out, LevelError, "serial")

	logger.Write([]byte("DEBUG: hidden"))
	if out.Len() != 0 {
		t.Fatalf("debug leaked at LevelError: %q", out.String())
	}

	logger.SetLevel(LevelDebug)
	if logger.Level() != LevelDebug {
		t.Fatalf("Level() = %v after SetLevel(LevelDebug)", logger.Level())
	}
	logger.Write([]byte("DEBUG: visible"))
	if !strings.Contains(out.String(), "visible") {
		t.Errorf("debug message missing after SetLevel: %q", out.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"Warning": LevelWarning,
		" error ": LevelError,
		"NONE":    LevelNone,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel accepted an unknown level name")
	}
}

func TestCommunicatorLogsThroughLogger(t *testing.T) {
	out := &captureWriter{}
	logger := NewLogger(out, LevelDebug, "droid")

	port := &mockPort{}
	comm := newTestCommunicator(port)
	defer comm.Close()
	comm.SetLogger(logger)

	if err := comm.Send(MotorSpeed{Motor: MotorSensor, Speed: 95}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if !strings.Contains(out.String(), "5F[03]") {
		t.Errorf("frame hex missing from debug log: %q", out.String())
	}
}

func TestFormatFrameHex(t *testing.T) {
	if got := formatFrameHex(nil); got != "<empty>" {
		t.Errorf("formatFrameHex(nil) = %q", got)
	}
	got := formatFrameHex([]byte{0x01, 0x01, 0x05, 0x5F})
	if got != "01[00] 01[01] 05[02] 5F[03]" {
		t.Errorf("formatFrameHex = %q", got)
	}
}
