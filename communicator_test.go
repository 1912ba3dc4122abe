package droidlink

import (
	"errors"
	"testing"
	"time"
)

func TestOpenInvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		config Config
		field  string
	}{
		{"empty device", Config{Device: "", BaudRate: 9600}, "Device"},
		{"zero baud", Config{Device: "/dev/ttyACM0", BaudRate: 0}, "BaudRate"},
		{"negative baud", Config{Device: "/dev/ttyACM0", BaudRate: -9600}, "BaudRate"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Open(c.config)
			var configErr *ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("Open returned %v, want *ConfigError", err)
			}
			if configErr.Field != c.field {
				t.Errorf("ConfigError.Field = %q, want %q", configErr.Field, c.field)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig("/dev/ttyACM0")
	if err := config.validate(); err != nil {
		t.Fatalf("DefaultConfig does not validate: %v", err)
	}
	if config.ReadTimeout != 2*time.Second {
		t.Errorf("default read timeout is %v, want 2s", config.ReadTimeout)
	}
}

func newTestCommunicator(port *mockPort) *Communicator {
	return NewCommunicator(port, Config{Device: "mock0", BaudRate: 9600, ReadTimeout: time.Second})
}

func TestCommunicatorSend(t *testing.T) {
	port := &mockPort{}
	comm := newTestCommunicator(port)
	defer comm.Close()

	if err := comm.Send(MotorSpeed{Motor: MotorSensor, Speed: 95}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	assertBytesEqual(t, []byte{0x01, 0x01, 0x05, 0x5F, 0x0A}, port.written())
}

func TestCommunicatorSendRangeError(t *testing.T) {
	port := &mockPort{}
	comm := newTestCommunicator(port)
	defer comm.Close()

	err := comm.Send(Turn{Angle: 900, Speed: 50})
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("Send returned %v, want *RangeError", err)
	}
	if got := port.written(); len(got) != 0 {
		t.Errorf("an unencodable packet reached the wire: % 02X", got)
	}
}

func TestCommunicatorReceive(t *testing.T) {
	port := &mockPort{}
	port.preload([]byte{0x00, 0x01, 0x01, 0x2C, 0x0A})
	comm := newTestCommunicator(port)
	defer comm.Close()

	pkt, err := comm.Receive()
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	sleep, ok := pkt.(CoreSleep)
	if !ok {
		t.Fatalf("Receive decoded %T, want CoreSleep", pkt)
	}
	if sleep.SleepPeriod != 300 {
		t.Errorf("sleep period is %d, want 300", sleep.SleepPeriod)
	}
}

func TestCommunicatorReceiveUnknownPacket(t *testing.T) {
	port := &mockPort{}
	port.preload([]byte{0xFF, 0x01, 0x0A})
	comm := newTestCommunicator(port)
	defer comm.Close()

	_, err := comm.Receive()
	var unknownErr *UnknownPacketError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Receive returned %v, want *UnknownPacketError", err)
	}

	// A bad frame is dropped; the communicator stays open.
	if !comm.IsOpen() {
		t.Error("communicator closed itself over a bad frame")
	}
	if err := comm.Send(CoreSleep{SleepPeriod: 100}); err != nil {
		t.Errorf("Send after a dropped frame failed: %v", err)
	}
}

func TestCommunicatorReceiveMalformedFrame(t *testing.T) {
	port := &mockPort{}
	port.preload([]byte{0x0A}, []byte{0x01, 0x0A})
	comm := newTestCommunicator(port)
	defer comm.Close()

	for i := 0; i < 2; i++ {
		_, err := comm.Receive()
		var malformedErr *MalformedFrameError
		if !errors.As(err, &malformedErr) {
			t.Fatalf("Receive #%d returned %v, want *MalformedFrameError", i+1, err)
		}
	}
}

func TestCommunicatorClosedOperations(t *testing.T) {
	comm := newTestCommunicator(&mockPort{})

	if err := comm.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := comm.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if comm.IsOpen() {
		t.Error("communicator reports open after Close")
	}

	if err := comm.Send(CoreSleep{SleepPeriod: 1}); !errors.Is(err, ErrPortClosed) {
		t.Errorf("Send after Close returned %v, want ErrPortClosed", err)
	}
	if _, err := comm.Receive(); !errors.Is(err, ErrPortClosed) {
		t.Errorf("Receive after Close returned %v, want ErrPortClosed", err)
	}
}

func TestCommunicatorAccessors(t *testing.T) {
	comm := NewCommunicator(&mockPort{}, Config{Device: "/dev/ttyUSB1", BaudRate: 115200})
	defer comm.Close()

	if comm.Device() != "/dev/ttyUSB1" {
		t.Errorf("Device() = %q", comm.Device())
	}
	if comm.BaudRate() != 115200 {
		t.Errorf("BaudRate() = %d", comm.BaudRate())
	}
}

func TestCommunicatorRoundTripOverLoopback(t *testing.T) {
	// Whatever one communicator writes, a second one reading the same
	// bytes must reconstruct.
	sender := &mockPort{}
	comm := newTestCommunicator(sender)
	defer comm.Close()

	packets := []Packet{
		CoreSleep{SleepPeriod: 300},
		MotorSpeed{Motor: MotorWheelRight, Speed: -75},
		Drive{Direction: MoveForward, Distance: 250, Speed: 100},
		Turn{Angle: -90, Speed: 40},
	}
	for _, p := range packets {
		if err := comm.Send(p); err != nil {
			t.Fatalf("Send(%T) failed: %v", p, err)
		}
	}

	receiverPort := &mockPort{}
	receiverPort.preload(sender.written())
	receiver := newTestCommunicator(receiverPort)
	defer receiver.Close()

	for _, want := range packets {
		got, err := receiver.Receive()
		if err != nil {
			t.Fatalf("Receive for %T failed: %v", want, err)
		}
		switch w := want.(type) {
		case CoreSleep:
			if got.(CoreSleep) != w {
				t.Errorf("round trip changed %+v to %+v", w, got)
			}
		case MotorSpeed:
			if got.(MotorSpeed) != w {
				t.Errorf("round trip changed %+v to %+v", w, got)
			}
		case Drive:
			g := got.(Drive)
			if g.Direction != w.Direction || g.Distance != w.Distance {
				t.Errorf("round trip changed %+v to %+v", w, g)
			}
			assertWithin(t, int(w.Speed), int(g.Speed), 1)
		case Turn:
			g := got.(Turn)
			assertWithin(t, int(w.Angle), int(g.Angle), 1)
			assertWithin(t, int(w.Speed), int(g.Speed), 1)
		}
	}
}
