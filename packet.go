// Package droidlink implements the droid serial communication protocol: a
// binary packet format exchanged over a serial link between the controller
// and the embedded motor/sensor microcontroller. Frames are newline
// terminated; each frame carries a packet type byte, a sub-type byte and a
// fixed-length payload with big-endian multi-byte fields.
package droidlink

import (
	"encoding/binary"
	"fmt"
)

// PacketType is the leading byte of every frame.
type PacketType byte

const (
	// PacketCore carries commands for the microcontroller itself.
	PacketCore PacketType = 0x00
	// PacketMotors carries motor and movement commands.
	PacketMotors PacketType = 0x01
	// PacketSensors carries sensor traffic.
	PacketSensors PacketType = 0x02

	// PacketCont marks the next frame as a continuation of the previous
	// one. No payload-bearing variant exists for it; inbound frames with
	// this type resolve to UnknownPacketError.
	PacketCont PacketType = 0xFE
	// PacketLast marks the next frame as the final continuation.
	PacketLast PacketType = 0xFF
)

// Sub-types of PacketCore.
const (
	CoreSleepSubType byte = 0x01
)

// Sub-types of PacketMotors.
const (
	MotorSpeedSubType byte = 0x01
	MotorDriveSubType byte = 0x02
	MotorTurnSubType  byte = 0x03
)

// FrameTerminator ends every frame on the wire. It is stripped before
// parsing and must not appear inside payload bytes.
const FrameTerminator byte = '\n'

// Packet is one concrete packet kind. Encode yields the canonical byte
// representation including the type and sub-type bytes but excluding the
// frame terminator, and fails with a *RangeError when a field violates its
// limit.
type Packet interface {
	Type() PacketType
	SubType() byte
	Encode() ([]byte, error)
}

func encodeHeader(p Packet, payloadLen int) []byte {
	buf := make([]byte, 2, 2+payloadLen)
	buf[0] = byte(p.Type())
	buf[1] = p.SubType()
	return buf
}

//
// Core packets
//

// CoreSleep orders the microcontroller to halt execution for a period of
// time. Payload: two bytes, big-endian milliseconds.
type CoreSleep struct {
	SleepPeriod Milliseconds
}

func (p CoreSleep) Type() PacketType { return PacketCore }
func (p CoreSleep) SubType() byte    { return CoreSleepSubType }

func (p CoreSleep) Encode() ([]byte, error) {
	period := int(p.SleepPeriod)
	if err := PositiveInt.Validate(period); err != nil {
		return nil, err
	}
	// The field limit is open above, but the layout is two bytes wide.
	if err := TwoByteUnsigned.Validate(period); err != nil {
		return nil, err
	}
	buf := encodeHeader(p, 2)
	return binary.BigEndian.AppendUint16(buf, uint16(period)), nil
}

func decodeCoreSleep(payload []byte) (Packet, error) {
	if len(payload) != 2 {
		return nil, &DecodeError{Variant: "CoreSleep",
			Reason: fmt.Sprintf("want 2 payload bytes, got %d", len(payload))}
	}
	period := int(binary.BigEndian.Uint16(payload))
	if err := PositiveInt.Validate(period); err != nil {
		return nil, &DecodeError{Variant: "CoreSleep", Reason: err.Error()}
	}
	return CoreSleep{SleepPeriod: Milliseconds(period)}, nil
}

//
// Motor packets
//

// MotorSpeed sets one motor's voltage as a percentage of its maximum.
// Negative speeds reverse the rotation direction. Payload: motor id byte
// followed by the signed percentage as a raw two's-complement byte.
type MotorSpeed struct {
	Motor MotorID
	Speed Percentage
}

func (p MotorSpeed) Type() PacketType { return PacketMotors }
func (p MotorSpeed) SubType() byte    { return MotorSpeedSubType }

func (p MotorSpeed) Encode() ([]byte, error) {
	if err := SignedPercentage.Validate(int(p.Speed)); err != nil {
		return nil, err
	}
	buf := encodeHeader(p, 2)
	return append(buf, byte(p.Motor), byte(int8(p.Speed))), nil
}

func decodeMotorSpeed(payload []byte) (Packet, error) {
	if len(payload) != 2 {
		return nil, &DecodeError{Variant: "MotorSpeed",
			Reason: fmt.Sprintf("want 2 payload bytes, got %d", len(payload))}
	}
	speed := int(int8(payload[1]))
	if err := SignedPercentage.Validate(speed); err != nil {
		return nil, &DecodeError{Variant: "MotorSpeed", Reason: err.Error()}
	}
	return MotorSpeed{Motor: MotorID(payload[0]), Speed: Percentage(speed)}, nil
}

// Drive instructs the droid to drive a distance in a direction. Payload:
// direction byte, two bytes big-endian distance in centimeters, and the
// speed remapped onto the PWM range. The speed uses the signed span because
// PWM values below the middle point turn the motor in reverse.
type Drive struct {
	Direction MoveDirection
	Distance  Centimeters
	Speed     Percentage
}

func (p Drive) Type() PacketType { return PacketMotors }
func (p Drive) SubType() byte    { return MotorDriveSubType }

// moveDirection bounds the Drive direction byte.
var moveDirection = LimitBetween(int(MoveForward), int(MoveBackward))

func (p Drive) Encode() ([]byte, error) {
	if err := moveDirection.Validate(int(p.Direction)); err != nil {
		return nil, err
	}
	if err := TwoByteUnsigned.Validate(int(p.Distance)); err != nil {
		return nil, err
	}
	if err := SignedPercentage.Validate(int(p.Speed)); err != nil {
		return nil, err
	}

	pwmSpeed := RemapInt(int(p.Speed), SignedPercentage.min, SignedPercentage.max, PWMMin, PWMMax)

	buf := encodeHeader(p, 4)
	buf = append(buf, byte(p.Direction))
	buf = binary.BigEndian.AppendUint16(buf, uint16(p.Distance))
	return append(buf, byte(pwmSpeed)), nil
}

func decodeDrive(payload []byte) (Packet, error) {
	if len(payload) != 4 {
		return nil, &DecodeError{Variant: "Drive",
			Reason: fmt.Sprintf("want 4 payload bytes, got %d", len(payload))}
	}
	if err := moveDirection.Validate(int(payload[0])); err != nil {
		return nil, &DecodeError{Variant: "Drive",
			Reason: fmt.Sprintf("invalid direction 0x%02X", payload[0])}
	}
	direction := MoveDirection(payload[0])
	distance := int(binary.BigEndian.Uint16(payload[1:3]))
	speed := RemapInt(int(payload[3]), PWMMin, PWMMax, SignedPercentage.min, SignedPercentage.max)
	if err := SignedPercentage.Validate(speed); err != nil {
		return nil, &DecodeError{Variant: "Drive", Reason: err.Error()}
	}
	return Drive{
		Direction: direction,
		Distance:  Centimeters(distance),
		Speed:     Percentage(speed),
	}, nil
}

// Turn instructs the droid to turn an angle at a speed. Payload: the angle
// remapped from -180..180 onto the PWM range, then the speed remapped from
// 0..100 onto the PWM range. The remap loses sub-degree precision; decoded
// fields may differ from the encoded ones by one unit.
type Turn struct {
	Angle Degrees
	Speed Percentage
}

func (p Turn) Type() PacketType { return PacketMotors }
func (p Turn) SubType() byte    { return MotorTurnSubType }

func (p Turn) Encode() ([]byte, error) {
	if err := TurnAngle.Validate(int(p.Angle)); err != nil {
		return nil, err
	}
	if err := UnsignedPercentage.Validate(int(p.Speed)); err != nil {
		return nil, err
	}

	pwmAngle := RemapInt(int(p.Angle), TurnAngle.min, TurnAngle.max, PWMMin, PWMMax)
	pwmSpeed := RemapInt(int(p.Speed), UnsignedPercentage.min, UnsignedPercentage.max, PWMMin, PWMMax)

	buf := encodeHeader(p, 2)
	return append(buf, byte(pwmAngle), byte(pwmSpeed)), nil
}

func decodeTurn(payload []byte) (Packet, error) {
	if len(payload) != 2 {
		return nil, &DecodeError{Variant: "Turn",
			Reason: fmt.Sprintf("want 2 payload bytes, got %d", len(payload))}
	}
	angle := RemapInt(int(payload[0]), PWMMin, PWMMax, TurnAngle.min, TurnAngle.max)
	speed := RemapInt(int(payload[1]), PWMMin, PWMMax, UnsignedPercentage.min, UnsignedPercentage.max)
	if err := TurnAngle.Validate(angle); err != nil {
		return nil, &DecodeError{Variant: "Turn", Reason: err.Error()}
	}
	if err := UnsignedPercentage.Validate(speed); err != nil {
		return nil, &DecodeError{Variant: "Turn", Reason: err.Error()}
	}
	return Turn{Angle: Degrees(angle), Speed: Percentage(speed)}, nil
}
