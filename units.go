package droidlink

import "math"

// Measurement types clarify the unit of a packet field.
type (
	// Milliseconds is a duration in thousandths of a second.
	Milliseconds int

	// Centimeters is a distance in centimeters.
	Centimeters int

	// Degrees is an angle in degrees.
	Degrees int

	// Percentage is a percentage, signed or unsigned depending on the field.
	Percentage int
)

// MotorID identifies one of the droid's motors. It travels on the wire as a
// single opaque byte.
type MotorID byte

const (
	// MotorWheelLeft drives the left wheel; forwards turns the droid right.
	MotorWheelLeft MotorID = 0
	// MotorWheelRight drives the right wheel; forwards turns the droid left.
	MotorWheelRight MotorID = 1
	// MotorDome rotates the dome; positive speed turns it clockwise.
	MotorDome MotorID = 2
	// MotorDomeGizmos actuates doors and flaps in the dome.
	MotorDomeGizmos MotorID = 3
	// MotorFrontGizmos actuates doors and flaps in the droid's front.
	MotorFrontGizmos MotorID = 4
	// MotorSensor moves the sensor mounted in the dome.
	MotorSensor MotorID = 5
)

// MoveDirection is the translation direction of a Drive packet.
type MoveDirection byte

const (
	MoveForward  MoveDirection = 0
	MoveBackward MoveDirection = 1
)

// RotateDirection expresses which way a rotation angle is relative to.
// It never travels on the wire; callers fold it into the angle's sign.
type RotateDirection byte

const (
	RotateLeft  RotateDirection = 0
	RotateRight RotateDirection = 1
)

// PWM channel characteristics of the receiving motor controller.
const (
	PWMBits = 8

	PWMMin = 0
	PWMMax = 1<<PWMBits - 1

	// PWMMiddle is the stop point on channels whose lower half reverses
	// the motor.
	PWMMiddle = PWMMax / 2
)

// Analog input characteristics of the microcontroller (10-bit ADC).
const (
	AnalogInputBits = 10
	AnalogMax       = 1<<AnalogInputBits - 1
)

// Remap rescales value from the source span onto the destination span,
// keeping its relative position. The value is silently clamped into
// [srcMin, srcMax] first. A degenerate source span (srcMin == srcMax)
// always yields dstMin.
func Remap(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	if value > srcMax {
		value = srcMax
	}
	if value < srcMin {
		value = srcMin
	}

	srcSpan := srcMax - srcMin
	if srcSpan == 0 {
		return dstMin
	}

	fraction := (value - srcMin) / srcSpan
	return dstMin + fraction*(dstMax-dstMin)
}

// RemapInt is Remap over integers, rounding half away from zero. The
// rounding keeps PWM round-trips within one unit of the original value.
func RemapInt(value, srcMin, srcMax, dstMin, dstMax int) int {
	return int(math.Round(Remap(
		float64(value),
		float64(srcMin), float64(srcMax),
		float64(dstMin), float64(dstMax),
	)))
}

// SecondsToMilliseconds converts seconds to a whole number of milliseconds.
func SecondsToMilliseconds(secs float64) Milliseconds {
	return Milliseconds(secs * 1000)
}

// PercentageToFloat converts a percentage (e.g. 95) to a fraction (0.95).
func PercentageToFloat(p Percentage) float64 {
	return float64(p) / 100.0
}
