package droidlink

// Limit is an inclusive numeric range used to validate packet fields before
// they go on the wire. Either bound may be absent, but not both. A Limit is
// built once, shared read-only across all packet encoders.
//
// Validate rejects out-of-range values with a *RangeError; Clamp rewrites
// them to the nearest bound and never fails.
type Limit struct {
	min    int
	max    int
	hasMin bool
	hasMax bool
}

// LimitBetween builds a Limit with both bounds, inclusive.
// It panics if min > max, which is a programming error.
func LimitBetween(min, max int) Limit {
	if min > max {
		panic("droidlink: limit min must not exceed max")
	}
	return Limit{min: min, max: max, hasMin: true, hasMax: true}
}

// LimitAtLeast builds a Limit constrained only from below.
func LimitAtLeast(min int) Limit {
	return Limit{min: min, hasMin: true}
}

// LimitAtMost builds a Limit constrained only from above.
func LimitAtMost(max int) Limit {
	return Limit{max: max, hasMax: true}
}

// Validate returns nil when value lies inside the range, bounds included,
// and a *RangeError otherwise.
func (l Limit) Validate(value int) error {
	if (l.hasMin && value < l.min) || (l.hasMax && value > l.max) {
		return &RangeError{
			Value:  value,
			Min:    l.min,
			Max:    l.max,
			HasMin: l.hasMin,
			HasMax: l.hasMax,
		}
	}
	return nil
}

// Clamp returns value unchanged when it is in range, or the nearest bound
// when it is not. An absent bound is unconstrained on that side.
func (l Limit) Clamp(value int) int {
	if l.hasMin && value < l.min {
		return l.min
	}
	if l.hasMax && value > l.max {
		return l.max
	}
	return value
}

// Contains reports whether value satisfies the limit.
func (l Limit) Contains(value int) bool {
	return l.Validate(value) == nil
}

// The shared limits of the droid protocol. Initialized once, read-only.
var (
	// SignedPercentage accepts -100..100, inclusive.
	SignedPercentage = LimitBetween(-100, 100)

	// UnsignedPercentage accepts 0..100, inclusive.
	UnsignedPercentage = LimitBetween(0, 100)

	// TurnAngle accepts -180..180 degrees, inclusive.
	TurnAngle = LimitBetween(-180, 180)

	// PositiveInt accepts any non-negative integer.
	PositiveInt = LimitAtLeast(0)

	// TwoByteUnsigned accepts 0..65535, inclusive.
	TwoByteUnsigned = LimitBetween(0, 1<<16-1)
)
