// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package num

import "strings"

// SNum is a signed fixed-point decimal, represented as a non-negative
// magnitude plus a sign bit rather than two's complement. The curve solver
// needs this: its intermediate coefficients routinely cross zero, and
// sign-magnitude lets every branch reuse Num's unsigned arithmetic for the
// magnitude while handling the sign with plain case analysis, the same way
// the source this was ported from does it.
type SNum struct {
	magnitude Num
	negative  bool
}

var (
	// SZero is the signed zero. By convention it carries negative=false;
	// Equal and Cmp treat it as equal to any other representation of zero.
	SZero = SNum{}
	// SOne is 1.0.
	SOne = SNum{magnitude: One}
	// SMax is the largest representable magnitude, positive.
	SMax = SNum{magnitude: Max}
	// SMin is the largest representable magnitude, negative.
	SMin = SNum{magnitude: Max, negative: true}
)

// NewSNum builds a signed value from a magnitude and a sign bit.
func NewSNum(magnitude Num, negative bool) SNum {
	return SNum{magnitude: magnitude, negative: negative}
}

// ParseSNum parses an optionally "-"-prefixed decimal string.
func ParseSNum(s string) (SNum, error) {
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	n, err := ParseNum(s)
	if err != nil {
		return SNum{}, err
	}
	return SNum{magnitude: n, negative: negative}, nil
}

// MustParseSNum is ParseSNum but panics on malformed input.
func MustParseSNum(s string) SNum {
	n, err := ParseSNum(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (s SNum) IsNegative() bool { return s.negative && !s.magnitude.IsZero() }
func (s SNum) IsZero() bool     { return s.magnitude.IsZero() }

// Abs returns the unsigned magnitude.
func (s SNum) Abs() Num { return s.magnitude }

// Neg flips the sign. -0 stays equal to 0 under Cmp/Equal.
func (s SNum) Neg() SNum { return SNum{magnitude: s.magnitude, negative: !s.negative} }

// Add implements signed addition via sign-matched magnitude arithmetic.
func (s SNum) Add(o SNum) SNum {
	switch {
	case !s.negative && !o.negative:
		return SNum{magnitude: s.magnitude.Add(o.magnitude)}
	case s.negative && o.negative:
		return SNum{magnitude: s.magnitude.Add(o.magnitude), negative: true}
	case !s.negative && o.negative:
		if s.magnitude.GreaterOrEqual(o.magnitude) {
			return SNum{magnitude: s.magnitude.Sub(o.magnitude)}
		}
		return SNum{magnitude: o.magnitude.Sub(s.magnitude), negative: true}
	default: // s.negative && !o.negative
		if o.magnitude.GreaterOrEqual(s.magnitude) {
			return SNum{magnitude: o.magnitude.Sub(s.magnitude)}
		}
		return SNum{magnitude: s.magnitude.Sub(o.magnitude), negative: true}
	}
}

// Sub implements signed subtraction as s + (-o).
func (s SNum) Sub(o SNum) SNum { return s.Add(o.Neg()) }

// Mul implements signed multiplication: magnitudes multiply, signs XOR.
func (s SNum) Mul(o SNum) SNum {
	return SNum{magnitude: s.magnitude.Mul(o.magnitude), negative: s.negative != o.negative}
}

// Div implements signed division: magnitudes divide, signs XOR.
func (s SNum) Div(o SNum) SNum {
	return SNum{magnitude: s.magnitude.Div(o.magnitude), negative: s.negative != o.negative}
}

// Pow2 returns s*s, always non-negative.
func (s SNum) Pow2() SNum { return SNum{magnitude: s.magnitude.Pow2()} }

// Sqrt returns the square root of the magnitude. The source this mirrors
// calls it on the signed value's magnitude unconditionally rather than
// rejecting negative inputs, since every solver call site already knows its
// discriminant is non-negative before taking the root.
func (s SNum) Sqrt() SNum { return SNum{magnitude: s.magnitude.Sqrt()} }

// Round truncates the magnitude down to the nearest multiple of base.
func (s SNum) Round(base Num) SNum { return SNum{magnitude: s.magnitude.Round(base), negative: s.negative} }

// Cmp orders signed values: both-zero compares equal regardless of sign,
// otherwise negative < positive, and within a sign larger magnitude means
// larger value when positive but smaller value when negative.
func (s SNum) Cmp(o SNum) int {
	if s.IsZero() && o.IsZero() {
		return 0
	}
	if s.negative != o.negative {
		if s.negative {
			return -1
		}
		return 1
	}
	if s.negative {
		return o.magnitude.Cmp(s.magnitude)
	}
	return s.magnitude.Cmp(o.magnitude)
}

func (s SNum) Equal(o SNum) bool          { return s.Cmp(o) == 0 }
func (s SNum) LessThan(o SNum) bool       { return s.Cmp(o) < 0 }
func (s SNum) LessOrEqual(o SNum) bool    { return s.Cmp(o) <= 0 }
func (s SNum) GreaterThan(o SNum) bool    { return s.Cmp(o) > 0 }
func (s SNum) GreaterOrEqual(o SNum) bool { return s.Cmp(o) >= 0 }

func (s SNum) String() string {
	if s.magnitude.IsZero() {
		return s.magnitude.String()
	}
	if s.negative {
		return "-" + s.magnitude.String()
	}
	return s.magnitude.String()
}

func (s SNum) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SNum) UnmarshalText(text []byte) error {
	v, err := ParseSNum(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
