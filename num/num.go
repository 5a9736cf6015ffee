// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package num

// Decimals is the number of fractional digits every Num carries internally.
const Decimals uint8 = 24

// Denominator is 10^Decimals, the scale factor between a Num's raw U256
// storage and the decimal value it represents.
var Denominator = Pow10(Decimals)

// Num is an unsigned fixed-point decimal with 24 fractional digits,
// backed by a checked U256. Multiplication and division truncate toward
// zero (round down), matching the pricing engine's rounding contract.
type Num struct {
	value U256
}

var (
	// Zero is the additive identity.
	Zero = Num{}
	// One is 1.0.
	One = Num{value: Denominator}
	// Max is the largest representable Num.
	Max = Num{value: MaxU256()}
)

// NumFromRaw wraps a raw, already-scaled U256 as a Num. Used at storage
// boundaries where a value is already known to carry Decimals digits.
func NumFromRaw(raw U256) Num { return Num{value: raw} }

// Raw returns the underlying scaled U256.
func (n Num) Raw() U256 { return n.value }

// WithDecimals builds a Num from an integer value that carries `decimals`
// implied fractional digits, rescaling it to the internal 24-digit scale.
func WithDecimals(value U256, decimals uint8) Num {
	return Num{value: castDecimals(value, decimals, Decimals)}
}

// Scaled rescales the Num down to `decimals` implied fractional digits,
// returning the raw integer. Used when handing a value back to a caller
// that works in a coarser unit (e.g. 18-decimal ERC-20 amounts).
func (n Num) Scaled(decimals uint8) U256 {
	return castDecimals(n.value, Decimals, decimals)
}

// ParseNum parses a decimal string such as "1.5" or "1024".
func ParseNum(s string) (Num, error) {
	v, err := castFloatToInteger(s, Decimals)
	if err != nil {
		return Num{}, err
	}
	return Num{value: v}, nil
}

// MustParseNum is ParseNum but panics on malformed input.
func MustParseNum(s string) Num {
	n, err := ParseNum(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Num) IsZero() bool { return n.value.IsZero() }

func (n Num) Cmp(o Num) int             { return n.value.Cmp(o.value) }
func (n Num) LessThan(o Num) bool       { return n.Cmp(o) < 0 }
func (n Num) LessOrEqual(o Num) bool    { return n.Cmp(o) <= 0 }
func (n Num) GreaterThan(o Num) bool    { return n.Cmp(o) > 0 }
func (n Num) GreaterOrEqual(o Num) bool { return n.Cmp(o) >= 0 }
func (n Num) Equal(o Num) bool          { return n.Cmp(o) == 0 }

// Add panics on overflow.
func (n Num) Add(o Num) Num { return Num{value: n.value.Add(o.value)} }

// Sub panics if o > n.
func (n Num) Sub(o Num) Num { return Num{value: n.value.Sub(o.value)} }

// Mul truncates the product down to 24 fractional digits.
func (n Num) Mul(o Num) Num { return Num{value: n.value.MulDiv(o.value, Denominator)} }

// Div truncates the quotient down to 24 fractional digits. A zero o yields
// Zero rather than a panic, following U256.MulDiv's zero-divisor convention.
func (n Num) Div(o Num) Num { return Num{value: n.value.MulDiv(Denominator, o.value)} }

// Rem returns n % o at the raw (scaled) representation.
func (n Num) Rem(o Num) Num { return Num{value: n.value.Mod(o.value)} }

// Pow2 returns n*n.
func (n Num) Pow2() Num { return n.Mul(n) }

// Sqrt returns the fixed-point square root, truncated down.
func (n Num) Sqrt() Num { return Num{value: n.value.Mul(Denominator).Isqrt()} }

// Round truncates n down to the nearest multiple of base.
func (n Num) Round(base Num) Num {
	return Num{value: n.value.Div(base.value).Mul(base.value)}
}

// ToSigned lifts n into the non-negative region of SNum.
func (n Num) ToSigned() SNum { return SNum{magnitude: n} }

func (n Num) String() string { return castIntegerToFloat(n.value, Decimals) }

// MarshalText implements encoding.TextMarshaler, so Num round-trips through
// JSON and YAML as a plain decimal string instead of a struct.
func (n Num) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Num) UnmarshalText(text []byte) error {
	v, err := ParseNum(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}
