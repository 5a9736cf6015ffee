// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package num implements the fixed-point and big-integer arithmetic used by
// the pricing engine: a checked 256-bit unsigned integer (U256), a 24-digit
// fixed-point decimal built on top of it (Num), and a sign-magnitude signed
// wrapper around Num (SNum) for the curve solver's intermediate algebra.
package num

import (
	"fmt"

	"github.com/holiman/uint256"
)

// U256 is a checked 256-bit unsigned integer. All arithmetic traps on
// overflow, underflow and division by zero the way the pricing engine
// expects: a malformed call is a programmer error, not a recoverable one.
// The one exception is MulDiv, which returns zero for a zero divisor.
type U256 struct {
	v uint256.Int
}

// ZeroU256 is the additive identity.
var ZeroU256 = U256{}

// OneU256 is the multiplicative identity.
var OneU256 = U256FromUint64(1)

// U256FromUint64 builds a U256 from a small unsigned literal.
func U256FromUint64(x uint64) U256 {
	return U256{v: *uint256.NewInt(x)}
}

// MaxU256 returns the largest representable U256 value (2^256 - 1).
func MaxU256() U256 {
	var z uint256.Int
	z.SetAllOne()
	return U256{v: z}
}

// ParseU256 parses a plain decimal integer string, e.g. "1024".
func ParseU256(s string) (U256, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return U256{}, fmt.Errorf("num: parse u256 %q: %w", s, err)
	}
	return U256{v: *v}, nil
}

// MustParseU256 is ParseU256 but panics on malformed input. Used for
// compile-time-known literals (test fixtures, constants).
func MustParseU256(s string) U256 {
	u, err := ParseU256(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Pow10 returns 10^exp as a U256. Panics if the result overflows 256 bits.
func Pow10(exp uint8) U256 {
	if exp > 77 { // 10^78 > 2^256
		panic("num: u256 pow10 overflow")
	}
	var z uint256.Int
	z.Exp(uint256.NewInt(10), uint256.NewInt(uint64(exp)))
	return U256{v: z}
}

func (a U256) IsZero() bool    { return a.v.IsZero() }
func (a U256) Cmp(b U256) int  { return a.v.Cmp(&b.v) }
func (a U256) Lt(b U256) bool  { return a.v.Lt(&b.v) }
func (a U256) Gt(b U256) bool  { return a.v.Gt(&b.v) }
func (a U256) Eq(b U256) bool  { return a.v.Eq(&b.v) }
func (a U256) String() string { return a.v.Dec() }

// CheckedAdd returns a+b and false if the sum overflows 256 bits.
func (a U256) CheckedAdd(b U256) (U256, bool) {
	var z uint256.Int
	_, overflow := z.AddOverflow(&a.v, &b.v)
	return U256{v: z}, !overflow
}

// Add panics on overflow. Mirrors the source's checked_add().expect("overflow").
func (a U256) Add(b U256) U256 {
	r, ok := a.CheckedAdd(b)
	if !ok {
		panic("num: u256 add overflow")
	}
	return r
}

// CheckedSub returns a-b and false if b > a.
func (a U256) CheckedSub(b U256) (U256, bool) {
	var z uint256.Int
	_, overflow := z.SubOverflow(&a.v, &b.v)
	return U256{v: z}, !overflow
}

// Sub panics if b > a.
func (a U256) Sub(b U256) U256 {
	r, ok := a.CheckedSub(b)
	if !ok {
		panic("num: u256 sub overflow")
	}
	return r
}

// CheckedMul returns a*b and false if the product overflows 256 bits.
func (a U256) CheckedMul(b U256) (U256, bool) {
	var z uint256.Int
	_, overflow := z.MulOverflow(&a.v, &b.v)
	return U256{v: z}, !overflow
}

// Mul panics on overflow.
func (a U256) Mul(b U256) U256 {
	r, ok := a.CheckedMul(b)
	if !ok {
		panic("num: u256 mul overflow")
	}
	return r
}

// Div truncates toward zero. Divisor must be non-zero; callers that need the
// mul_div zero-divisor convention should use MulDiv instead.
func (a U256) Div(b U256) U256 {
	if b.IsZero() {
		panic("num: u256 div by zero")
	}
	var z uint256.Int
	z.Div(&a.v, &b.v)
	return U256{v: z}
}

// Mod returns a % b.
func (a U256) Mod(b U256) U256 {
	if b.IsZero() {
		panic("num: u256 mod by zero")
	}
	var z uint256.Int
	z.Mod(&a.v, &b.v)
	return U256{v: z}
}

// MulDiv computes floor(a*b/d) with a 512-bit intermediate product, so the
// multiply never loses precision even when a*b would overflow 256 bits on
// its own. By convention (matched from the fixed-point layer this replaces)
// a zero divisor yields zero rather than panicking: every call site already
// guards the true division-by-zero case before it matters, and a silent
// zero keeps that guard in one place instead of two.
func (a U256) MulDiv(b, d U256) U256 {
	if d.IsZero() {
		return U256{}
	}
	var z uint256.Int
	_, overflow := z.MulDivOverflow(&a.v, &b.v, &d.v)
	if overflow {
		panic("num: u256 mul_div overflow")
	}
	return U256{v: z}
}

// Isqrt returns the integer (floor) square root.
func (a U256) Isqrt() U256 {
	var z uint256.Int
	z.Sqrt(&a.v)
	return U256{v: z}
}
