// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package num

import "strings"

// castDecimals rescales value from prev fractional digits to new fractional
// digits, truncating toward zero when new < prev.
func castDecimals(value U256, prev, new uint8) U256 {
	switch {
	case prev == new:
		return value
	case prev > new:
		return value.Div(Pow10(prev - new))
	default:
		return value.Mul(Pow10(new - prev))
	}
}

// castIntegerToFloat renders an integer U256 holding `decimals` implied
// fractional digits as a decimal string, trimming trailing fractional zeros
// and the point itself when nothing remains after the point.
func castIntegerToFloat(value U256, decimals uint8) string {
	d := int(decimals)
	s := value.String()

	var whole string
	if len(s) > d {
		whole = s[:len(s)-d] + "." + s[len(s)-d:]
	} else {
		whole = "0." + strings.Repeat("0", d-len(s)) + s
	}

	b := []byte(whole)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	i := 0
	for i < len(b) && b[i] == '0' {
		i++
	}
	b = b[i:]
	if len(b) > 0 && b[0] == '.' {
		b = b[1:]
	}
	if len(b) == 0 {
		return "0"
	}

	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// castFloatToInteger parses a decimal string into a U256 holding `decimals`
// implied fractional digits, e.g. "1.5" at 2 decimals yields 150.
func castFloatToInteger(s string, decimals uint8) (U256, error) {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}

	prevDecimals := uint8(0)
	digits := intPart
	if hasFrac {
		prevDecimals = uint8(len(fracPart))
		digits = intPart + fracPart
	}

	value, err := ParseU256(digits)
	if err != nil {
		return U256{}, err
	}
	return castDecimals(value, prevDecimals, decimals), nil
}
