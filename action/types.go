// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package action implements the transaction-parameter builder: a staged,
// chained configuration object that turns a desired mint/burn/swap into the
// concrete parameter record an on-chain adapter can submit, fetching pool
// state from the adapter as needed and applying slippage and deadline
// resolution along the way.
package action

import "github.com/luxfi/multipool/num"

// SidedQuantity pins a mint/burn/swap leg to either its input or its output
// side; the builder solves for the other side via the pricing engine.
type SidedQuantity struct {
	out   bool
	value num.Num
}

// AmountIn pins the quantity supplied by the caller.
func AmountIn(v num.Num) SidedQuantity { return SidedQuantity{out: false, value: v} }

// AmountOut pins the quantity the caller wants to receive.
func AmountOut(v num.Num) SidedQuantity { return SidedQuantity{out: true, value: v} }

// IsOut reports whether this quantity pins the output side.
func (q SidedQuantity) IsOut() bool { return q.out }

// Value returns the pinned amount.
func (q SidedQuantity) Value() num.Num { return q.value }

// Slippage widens the amounts in the parameter records against the caller,
// whichever side was pinned: input amounts are raised to a maximum and
// output amounts lowered to a minimum. Percent is additive (x + x*p), not multiplicative (x*(1+p)): the two are
// mathematically equivalent before rounding, but additive avoids a second
// truncation pass through the fixed-point divider.
type Slippage struct {
	Percent num.Num
}

// Deadline resolves either to an absolute block number or to a number of
// blocks from whenever the adapter reports as current.
type Deadline struct {
	relative bool
	value    num.Num
}

// UntilBlock pins an absolute block number.
func UntilBlock(block num.Num) Deadline { return Deadline{relative: false, value: block} }

// BlocksToLive pins a number of blocks relative to the current block,
// resolved when Mint, Burn or Swap builds the parameter record.
func BlocksToLive(blocks num.Num) Deadline { return Deadline{relative: true, value: blocks} }

func (d Deadline) resolve(currentBlock num.Num) num.Num {
	if d.relative {
		return currentBlock.Add(d.value)
	}
	return d.value
}
