// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import "github.com/luxfi/multipool/num"

// MintBurnTxnParams is the submitted-transaction record shared by mint and
// burn: for a mint, Amount is the caller's slippage-adjusted maximum input;
// for a burn, it is the caller's slippage-adjusted minimum output.
type MintBurnTxnParams struct {
	PoolAddress     string
	AssetAddress    string
	Shares          num.Num
	Amount          num.Num
	ReceiverAddress string
	Deadline        num.Num
}

// SwapTxnParams is the submitted-transaction record for a swap between two
// assets of the same pool.
type SwapTxnParams struct {
	PoolAddress     string
	AssetInAddress  string
	AssetOutAddress string
	Shares          num.Num
	AmountIn        num.Num
	AmountOut       num.Num
	ReceiverAddress string
	Deadline        num.Num
}
