// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"

	"github.com/luxfi/multipool/num"
	"github.com/luxfi/multipool/pricing"
)

// Adapter abstracts the external oracle and transaction submitter a Builder
// talks to. R is the adapter's own transaction-result type (a tx hash, a
// receipt, whatever its transport returns); every Transact* method shares
// it since the builder never inspects the result itself.
//
// GetCurrentBlock has no error return: an adapter that cannot report the
// current block has nothing sensible to degrade to, so implementations are
// expected to block or panic internally rather than surface a recoverable
// failure here.
type Adapter[R any] interface {
	GetTradingContext(ctx context.Context, pool string) (pricing.MpContext, error)
	GetMintContext(ctx context.Context, pool string) (pricing.MpContext, error)
	GetBurnContext(ctx context.Context, pool string) (pricing.MpContext, error)
	GetTotalSupply(ctx context.Context, pool string) (num.Num, error)
	GetAsset(ctx context.Context, pool, asset string) (pricing.MpAsset, error)
	GetCurrentBlock(ctx context.Context) num.Num

	TransactMint(ctx context.Context, router string, params MintBurnTxnParams) (R, error)
	TransactMintReversed(ctx context.Context, router string, params MintBurnTxnParams) (R, error)
	TransactBurn(ctx context.Context, router string, params MintBurnTxnParams) (R, error)
	TransactBurnReversed(ctx context.Context, router string, params MintBurnTxnParams) (R, error)
	TransactSwap(ctx context.Context, router string, params SwapTxnParams) (R, error)
	TransactSwapReversed(ctx context.Context, router string, params SwapTxnParams) (R, error)
}
