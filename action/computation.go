// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"

	"github.com/luxfi/multipool/num"
)

func requireString(s, name string) string {
	if s == "" {
		panic("action: " + name + " not set")
	}
	return s
}

// Mint resolves the cached quantity into a fully-populated mint parameter
// record, mutating the cached trading context and asset-in snapshot to
// reflect the trade (mirroring what the on-chain pool will do once the
// transaction lands, so a second Mint/Burn/Swap on the same builder chains
// correctly).
func (b *Builder[A, R]) Mint(ctx context.Context) (*Builder[A, R], error) {
	pctx := must(b.context, "context")
	totalSupply := must(b.totalSupply, "total supply")
	asset := must(b.assetIn, "asset in")
	q := must(b.quantity, "quantity")

	var shares, amountIn num.Num
	if q.IsOut() {
		shares = q.Value()
		amountUSD := shares.Mul(pctx.TotalCurrentUSDAmount).Div(totalSupply)
		amountInNeeded := amountUSD.Div(asset.Price)
		supplied, err := pctx.MintRev(&asset, amountInNeeded)
		if err != nil {
			return nil, err
		}
		amountIn = supplied
	} else {
		amountIn = q.Value()
		utilisable, err := pctx.Mint(&asset, amountIn)
		if err != nil {
			return nil, err
		}
		shares = utilisable.Mul(asset.Price).Mul(totalSupply).Div(pctx.TotalCurrentUSDAmount)
	}
	b.context = &pctx
	b.assetIn = &asset

	b.mintParams = &MintBurnTxnParams{
		PoolAddress:     b.poolAddress,
		AssetAddress:    b.assetInAddress,
		Shares:          shares,
		Amount:          b.applySlippageUp(amountIn),
		ReceiverAddress: requireString(b.receiverAddress, "receiver address"),
		Deadline:        b.resolveDeadline(ctx),
	}
	return b, nil
}

// Burn resolves the cached quantity into a fully-populated burn parameter
// record.
func (b *Builder[A, R]) Burn(ctx context.Context) (*Builder[A, R], error) {
	pctx := must(b.context, "context")
	totalSupply := must(b.totalSupply, "total supply")
	asset := must(b.assetOut, "asset out")
	q := must(b.quantity, "quantity")

	var shares, amountOut num.Num
	if q.IsOut() {
		amountOut = q.Value()
		supplied, err := pctx.BurnRev(&asset, amountOut)
		if err != nil {
			return nil, err
		}
		shares = supplied.Mul(asset.Price).Mul(totalSupply).Div(pctx.TotalCurrentUSDAmount)
	} else {
		shares = q.Value()
		amountUSD := shares.Mul(pctx.TotalCurrentUSDAmount).Div(totalSupply)
		utilisable, err := pctx.Burn(&asset, amountUSD.Div(asset.Price))
		if err != nil {
			return nil, err
		}
		amountOut = utilisable
	}
	b.assetOut = &asset

	b.burnParams = &MintBurnTxnParams{
		PoolAddress:     b.poolAddress,
		AssetAddress:    b.assetOutAddress,
		Shares:          shares,
		Amount:          b.applySlippageDown(amountOut),
		ReceiverAddress: requireString(b.receiverAddress, "receiver address"),
		Deadline:        b.resolveDeadline(ctx),
	}
	return b, nil
}

// Swap resolves the cached quantity into a fully-populated swap parameter
// record, bridging the two legs through a mint into asset-in and a burn
// from asset-out (or their reverse counterparts) connected by the shares
// figure they'd mint/burn at the pool's current total USD value.
func (b *Builder[A, R]) Swap(ctx context.Context) (*Builder[A, R], error) {
	pctx := must(b.context, "context")
	totalSupply := must(b.totalSupply, "total supply")
	assetIn := must(b.assetIn, "asset in")
	assetOut := must(b.assetOut, "asset out")
	q := must(b.quantity, "quantity")

	var amountIn, amountOut, shares num.Num
	if q.IsOut() {
		amountOut = q.Value()
		amountInBurn, err := pctx.BurnRev(&assetOut, amountOut)
		if err != nil {
			return nil, err
		}
		shares = amountInBurn.Mul(assetOut.Price).Mul(totalSupply).Div(pctx.TotalCurrentUSDAmount)
		amountOutMint := shares.Mul(pctx.TotalCurrentUSDAmount).Div(totalSupply).Div(assetIn.Price)
		supplied, err := pctx.MintRev(&assetIn, amountOutMint)
		if err != nil {
			return nil, err
		}
		amountIn = supplied
	} else {
		amountIn = q.Value()
		utilisableIn, err := pctx.Mint(&assetIn, amountIn)
		if err != nil {
			return nil, err
		}
		shares = utilisableIn.Mul(assetIn.Price).Mul(totalSupply).Div(pctx.TotalCurrentUSDAmount)
		amountOutBurn := shares.Mul(pctx.TotalCurrentUSDAmount).Div(totalSupply).Div(assetOut.Price)
		utilisableOut, err := pctx.Burn(&assetOut, amountOutBurn)
		if err != nil {
			return nil, err
		}
		amountOut = utilisableOut
	}
	b.assetIn = &assetIn
	b.assetOut = &assetOut

	b.swapParams = &SwapTxnParams{
		PoolAddress:     b.poolAddress,
		AssetInAddress:  b.assetInAddress,
		AssetOutAddress: b.assetOutAddress,
		Shares:          shares,
		AmountIn:        b.applySlippageUp(amountIn),
		AmountOut:       b.applySlippageDown(amountOut),
		ReceiverAddress: requireString(b.receiverAddress, "receiver address"),
		Deadline:        b.resolveDeadline(ctx),
	}
	return b, nil
}

// applySlippageUp is used for the side of a trade that bounds a maximum
// the caller will pay: base + base*p.
func (b *Builder[A, R]) applySlippageUp(amount num.Num) num.Num {
	if b.slippage == nil {
		return amount
	}
	return amount.Add(amount.Mul(b.slippage.Percent))
}

// applySlippageDown is used for the side of a trade that bounds a minimum
// the caller will accept: base - base*p.
func (b *Builder[A, R]) applySlippageDown(amount num.Num) num.Num {
	if b.slippage == nil {
		return amount
	}
	return amount.Sub(amount.Mul(b.slippage.Percent))
}

// SendMint submits the resolved mint parameters.
func (b *Builder[A, R]) SendMint(ctx context.Context) (R, error) {
	return b.adapter.TransactMint(ctx, requireString(b.routerAddress, "router address"), *must(b.mintParams, "mint params"))
}

// SendMintReversed submits the resolved mint parameters through the
// adapter's reversed entry point, for callers that resolved the trade via
// the AmountOut (shares-pinned) direction.
func (b *Builder[A, R]) SendMintReversed(ctx context.Context) (R, error) {
	return b.adapter.TransactMintReversed(ctx, requireString(b.routerAddress, "router address"), *must(b.mintParams, "mint params"))
}

// SendBurn submits the resolved burn parameters.
func (b *Builder[A, R]) SendBurn(ctx context.Context) (R, error) {
	return b.adapter.TransactBurn(ctx, requireString(b.routerAddress, "router address"), *must(b.burnParams, "burn params"))
}

// SendBurnReversed submits the resolved burn parameters through the
// adapter's reversed entry point.
func (b *Builder[A, R]) SendBurnReversed(ctx context.Context) (R, error) {
	return b.adapter.TransactBurnReversed(ctx, requireString(b.routerAddress, "router address"), *must(b.burnParams, "burn params"))
}

// SendSwap submits the resolved swap parameters.
func (b *Builder[A, R]) SendSwap(ctx context.Context) (R, error) {
	return b.adapter.TransactSwap(ctx, requireString(b.routerAddress, "router address"), *must(b.swapParams, "swap params"))
}

// SendSwapReversed submits the resolved swap parameters through the
// adapter's reversed entry point.
func (b *Builder[A, R]) SendSwapReversed(ctx context.Context) (R, error) {
	return b.adapter.TransactSwapReversed(ctx, requireString(b.routerAddress, "router address"), *must(b.swapParams, "swap params"))
}
