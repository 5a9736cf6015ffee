// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/multipool/num"
	"github.com/luxfi/multipool/pricing"
)

// Builder stages a mint, burn, or swap against one adapter. Every setter
// returns the same *Builder for chaining; nothing is validated until Fetch
// or the terminal Mint/Burn/Swap call, at which point a missing required
// field panics rather than returning an error. A correct call sequence
// never hits that panic, so it marks a configuration bug in the caller, not
// a runtime condition to recover from.
type Builder[A Adapter[R], R any] struct {
	adapter A

	quantity *SidedQuantity
	slippage *Slippage
	deadline *Deadline

	poolAddress     string
	assetInAddress  string
	assetOutAddress string
	receiverAddress string
	routerAddress   string

	context     *pricing.MpContext
	totalSupply *num.Num
	assetIn     *pricing.MpAsset
	assetOut    *pricing.MpAsset

	mintParams *MintBurnTxnParams
	burnParams *MintBurnTxnParams
	swapParams *SwapTxnParams
}

// Configure starts building an action against the given adapter.
func Configure[A Adapter[R], R any](adapter A) *Builder[A, R] {
	return &Builder[A, R]{adapter: adapter}
}

func (b *Builder[A, R]) Router(address string) *Builder[A, R] {
	b.routerAddress = address
	return b
}

func (b *Builder[A, R]) Pool(address string) *Builder[A, R] {
	b.poolAddress = address
	return b
}

func (b *Builder[A, R]) AssetIn(address string) *Builder[A, R] {
	b.assetInAddress = address
	return b
}

func (b *Builder[A, R]) AssetOut(address string) *Builder[A, R] {
	b.assetOutAddress = address
	return b
}

func (b *Builder[A, R]) Receiver(address string) *Builder[A, R] {
	b.receiverAddress = address
	return b
}

func (b *Builder[A, R]) Quantity(q SidedQuantity) *Builder[A, R] {
	b.quantity = &q
	return b
}

func (b *Builder[A, R]) SlippagePercent(p num.Num) *Builder[A, R] {
	s := Slippage{Percent: p}
	b.slippage = &s
	return b
}

func (b *Builder[A, R]) UntilBlock(block num.Num) *Builder[A, R] {
	d := UntilBlock(block)
	b.deadline = &d
	return b
}

func (b *Builder[A, R]) BlocksToLive(blocks num.Num) *Builder[A, R] {
	d := BlocksToLive(blocks)
	b.deadline = &d
	return b
}

// Fetch populates the builder's cached pool state from the adapter: the
// trading context, the total share supply, and whichever of asset in/out
// addresses were set. The reads are independent of one another, so they
// run concurrently; Fetch fails if any of them does.
func (b *Builder[A, R]) Fetch(ctx context.Context) (*Builder[A, R], error) {
	if b.poolAddress == "" {
		panic("action: pool address not set")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := b.adapter.GetTradingContext(gctx, b.poolAddress)
		if err != nil {
			return fmt.Errorf("action: fetch trading context: %w", err)
		}
		b.context = &c
		return nil
	})

	g.Go(func() error {
		supply, err := b.adapter.GetTotalSupply(gctx, b.poolAddress)
		if err != nil {
			return fmt.Errorf("action: fetch total supply: %w", err)
		}
		b.totalSupply = &supply
		return nil
	})

	if b.assetInAddress != "" {
		g.Go(func() error {
			a, err := b.adapter.GetAsset(gctx, b.poolAddress, b.assetInAddress)
			if err != nil {
				return fmt.Errorf("action: fetch asset in: %w", err)
			}
			b.assetIn = &a
			return nil
		})
	}

	if b.assetOutAddress != "" {
		g.Go(func() error {
			a, err := b.adapter.GetAsset(gctx, b.poolAddress, b.assetOutAddress)
			if err != nil {
				return fmt.Errorf("action: fetch asset out: %w", err)
			}
			b.assetOut = &a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}

func must[T any](v *T, name string) T {
	if v == nil {
		panic("action: " + name + " not set")
	}
	return *v
}

// resolveDeadline resolves the configured deadline against the adapter's
// current block. Absence defaults to ZERO rather than panicking: unlike
// the pool/receiver addresses, a deadline is not a required field.
func (b *Builder[A, R]) resolveDeadline(ctx context.Context) num.Num {
	if b.deadline == nil {
		return num.Zero
	}
	return b.deadline.resolve(b.adapter.GetCurrentBlock(ctx))
}
