// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package action

import (
	"context"
	"testing"

	"github.com/luxfi/multipool/num"
	"github.com/luxfi/multipool/pricing"
)

func seedPool(adapter *StubAdapter) {
	ctx := pricing.MpContext{
		TotalCurrentUSDAmount: num.MustParseNum("2000"),
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.001"),
	}
	adapter.SetContext("pool1", ctx)
	adapter.SetTotalSupply("pool1", num.MustParseNum("2000"))
	adapter.SetAsset("pool1", "usdc", pricing.MpAsset{
		Quantity: num.MustParseNum("1000"),
		Price:    num.One,
		Percent:  num.MustParseNum("50"),
	})
	adapter.SetAsset("pool1", "weth", pricing.MpAsset{
		Quantity: num.MustParseNum("500"),
		Price:    num.MustParseNum("2"),
		Percent:  num.MustParseNum("50"),
	})
	adapter.SetCurrentBlock(num.MustParseNum("1000"))
}

func TestBuilderMintQuantityIn(t *testing.T) {
	adapter := NewStubAdapter()
	seedPool(adapter)

	ctx := context.Background()
	b, err := Configure[*StubAdapter, StubResult](adapter).
		Pool("pool1").
		AssetIn("usdc").
		Receiver("receiver1").
		Quantity(AmountIn(num.MustParseNum("10"))).
		SlippagePercent(num.MustParseNum("0.01")).
		BlocksToLive(num.MustParseNum("10")).
		Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	b, err = b.Mint(ctx)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if b.mintParams == nil {
		t.Fatal("mint params not populated")
	}
	if !b.mintParams.Amount.GreaterOrEqual(num.MustParseNum("10")) {
		t.Fatalf("amount in max should be >= supplied amount, got %s", b.mintParams.Amount)
	}
	if !b.mintParams.Deadline.Equal(num.MustParseNum("1010")) {
		t.Fatalf("deadline not resolved relative to current block: %s", b.mintParams.Deadline)
	}

	result, err := b.Router("router1").SendMint(ctx)
	if err != nil {
		t.Fatalf("send mint: %v", err)
	}
	if result.Kind != "mint" || result.Router != "router1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !result.MintBurnParams.Amount.Equal(b.mintParams.Amount) || !result.MintBurnParams.Deadline.Equal(b.mintParams.Deadline) {
		t.Fatalf("stub did not echo the submitted params: %+v", result.MintBurnParams)
	}
}

func TestBuilderBurnQuantityOut(t *testing.T) {
	adapter := NewStubAdapter()
	seedPool(adapter)

	ctx := context.Background()
	b, err := Configure[*StubAdapter, StubResult](adapter).
		Pool("pool1").
		AssetOut("usdc").
		Receiver("receiver1").
		Quantity(AmountOut(num.MustParseNum("5"))).
		UntilBlock(num.MustParseNum("5000")).
		Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	b, err = b.Burn(ctx)
	if err != nil {
		t.Fatalf("burn: %v", err)
	}
	if !b.burnParams.Amount.Equal(num.MustParseNum("5")) {
		t.Fatalf("no slippage configured, amount should pass through: %s", b.burnParams.Amount)
	}
	if !b.burnParams.Deadline.Equal(num.MustParseNum("5000")) {
		t.Fatalf("absolute deadline should pass through unchanged: %s", b.burnParams.Deadline)
	}
}

func TestBuilderSwapQuantityIn(t *testing.T) {
	adapter := NewStubAdapter()
	seedPool(adapter)

	ctx := context.Background()
	b, err := Configure[*StubAdapter, StubResult](adapter).
		Pool("pool1").
		AssetIn("usdc").
		AssetOut("weth").
		Receiver("receiver1").
		Quantity(AmountIn(num.MustParseNum("100"))).
		BlocksToLive(num.Zero).
		Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	b, err = b.Swap(ctx)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if b.swapParams.AmountOut.IsZero() {
		t.Fatal("expected a non-zero amount out")
	}

	result, err := b.Router("router1").SendSwap(ctx)
	if err != nil {
		t.Fatalf("send swap: %v", err)
	}
	if result.Kind != "swap" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestBuilderMintMissingReceiverPanics(t *testing.T) {
	adapter := NewStubAdapter()
	seedPool(adapter)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for missing receiver address")
		}
	}()

	ctx := context.Background()
	b, err := Configure[*StubAdapter, StubResult](adapter).
		Pool("pool1").
		AssetIn("usdc").
		Quantity(AmountIn(num.MustParseNum("10"))).
		BlocksToLive(num.Zero).
		Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	_, _ = b.Mint(ctx)
}
