// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"testing"

	"github.com/luxfi/multipool/num"
)

func freshContext() *MpContext {
	return &MpContext{
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.001"),
	}
}

func TestMintWithZeroBalance(t *testing.T) {
	ctx := freshContext()
	asset := &MpAsset{Price: num.MustParseNum("2"), Percent: num.MustParseNum("50")}

	utilisable, err := ctx.Mint(asset, num.MustParseNum("100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utilisable.Equal(num.MustParseNum("100")) {
		t.Fatalf("bootstrap mint should utilise the full supplied amount, got %s", utilisable)
	}
	if !asset.Quantity.Equal(num.MustParseNum("100")) {
		t.Fatalf("quantity not updated: %s", asset.Quantity)
	}
	if !ctx.TotalCurrentUSDAmount.Equal(num.MustParseNum("200")) {
		t.Fatalf("total usd not updated: %s", ctx.TotalCurrentUSDAmount)
	}
}

func TestBurnWithZeroBalanceIsInsufficient(t *testing.T) {
	ctx := freshContext()
	asset := &MpAsset{Price: num.MustParseNum("2"), Percent: num.MustParseNum("50")}

	_, err := ctx.Burn(asset, num.MustParseNum("1"))
	if err != ErrInsufficientBurnQuantity {
		t.Fatalf("got %v, want ErrInsufficientBurnQuantity", err)
	}
}

func TestWorseningMintChargesDeviationFee(t *testing.T) {
	ctx := freshContext()
	assetA := &MpAsset{Price: num.One, Percent: num.MustParseNum("50")}
	assetB := &MpAsset{Price: num.One, Percent: num.MustParseNum("50")}

	if _, err := ctx.Mint(assetA, num.MustParseNum("1000")); err != nil {
		t.Fatalf("bootstrap mint A: %v", err)
	}
	if _, err := ctx.Mint(assetB, num.MustParseNum("1000")); err != nil {
		t.Fatalf("mint B: %v", err)
	}

	// Asset A now sits slightly above its target share (B's mint was
	// credited net of the base fee); minting more into it should be a
	// worsening trade and therefore charge a deviation fee, utilising
	// strictly less than supplied.
	supplied := num.MustParseNum("10")
	utilisable, err := ctx.Mint(assetA, supplied)
	if err != nil {
		t.Fatalf("worsening mint: %v", err)
	}
	if !utilisable.LessThan(supplied) {
		t.Fatalf("worsening mint should charge a fee: utilisable %s >= supplied %s", utilisable, supplied)
	}
}

func TestMintDeviationBiggerThanLimit(t *testing.T) {
	ctx := freshContext()
	ctx.DeviationPercentLimit = num.MustParseNum("0.01")
	assetA := &MpAsset{Price: num.One, Percent: num.MustParseNum("50")}
	assetB := &MpAsset{Price: num.One, Percent: num.MustParseNum("50")}

	if _, err := ctx.Mint(assetA, num.MustParseNum("1000")); err != nil {
		t.Fatalf("bootstrap mint A: %v", err)
	}
	if _, err := ctx.Mint(assetB, num.MustParseNum("1000")); err != nil {
		t.Fatalf("mint B: %v", err)
	}

	// A large worsening mint into the already-overweight asset should
	// eventually exceed even a small deviation limit.
	_, err := ctx.Mint(assetA, num.MustParseNum("100000"))
	if err != ErrDeviationBiggerThanLimit {
		t.Fatalf("got %v, want ErrDeviationBiggerThanLimit", err)
	}
}

func TestBurnTooMuchIsInsufficient(t *testing.T) {
	ctx := freshContext()
	asset := &MpAsset{Price: num.One, Percent: num.MustParseNum("100")}
	if _, err := ctx.Mint(asset, num.MustParseNum("100")); err != nil {
		t.Fatalf("bootstrap mint: %v", err)
	}

	_, err := ctx.Burn(asset, num.MustParseNum("1000"))
	if err != ErrInsufficientBurnQuantity {
		t.Fatalf("got %v, want ErrInsufficientBurnQuantity", err)
	}
}

func TestMintRevZeroBalanceMatchesForward(t *testing.T) {
	ctx := freshContext()
	asset := &MpAsset{Price: num.MustParseNum("3"), Percent: num.MustParseNum("100")}

	supplied, err := ctx.MintRev(asset, num.MustParseNum("50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !supplied.Equal(num.MustParseNum("50")) {
		t.Fatalf("bootstrap mint_rev should require exactly the utilisable amount, got %s", supplied)
	}
}

// The following reproduce the seed scenarios literally, values and all.

func TestSeedMintFromEmptyPool(t *testing.T) {
	ctx := &MpContext{
		TotalCurrentUSDAmount: num.Zero,
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.0003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.0001"),
	}
	asset := &MpAsset{Quantity: num.Zero, Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}

	utilisable, err := ctx.Mint(asset, num.MustParseNum("10000000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utilisable.Equal(num.MustParseNum("10000000")) {
		t.Fatalf("got %s, want 10000000", utilisable)
	}
	if !ctx.TotalCurrentUSDAmount.Equal(num.MustParseNum("100000000")) {
		t.Fatalf("ctx.usd got %s, want 100000000", ctx.TotalCurrentUSDAmount)
	}
	if !asset.Quantity.Equal(num.MustParseNum("10000000")) {
		t.Fatalf("asset.quantity got %s, want 10000000", asset.Quantity)
	}
}

func TestSeedMintWithDeviationFee(t *testing.T) {
	ctx := &MpContext{
		TotalCurrentUSDAmount: num.MustParseNum("1000"),
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.0003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.0001"),
	}
	asset := &MpAsset{Quantity: num.MustParseNum("50"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}

	utilisable, err := ctx.Mint(asset, num.MustParseNum("5.0051875"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utilisable.Equal(num.MustParseNum("5")) {
		t.Fatalf("got %s, want 5", utilisable)
	}
	if !asset.CollectedFees.Equal(num.MustParseNum("0.0005")) {
		t.Fatalf("collected_fees got %s, want 0.0005", asset.CollectedFees)
	}
	if !asset.CollectedCashbacks.Equal(num.MustParseNum("0.0046875")) {
		t.Fatalf("collected_cashbacks got %s, want 0.0046875", asset.CollectedCashbacks)
	}
	if !ctx.TotalCurrentUSDAmount.Equal(num.MustParseNum("1050")) {
		t.Fatalf("ctx.usd got %s, want 1050", ctx.TotalCurrentUSDAmount)
	}
}

func TestSeedMintRevWithDeviationFee(t *testing.T) {
	ctx := &MpContext{
		TotalCurrentUSDAmount: num.MustParseNum("1000"),
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.0003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.0001"),
	}
	asset := &MpAsset{Quantity: num.MustParseNum("50"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}

	supplied, err := ctx.MintRev(asset, num.MustParseNum("5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 5.0051875 minus 94 ULP at the 24-digit scale: the forward/reverse
	// round trip differs by the rounding drift noted in spec.md §9.
	want := num.MustParseNum("5.0051875").Sub(num.NumFromRaw(num.U256FromUint64(94)))
	if !supplied.Equal(want) {
		t.Fatalf("got %s, want %s", supplied, want)
	}
}

// TestSeedBurnWithDeviationFee is Round-trip II's forward half: a worsening
// burn against an asset sitting exactly at its target share. The supplied
// quantity is the source's literal fixture, 5.005866126138531618 minus
// 4164 ULP at the 24-digit scale (spec.md §9's rounding-drift note).
func TestSeedBurnWithDeviationFee(t *testing.T) {
	ctx := &MpContext{
		TotalCurrentUSDAmount: num.MustParseNum("1000"),
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.0003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.0001"),
	}
	asset := &MpAsset{Quantity: num.MustParseNum("50"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}

	quantityIn := num.MustParseNum("5.005866126138531618").Sub(num.NumFromRaw(num.U256FromUint64(4164)))

	utilisable, err := ctx.Burn(asset, quantityIn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utilisable.Equal(num.MustParseNum("5")) {
		t.Fatalf("got %s, want 5", utilisable)
	}
	if !asset.CollectedFees.Equal(num.MustParseNum("0.0005")) {
		t.Fatalf("collected_fees got %s, want 0.0005", asset.CollectedFees)
	}
	if !asset.CollectedCashbacks.Equal(quantityIn.Sub(num.MustParseNum("5.0005"))) {
		t.Fatalf("collected_cashbacks got %s, want %s", asset.CollectedCashbacks, quantityIn.Sub(num.MustParseNum("5.0005")))
	}
	if !ctx.TotalCurrentUSDAmount.Equal(num.MustParseNum("1000").Sub(quantityIn.Mul(num.MustParseNum("10")))) {
		t.Fatalf("ctx.usd got %s, want %s", ctx.TotalCurrentUSDAmount, num.MustParseNum("1000").Sub(quantityIn.Mul(num.MustParseNum("10"))))
	}
}

// TestSeedBurnWithDeviationFeeReversed is Round-trip II's reverse half,
// exercising getSuppliableBurnQuantity's worsening-branch running-minimum
// root selection (pricing/solver.go) against the source's literal fixture:
// quantity_out = 5.005866126138531618 minus 3934 ULP.
func TestSeedBurnWithDeviationFeeReversed(t *testing.T) {
	ctx := &MpContext{
		TotalCurrentUSDAmount: num.MustParseNum("1000"),
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.0003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.0001"),
	}
	asset := &MpAsset{Quantity: num.MustParseNum("50"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}

	quantityOut, err := ctx.BurnRev(asset, num.MustParseNum("5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := num.MustParseNum("5.005866126138531618").Sub(num.NumFromRaw(num.U256FromUint64(3934)))
	if !quantityOut.Equal(want) {
		t.Fatalf("got %s, want %s", quantityOut, want)
	}
	if !asset.CollectedFees.Equal(num.MustParseNum("0.0005")) {
		t.Fatalf("collected_fees got %s, want 0.0005", asset.CollectedFees)
	}
	if !asset.CollectedCashbacks.Equal(quantityOut.Sub(num.MustParseNum("5.0005"))) {
		t.Fatalf("collected_cashbacks got %s, want %s", asset.CollectedCashbacks, quantityOut.Sub(num.MustParseNum("5.0005")))
	}
	if !asset.Quantity.Equal(num.MustParseNum("50").Sub(quantityOut)) {
		t.Fatalf("asset.quantity got %s, want %s", asset.Quantity, num.MustParseNum("50").Sub(quantityOut))
	}
	if !ctx.TotalCurrentUSDAmount.Equal(num.MustParseNum("1000").Sub(quantityOut.Mul(num.MustParseNum("10")))) {
		t.Fatalf("ctx.usd got %s, want %s", ctx.TotalCurrentUSDAmount, num.MustParseNum("1000").Sub(quantityOut.Mul(num.MustParseNum("10"))))
	}
}

func TestSeedBurnImproving(t *testing.T) {
	ctx := &MpContext{
		TotalCurrentUSDAmount: num.MustParseNum("1000"),
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.0003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.0001"),
	}
	asset := &MpAsset{Quantity: num.MustParseNum("56"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}

	utilisable, err := ctx.Burn(asset, num.MustParseNum("5.0005"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utilisable.Equal(num.MustParseNum("5")) {
		t.Fatalf("got %s, want 5", utilisable)
	}
	if !asset.CollectedFees.Equal(num.MustParseNum("0.0005")) {
		t.Fatalf("collected_fees got %s, want 0.0005", asset.CollectedFees)
	}
	if !ctx.TotalCurrentUSDAmount.Equal(num.MustParseNum("949.995")) {
		t.Fatalf("ctx.usd got %s, want 949.995", ctx.TotalCurrentUSDAmount)
	}
}

func TestSeedMintOvershootExceedsDeviationLimit(t *testing.T) {
	ctx := &MpContext{
		TotalCurrentUSDAmount: num.MustParseNum("1000"),
		TotalAssetPercents:    num.MustParseNum("100"),
		CurveCoef:             num.MustParseNum("0.0003"),
		DeviationPercentLimit: num.MustParseNum("0.1"),
		OperationBaseFee:      num.MustParseNum("0.0001"),
	}
	asset := &MpAsset{Quantity: num.MustParseNum("80"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}

	_, err := ctx.Mint(asset, num.MustParseNum("5000"))
	if err != ErrDeviationBiggerThanLimit {
		t.Fatalf("got %v, want ErrDeviationBiggerThanLimit", err)
	}
}

func TestSeedBurnOvershootVariants(t *testing.T) {
	newCtx := func() *MpContext {
		return &MpContext{
			TotalCurrentUSDAmount: num.MustParseNum("1000"),
			TotalAssetPercents:    num.MustParseNum("100"),
			CurveCoef:             num.MustParseNum("0.0003"),
			DeviationPercentLimit: num.MustParseNum("0.1"),
			OperationBaseFee:      num.MustParseNum("0.0001"),
		}
	}

	t.Run("insufficient", func(t *testing.T) {
		ctx := newCtx()
		asset := &MpAsset{Quantity: num.MustParseNum("20"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}
		_, err := ctx.Burn(asset, num.MustParseNum("5000"))
		if err != ErrInsufficientBurnQuantity {
			t.Fatalf("got %v, want ErrInsufficientBurnQuantity", err)
		}
	})

	t.Run("deviation", func(t *testing.T) {
		ctx := newCtx()
		asset := &MpAsset{Quantity: num.MustParseNum("20"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("50")}
		_, err := ctx.Burn(asset, num.MustParseNum("10"))
		if err != ErrDeviationBiggerThanLimit {
			t.Fatalf("got %v, want ErrDeviationBiggerThanLimit", err)
		}
	})

	t.Run("no curve solutions", func(t *testing.T) {
		ctx := newCtx()
		asset := &MpAsset{Quantity: num.MustParseNum("80"), Price: num.MustParseNum("10"), Percent: num.MustParseNum("80")}
		_, err := ctx.BurnRev(asset, num.MustParseNum("50"))
		if err != ErrNoCurveSolutions {
			t.Fatalf("got %v, want ErrNoCurveSolutions", err)
		}
	})
}
