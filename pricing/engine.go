// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "github.com/luxfi/multipool/num"

// Mint supplies a known amount of an asset to the pool and returns the
// amount the pool actually utilises after fees. A trade that improves the
// asset's deviation from target releases a pro-rata share of its
// accumulated cashback pool to the caller; a trade that worsens it pays a
// deviation fee bounded by the pool's DeviationPercentLimit.
//
// On error, neither ctx nor asset is mutated.
func (ctx *MpContext) Mint(asset *MpAsset, supplied num.Num) (num.Num, error) {
	if ctx.TotalCurrentUSDAmount.IsZero() {
		asset.Quantity = asset.Quantity.Add(supplied)
		ctx.TotalCurrentUSDAmount = supplied.Mul(asset.Price)
		return supplied, nil
	}

	withFees := getUtilisableMintQuantity(supplied.ToSigned(), asset.sign(), ctx.sign()).Abs()
	noFees := supplied.Div(num.One.Add(ctx.OperationBaseFee))

	devWithFees := calculateDeviationMint(withFees, *asset, *ctx)
	devNoFees := calculateDeviationMint(noFees, *asset, *ctx)
	devOld := calculateDeviationMint(num.Zero, *asset, *ctx)

	var utilisable num.Num
	if devNoFees.LessOrEqual(devOld) {
		utilisable = noFees
		releaseCashback(asset, ctx, devOld, devNoFees)
	} else {
		if devWithFees.GreaterThan(ctx.DeviationPercentLimit) {
			return num.Zero, ErrDeviationBiggerThanLimit
		}
		if withFees.IsZero() {
			return num.Zero, ErrNoCurveSolutions
		}
		utilisable = withFees
		asset.CollectedCashbacks = asset.CollectedCashbacks.Add(
			supplied.Sub(utilisable).Sub(utilisable.Mul(ctx.OperationBaseFee)))
	}

	asset.Quantity = asset.Quantity.Add(utilisable)
	ctx.TotalCurrentUSDAmount = ctx.TotalCurrentUSDAmount.Add(utilisable.Mul(asset.Price))
	asset.CollectedFees = asset.CollectedFees.Add(utilisable.Mul(ctx.OperationBaseFee))
	return utilisable, nil
}

// MintRev is the inverse of Mint: given the amount the pool should utilise,
// it returns the amount the caller must supply to cover it plus fees.
func (ctx *MpContext) MintRev(asset *MpAsset, utilisable num.Num) (num.Num, error) {
	if ctx.TotalCurrentUSDAmount.IsZero() {
		asset.Quantity = asset.Quantity.Add(utilisable)
		ctx.TotalCurrentUSDAmount = utilisable.Mul(asset.Price)
		return utilisable, nil
	}

	devNew := calculateDeviationMint(utilisable, *asset, *ctx)
	devOld := calculateDeviationMint(num.Zero, *asset, *ctx)

	var supplied num.Num
	if devNew.LessOrEqual(devOld) {
		releaseCashback(asset, ctx, devOld, devNew)
		supplied = utilisable.Add(utilisable.Mul(ctx.OperationBaseFee))
	} else {
		if devNew.GreaterThan(ctx.DeviationPercentLimit) {
			return num.Zero, ErrDeviationBiggerThanLimit
		}
		deviationFee := ctx.CurveCoef.Mul(devNew).Mul(utilisable).
			Div(ctx.DeviationPercentLimit).Div(ctx.DeviationPercentLimit.Sub(devNew))
		asset.CollectedCashbacks = asset.CollectedCashbacks.Add(deviationFee)
		supplied = utilisable.Add(utilisable.Mul(ctx.OperationBaseFee)).Add(deviationFee)
	}

	asset.Quantity = asset.Quantity.Add(utilisable)
	ctx.TotalCurrentUSDAmount = ctx.TotalCurrentUSDAmount.Add(utilisable.Mul(asset.Price))
	asset.CollectedFees = asset.CollectedFees.Add(utilisable.Mul(ctx.OperationBaseFee))
	return supplied, nil
}

// Burn removes a known amount of an asset from the pool and returns the
// amount the caller receives after fees. The asset's quantity drops by the
// full supplied amount.
func (ctx *MpContext) Burn(asset *MpAsset, supplied num.Num) (num.Num, error) {
	if supplied.GreaterThan(asset.Quantity) {
		return num.Zero, ErrInsufficientBurnQuantity
	}

	devNew := calculateDeviationBurn(supplied, *asset, *ctx)
	devOld := calculateDeviationBurn(num.Zero, *asset, *ctx)

	var utilisable num.Num
	if devNew.LessOrEqual(devOld) {
		releaseCashback(asset, ctx, devOld, devNew)
		utilisable = supplied.Div(num.One.Add(ctx.OperationBaseFee))
	} else {
		if devNew.GreaterThan(ctx.DeviationPercentLimit) {
			return num.Zero, ErrDeviationBiggerThanLimit
		}
		feeRatio := ctx.CurveCoef.Mul(devNew).Div(ctx.DeviationPercentLimit).Div(ctx.DeviationPercentLimit.Sub(devNew))
		utilisable = supplied.Div(num.One.Add(feeRatio).Add(ctx.OperationBaseFee))
		asset.CollectedCashbacks = asset.CollectedCashbacks.Add(
			supplied.Sub(utilisable).Sub(utilisable.Mul(ctx.OperationBaseFee)))
	}

	asset.Quantity = asset.Quantity.Sub(supplied)
	ctx.TotalCurrentUSDAmount = ctx.TotalCurrentUSDAmount.Sub(supplied.Mul(asset.Price))
	asset.CollectedFees = asset.CollectedFees.Add(utilisable.Mul(ctx.OperationBaseFee))
	return utilisable, nil
}

// BurnRev is the inverse of Burn: given the amount the caller should
// receive, it returns the quantity that must be removed from the asset
// (fees included) to deliver it.
func (ctx *MpContext) BurnRev(asset *MpAsset, utilisable num.Num) (num.Num, error) {
	if utilisable.GreaterThan(asset.Quantity) {
		return num.Zero, ErrInsufficientBurnQuantity
	}

	withFees := getSuppliableBurnQuantity(utilisable.ToSigned(), asset.sign(), ctx.sign()).Abs()
	noFees := utilisable.Mul(num.One.Add(ctx.OperationBaseFee))

	devWithFees := calculateDeviationBurn(withFees, *asset, *ctx)
	devNoFees := calculateDeviationBurn(noFees, *asset, *ctx)
	devOld := calculateDeviationBurn(num.Zero, *asset, *ctx)

	var supplied num.Num
	if devNoFees.LessOrEqual(devOld) {
		supplied = noFees
		if supplied.GreaterThan(asset.Quantity) {
			return num.Zero, ErrInsufficientBurnQuantity
		}
		releaseCashback(asset, ctx, devOld, devNoFees)
	} else {
		supplied = withFees
		if supplied.GreaterThan(asset.Quantity) {
			return num.Zero, ErrInsufficientBurnQuantity
		}
		if devWithFees.GreaterThan(ctx.DeviationPercentLimit) {
			return num.Zero, ErrDeviationBiggerThanLimit
		}
		if withFees.IsZero() {
			return num.Zero, ErrNoCurveSolutions
		}
		asset.CollectedCashbacks = asset.CollectedCashbacks.Add(
			supplied.Sub(utilisable).Sub(utilisable.Mul(ctx.OperationBaseFee)))
	}

	asset.Quantity = asset.Quantity.Sub(supplied)
	ctx.TotalCurrentUSDAmount = ctx.TotalCurrentUSDAmount.Sub(supplied.Mul(asset.Price))
	asset.CollectedFees = asset.CollectedFees.Add(utilisable.Mul(ctx.OperationBaseFee))
	return supplied, nil
}

// releaseCashback pays the caller a pro-rata share of the asset's
// accumulated cashback pool, proportional to how much closer to target
// this trade moves the deviation. No-op once devOld is already zero: there
// is nothing left to release against.
func releaseCashback(asset *MpAsset, ctx *MpContext, devOld, devNew num.Num) {
	if devOld.IsZero() {
		return
	}
	cashback := asset.CollectedCashbacks.Mul(devOld.Sub(devNew)).Div(devOld)
	asset.CollectedCashbacks = asset.CollectedCashbacks.Sub(cashback)
	ctx.UserCashbackBalance = ctx.UserCashbackBalance.Add(cashback)
}
