// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pricing implements the deviation-curve AMM: a multi-asset pool
// where each asset tracks a target share of the pool's total USD value, and
// mint/burn pricing rewards trades that move a pool's actual share toward
// its target and taxes trades that move it away.
package pricing

import (
	"errors"

	"github.com/luxfi/multipool/num"
)

// MpContext holds the pool-wide parameters and accumulators shared by every
// asset in a pool.
type MpContext struct {
	TotalCurrentUSDAmount num.Num
	TotalAssetPercents    num.Num
	CurveCoef             num.Num
	DeviationPercentLimit num.Num
	OperationBaseFee      num.Num
	UserCashbackBalance   num.Num
}

// MpAsset holds the per-asset state within a pool.
type MpAsset struct {
	Quantity           num.Num
	Price              num.Num
	CollectedFees      num.Num
	CollectedCashbacks num.Num
	Percent            num.Num
}

// Sentinel errors returned by the mint/burn state transitions.
var (
	// ErrNoCurveSolutions means the quadratic solver found no root that
	// satisfies the branch's acceptance predicate.
	ErrNoCurveSolutions = errors.New("pricing: no curve solutions")
	// ErrDeviationBiggerThanLimit means the trade would push the asset's
	// share further from its target than the pool's hard deviation limit.
	ErrDeviationBiggerThanLimit = errors.New("pricing: deviation bigger than limit")
	// ErrInsufficientBurnQuantity means a burn would remove more of an
	// asset than the pool currently holds.
	ErrInsufficientBurnQuantity = errors.New("pricing: insufficient burn quantity")
)

// signedContext is the SNum-valued mirror of MpContext used by the curve solver,
// which needs intermediate values that can go negative.
type signedContext struct {
	totalCurrentUSDAmount num.SNum
	totalAssetPercents    num.SNum
	curveCoef             num.SNum
	deviationPercentLimit num.SNum
	operationBaseFee      num.SNum
	userCashbackBalance   num.SNum
}

type signedAsset struct {
	quantity           num.SNum
	price              num.SNum
	collectedFees      num.SNum
	collectedCashbacks num.SNum
	percent            num.SNum
}

func (c MpContext) sign() signedContext {
	return signedContext{
		totalCurrentUSDAmount: c.TotalCurrentUSDAmount.ToSigned(),
		totalAssetPercents:    c.TotalAssetPercents.ToSigned(),
		curveCoef:             c.CurveCoef.ToSigned(),
		deviationPercentLimit: c.DeviationPercentLimit.ToSigned(),
		operationBaseFee:      c.OperationBaseFee.ToSigned(),
		userCashbackBalance:   c.UserCashbackBalance.ToSigned(),
	}
}

func (a MpAsset) sign() signedAsset {
	return signedAsset{
		quantity:           a.Quantity.ToSigned(),
		price:              a.Price.ToSigned(),
		collectedFees:      a.CollectedFees.ToSigned(),
		collectedCashbacks: a.CollectedCashbacks.ToSigned(),
		percent:            a.Percent.ToSigned(),
	}
}
