// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "github.com/luxfi/multipool/num"

// calculateDeviationMint returns how far the asset's share of the pool
// would sit from its target weight if utilisable were minted into it.
func calculateDeviationMint(utilisable num.Num, asset MpAsset, ctx MpContext) num.Num {
	newQuantity := asset.Quantity.Add(utilisable)
	newTotalUSD := ctx.TotalCurrentUSDAmount.Add(utilisable.Mul(asset.Price))

	share := newQuantity.Mul(asset.Price).Div(newTotalUSD)
	target := asset.Percent.Div(ctx.TotalAssetPercents)

	return share.ToSigned().Sub(target.ToSigned()).Abs()
}

// calculateDeviationBurn returns how far the asset's share of the pool
// would sit from its target weight if supplied were burned from it.
func calculateDeviationBurn(supplied num.Num, asset MpAsset, ctx MpContext) num.Num {
	newQuantity := asset.Quantity.Sub(supplied)
	newTotalUSD := ctx.TotalCurrentUSDAmount.Sub(supplied.Mul(asset.Price))

	share := newQuantity.Mul(asset.Price).Div(newTotalUSD)
	target := asset.Percent.Div(ctx.TotalAssetPercents)

	return share.ToSigned().Sub(target.ToSigned()).Abs()
}
