// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "github.com/luxfi/multipool/num"

var (
	snumTwo  = num.MustParseSNum("2")
	snumFour = num.MustParseSNum("4")
)

// getUtilisableMintQuantity inverts the mint-fee curve: given the quantity
// the caller is willing to supply, it solves for the quantity the pool can
// actually absorb once the worsening-side deviation fee is accounted for.
//
// The curve has two branches depending on whether the asset's deviation
// from target is approached from below or above (dlm = D-m vs dlm = D+m);
// each branch is a quadratic in the utilisable quantity with its own
// coefficients and its own root-acceptance window. Both branches always
// run; at most one produces an accepted root in practice, but nothing
// prevents the second branch's root from overwriting the first's if its
// window happens to also accept, so the branch order (lower before upper,
// x1 before x2 within a branch) is load-bearing.
func getUtilisableMintQuantity(supplied num.SNum, asset signedAsset, ctx signedContext) num.SNum {
	utilisable := num.SZero

	bf := num.SOne.Add(ctx.operationBaseFee)
	m := num.SOne.Sub(asset.percent.Div(ctx.totalAssetPercents))
	cp := ctx.curveCoef.Div(ctx.deviationPercentLimit)

	{ // lower branch: dlm = D - m
		dlm := ctx.deviationPercentLimit.Sub(m)
		t := asset.quantity.Mul(asset.price).Sub(ctx.totalCurrentUSDAmount)

		a := bf.Mul(dlm).Add(cp.Mul(m)).Mul(asset.price)
		b := dlm.Mul(ctx.totalCurrentUSDAmount.Mul(bf).Sub(supplied.Mul(asset.price))).
			Sub(bf.Sub(cp).Mul(t)).
			Add(cp.Mul(m).Mul(ctx.totalCurrentUSDAmount))
		c := t.Mul(supplied).Sub(dlm.Mul(ctx.totalCurrentUSDAmount).Mul(supplied))

		cmp := asset.quantity.Mul(asset.price).
			Add(ctx.totalCurrentUSDAmount.Mul(m.Sub(num.SOne))).
			Div(m.Mul(asset.price)).Neg()

		d := b.Pow2().Sub(snumFour.Mul(a).Mul(c))
		if d.GreaterOrEqual(num.SZero) {
			sq := d.Sqrt()
			x1 := b.Neg().Sub(sq).Div(snumTwo).Div(a)
			x2 := b.Neg().Add(sq).Div(snumTwo).Div(a)

			if x1.GreaterThan(cmp) && x1.GreaterThan(num.SZero) && x1.LessThan(supplied) {
				utilisable = x1
			}
			if x2.GreaterThan(cmp) && x2.GreaterThan(num.SZero) && x2.LessThan(supplied) {
				utilisable = x2
			}
		}
	}

	{ // upper branch: dlm = D + m
		dlm := ctx.deviationPercentLimit.Add(m)
		t := asset.quantity.Mul(asset.price).Sub(ctx.totalCurrentUSDAmount)

		a := bf.Mul(dlm).Sub(cp.Mul(m)).Mul(asset.price)
		b := dlm.Mul(ctx.totalCurrentUSDAmount.Mul(bf).Sub(supplied.Mul(asset.price))).
			Add(bf.Sub(cp).Mul(t)).
			Sub(cp.Mul(m).Mul(ctx.totalCurrentUSDAmount))
		c := t.Neg().Mul(supplied).Sub(dlm.Mul(ctx.totalCurrentUSDAmount).Mul(supplied))

		cmp := asset.quantity.Mul(asset.price).
			Add(ctx.totalCurrentUSDAmount.Mul(m.Sub(num.SOne))).
			Div(m.Mul(asset.price)).Neg()

		d := b.Pow2().Sub(snumFour.Mul(a).Mul(c))
		if d.GreaterOrEqual(num.SZero) {
			sq := d.Sqrt()
			x1 := b.Neg().Sub(sq).Div(snumTwo).Div(a)
			x2 := b.Neg().Add(sq).Div(snumTwo).Div(a)

			if x1.LessThan(cmp) && x1.GreaterThan(num.SZero) && x1.LessThan(supplied) {
				utilisable = x1
			}
			if x2.LessThan(cmp) && x2.GreaterThan(num.SZero) && x2.LessThan(supplied) {
				utilisable = x2
			}
		}
	}

	return utilisable
}

// getSuppliableBurnQuantity inverts the burn-fee curve: given the quantity
// the caller wants to receive, it solves for the quantity the pool must
// burn to deliver it once the worsening-side deviation fee is accounted
// for.
//
// Unlike the mint solver, which keeps the last accepted root, this one
// keeps the smallest non-zero accepted root across both branches: a larger
// root overshoots the quantity actually needed, so the running minimum is
// the tighter (and correct) answer.
func getSuppliableBurnQuantity(utilisable num.SNum, asset signedAsset, ctx signedContext) num.SNum {
	suppliable := num.SZero

	bf := num.SOne.Add(ctx.operationBaseFee)
	m := num.SOne.Sub(asset.percent.Div(ctx.totalAssetPercents))
	cp := ctx.curveCoef.Div(ctx.deviationPercentLimit)

	accept := func(candidate num.SNum) {
		if suppliable.IsZero() || suppliable.GreaterThan(candidate) {
			suppliable = candidate
		}
	}

	{ // lower branch: dlm = D - m
		dlm := ctx.deviationPercentLimit.Sub(m)
		t := asset.quantity.Mul(asset.price).Sub(ctx.totalCurrentUSDAmount)

		a := dlm.Mul(asset.price).Neg()
		b := bf.Mul(asset.price).Mul(utilisable).Add(ctx.totalCurrentUSDAmount).Mul(dlm).
			Add(cp.Mul(m).Mul(asset.price).Mul(utilisable)).
			Sub(t)
		c := bf.Mul(ctx.totalCurrentUSDAmount).Mul(utilisable).Mul(dlm).Neg().
			Add(t.Mul(utilisable).Mul(bf.Sub(cp))).
			Sub(cp.Mul(m).Mul(ctx.totalCurrentUSDAmount).Mul(utilisable))

		cmp := t.Add(m.Mul(ctx.totalCurrentUSDAmount)).Div(m.Mul(asset.price))

		d := b.Pow2().Sub(snumFour.Mul(a).Mul(c))
		if d.GreaterThan(num.SZero) {
			sq := d.Sqrt()
			x1 := b.Neg().Sub(sq).Div(snumTwo).Div(a)
			x2 := b.Neg().Add(sq).Div(snumTwo).Div(a)

			if withinLimit(m, t, ctx.totalCurrentUSDAmount, asset.price, x1, ctx.deviationPercentLimit) && x1.LessThan(cmp) {
				accept(x1)
			}
			if withinLimit(m, t, ctx.totalCurrentUSDAmount, asset.price, x2, ctx.deviationPercentLimit) && x2.LessThan(cmp) {
				accept(x2)
			}
		}
	}

	{ // upper branch: dlm = D + m
		dlm := ctx.deviationPercentLimit.Add(m)
		t := asset.quantity.Mul(asset.price).Sub(ctx.totalCurrentUSDAmount)

		a := dlm.Mul(asset.price)
		b := bf.Mul(asset.price).Mul(utilisable).Add(ctx.totalCurrentUSDAmount).Mul(dlm).Neg().
			Add(cp.Mul(m).Mul(asset.price).Mul(utilisable)).
			Sub(t)
		c := bf.Mul(ctx.totalCurrentUSDAmount).Mul(utilisable).Mul(dlm).
			Add(t.Mul(utilisable).Mul(bf.Sub(cp))).
			Sub(cp.Mul(m).Mul(ctx.totalCurrentUSDAmount).Mul(utilisable))

		cmp := t.Add(m.Mul(ctx.totalCurrentUSDAmount)).Div(m.Mul(asset.price))

		d := b.Pow2().Sub(snumFour.Mul(a).Mul(c))
		if d.GreaterThan(num.SZero) {
			sq := d.Sqrt()
			x1 := b.Neg().Sub(sq).Div(snumTwo).Div(a)
			x2 := b.Neg().Add(sq).Div(snumTwo).Div(a)

			if withinLimit(m, t, ctx.totalCurrentUSDAmount, asset.price, x1, ctx.deviationPercentLimit) && x1.GreaterThan(cmp) {
				accept(x1)
			}
			if withinLimit(m, t, ctx.totalCurrentUSDAmount, asset.price, x2, ctx.deviationPercentLimit) && x2.GreaterThan(cmp) {
				accept(x2)
			}
		}
	}

	return suppliable
}

// withinLimit reports whether |m + t/(totalUSD - x*price)| < |limit|, the
// post-trade deviation bound every accepted burn root must satisfy.
func withinLimit(m, t, totalUSD, price, x, limit num.SNum) bool {
	dev := m.Add(t.Div(totalUSD.Sub(x.Mul(price))))
	return dev.Abs().ToSigned().LessThan(limit.Abs().ToSigned())
}
