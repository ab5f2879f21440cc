package purchasing

import (
	"barstock/internal/core/types"
)

// WeightedAverageCost computes the new average unit cost after receiving
// qty at price on top of stock valued at cost.
//
//	newAvg = (stock*cost + qty*price) / (stock + qty)
//
// The division rounds to the currency minor-unit precision, half up.
// When there is no priced stock (first purchase, or zero-cost stock after a
// lost cost history) the price becomes the new average as-is: a cost reset,
// not an error.
func WeightedAverageCost(stock types.Quantity, cost types.Money, qty types.Quantity, price types.Money) types.Money {
	if !stock.IsPositive() || !cost.IsPositive() {
		return price
	}

	num := stock.Decimal().Mul(cost).Add(qty.Decimal().Mul(price))
	den := stock.Decimal().Add(qty.Decimal())

	// DivRound rounds half away from zero; all operands here are positive,
	// so this is round-half-up.
	return num.DivRound(den, types.MoneyPrecision)
}
