package purchasing

import (
	"testing"

	"barstock/internal/core/types"
)

func TestWeightedAverageCost_EmptyStock(t *testing.T) {
	// With no prior stock the unit price becomes the average, exactly.
	price := types.MustMoney("5.00")
	got := WeightedAverageCost(0, types.ZeroMoney(), types.NewQuantityFromFloat64(10), price)

	if !got.Equal(price) {
		t.Errorf("average cost on empty stock\nwant: %s\ngot:  %s", price, got)
	}
}

func TestWeightedAverageCost_Blend(t *testing.T) {
	// stock=10 @ 5.00, buy 10 @ 7.00 -> (10*5 + 10*7) / 20 = 6.00
	got := WeightedAverageCost(
		types.NewQuantityFromFloat64(10), types.MustMoney("5.00"),
		types.NewQuantityFromFloat64(10), types.MustMoney("7.00"),
	)

	want := types.MustMoney("6.00")
	if !got.Equal(want) {
		t.Errorf("blended average cost\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWeightedAverageCost_RoundsHalfUp(t *testing.T) {
	// stock=3 @ 1.00, buy 1 @ 1.50 -> 4.50 / 4 = 1.125 -> 1.13
	got := WeightedAverageCost(
		types.NewQuantityFromFloat64(3), types.MustMoney("1.00"),
		types.NewQuantityFromFloat64(1), types.MustMoney("1.50"),
	)

	want := types.MustMoney("1.13")
	if !got.Equal(want) {
		t.Errorf("rounded average cost\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWeightedAverageCost_ZeroCostStockResets(t *testing.T) {
	// Positive stock with no cost history: the purchase price resets the
	// average instead of being diluted by the uncosted stock.
	price := types.MustMoney("3.50")
	got := WeightedAverageCost(
		types.NewQuantityFromFloat64(100), types.ZeroMoney(),
		types.NewQuantityFromFloat64(5), price,
	)

	if !got.Equal(price) {
		t.Errorf("cost reset\nwant: %s\ngot:  %s", price, got)
	}
}

func TestWeightedAverageCost_FractionalQuantities(t *testing.T) {
	// stock=2.5 @ 4.00, buy 2.5 @ 6.00 -> (10 + 15) / 5 = 5.00
	got := WeightedAverageCost(
		types.NewQuantityFromFloat64(2.5), types.MustMoney("4.00"),
		types.NewQuantityFromFloat64(2.5), types.MustMoney("6.00"),
	)

	want := types.MustMoney("5.00")
	if !got.Equal(want) {
		t.Errorf("fractional quantities\nwant: %s\ngot:  %s", want, got)
	}
}
