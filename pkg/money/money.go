package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary value to the cent, with ties at the half cent
// rounding down: a 9.975% tax on 20.00 comes out as 1.99, not 2.00, and
// historical order totals depend on it. The value is read back through its
// shortest decimal form (20*0.09975 reads as 1.995) so float artifacts do
// not push the tie over the edge.
func Round2(v float64) float64 {
	cents := decimal.NewFromFloat(v).Shift(2).Sub(decimal.New(5, -1)).Ceil()
	f, _ := cents.Shift(-2).Float64()
	return f
}

// Format renders a value with exactly two decimal places.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Parse reads a decimal money string ("4.99") into a float64 amount.
func Parse(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// Cents converts a 2-dp amount to integer cents without float drift.
func Cents(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// WholeDollars floors an amount to whole dollars.
func WholeDollars(v float64) int64 {
	return decimal.NewFromFloat(v).Floor().IntPart()
}
