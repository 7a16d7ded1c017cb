package checkout

import "github.com/estrie-eats/checkout-backend/pkg/money"

// Quebec sales tax rates.
const (
	gstRate = 0.05
	qstRate = 0.09975
)

// ComputeTotals derives the tax components and payable total. Each component
// is rounded to the cent right after its multiplication, then the final total
// is rounded once more over the already-rounded parts. Historical order
// records were priced this way; changing the rounding order changes totals by
// up to a cent.
func ComputeTotals(subtotal, deliveryFee float64) Totals {
	base := subtotal + deliveryFee
	gst := money.Round2(base * gstRate)
	qst := money.Round2(base * qstRate)
	return Totals{
		Subtotal:    money.Round2(subtotal),
		GST:         gst,
		QST:         qst,
		DeliveryFee: money.Round2(deliveryFee),
		FinalTotal:  money.Round2(subtotal + deliveryFee + gst + qst),
	}
}

// Subtotal sums the cart lines at unit price times quantity.
func Subtotal(lines []CartLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += line.UnitPrice * float64(line.Quantity)
	}
	return money.Round2(sum)
}

// Preparation-time model: a fixed base plus per-item minutes, capped so the
// storefront never promises more than it can keep.
const (
	prepTimeBaseMinutes = 15
	prepTimeCapMinutes  = 45
)

// EstimatePrepTime computes the estimated preparation time in minutes.
func EstimatePrepTime(lines []CartLine) int {
	total := prepTimeBaseMinutes
	for _, line := range lines {
		total += line.PreparationTimeMinutes * line.Quantity
	}
	if total > prepTimeCapMinutes {
		return prepTimeCapMinutes
	}
	return total
}
