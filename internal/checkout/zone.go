package checkout

// Zone fee schedule. Sherbrooke deliveries ride free above the threshold;
// Magog requires a minimum order and rides free from 150 up.
const (
	sherbrookeFee           = 4.99
	sherbrookeFreeThreshold = 25.00
	magogFee                = 9.99
	magogMinimumOrder       = 100.00
	magogFreeThreshold      = 150.00
)

const (
	ReasonMinimumOrder = "delivery to Magog requires a minimum order of $100"
	ReasonPickupOnly   = "delivery is not available in your area, pickup only"
)

// DecideZone maps (method, city, subtotal) to a delivery decision. Total and
// deterministic: every input triple yields exactly one decision, first
// matching rule wins.
func DecideZone(method DeliveryMethod, city string, subtotal float64) ZoneDecision {
	if method != DeliveryMethodDelivery {
		return ZoneDecision{Allowed: true, Fee: 0}
	}

	switch city {
	case CitySherbrooke:
		fee := sherbrookeFee
		if subtotal > sherbrookeFreeThreshold {
			fee = 0
		}
		return ZoneDecision{Allowed: true, Fee: fee, FreeThreshold: sherbrookeFreeThreshold}

	case CityMagog:
		if subtotal < magogMinimumOrder {
			return ZoneDecision{Allowed: false, Reason: ReasonMinimumOrder, Fee: 0, FreeThreshold: magogFreeThreshold}
		}
		fee := magogFee
		if subtotal >= magogFreeThreshold {
			fee = 0
		}
		return ZoneDecision{Allowed: true, Fee: fee, FreeThreshold: magogFreeThreshold}

	default:
		return ZoneDecision{Allowed: false, Reason: ReasonPickupOnly, Fee: 0}
	}
}
