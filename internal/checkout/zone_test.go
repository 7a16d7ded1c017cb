package checkout

import "testing"

func TestDecideZonePickupAlwaysAllowed(t *testing.T) {
	for _, city := range []string{CitySherbrooke, CityMagog, CityOther, ""} {
		got := DecideZone(DeliveryMethodPickup, city, 5.00)
		if !got.Allowed || got.Fee != 0 || got.Reason != "" {
			t.Errorf("pickup/%q = %+v, want allowed with no fee", city, got)
		}
	}
}

func TestDecideZoneSherbrooke(t *testing.T) {
	below := DecideZone(DeliveryMethodDelivery, CitySherbrooke, 20.00)
	if !below.Allowed || below.Fee != 4.99 {
		t.Fatalf("below threshold = %+v, want allowed with fee 4.99", below)
	}
	atThreshold := DecideZone(DeliveryMethodDelivery, CitySherbrooke, 25.00)
	if atThreshold.Fee != 4.99 {
		t.Fatalf("at threshold fee = %v, want 4.99 (free only above 25)", atThreshold.Fee)
	}
	above := DecideZone(DeliveryMethodDelivery, CitySherbrooke, 25.01)
	if !above.Allowed || above.Fee != 0 {
		t.Fatalf("above threshold = %+v, want allowed with no fee", above)
	}
}

func TestDecideZoneMagog(t *testing.T) {
	under := DecideZone(DeliveryMethodDelivery, CityMagog, 99.99)
	if under.Allowed {
		t.Fatalf("subtotal 99.99 = %+v, want disallowed", under)
	}
	if under.Reason != ReasonMinimumOrder {
		t.Fatalf("reason = %q, want minimum-order reason", under.Reason)
	}

	atMinimum := DecideZone(DeliveryMethodDelivery, CityMagog, 100.00)
	if !atMinimum.Allowed || atMinimum.Fee != 9.99 {
		t.Fatalf("subtotal 100.00 = %+v, want allowed with fee 9.99", atMinimum)
	}

	free := DecideZone(DeliveryMethodDelivery, CityMagog, 150.00)
	if !free.Allowed || free.Fee != 0 {
		t.Fatalf("subtotal 150.00 = %+v, want allowed with no fee", free)
	}
}

func TestDecideZoneOtherCity(t *testing.T) {
	for _, city := range []string{CityOther, "Montreal", ""} {
		got := DecideZone(DeliveryMethodDelivery, city, 500.00)
		if got.Allowed {
			t.Errorf("delivery/%q = %+v, want disallowed", city, got)
		}
		if got.Reason != ReasonPickupOnly {
			t.Errorf("delivery/%q reason = %q, want pickup-only reason", city, got.Reason)
		}
	}
}

func TestDecideZoneDeterministic(t *testing.T) {
	first := DecideZone(DeliveryMethodDelivery, CityMagog, 120.00)
	second := DecideZone(DeliveryMethodDelivery, CityMagog, 120.00)
	if first != second {
		t.Fatalf("same inputs gave %+v then %+v", first, second)
	}
}
