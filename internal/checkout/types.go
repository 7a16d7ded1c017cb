package checkout

// DeliveryMethod selects how the customer receives the order.
type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDelivery DeliveryMethod = "delivery"
)

func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryMethodPickup, DeliveryMethodDelivery:
		return true
	default:
		return false
	}
}

// Cities with their own zone rules. Anything else is pickup-only.
const (
	CitySherbrooke = "Sherbrooke"
	CityMagog      = "Magog"
	CityOther      = "Other"
)

// CartLine is one cart entry as read from the external cart source.
// Immutable once read; quantity is filtered to > 0 upstream.
type CartLine struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	UnitPrice              float64  `json:"unitPrice"`
	Quantity               int      `json:"quantity"`
	PreparationTimeMinutes int      `json:"preparationTimeMinutes"`
	Image                  string   `json:"image,omitempty"`
	ImageURL               string   `json:"imageUrl,omitempty"`
	Thumbnail              string   `json:"thumbnail,omitempty"`
	Photo                  string   `json:"photo,omitempty"`
	Images                 []string `json:"images,omitempty"`
	Gallery                []string `json:"gallery,omitempty"`
}

// ZoneDecision is the delivery-eligibility verdict for the current inputs.
// Always derived, never persisted.
type ZoneDecision struct {
	Allowed       bool    `json:"allowed"`
	Reason        string  `json:"reason,omitempty"`
	Fee           float64 `json:"fee"`
	FreeThreshold float64 `json:"freeThreshold"`
}

// Totals carries every money value of a priced checkout, each already rounded
// to the cent at computation time.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	GST         float64 `json:"gst"`
	QST         float64 `json:"qst"`
	DeliveryFee float64 `json:"deliveryFee"`
	FinalTotal  float64 `json:"finalTotal"`
}
