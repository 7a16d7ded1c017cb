package checkout

// CustomerFormData holds the customer's in-progress checkout input. Empty
// strings are valid intermediate state; validation happens only at the gates.
type CustomerFormData struct {
	FirstName            string         `json:"firstName"`
	Email                string         `json:"email"`
	Phone                string         `json:"phone"`
	DeliveryMethod       DeliveryMethod `json:"deliveryMethod"`
	Address              string         `json:"address"`
	City                 string         `json:"city"`
	Area                 string         `json:"area"`
	ZipCode              string         `json:"zipCode"`
	DeliveryInstructions string         `json:"deliveryInstructions"`
}

// FormUpdate is a partial update; nil fields are left untouched.
type FormUpdate struct {
	FirstName            *string         `json:"firstName,omitempty"`
	Email                *string         `json:"email,omitempty"`
	Phone                *string         `json:"phone,omitempty"`
	DeliveryMethod       *DeliveryMethod `json:"deliveryMethod,omitempty"`
	Address              *string         `json:"address,omitempty"`
	City                 *string         `json:"city,omitempty"`
	Area                 *string         `json:"area,omitempty"`
	ZipCode              *string         `json:"zipCode,omitempty"`
	DeliveryInstructions *string         `json:"deliveryInstructions,omitempty"`
}

// Apply merges the non-nil fields of the update into the form.
func (f *CustomerFormData) Apply(u FormUpdate) {
	if u.FirstName != nil {
		f.FirstName = *u.FirstName
	}
	if u.Email != nil {
		f.Email = *u.Email
	}
	if u.Phone != nil {
		f.Phone = *u.Phone
	}
	if u.DeliveryMethod != nil {
		f.DeliveryMethod = *u.DeliveryMethod
	}
	if u.Address != nil {
		f.Address = *u.Address
	}
	if u.City != nil {
		f.City = *u.City
	}
	if u.Area != nil {
		f.Area = *u.Area
	}
	if u.ZipCode != nil {
		f.ZipCode = *u.ZipCode
	}
	if u.DeliveryInstructions != nil {
		f.DeliveryInstructions = *u.DeliveryInstructions
	}
}
