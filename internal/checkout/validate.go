package checkout

import (
	"regexp"
	"strings"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalPattern = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d$`)
	digitsOnly    = regexp.MustCompile(`\D`)
)

// fieldOrder fixes which error the UI focuses first. The storefront walks
// this list and highlights the first field carrying an error, so it must
// stay stable.
var fieldOrder = []string{
	"firstName",
	"email",
	"phone",
	"deliveryMethod",
	"city",
	"area",
	"address",
	"zipCode",
}

// ValidationErrors maps field names to human-readable messages. An empty map
// means the form is valid.
type ValidationErrors map[string]string

// First returns the first errored field in declaration order along with its
// message. Returns empty strings when there are no errors.
func (v ValidationErrors) First() (field, message string) {
	for _, f := range fieldOrder {
		if msg, ok := v[f]; ok {
			return f, msg
		}
	}
	return "", ""
}

// Validate runs every rule and collects all failures at once so the review
// screen can show the complete picture rather than one error per round trip.
func Validate(form CustomerFormData, zone ZoneDecision) ValidationErrors {
	errs := ValidationErrors{}

	if len(strings.TrimSpace(form.FirstName)) < 2 {
		errs["firstName"] = "first name must be at least 2 characters"
	}
	if !emailPattern.MatchString(strings.TrimSpace(form.Email)) {
		errs["email"] = "enter a valid email address"
	}
	if !validPhone(form.Phone) {
		errs["phone"] = "enter a valid 10-digit phone number"
	}
	if !form.DeliveryMethod.IsValid() {
		errs["deliveryMethod"] = "choose pickup or delivery"
	}

	if form.DeliveryMethod == DeliveryMethodDelivery {
		switch form.City {
		case "":
			errs["city"] = "city is required for delivery"
		case CityOther:
			errs["city"] = "delivery is not available in your area, please choose pickup"
		case CitySherbrooke:
			if strings.TrimSpace(form.Area) == "" {
				errs["area"] = "select your area"
			}
		}
		if len(strings.TrimSpace(form.Address)) < 5 {
			errs["address"] = "enter your full street address"
		}
		if !postalPattern.MatchString(strings.TrimSpace(form.ZipCode)) {
			errs["zipCode"] = "enter a valid postal code"
		}
	}

	if !zone.Allowed && zone.Reason != "" {
		errs["city"] = zone.Reason
	}

	return errs
}

// QuickGate is the lightweight precondition for advancing from the info step
// to the review step. It only checks presence so the shopper can reach the
// review screen and see the full validation results there.
func QuickGate(form CustomerFormData) bool {
	if strings.TrimSpace(form.FirstName) == "" ||
		strings.TrimSpace(form.Email) == "" ||
		strings.TrimSpace(form.Phone) == "" {
		return false
	}
	if form.DeliveryMethod == DeliveryMethodDelivery {
		if strings.TrimSpace(form.Address) == "" || strings.TrimSpace(form.City) == "" {
			return false
		}
	}
	return true
}

func validPhone(raw string) bool {
	digits := digitsOnly.ReplaceAllString(raw, "")
	if len(digits) == 10 {
		return true
	}
	return len(digits) == 11 && digits[0] == '1'
}
