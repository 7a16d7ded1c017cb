package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/estrie-eats/checkout-backend/api/middleware"
	"github.com/estrie-eats/checkout-backend/api/responses"
	"github.com/estrie-eats/checkout-backend/internal/checkout"
	"github.com/estrie-eats/checkout-backend/internal/profiles"
	pkgerrors "github.com/estrie-eats/checkout-backend/pkg/errors"
	"github.com/estrie-eats/checkout-backend/pkg/logger"
)

type profileResponse struct {
	Form checkout.CustomerFormData `json:"form"`
}

// Profile returns the signed-in customer's saved contact details so the
// storefront can prefill the info step on mount. The delivery method is left
// empty; the shopper chooses it per order.
func Profile(store profiles.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to load a saved profile"))
			return
		}
		id, err := uuid.Parse(customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid customer id"))
			return
		}
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile store unavailable"))
			return
		}

		profile, err := store.FindByCustomerID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profileResponse{Form: checkout.CustomerFormData{
			FirstName:            profile.FirstName,
			Email:                profile.Email,
			Phone:                profile.Phone,
			Address:              profile.Address,
			City:                 profile.City,
			Area:                 profile.Area,
			ZipCode:              profile.ZipCode,
			DeliveryInstructions: profile.DeliveryInstructions,
		}})
	}
}
