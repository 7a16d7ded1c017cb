package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/estrie-eats/checkout-backend/api/middleware"
	"github.com/estrie-eats/checkout-backend/api/responses"
	"github.com/estrie-eats/checkout-backend/api/validators"
	"github.com/estrie-eats/checkout-backend/internal/checkout"
	"github.com/estrie-eats/checkout-backend/internal/submission"
	pkgerrors "github.com/estrie-eats/checkout-backend/pkg/errors"
	"github.com/estrie-eats/checkout-backend/pkg/logger"
	"github.com/estrie-eats/checkout-backend/pkg/metrics"
)

type quoteRequest struct {
	CartLines      []checkout.CartLine     `json:"cartLines"`
	DeliveryMethod checkout.DeliveryMethod `json:"deliveryMethod" validate:"required,oneof=pickup delivery"`
	City           string                  `json:"city"`
}

type quoteResponse struct {
	Subtotal                 float64               `json:"subtotal"`
	ZoneDecision             checkout.ZoneDecision `json:"zoneDecision"`
	Totals                   *checkout.Totals      `json:"totals,omitempty"`
	EstimatedPrepTimeMinutes int                   `json:"estimatedPrepTimeMinutes"`
}

// Quote prices the cart for the given delivery choice. Totals are omitted
// when the zone refuses delivery, since there is nothing payable yet.
func Quote(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subtotal := checkout.Subtotal(payload.CartLines)
		zone := checkout.DecideZone(payload.DeliveryMethod, payload.City, subtotal)

		resp := quoteResponse{
			Subtotal:                 subtotal,
			ZoneDecision:             zone,
			EstimatedPrepTimeMinutes: checkout.EstimatePrepTime(payload.CartLines),
		}
		if zone.Allowed {
			totals := checkout.ComputeTotals(subtotal, zone.Fee)
			resp.Totals = &totals
		}
		responses.WriteSuccess(w, resp)
	}
}

type validateRequest struct {
	Form      checkout.CustomerFormData `json:"form"`
	CartLines []checkout.CartLine       `json:"cartLines"`
}

type validateResponse struct {
	Valid           bool                      `json:"valid"`
	Errors          checkout.ValidationErrors `json:"errors,omitempty"`
	FirstErrorField string                    `json:"firstErrorField,omitempty"`
}

// ValidateForm runs the full rule set and reports every field error at once,
// plus the first field in declaration order for UI focus.
func ValidateForm(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subtotal := checkout.Subtotal(payload.CartLines)
		zone := checkout.DecideZone(payload.Form.DeliveryMethod, payload.Form.City, subtotal)
		errs := checkout.Validate(payload.Form, zone)

		resp := validateResponse{Valid: len(errs) == 0}
		if len(errs) > 0 {
			resp.Errors = errs
			resp.FirstErrorField, _ = errs.First()
		}
		responses.WriteSuccess(w, resp)
	}
}

type continueRequest struct {
	Step checkout.Step             `json:"step" validate:"required,oneof=info review"`
	Form checkout.CustomerFormData `json:"form"`
}

type stepResponse struct {
	Step checkout.Step `json:"step"`
}

// ContinueCheckout advances the shopper from the info step to review behind
// the lightweight gate.
func ContinueCheckout(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload continueRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, err := checkout.Continue(payload.Step, payload.Form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stepResponse{Step: next})
	}
}

type backRequest struct {
	Step checkout.Step `json:"step" validate:"required,oneof=info review"`
}

// BackCheckout returns the shopper to the info step unconditionally.
func BackCheckout(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload backRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stepResponse{Step: checkout.Back(payload.Step)})
	}
}

type submitRequest struct {
	Step      checkout.Step             `json:"step" validate:"required,oneof=info review"`
	Form      checkout.CustomerFormData `json:"form"`
	CartLines []checkout.CartLine       `json:"cartLines"`
}

type submitResponse struct {
	RedirectURL              string          `json:"redirectUrl"`
	OrderID                  string          `json:"orderId,omitempty"`
	Totals                   checkout.Totals `json:"totals"`
	EstimatedPrepTimeMinutes int             `json:"estimatedPrepTimeMinutes"`
}

// Submit runs the review-step gate and the submission pipeline, returning the
// payment redirect target.
func Submit(coord *submission.Coordinator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if coord == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "submission coordinator unavailable"))
			return
		}

		var payload submitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		in := submission.Input{
			ShopperID: middleware.ShopperIDFromContext(r.Context()),
			Step:      payload.Step,
			Form:      payload.Form,
			CartLines: payload.CartLines,
		}
		if customerID := middleware.CustomerIDFromContext(r.Context()); customerID != "" {
			parsed, err := uuid.Parse(customerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid customer id"))
				return
			}
			in.CustomerID = &parsed
		}

		result, err := coord.Submit(r.Context(), in)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, submitResponse{
			RedirectURL:              result.RedirectURL,
			OrderID:                  result.OrderID,
			Totals:                   result.Totals,
			EstimatedPrepTimeMinutes: result.PrepMinutes,
		})
	}
}

type sessionResponse struct {
	Session       *checkout.CheckoutSession `json:"session"`
	PendingPoints *checkout.PendingPoints   `json:"pendingPoints,omitempty"`
}

// Session returns the pending-checkout snapshot for a browser coming back
// from the payment flow. Pending points are consumed on this read, so they
// are reported exactly once.
func Session(store checkout.SessionStore, m *metrics.CheckoutMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID := middleware.ShopperIDFromContext(r.Context())

		session, err := store.LoadSession(r.Context(), shopperID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load checkout session"))
			return
		}
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no pending checkout session"))
			return
		}
		m.IncSessionRecovered()

		resp := sessionResponse{Session: session}
		if customerID := middleware.CustomerIDFromContext(r.Context()); customerID != "" {
			points, err := store.ConsumePendingPoints(r.Context(), customerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume pending points"))
				return
			}
			resp.PendingPoints = points
		}
		responses.WriteSuccess(w, resp)
	}
}

// ClearSession drops the pending snapshot once the storefront has settled the
// returned order.
func ClearSession(store checkout.SessionStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopperID := middleware.ShopperIDFromContext(r.Context())
		if err := store.ClearSession(r.Context(), shopperID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear checkout session"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
