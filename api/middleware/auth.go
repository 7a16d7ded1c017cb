package middleware

import (
	"net/http"
	"strings"

	"github.com/estrie-eats/checkout-backend/api/responses"
	pkgAuth "github.com/estrie-eats/checkout-backend/pkg/auth"
	"github.com/estrie-eats/checkout-backend/pkg/config"
	pkgerrors "github.com/estrie-eats/checkout-backend/pkg/errors"
	"github.com/estrie-eats/checkout-backend/pkg/logger"
)

const shopperIDHeader = "X-Shopper-Id"

// OptionalAuth parses a bearer token when one is present and seeds the
// request context with the customer's identity. Anonymous requests pass
// through untouched; only a present-but-invalid token is rejected.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithCustomerID(r.Context(), claims.CustomerID.String())
			if logg != nil {
				ctx = logg.WithCustomerID(ctx, claims.CustomerID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ShopperID resolves the per-browser shopper identifier used to key session
// snapshots. The storefront sends it in a header; signed-in customers fall
// back to their customer id so snapshots survive a cleared browser store.
func ShopperID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shopperID := strings.TrimSpace(r.Header.Get(shopperIDHeader))
			if shopperID == "" {
				shopperID = CustomerIDFromContext(r.Context())
			}
			if shopperID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Shopper-Id header required"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithShopperID(r.Context(), shopperID)))
		})
	}
}
