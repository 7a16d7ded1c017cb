package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/estrie-eats/checkout-backend/internal/checkout"
	"github.com/estrie-eats/checkout-backend/internal/profiles"
	"github.com/estrie-eats/checkout-backend/pkg/errors"
	"github.com/estrie-eats/checkout-backend/pkg/logger"
	"github.com/estrie-eats/checkout-backend/pkg/metrics"
	"github.com/estrie-eats/checkout-backend/pkg/payment"
)

// Input is a consistent read of the shopper's state taken at call time.
// Later form or cart mutations never affect an in-flight submission.
type Input struct {
	ShopperID  string
	CustomerID *uuid.UUID
	Step       checkout.Step
	Form       checkout.CustomerFormData
	CartLines  []checkout.CartLine
}

// Result reports where to send the browser after a successful submission.
type Result struct {
	RedirectURL string
	OrderID     string
	Totals      checkout.Totals
	PrepMinutes int
}

// Coordinator drives the submit pipeline: validate, price, hand off to the
// payment-session service, and snapshot enough state to recover when the
// browser comes back.
type Coordinator struct {
	sessions payment.SessionCreator
	store    checkout.SessionStore
	profiles profiles.Store
	logg     *logger.Logger
	metrics  *metrics.CheckoutMetrics
	now      func() time.Time
}

func NewCoordinator(
	sessions payment.SessionCreator,
	store checkout.SessionStore,
	profileStore profiles.Store,
	logg *logger.Logger,
	m *metrics.CheckoutMetrics,
) *Coordinator {
	return &Coordinator{
		sessions: sessions,
		store:    store,
		profiles: profileStore,
		logg:     logg,
		metrics:  m,
		now:      time.Now,
	}
}

// Submit runs the full pipeline. Validation and cart-integrity failures abort
// before any network call; profile and snapshot write failures are logged and
// never block the redirect once the payment session exists.
func (c *Coordinator) Submit(ctx context.Context, in Input) (*Result, error) {
	started := c.now()
	result, err := c.submit(ctx, in)
	c.observe(err, c.now().Sub(started))
	return result, err
}

func (c *Coordinator) submit(ctx context.Context, in Input) (*Result, error) {
	subtotal := checkout.Subtotal(in.CartLines)
	zone := checkout.DecideZone(in.Form.DeliveryMethod, in.Form.City, subtotal)

	if _, err := checkout.GateSubmit(in.Step, in.Form, zone); err != nil {
		return nil, err
	}
	if len(in.CartLines) == 0 {
		return nil, errors.New(errors.CodeEmptyCart, "your cart is empty")
	}
	if err := checkCartIntegrity(in.CartLines); err != nil {
		return nil, err
	}

	totals := checkout.ComputeTotals(subtotal, zone.Fee)
	prepMinutes := checkout.EstimatePrepTime(in.CartLines)

	var nonFatal error
	if in.CustomerID != nil && c.profiles != nil {
		if _, err := c.profiles.Upsert(ctx, *in.CustomerID, in.Form); err != nil {
			nonFatal = multierr.Append(nonFatal, fmt.Errorf("profile upsert: %w", err))
		}
	}

	req := c.buildRequest(in, totals, prepMinutes)
	session, err := c.sessions.CreateSession(ctx, req)
	if err != nil {
		return nil, err
	}

	snapshot := checkout.CheckoutSession{
		CartLines:                in.CartLines,
		CustomerInfo:             in.Form,
		Totals:                   totals,
		EstimatedPrepTimeMinutes: prepMinutes,
		CreatedAtEpochMillis:     c.now().UnixMilli(),
	}
	if err := c.store.SaveSession(ctx, in.ShopperID, snapshot); err != nil {
		nonFatal = multierr.Append(nonFatal, fmt.Errorf("session snapshot: %w", err))
	}
	if in.CustomerID != nil {
		points := checkout.NewPendingPoints(in.CustomerID.String(), session.OrderID, totals, prepMinutes)
		if err := c.store.SavePendingPoints(ctx, in.CustomerID.String(), points); err != nil {
			nonFatal = multierr.Append(nonFatal, fmt.Errorf("points snapshot: %w", err))
		}
	}
	if nonFatal != nil {
		c.logg.Error(ctx, "submission side effects failed", nonFatal)
	}

	return &Result{
		RedirectURL: session.URL,
		OrderID:     session.OrderID,
		Totals:      totals,
		PrepMinutes: prepMinutes,
	}, nil
}

func checkCartIntegrity(lines []checkout.CartLine) error {
	for i, line := range lines {
		switch {
		case line.Name == "":
			return invalidLine(i, "missing name")
		case line.UnitPrice < 0:
			return invalidLine(i, "negative price")
		case line.Quantity <= 0:
			return invalidLine(i, "non-positive quantity")
		}
	}
	return nil
}

func invalidLine(index int, why string) error {
	return errors.New(errors.CodeInvalidLineItem, "cart contains an invalid item").
		WithDetails(map[string]any{"index": index, "reason": why})
}

func (c *Coordinator) buildRequest(in Input, totals checkout.Totals, prepMinutes int) payment.SessionRequest {
	items := make([]payment.CartItem, 0, len(in.CartLines))
	for _, line := range in.CartLines {
		images := extractImages(line)
		item := payment.CartItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
			Images:   images,
		}
		if len(images) > 0 {
			item.Image = images[0]
		}
		items = append(items, item)
	}

	req := payment.SessionRequest{
		CartItems: items,
		CustomerInfo: payment.CustomerInfo{
			FirstName:            in.Form.FirstName,
			Email:                in.Form.Email,
			Phone:                in.Form.Phone,
			DeliveryMethod:       string(in.Form.DeliveryMethod),
			Address:              in.Form.Address,
			City:                 in.Form.City,
			Area:                 in.Form.Area,
			ZipCode:              in.Form.ZipCode,
			DeliveryInstructions: in.Form.DeliveryInstructions,
		},
		Totals: payment.Totals{
			Subtotal:    totals.Subtotal,
			GST:         totals.GST,
			QST:         totals.QST,
			DeliveryFee: totals.DeliveryFee,
			FinalTotal:  totals.FinalTotal,
		},
		UserID:            in.ShopperID,
		EstimatedPrepTime: prepMinutes,
	}
	if in.CustomerID != nil {
		req.PointsInfo = &payment.PointsInfo{
			UserID:       in.CustomerID.String(),
			PointsEarned: checkout.NewPendingPoints(in.CustomerID.String(), "", totals, prepMinutes).PointsEarned,
			CartTotal:    totals.FinalTotal,
		}
	}
	return req
}

func (c *Coordinator) observe(err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		if coded := errors.As(err); coded != nil {
			outcome = string(coded.Code())
		}
	}
	c.metrics.ObserveSubmission(outcome, elapsed)
}
