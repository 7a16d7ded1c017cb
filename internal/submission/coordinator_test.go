package submission

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/estrie-eats/checkout-backend/internal/checkout"
	"github.com/estrie-eats/checkout-backend/pkg/db/models"
	"github.com/estrie-eats/checkout-backend/pkg/errors"
	"github.com/estrie-eats/checkout-backend/pkg/logger"
	"github.com/estrie-eats/checkout-backend/pkg/payment"
)

type stubSessionCreator struct {
	calls   int
	lastReq payment.SessionRequest
	session *payment.Session
	err     error
}

func (s *stubSessionCreator) CreateSession(_ context.Context, req payment.SessionRequest) (*payment.Session, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

type stubSessionStore struct {
	sessions    map[string]checkout.CheckoutSession
	points      map[string]checkout.PendingPoints
	saveErr     error
	pointsError error
}

func newStubStore() *stubSessionStore {
	return &stubSessionStore{
		sessions: map[string]checkout.CheckoutSession{},
		points:   map[string]checkout.PendingPoints{},
	}
}

func (s *stubSessionStore) SaveSession(_ context.Context, shopperID string, session checkout.CheckoutSession) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[shopperID] = session
	return nil
}

func (s *stubSessionStore) LoadSession(_ context.Context, shopperID string) (*checkout.CheckoutSession, error) {
	session, ok := s.sessions[shopperID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *stubSessionStore) ClearSession(_ context.Context, shopperID string) error {
	delete(s.sessions, shopperID)
	return nil
}

func (s *stubSessionStore) SavePendingPoints(_ context.Context, customerID string, points checkout.PendingPoints) error {
	if s.pointsError != nil {
		return s.pointsError
	}
	s.points[customerID] = points
	return nil
}

func (s *stubSessionStore) ConsumePendingPoints(_ context.Context, customerID string) (*checkout.PendingPoints, error) {
	points, ok := s.points[customerID]
	if !ok {
		return nil, nil
	}
	delete(s.points, customerID)
	return &points, nil
}

type stubProfileStore struct {
	upserts int
	err     error
}

func (s *stubProfileStore) FindByCustomerID(context.Context, uuid.UUID) (*models.CustomerProfile, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubProfileStore) Upsert(_ context.Context, id uuid.UUID, _ checkout.CustomerFormData) (*models.CustomerProfile, error) {
	s.upserts++
	if s.err != nil {
		return nil, s.err
	}
	return &models.CustomerProfile{ID: id}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func pickupForm() checkout.CustomerFormData {
	return checkout.CustomerFormData{
		FirstName:      "Marie",
		Email:          "marie@example.com",
		Phone:          "8195550142",
		DeliveryMethod: checkout.DeliveryMethodPickup,
	}
}

func rollACart() []checkout.CartLine {
	return []checkout.CartLine{
		{ID: "roll-a", Name: "Roll A", UnitPrice: 10.00, Quantity: 2, PreparationTimeMinutes: 5},
	}
}

func newTestCoordinator(creator *stubSessionCreator, store *stubSessionStore, profiles *stubProfileStore) *Coordinator {
	c := NewCoordinator(creator, store, profiles, testLogger(), nil)
	c.now = func() time.Time { return time.Unix(1756700000, 0) }
	return c
}

func TestSubmitHappyPath(t *testing.T) {
	creator := &stubSessionCreator{session: &payment.Session{URL: "https://pay.example.com/s/abc", OrderID: "order-9"}}
	store := newStubStore()
	coord := newTestCoordinator(creator, store, &stubProfileStore{})

	customerID := uuid.New()
	result, err := coord.Submit(context.Background(), Input{
		ShopperID:  "shopper-1",
		CustomerID: &customerID,
		Step:       checkout.StepReview,
		Form:       pickupForm(),
		CartLines:  rollACart(),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.RedirectURL != "https://pay.example.com/s/abc" {
		t.Fatalf("redirect = %q", result.RedirectURL)
	}
	if result.Totals.FinalTotal != 22.99 {
		t.Fatalf("finalTotal = %v, want 22.99", result.Totals.FinalTotal)
	}
	if result.PrepMinutes != 25 {
		t.Fatalf("prep = %d, want 25", result.PrepMinutes)
	}

	snapshot, ok := store.sessions["shopper-1"]
	if !ok {
		t.Fatal("expected a session snapshot")
	}
	if snapshot.Totals != result.Totals || len(snapshot.CartLines) != 1 {
		t.Fatalf("snapshot = %+v", snapshot)
	}

	points, ok := store.points[customerID.String()]
	if !ok {
		t.Fatal("expected a pending-points snapshot")
	}
	if points.PointsEarned != 22 || points.OrderID != "order-9" {
		t.Fatalf("points = %+v", points)
	}

	if creator.lastReq.UserID != "shopper-1" {
		t.Fatalf("payload userId = %q", creator.lastReq.UserID)
	}
	if creator.lastReq.PointsInfo == nil || creator.lastReq.PointsInfo.PointsEarned != 22 {
		t.Fatalf("payload pointsInfo = %+v", creator.lastReq.PointsInfo)
	}
}

func TestSubmitEmptyCartSkipsNetwork(t *testing.T) {
	creator := &stubSessionCreator{session: &payment.Session{URL: "https://pay.example.com"}}
	coord := newTestCoordinator(creator, newStubStore(), &stubProfileStore{})

	_, err := coord.Submit(context.Background(), Input{ShopperID: "s", Step: checkout.StepReview, Form: pickupForm()})
	if errors.As(err) == nil || errors.As(err).Code() != errors.CodeEmptyCart {
		t.Fatalf("expected empty-cart error, got %v", err)
	}
	if creator.calls != 0 {
		t.Fatalf("network was called %d times", creator.calls)
	}
}

func TestSubmitRejectedOutsideReview(t *testing.T) {
	creator := &stubSessionCreator{}
	coord := newTestCoordinator(creator, newStubStore(), &stubProfileStore{})

	_, err := coord.Submit(context.Background(), Input{
		ShopperID: "s",
		Step:      checkout.StepInfo,
		Form:      pickupForm(),
		CartLines: rollACart(),
	})
	if errors.As(err) == nil || errors.As(err).Code() != errors.CodeConflict {
		t.Fatalf("expected conflict outside the review step, got %v", err)
	}
	if creator.calls != 0 {
		t.Fatal("network should not be reached")
	}
}

func TestSubmitRevalidatesForm(t *testing.T) {
	creator := &stubSessionCreator{}
	coord := newTestCoordinator(creator, newStubStore(), &stubProfileStore{})

	form := pickupForm()
	form.Email = "broken"
	_, err := coord.Submit(context.Background(), Input{ShopperID: "s", Step: checkout.StepReview, Form: form, CartLines: rollACart()})
	if errors.As(err) == nil || errors.As(err).Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if creator.calls != 0 {
		t.Fatal("network should not be reached on validation failure")
	}
}

func TestSubmitRejectsInvalidLines(t *testing.T) {
	cases := []struct {
		name string
		line checkout.CartLine
	}{
		{"empty name", checkout.CartLine{ID: "x", UnitPrice: 1, Quantity: 1}},
		{"negative price", checkout.CartLine{ID: "x", Name: "X", UnitPrice: -0.01, Quantity: 1}},
		{"zero quantity", checkout.CartLine{ID: "x", Name: "X", UnitPrice: 1, Quantity: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creator := &stubSessionCreator{}
			coord := newTestCoordinator(creator, newStubStore(), &stubProfileStore{})
			_, err := coord.Submit(context.Background(), Input{
				ShopperID: "s",
				Step:      checkout.StepReview,
				Form:      pickupForm(),
				CartLines: []checkout.CartLine{tc.line},
			})
			if errors.As(err) == nil || errors.As(err).Code() != errors.CodeInvalidLineItem {
				t.Fatalf("expected invalid-line error, got %v", err)
			}
			if creator.calls != 0 {
				t.Fatal("network should not be reached")
			}
		})
	}
}

func TestSubmitProfileFailureIsNonFatal(t *testing.T) {
	creator := &stubSessionCreator{session: &payment.Session{URL: "https://pay.example.com/s/1"}}
	profiles := &stubProfileStore{err: fmt.Errorf("db down")}
	coord := newTestCoordinator(creator, newStubStore(), profiles)

	customerID := uuid.New()
	result, err := coord.Submit(context.Background(), Input{
		ShopperID:  "s",
		CustomerID: &customerID,
		Step:       checkout.StepReview,
		Form:       pickupForm(),
		CartLines:  rollACart(),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.RedirectURL == "" {
		t.Fatal("expected a redirect despite profile failure")
	}
	if profiles.upserts != 1 {
		t.Fatalf("upserts = %d, want 1", profiles.upserts)
	}
}

func TestSubmitAnonymousSkipsProfileAndPoints(t *testing.T) {
	creator := &stubSessionCreator{session: &payment.Session{URL: "https://pay.example.com/s/1"}}
	store := newStubStore()
	profiles := &stubProfileStore{}
	coord := newTestCoordinator(creator, store, profiles)

	if _, err := coord.Submit(context.Background(), Input{
		ShopperID: "anon-1",
		Step:      checkout.StepReview,
		Form:      pickupForm(),
		CartLines: rollACart(),
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if profiles.upserts != 0 {
		t.Fatal("anonymous checkout should not touch the profile store")
	}
	if len(store.points) != 0 {
		t.Fatal("anonymous checkout should not write pending points")
	}
	if creator.lastReq.PointsInfo != nil {
		t.Fatal("payload should omit pointsInfo for anonymous shoppers")
	}
}

func TestSubmitSnapshotFailureStillRedirects(t *testing.T) {
	creator := &stubSessionCreator{session: &payment.Session{URL: "https://pay.example.com/s/1"}}
	store := newStubStore()
	store.saveErr = fmt.Errorf("redis down")
	coord := newTestCoordinator(creator, store, &stubProfileStore{})

	result, err := coord.Submit(context.Background(), Input{
		ShopperID: "s",
		Step:      checkout.StepReview,
		Form:      pickupForm(),
		CartLines: rollACart(),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.RedirectURL == "" {
		t.Fatal("payment session exists, redirect must be reported")
	}
}

func TestSubmitPropagatesPaymentFailure(t *testing.T) {
	creator := &stubSessionCreator{err: errors.New(errors.CodeSubmission, "payment service rejected the order (status 502)")}
	coord := newTestCoordinator(creator, newStubStore(), &stubProfileStore{})

	_, err := coord.Submit(context.Background(), Input{
		ShopperID: "s",
		Step:      checkout.StepReview,
		Form:      pickupForm(),
		CartLines: rollACart(),
	})
	if errors.As(err) == nil || errors.As(err).Code() != errors.CodeSubmission {
		t.Fatalf("expected submission error, got %v", err)
	}
}
