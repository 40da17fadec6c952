package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/fjod/chess_academy/internal/checkout"
	"github.com/fjod/chess_academy/internal/domain"
	"github.com/fjod/chess_academy/internal/events"
	"github.com/fjod/chess_academy/internal/metrics"
	"github.com/fjod/chess_academy/internal/repository"
)

type CheckoutResult struct {
	Library      []domain.LibraryEntry  `json:"library"`
	Bookings     []domain.Booking       `json:"bookings"`
	Subscription domain.Subscription    `json:"subscription"`
	Skipped      []domain.CartLine      `json:"skipped,omitempty"`
	Summary      domain.PurchaseSummary `json:"summary"`
	Receipt      domain.Receipt         `json:"receipt"`
}

// Checkout charges the user for the cart and turns it into entitlements.
// Everything the purchase changes is written in a single SetMany, so a
// failure leaves the cart, library and bookings as they were.
func (s *Service) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	lines, err := s.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, checkout.ErrEmptyCart
	}
	library, err := s.loadLibrary(ctx, userID)
	if err != nil {
		return nil, err
	}
	sub, err := s.loadSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	bookingIDs, err := s.loadBookingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, err := s.processor.Process(checkout.Input{
		UserID:       userID,
		Lines:        lines,
		Library:      library,
		Subscription: sub,
	})
	if err != nil {
		return nil, err
	}
	for _, skipped := range res.Skipped {
		s.log.Warn("skipping already owned item at checkout",
			slog.String("user_id", userID),
			slog.String("item_id", skipped.ID.String()))
	}

	paymentID, err := s.payment.Charge(ctx, userID, res.Total)
	if err != nil {
		return nil, fmt.Errorf("payment: %w", err)
	}

	receipt := domain.Receipt{
		ID:          s.newID(),
		UserID:      userID,
		Items:       res.Charged,
		Total:       res.Total,
		Currency:    s.currency,
		PaymentID:   paymentID,
		Summary:     res.Summary,
		PurchasedAt: s.now().UTC(),
	}
	if receipt.Items == nil {
		receipt.Items = []domain.CartLine{}
	}

	records, err := s.checkoutEntries(userID, res, bookingIDs, receipt)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetMany(ctx, records); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}
	s.invalidateCache(userID)

	metrics.Checkouts.Inc()
	metrics.CheckoutRevenue.Add(float64(res.Total))
	s.log.Info("checkout completed",
		slog.String("user_id", userID),
		slog.String("receipt_id", receipt.ID),
		slog.String("payment_id", paymentID),
		slog.Int64("total", res.Total),
		slog.Int("items", len(res.Charged)))

	newBookings := res.NewBookings
	if newBookings == nil {
		newBookings = []domain.Booking{}
	}
	return &CheckoutResult{
		Library:      res.Library,
		Bookings:     newBookings,
		Subscription: res.Subscription,
		Skipped:      res.Skipped,
		Summary:      res.Summary,
		Receipt:      receipt,
	}, nil
}

func (s *Service) checkoutEntries(userID string, res *checkout.Result, bookingIDs []string, receipt domain.Receipt) ([]repository.Entry, error) {
	values := []keyValue{
		{libraryKey(userID), res.Library},
		{subscriptionKey(userID), res.Subscription},
		{cartKey(userID), []domain.CartLine{}},
		{purchaseKey(userID, receipt.ID), receipt},
	}

	for _, b := range res.NewBookings {
		values = append(values, keyValue{bookingKey(b.ID), b})
		bookingIDs = append(bookingIDs, b.ID)
	}
	if len(res.NewBookings) > 0 {
		values = append(values, keyValue{userBookingsKey(userID), bookingIDs})
	}

	eventID := s.newID()
	values = append(values, keyValue{events.OutboxKey(eventID), events.NewPurchaseEvent(eventID, receipt)})

	return entries(values)
}

func (s *Service) Library(ctx context.Context, userID string) ([]domain.LibraryEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.loadLibrary(ctx, userID)
}

// Purchases lists the user's receipts, oldest first.
func (s *Service) Purchases(ctx context.Context, userID string) ([]domain.Receipt, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	found, err := s.store.GetByPrefix(ctx, purchaseKey(userID, ""))
	if err != nil {
		return nil, err
	}
	receipts := make([]domain.Receipt, 0, len(found))
	for _, e := range found {
		var r domain.Receipt
		if err := unmarshalEntry(e, &r); err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].PurchasedAt.Before(receipts[j].PurchasedAt)
	})
	return receipts, nil
}
