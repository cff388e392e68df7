// Package billing creates and collects invoices. It is the subject of the
// test-double lessons: its two dependencies, Gateway and Clock, are defined
// as small interfaces precisely so tests can stand in fakes, testify mocks,
// or generated gomock mocks for them.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Billing errors
var (
	ErrEmptyCustomer     = errors.New("customer cannot be empty")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrAlreadyPaid       = errors.New("invoice already paid")
)

// Invoice is a bill issued to a customer. Amounts are in cents.
type Invoice struct {
	ID          string
	Customer    string
	AmountCents int64
	IssuedAt    time.Time
	DueAt       time.Time
	Paid        bool
}

// Gateway charges customers and returns a payment reference.
type Gateway interface {
	Charge(ctx context.Context, customer string, amountCents int64) (string, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Service issues invoices and collects payment for them.
type Service struct {
	gateway Gateway
	clock   Clock
	dueIn   time.Duration
}

// NewService creates a Service. A nil clock falls back to SystemClock.
func NewService(gateway Gateway, clock Clock, dueIn time.Duration) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		gateway: gateway,
		clock:   clock,
		dueIn:   dueIn,
	}
}

// CreateInvoice issues a new unpaid invoice due dueIn from now.
func (s *Service) CreateInvoice(customer string, amountCents int64) (*Invoice, error) {
	if customer == "" {
		return nil, ErrEmptyCustomer
	}
	if amountCents <= 0 {
		return nil, ErrNonPositiveAmount
	}

	issuedAt := s.clock.Now().UTC()
	return &Invoice{
		ID:          uuid.NewString(),
		Customer:    customer,
		AmountCents: amountCents,
		IssuedAt:    issuedAt,
		DueAt:       issuedAt.Add(s.dueIn),
	}, nil
}

// Collect charges the invoice through the gateway and marks it paid. The
// returned string is the gateway's payment reference.
func (s *Service) Collect(ctx context.Context, inv *Invoice) (string, error) {
	if inv.Paid {
		return "", ErrAlreadyPaid
	}

	ref, err := s.gateway.Charge(ctx, inv.Customer, inv.AmountCents)
	if err != nil {
		return "", fmt.Errorf("charging invoice %s: %w", inv.ID, err)
	}

	inv.Paid = true
	return ref, nil
}

// IsOverdue reports whether the invoice is unpaid past its due time.
func (s *Service) IsOverdue(inv *Invoice) bool {
	return !inv.Paid && s.clock.Now().After(inv.DueAt)
}
