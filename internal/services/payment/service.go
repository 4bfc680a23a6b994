// Package payment derives member payment status and records rent payments.
package payment

import (
	"context"
	"fmt"
	"time"

	"roost/internal/errors"
	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/repositories/cache"

	"github.com/google/uuid"
)

type RecordPaymentInput struct {
	MemberID  uint    `json:"member_id"`
	Amount    float64 `json:"amount"` // 0 means the member's monthly rent
	Method    string  `json:"method"`
	CardToken string  `json:"card_token"`
}

type Service interface {
	// RecordPayment stores a rent payment, advances the member's due date by
	// one billing month and refreshes the cached payment status.
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error)
	// History lists a member's payments in insertion order.
	History(ctx context.Context, memberID uint) ([]models.Payment, error)
	// StatusOf re-derives the member's payment status without mutating it.
	StatusOf(ctx context.Context, memberID uint) (models.PaymentStatus, error)
}

type service struct {
	store   repositories.Store
	gateway Gateway
	cache   *cache.CacheService
	now     func() time.Time
}

// NewService creates a payment service. A nil gateway falls back to the
// accept-everything noop gateway; cacheService may be nil.
func NewService(store repositories.Store, gateway Gateway, cacheService *cache.CacheService) Service {
	if store == nil {
		panic("store is required")
	}
	if gateway == nil {
		gateway = NewNoopGateway()
	}
	return &service{store: store, gateway: gateway, cache: cacheService, now: time.Now}
}

func (s *service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.Payment, error) {
	member, err := s.store.Members().GetByID(input.MemberID)
	if err != nil {
		return nil, err
	}
	if !member.Assigned() {
		return nil, errors.ErrNotAssigned.WithDetail("unassigned members carry no payment obligation")
	}

	amount := input.Amount
	if amount == 0 {
		amount = member.MonthlyRent
	}
	if amount <= 0 {
		return nil, errors.ErrValidation.WithDetail("payment amount must be positive")
	}

	method := input.Method
	if method == "" {
		method = models.PaymentMethodCash
	}
	var gatewayRef string
	if method == models.PaymentMethodCard {
		if input.CardToken == "" {
			return nil, errors.ErrValidation.WithDetail("card token is required for card payments")
		}
		// The charge happens before the local transaction; a gateway decline
		// leaves all records untouched.
		gatewayRef, err = s.gateway.Charge(ctx, amount, input.CardToken, fmt.Sprintf("rent for member %d", member.ID))
		if err != nil {
			return nil, err
		}
	} else if method != models.PaymentMethodCash {
		return nil, errors.ErrValidation.WithDetail("unknown payment method %q", method)
	}

	now := s.now()
	nextDue := now.AddDate(0, 1, 0)
	if member.NextPaymentDate != nil && member.NextPaymentDate.After(now) {
		nextDue = member.NextPaymentDate.AddDate(0, 1, 0)
	}

	payment := &models.Payment{
		MemberID:      member.ID,
		Amount:        amount,
		Method:        method,
		ReceiptNumber: uuid.NewString(),
		GatewayRef:    gatewayRef,
		PaidAt:        now,
		CoversUntil:   nextDue,
	}
	if member.PropertyID != nil {
		payment.PropertyID = *member.PropertyID
	}

	err = s.store.InTransaction(func(tx repositories.Store) error {
		if err := tx.Payments().Create(payment); err != nil {
			return err
		}
		member.LastPaidDate = &now
		member.NextPaymentDate = &nextDue
		member.PaymentStatus = Resolve(member.LastPaidDate, member.NextPaymentDate, now)
		return tx.Members().Update(member)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return payment, nil
}

func (s *service) History(ctx context.Context, memberID uint) ([]models.Payment, error) {
	if _, err := s.store.Members().GetByID(memberID); err != nil {
		return nil, err
	}
	return s.store.Payments().ListByMember(memberID)
}

func (s *service) StatusOf(ctx context.Context, memberID uint) (models.PaymentStatus, error) {
	member, err := s.store.Members().GetByID(memberID)
	if err != nil {
		return "", err
	}
	return Resolve(member.LastPaidDate, member.NextPaymentDate, s.now()), nil
}
