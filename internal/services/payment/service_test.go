package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "roost/internal/errors"
	"roost/internal/models"
	"roost/internal/repositories"
)

// declineGateway fails every charge so tests can observe rollback behavior.
type declineGateway struct{}

func (declineGateway) Charge(ctx context.Context, amount float64, cardToken, description string) (string, error) {
	return "", apperrors.ErrValidation.WithDetail("card declined")
}

func newFixture(t *testing.T, gateway Gateway) (*service, repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	svc := NewService(store, gateway, nil).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc, store
}

func seedAssignedMember(t *testing.T, store repositories.Store, nextDue *time.Time) *models.Member {
	t.Helper()
	property := &models.Property{MerchantID: 1, Name: "Sunrise Hostel", Status: models.StatusApproved}
	require.NoError(t, store.Properties().Create(property))
	room := &models.Room{PropertyID: property.ID, RoomNumber: "101", Type: models.RoomTypeSingle, Beds: 1, Occupied: 1, Rent: 8000}
	require.NoError(t, store.Rooms().Create(room))
	member := &models.Member{
		MerchantID:      1,
		Name:            "Amit Verma",
		Phone:           "7000000001",
		PropertyID:      &property.ID,
		RoomID:          &room.ID,
		MonthlyRent:     8000,
		NextPaymentDate: nextDue,
		PaymentStatus:   models.PaymentPending,
		Active:          true,
	}
	require.NoError(t, store.Members().Create(member))
	return member
}

func TestRecordPayment_CashDefaultsToMonthlyRent(t *testing.T) {
	svc, store := newFixture(t, nil)
	due := svc.now().AddDate(0, 0, 10)
	member := seedAssignedMember(t, store, &due)

	got, err := svc.RecordPayment(context.Background(), RecordPaymentInput{MemberID: member.ID})
	require.NoError(t, err)
	assert.Equal(t, 8000.0, got.Amount)
	assert.Equal(t, models.PaymentMethodCash, got.Method)
	assert.NotEmpty(t, got.ReceiptNumber)
	assert.Empty(t, got.GatewayRef)

	// The due date advances one billing month past the existing due date and
	// the cached status flips to Paid.
	updated, err := store.Members().GetByID(member.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.NextPaymentDate)
	assert.Equal(t, due.AddDate(0, 1, 0), *updated.NextPaymentDate)
	require.NotNil(t, updated.LastPaidDate)
	assert.Equal(t, svc.now(), *updated.LastPaidDate)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
}

func TestRecordPayment_OverdueMemberStartsFreshCycle(t *testing.T) {
	svc, store := newFixture(t, nil)
	due := svc.now().AddDate(0, 0, -5)
	member := seedAssignedMember(t, store, &due)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{MemberID: member.ID})
	require.NoError(t, err)

	updated, err := store.Members().GetByID(member.ID)
	require.NoError(t, err)
	// A lapsed due date does not accumulate; the next cycle starts from now.
	assert.Equal(t, svc.now().AddDate(0, 1, 0), *updated.NextPaymentDate)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
}

func TestRecordPayment_UnassignedMember(t *testing.T) {
	svc, store := newFixture(t, nil)
	member := &models.Member{MerchantID: 1, Name: "Bina", Phone: "7000000002", Active: true, PaymentStatus: models.PaymentNotApplicable}
	require.NoError(t, store.Members().Create(member))

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{MemberID: member.ID})
	assert.ErrorIs(t, err, apperrors.ErrNotAssigned)
}

func TestRecordPayment_Validation(t *testing.T) {
	svc, store := newFixture(t, nil)
	due := svc.now().AddDate(0, 0, 10)
	member := seedAssignedMember(t, store, &due)

	tests := []struct {
		name  string
		input RecordPaymentInput
	}{
		{"negative amount", RecordPaymentInput{MemberID: member.ID, Amount: -100}},
		{"unknown method", RecordPaymentInput{MemberID: member.ID, Method: "upi"}},
		{"card without token", RecordPaymentInput{MemberID: member.ID, Method: models.PaymentMethodCard}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordPayment(context.Background(), tt.input)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestRecordPayment_GatewayDeclineLeavesStateUntouched(t *testing.T) {
	svc, store := newFixture(t, declineGateway{})
	due := svc.now().AddDate(0, 0, 10)
	member := seedAssignedMember(t, store, &due)

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		MemberID:  member.ID,
		Method:    models.PaymentMethodCard,
		CardToken: "tok_visa",
	})
	require.Error(t, err)

	payments, listErr := store.Payments().ListByMember(member.ID)
	require.NoError(t, listErr)
	assert.Empty(t, payments)

	updated, getErr := store.Members().GetByID(member.ID)
	require.NoError(t, getErr)
	assert.Nil(t, updated.LastPaidDate)
	assert.Equal(t, due, *updated.NextPaymentDate)
}

func TestHistory_InsertionOrder(t *testing.T) {
	svc, store := newFixture(t, nil)
	due := svc.now().AddDate(0, 0, 10)
	member := seedAssignedMember(t, store, &due)

	first, err := svc.RecordPayment(context.Background(), RecordPaymentInput{MemberID: member.ID})
	require.NoError(t, err)
	second, err := svc.RecordPayment(context.Background(), RecordPaymentInput{MemberID: member.ID, Amount: 500})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ReceiptNumber, history[0].ReceiptNumber)
	assert.Equal(t, second.ReceiptNumber, history[1].ReceiptNumber)
}

func TestHistory_UnknownMember(t *testing.T) {
	svc, _ := newFixture(t, nil)
	_, err := svc.History(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStatusOf_DerivesWithoutMutation(t *testing.T) {
	svc, store := newFixture(t, nil)
	due := svc.now().AddDate(0, 0, -1)
	member := seedAssignedMember(t, store, &due)

	status, err := svc.StatusOf(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOverdue, status)

	// The cached column is refreshed only by mutations.
	got, err := store.Members().GetByID(member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, got.PaymentStatus)
}
