// Package seed loads the demo dataset. It goes through the services rather
// than raw inserts so every derived aggregate is produced by the same code
// paths production uses.
package seed

import (
	"context"
	"fmt"

	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/services/approval"
	"roost/internal/services/notification"
	"roost/internal/services/occupancy"
	"roost/internal/services/payment"
	"roost/internal/utils"
)

// Demo populates the store with an admin, a KYC-approved merchant, two
// properties (one approved with occupied rooms, one pending review) and a
// handful of members. Safe to call only on an empty store.
func Demo(store repositories.Store) error {
	ctx := context.Background()

	adminHash, err := utils.HashPassword("admin-demo-1234")
	if err != nil {
		return err
	}
	admin := &models.User{
		Name: "Admin User", Email: "admin@roost.local", Phone: "9000000001",
		Password: adminHash, Role: models.RoleAdmin, Status: "active", TokenVersion: 1,
	}
	if err := store.Users().Create(admin); err != nil {
		return err
	}

	merchantHash, err := utils.HashPassword("merchant-demo-1234")
	if err != nil {
		return err
	}
	merchant := &models.User{
		Name: "John Doe", Email: "john@cozyhostel.in", Phone: "8000000001",
		Password: merchantHash, Role: models.RoleMerchant, BusinessName: "Cozy Hostel",
		Status: "active", KYCStatus: models.StatusPending, TokenVersion: 1,
	}
	if err := store.Users().Create(merchant); err != nil {
		return err
	}

	occupancyService := occupancy.NewService(store, nil)
	approvalService := approval.NewService(store, notification.NewLogService(), nil)
	paymentService := payment.NewService(store, payment.NewNoopGateway(), nil)

	kyc, err := approvalService.SubmitKYC(ctx, merchant.ID, []string{"aadhar-front.jpg", "aadhar-back.jpg", "business-license.pdf"})
	if err != nil {
		return err
	}
	if _, err := approvalService.ApproveKYC(ctx, kyc.ID); err != nil {
		return err
	}

	approved, err := occupancyService.CreateProperty(ctx, merchant.ID, occupancy.CreatePropertyInput{
		Name:      "Cozy Hostel Koramangala",
		Location:  "Koramangala, Bangalore",
		Address:   "17 5th Block, Koramangala",
		Type:      models.PropertyTypeBoys,
		Amenities: []string{"WiFi", "Laundry", "Mess", "Power Backup"},
	})
	if err != nil {
		return err
	}
	if _, err := approvalService.ApproveProperty(ctx, approved.ID); err != nil {
		return err
	}

	double, err := occupancyService.CreateRoom(ctx, merchant.ID, occupancy.CreateRoomInput{
		PropertyID: approved.ID, RoomNumber: "101", Floor: 1, Type: models.RoomTypeDouble, Rent: 8000,
	})
	if err != nil {
		return err
	}
	if _, err := occupancyService.CreateRoom(ctx, merchant.ID, occupancy.CreateRoomInput{
		PropertyID: approved.ID, RoomNumber: "201", Floor: 2, Type: models.RoomTypeShared, Rent: 5500,
	}); err != nil {
		return err
	}

	residents := []occupancy.CreateMemberInput{
		{Name: "Rahul Sharma", Phone: "7000000001", GuardianName: "Suresh Sharma", GuardianPhone: "7000000011", GuardianRelation: "Father", Deposit: 16000, RoomID: &double.ID},
		{Name: "Amit Verma", Phone: "7000000002", Deposit: 16000, RoomID: &double.ID},
		{Name: "Priya Nair", Phone: "7000000003", Deposit: 11000}, // unassigned roster entry
	}
	var firstMember *models.Member
	for i, input := range residents {
		member, err := occupancyService.CreateMember(ctx, merchant.ID, input)
		if err != nil {
			return fmt.Errorf("seed member %d: %w", i+1, err)
		}
		if firstMember == nil {
			firstMember = member
		}
	}
	if _, err := paymentService.RecordPayment(ctx, payment.RecordPaymentInput{
		MemberID: firstMember.ID, Method: models.PaymentMethodCash,
	}); err != nil {
		return err
	}

	if _, err := occupancyService.CreateProperty(ctx, merchant.ID, occupancy.CreatePropertyInput{
		Name:      "Cozy Hostel HSR",
		Location:  "HSR Layout, Bangalore",
		Address:   "42 27th Main, HSR Layout",
		Type:      models.PropertyTypeMixed,
		Amenities: []string{"WiFi", "Parking"},
	}); err != nil {
		return err
	}
	return nil
}
