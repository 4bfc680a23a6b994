package occupancy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "roost/internal/errors"
	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/repositories/cache"
)

const merchantID = uint(1)

func newFixture(t *testing.T) (*service, repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	svc := NewService(store, nil).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc, store
}

func seedProperty(t *testing.T, svc *service) *models.Property {
	t.Helper()
	property, err := svc.CreateProperty(context.Background(), merchantID, CreatePropertyInput{
		Name:     "Sunrise Hostel",
		Location: "Koramangala",
		Address:  "12 5th Cross",
		Type:     models.PropertyTypeBoys,
	})
	require.NoError(t, err)
	return property
}

func seedRoom(t *testing.T, svc *service, propertyID uint, number, roomType string, rent float64) *models.Room {
	t.Helper()
	room, err := svc.CreateRoom(context.Background(), merchantID, CreateRoomInput{
		PropertyID: propertyID,
		RoomNumber: number,
		Type:       roomType,
		Rent:       rent,
	})
	require.NoError(t, err)
	return room
}

func seedMember(t *testing.T, svc *service, name string) *models.Member {
	t.Helper()
	member, err := svc.CreateMember(context.Background(), merchantID, CreateMemberInput{
		Name:  name,
		Phone: "70000" + name[:1],
	})
	require.NoError(t, err)
	return member
}

func TestCreateProperty_Validation(t *testing.T) {
	svc, _ := newFixture(t)

	tests := []struct {
		name  string
		input CreatePropertyInput
	}{
		{"missing name", CreatePropertyInput{Location: "HSR", Address: "x"}},
		{"missing location", CreatePropertyInput{Name: "P", Address: "x"}},
		{"missing address", CreatePropertyInput{Name: "P", Location: "HSR"}},
		{"unknown type", CreatePropertyInput{Name: "P", Location: "HSR", Address: "x", Type: "Coed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProperty(context.Background(), merchantID, tt.input)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestCreateProperty_StartsPending(t *testing.T) {
	svc, _ := newFixture(t)
	property := seedProperty(t, svc)

	assert.Equal(t, models.StatusPending, property.Status)
	assert.Zero(t, property.TotalRooms)
	assert.Zero(t, property.TotalBeds)
}

func TestCreateRoom_BedCountFollowsType(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)

	tests := []struct {
		roomType string
		beds     int
	}{
		{models.RoomTypeSingle, 1},
		{models.RoomTypeDouble, 2},
		{models.RoomTypeShared, 4},
	}
	for _, tt := range tests {
		t.Run(tt.roomType, func(t *testing.T) {
			room := seedRoom(t, svc, property.ID, tt.roomType+"-room", tt.roomType, 6000)
			assert.Equal(t, tt.beds, room.Beds)
			assert.Zero(t, room.Occupied)
		})
	}

	got, err := store.Properties().GetByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalRooms)
	assert.Equal(t, 7, got.TotalBeds)
	assert.Zero(t, got.OccupiedBeds)
}

func TestCreateRoom_RejectsUnknownType(t *testing.T) {
	svc, _ := newFixture(t)
	property := seedProperty(t, svc)

	_, err := svc.CreateRoom(context.Background(), merchantID, CreateRoomInput{
		PropertyID: property.ID,
		RoomNumber: "101",
		Type:       "Dorm",
		Rent:       5000,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateRoom_OtherMerchantsPropertyIsNotFound(t *testing.T) {
	svc, _ := newFixture(t)
	property := seedProperty(t, svc)

	_, err := svc.CreateRoom(context.Background(), merchantID+1, CreateRoomInput{
		PropertyID: property.ID,
		RoomNumber: "101",
		Type:       models.RoomTypeSingle,
		Rent:       5000,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAssignMember_FillsRoomThenRejects(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeDouble, 8000)

	a := seedMember(t, svc, "Amit")
	b := seedMember(t, svc, "Bina")
	c := seedMember(t, svc, "Chetan")

	_, err := svc.AssignMember(context.Background(), a.ID, room.ID)
	require.NoError(t, err)
	_, err = svc.AssignMember(context.Background(), b.ID, room.ID)
	require.NoError(t, err)

	// Third assignment into a 2-bed room must fail and change nothing.
	_, err = svc.AssignMember(context.Background(), c.ID, room.ID)
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	gotRoom, err := store.Rooms().GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotRoom.Occupied)

	gotC, err := store.Members().GetByID(c.ID)
	require.NoError(t, err)
	assert.False(t, gotC.Assigned())
	assert.Equal(t, models.PaymentNotApplicable, gotC.PaymentStatus)

	gotProp, err := store.Properties().GetByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, gotProp.OccupiedBeds)
	assert.Equal(t, 1, gotProp.OccupiedRooms)
	assert.Equal(t, 16000.0, gotProp.MonthlyRevenue)
}

func TestAssignMember_AlreadyAssigned(t *testing.T) {
	svc, _ := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeDouble, 8000)
	other := seedRoom(t, svc, property.ID, "102", models.RoomTypeDouble, 8000)

	member := seedMember(t, svc, "Amit")
	_, err := svc.AssignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)

	_, err = svc.AssignMember(context.Background(), member.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)
}

func TestAssignMember_SetsRentAndPaymentCycle(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeSingle, 9500)

	member := seedMember(t, svc, "Amit")
	got, err := svc.AssignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)

	assert.Equal(t, 9500.0, got.MonthlyRent)
	assert.Equal(t, models.PaymentPending, got.PaymentStatus)
	require.NotNil(t, got.NextPaymentDate)
	assert.Equal(t, svc.now().AddDate(0, 1, 0), *got.NextPaymentDate)

	gotProp, err := store.Properties().GetByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, 9500.0, gotProp.MonthlyRevenue)
}

func TestUnassignMember_RoundTripRestoresAggregates(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeDouble, 8000)

	before, err := store.Properties().GetByID(property.ID)
	require.NoError(t, err)

	member := seedMember(t, svc, "Amit")
	_, err = svc.AssignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)

	got, err := svc.UnassignMember(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RoomID)
	assert.Nil(t, got.PropertyID)
	assert.Nil(t, got.NextPaymentDate)
	assert.Equal(t, models.PaymentNotApplicable, got.PaymentStatus)
	assert.True(t, got.Active)

	after, err := store.Properties().GetByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, before.OccupiedBeds, after.OccupiedBeds)
	assert.Equal(t, before.OccupiedRooms, after.OccupiedRooms)
	assert.Equal(t, before.MonthlyRevenue, after.MonthlyRevenue)

	gotRoom, err := store.Rooms().GetByID(room.ID)
	require.NoError(t, err)
	assert.Zero(t, gotRoom.Occupied)
}

func TestUnassignMember_ClearsPaymentDates(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeSingle, 6000)

	member := seedMember(t, svc, "Amit")
	_, err := svc.AssignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)

	// Simulate a recorded payment for the current cycle.
	assigned, err := store.Members().GetByID(member.ID)
	require.NoError(t, err)
	paid := svc.now()
	assigned.LastPaidDate = &paid
	require.NoError(t, store.Members().Update(assigned))

	got, err := svc.UnassignMember(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastPaidDate)
	assert.Nil(t, got.NextPaymentDate)

	// A fresh assignment starts a new Pending cycle; the old payment must
	// not carry over as Paid.
	reassigned, err := svc.AssignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)
	assert.Nil(t, reassigned.LastPaidDate)
	assert.Equal(t, models.PaymentPending, reassigned.PaymentStatus)
}

func TestUnassignMember_NotAssigned(t *testing.T) {
	svc, _ := newFixture(t)
	seedProperty(t, svc)
	member := seedMember(t, svc, "Amit")

	_, err := svc.UnassignMember(context.Background(), member.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotAssigned)
}

func TestReassignMember_MovesSlotAtomically(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	oldRoom := seedRoom(t, svc, property.ID, "101", models.RoomTypeSingle, 6000)
	newRoom := seedRoom(t, svc, property.ID, "201", models.RoomTypeShared, 4500)

	member := seedMember(t, svc, "Amit")
	_, err := svc.AssignMember(context.Background(), member.ID, oldRoom.ID)
	require.NoError(t, err)

	got, err := svc.ReassignMember(context.Background(), member.ID, newRoom.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RoomID)
	assert.Equal(t, newRoom.ID, *got.RoomID)

	gotOld, err := store.Rooms().GetByID(oldRoom.ID)
	require.NoError(t, err)
	assert.Zero(t, gotOld.Occupied)
	gotNew, err := store.Rooms().GetByID(newRoom.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotNew.Occupied)
}

func TestReassignMember_FullTargetRollsBack(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	oldRoom := seedRoom(t, svc, property.ID, "101", models.RoomTypeSingle, 6000)
	target := seedRoom(t, svc, property.ID, "102", models.RoomTypeSingle, 6000)

	occupant := seedMember(t, svc, "Bina")
	_, err := svc.AssignMember(context.Background(), occupant.ID, target.ID)
	require.NoError(t, err)

	member := seedMember(t, svc, "Amit")
	_, err = svc.AssignMember(context.Background(), member.ID, oldRoom.ID)
	require.NoError(t, err)

	_, err = svc.ReassignMember(context.Background(), member.ID, target.ID)
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	// The release half of the move must have been rolled back too.
	gotMember, err := store.Members().GetByID(member.ID)
	require.NoError(t, err)
	require.NotNil(t, gotMember.RoomID)
	assert.Equal(t, oldRoom.ID, *gotMember.RoomID)

	gotOld, err := store.Rooms().GetByID(oldRoom.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotOld.Occupied)
}

func TestReassignMember_SameRoomIsNoop(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeDouble, 8000)

	member := seedMember(t, svc, "Amit")
	_, err := svc.AssignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)

	_, err = svc.ReassignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)

	gotRoom, err := store.Rooms().GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotRoom.Occupied)
}

func TestDeactivateMember_ReleasesSlot(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeSingle, 6000)

	member := seedMember(t, svc, "Amit")
	_, err := svc.AssignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateMember(context.Background(), member.ID))

	got, err := store.Members().GetByID(member.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Nil(t, got.RoomID)

	gotRoom, err := store.Rooms().GetByID(room.ID)
	require.NoError(t, err)
	assert.Zero(t, gotRoom.Occupied)
}

func TestAssignMember_DeactivatedMemberIsRejected(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeSingle, 6000)

	member := seedMember(t, svc, "Amit")
	require.NoError(t, svc.DeactivateMember(context.Background(), member.ID))

	// A deactivated member must not consume a bed slot.
	_, err := svc.AssignMember(context.Background(), member.ID, room.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	gotRoom, err := store.Rooms().GetByID(room.ID)
	require.NoError(t, err)
	assert.Zero(t, gotRoom.Occupied)

	gotProp, err := store.Properties().GetByID(property.ID)
	require.NoError(t, err)
	assert.Zero(t, gotProp.OccupiedBeds)
}

func TestDeleteRoom_UnassignsMembersButKeepsThem(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeDouble, 8000)

	a := seedMember(t, svc, "Amit")
	b := seedMember(t, svc, "Bina")
	for _, m := range []*models.Member{a, b} {
		_, err := svc.AssignMember(context.Background(), m.ID, room.ID)
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteRoom(context.Background(), merchantID, room.ID))

	_, err := store.Rooms().GetByID(room.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	for _, id := range []uint{a.ID, b.ID} {
		got, err := store.Members().GetByID(id)
		require.NoError(t, err)
		assert.True(t, got.Active)
		assert.False(t, got.Assigned())
		assert.Equal(t, models.PaymentNotApplicable, got.PaymentStatus)
	}

	gotProp, err := store.Properties().GetByID(property.ID)
	require.NoError(t, err)
	assert.Zero(t, gotProp.TotalRooms)
	assert.Zero(t, gotProp.TotalBeds)
	assert.Zero(t, gotProp.OccupiedBeds)
	assert.Zero(t, gotProp.MonthlyRevenue)
}

func TestCreateMember_WithPreAssignment(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeDouble, 8000)

	member, err := svc.CreateMember(context.Background(), merchantID, CreateMemberInput{
		Name:        "Amit Verma",
		Phone:       "7000000001",
		RoomID:      &room.ID,
		MonthlyRent: 7000,
	})
	require.NoError(t, err)
	require.NotNil(t, member.RoomID)
	assert.Equal(t, room.ID, *member.RoomID)
	assert.Equal(t, 7000.0, member.MonthlyRent)

	gotRoom, err := store.Rooms().GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotRoom.Occupied)
}

func TestCreateMember_PreAssignmentToFullRoomCreatesNothing(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeSingle, 6000)

	occupant := seedMember(t, svc, "Bina")
	_, err := svc.AssignMember(context.Background(), occupant.ID, room.ID)
	require.NoError(t, err)

	_, err = svc.CreateMember(context.Background(), merchantID, CreateMemberInput{
		Name:   "Amit Verma",
		Phone:  "7000000001",
		RoomID: &room.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	// The roster entry from the failed create must not survive.
	members, err := store.Members().ListByMerchant(merchantID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, "Bina", members[0].Name)
}

func TestHideProperty_RequiresApproval(t *testing.T) {
	svc, store := newFixture(t)
	property := seedProperty(t, svc)

	_, err := svc.HideProperty(context.Background(), merchantID, property.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	property.Status = models.StatusApproved
	require.NoError(t, store.Properties().Update(property))

	got, err := svc.HideProperty(context.Background(), merchantID, property.ID, true)
	require.NoError(t, err)
	assert.True(t, got.Hidden)
}

func TestMutationsSucceedWithUnreachableCache(t *testing.T) {
	// Cache invalidation is best effort: a dead redis must never fail a
	// mutation.
	store := repositories.NewMemoryStore()
	deadCache := cache.NewCacheService(cache.NewRedisClient(&cache.RedisConfig{Host: "127.0.0.1", Port: "1"}), time.Minute)
	svc := NewService(store, deadCache).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	}

	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeSingle, 6000)
	member := seedMember(t, svc, "Amit")

	_, err := svc.AssignMember(context.Background(), member.ID, room.ID)
	require.NoError(t, err)
	_, err = svc.UnassignMember(context.Background(), member.ID)
	require.NoError(t, err)
}

func TestBookings_JoinsAssignedMembersOnly(t *testing.T) {
	svc, _ := newFixture(t)
	property := seedProperty(t, svc)
	room := seedRoom(t, svc, property.ID, "101", models.RoomTypeDouble, 8000)

	assigned := seedMember(t, svc, "Amit")
	seedMember(t, svc, "Bina") // stays unassigned
	_, err := svc.AssignMember(context.Background(), assigned.ID, room.ID)
	require.NoError(t, err)

	bookings, err := svc.Bookings(context.Background(), merchantID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Amit", bookings[0].Member.Name)
	assert.Equal(t, room.ID, bookings[0].Room.ID)
	assert.Equal(t, property.ID, bookings[0].Property.ID)
	assert.Equal(t, models.PaymentPending, bookings[0].Status)
}
