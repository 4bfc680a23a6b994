// Package occupancy owns the bed-capacity ledger: room assignment, the
// merchant's property/room/member roster, and the derived property
// aggregates. Every mutation runs in a store transaction so a failed
// precondition leaves no partial state behind.
package occupancy

import (
	"context"
	"strings"
	"time"

	"roost/internal/errors"
	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/repositories/cache"
	"roost/internal/services/payment"

	"github.com/lib/pq"
)

type CreatePropertyInput struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Address   string   `json:"address"`
	Type      string   `json:"type"`
	Amenities []string `json:"amenities"`
}

type CreateRoomInput struct {
	PropertyID uint    `json:"property_id"`
	RoomNumber string  `json:"room_number"`
	Floor      int     `json:"floor"`
	Type       string  `json:"type"`
	Rent       float64 `json:"rent"`
}

type CreateMemberInput struct {
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	GuardianName     string  `json:"guardian_name"`
	GuardianPhone    string  `json:"guardian_phone"`
	GuardianRelation string  `json:"guardian_relation"`
	Deposit          float64 `json:"deposit"`
	// RoomID pre-assigns the member at creation time; nil creates an
	// unassigned roster entry.
	RoomID      *uint    `json:"room_id"`
	MonthlyRent float64  `json:"monthly_rent"` // 0 takes the room's rent on assignment
	Documents   []string `json:"documents"`
}

type Service interface {
	CreateProperty(ctx context.Context, merchantID uint, input CreatePropertyInput) (*models.Property, error)
	HideProperty(ctx context.Context, merchantID, propertyID uint, hidden bool) (*models.Property, error)

	CreateRoom(ctx context.Context, merchantID uint, input CreateRoomInput) (*models.Room, error)
	DeleteRoom(ctx context.Context, merchantID, roomID uint) error

	CreateMember(ctx context.Context, merchantID uint, input CreateMemberInput) (*models.Member, error)
	AssignMember(ctx context.Context, memberID, roomID uint) (*models.Member, error)
	UnassignMember(ctx context.Context, memberID uint) (*models.Member, error)
	ReassignMember(ctx context.Context, memberID, roomID uint) (*models.Member, error)
	DeactivateMember(ctx context.Context, memberID uint) error

	// Bookings is the derived member-room-property projection for every
	// assigned member of the merchant; it is computed, never stored.
	Bookings(ctx context.Context, merchantID uint) ([]models.Booking, error)
}

type service struct {
	store repositories.Store
	cache *cache.CacheService
	now   func() time.Time
}

// NewService creates the occupancy service. cacheService may be nil; cached
// dashboard metrics are then left to expire on their own.
func NewService(store repositories.Store, cacheService *cache.CacheService) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, cache: cacheService, now: time.Now}
}

func (s *service) CreateProperty(ctx context.Context, merchantID uint, input CreatePropertyInput) (*models.Property, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.ErrValidation.WithDetail("property name is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return nil, errors.ErrValidation.WithDetail("location is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, errors.ErrValidation.WithDetail("address is required")
	}
	propertyType := input.Type
	if propertyType == "" {
		propertyType = models.PropertyTypeMixed
	}
	switch propertyType {
	case models.PropertyTypeBoys, models.PropertyTypeGirls, models.PropertyTypeMixed:
	default:
		return nil, errors.ErrValidation.WithDetail("unknown property type %q", propertyType)
	}

	property := &models.Property{
		MerchantID: merchantID,
		Name:       input.Name,
		Location:   input.Location,
		Address:    input.Address,
		Type:       propertyType,
		Amenities:  pq.StringArray(input.Amenities),
		Status:     models.StatusPending,
	}
	if err := s.store.Properties().Create(property); err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return property, nil
}

// HideProperty toggles visibility of an approved property. Properties are
// never deleted once approved.
func (s *service) HideProperty(ctx context.Context, merchantID, propertyID uint, hidden bool) (*models.Property, error) {
	property, err := s.ownedProperty(merchantID, propertyID)
	if err != nil {
		return nil, err
	}
	if property.Status != models.StatusApproved {
		return nil, errors.ErrInvalidTransition.WithDetail("only approved properties can be hidden")
	}
	property.Hidden = hidden
	if err := s.store.Properties().Update(property); err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return property, nil
}

func (s *service) CreateRoom(ctx context.Context, merchantID uint, input CreateRoomInput) (*models.Room, error) {
	if strings.TrimSpace(input.RoomNumber) == "" {
		return nil, errors.ErrValidation.WithDetail("room number is required")
	}
	if input.Rent <= 0 {
		return nil, errors.ErrValidation.WithDetail("rent must be positive")
	}
	beds := models.BedsForRoomType(input.Type)
	if beds == 0 {
		return nil, errors.ErrValidation.WithDetail("unknown room type %q", input.Type)
	}
	if _, err := s.ownedProperty(merchantID, input.PropertyID); err != nil {
		return nil, err
	}

	floor := input.Floor
	if floor == 0 {
		floor = 1
	}
	room := &models.Room{
		PropertyID: input.PropertyID,
		RoomNumber: input.RoomNumber,
		Floor:      floor,
		Type:       input.Type,
		Beds:       beds,
		Occupied:   0,
		Rent:       input.Rent,
	}
	err := s.store.InTransaction(func(tx repositories.Store) error {
		if err := tx.Rooms().Create(room); err != nil {
			return err
		}
		return recomputeProperty(tx, input.PropertyID)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return room, nil
}

// DeleteRoom removes a room. Its members stay on the roster as unassigned
// entries; only the room record and its capacity disappear.
func (s *service) DeleteRoom(ctx context.Context, merchantID, roomID uint) error {
	room, err := s.store.Rooms().GetByID(roomID)
	if err != nil {
		return err
	}
	if _, err := s.ownedProperty(merchantID, room.PropertyID); err != nil {
		return err
	}

	err = s.store.InTransaction(func(tx repositories.Store) error {
		members, err := tx.Members().ListByRoom(roomID)
		if err != nil {
			return err
		}
		for i := range members {
			member := members[i]
			releaseMember(&member)
			if err := tx.Members().Update(&member); err != nil {
				return err
			}
		}
		if err := tx.Rooms().Delete(roomID); err != nil {
			return err
		}
		return recomputeProperty(tx, room.PropertyID)
	})
	if err != nil {
		return err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return nil
}

func (s *service) CreateMember(ctx context.Context, merchantID uint, input CreateMemberInput) (*models.Member, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.ErrValidation.WithDetail("member name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, errors.ErrValidation.WithDetail("member phone is required")
	}

	member := &models.Member{
		MerchantID:       merchantID,
		Name:             input.Name,
		Phone:            input.Phone,
		Email:            input.Email,
		GuardianName:     input.GuardianName,
		GuardianPhone:    input.GuardianPhone,
		GuardianRelation: input.GuardianRelation,
		MonthlyRent:      input.MonthlyRent,
		Deposit:          input.Deposit,
		JoiningDate:      s.now(),
		PaymentStatus:    models.PaymentNotApplicable,
		Documents:        pq.StringArray(input.Documents),
		Active:           true,
	}

	err := s.store.InTransaction(func(tx repositories.Store) error {
		if err := tx.Members().Create(member); err != nil {
			return err
		}
		if input.RoomID == nil {
			return nil
		}
		return s.assignInTx(tx, member, *input.RoomID, input.MonthlyRent)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return member, nil
}

// AssignMember consumes one bed slot for an unassigned member. Fails with
// RoomFull when capacity is exhausted and AlreadyAssigned when the member
// holds a room (callers unassign or reassign instead).
func (s *service) AssignMember(ctx context.Context, memberID, roomID uint) (*models.Member, error) {
	member, err := s.store.Members().GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if !member.Active {
		return nil, errors.ErrValidation.WithDetail("member is deactivated")
	}
	if member.Assigned() {
		return nil, errors.ErrAlreadyAssigned
	}
	err = s.store.InTransaction(func(tx repositories.Store) error {
		return s.assignInTx(tx, member, roomID, 0)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return member, nil
}

// UnassignMember releases the member's bed slot and clears its payment
// obligation.
func (s *service) UnassignMember(ctx context.Context, memberID uint) (*models.Member, error) {
	member, err := s.store.Members().GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if !member.Assigned() {
		return nil, errors.ErrNotAssigned
	}
	err = s.store.InTransaction(func(tx repositories.Store) error {
		return unassignInTx(tx, member)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return member, nil
}

// ReassignMember releases the old room's slot and consumes one in the new
// room as a single atomic step.
func (s *service) ReassignMember(ctx context.Context, memberID, roomID uint) (*models.Member, error) {
	member, err := s.store.Members().GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if !member.Assigned() {
		return nil, errors.ErrNotAssigned
	}
	if *member.RoomID == roomID {
		return member, nil
	}
	err = s.store.InTransaction(func(tx repositories.Store) error {
		if err := unassignInTx(tx, member); err != nil {
			return err
		}
		return s.assignInTx(tx, member, roomID, 0)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return member, nil
}

// DeactivateMember takes a member off the roster, releasing its room slot
// first when assigned.
func (s *service) DeactivateMember(ctx context.Context, memberID uint) error {
	member, err := s.store.Members().GetByID(memberID)
	if err != nil {
		return err
	}
	err = s.store.InTransaction(func(tx repositories.Store) error {
		if member.Assigned() {
			if err := unassignInTx(tx, member); err != nil {
				return err
			}
		}
		member.Active = false
		return tx.Members().Update(member)
	})
	if err != nil {
		return err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return nil
}

func (s *service) Bookings(ctx context.Context, merchantID uint) ([]models.Booking, error) {
	var members []models.Member
	var err error
	if merchantID == 0 {
		members, err = s.store.Members().List()
	} else {
		members, err = s.store.Members().ListByMerchant(merchantID)
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	bookings := make([]models.Booking, 0, len(members))
	for _, member := range members {
		if !member.Assigned() || !member.Active {
			continue
		}
		room, err := s.store.Rooms().GetByID(*member.RoomID)
		if err != nil {
			// Stale reference after a concurrent room deletion; skip rather
			// than fail the whole view.
			continue
		}
		property, err := s.store.Properties().GetByID(room.PropertyID)
		if err != nil {
			continue
		}
		bookings = append(bookings, models.Booking{
			Member:   member,
			Room:     *room,
			Property: *property,
			Status:   payment.Resolve(member.LastPaidDate, member.NextPaymentDate, now),
		})
	}
	return bookings, nil
}

// assignInTx performs the bed-slot consumption against tx. The member's rent
// defaults to the room's per-bed rent unless overridden, and the payment
// cycle starts Pending with the first due date one month out.
func (s *service) assignInTx(tx repositories.Store, member *models.Member, roomID uint, rentOverride float64) error {
	room, err := tx.Rooms().GetByID(roomID)
	if err != nil {
		return err
	}
	if !room.HasVacancy() {
		return errors.ErrRoomFull.WithDetail("room %s has %d/%d beds occupied", room.RoomNumber, room.Occupied, room.Beds)
	}

	room.Occupied++
	if err := tx.Rooms().Update(room); err != nil {
		return err
	}

	member.RoomID = &room.ID
	member.PropertyID = &room.PropertyID
	if rentOverride > 0 {
		member.MonthlyRent = rentOverride
	} else if member.MonthlyRent == 0 {
		member.MonthlyRent = room.Rent
	}
	nextDue := s.now().AddDate(0, 1, 0)
	member.NextPaymentDate = &nextDue
	member.PaymentStatus = models.PaymentPending
	if err := tx.Members().Update(member); err != nil {
		return err
	}

	return recomputeProperty(tx, room.PropertyID)
}

// unassignInTx releases the member's slot against tx.
func unassignInTx(tx repositories.Store, member *models.Member) error {
	room, err := tx.Rooms().GetByID(*member.RoomID)
	if err != nil {
		return err
	}
	if room.Occupied > 0 {
		room.Occupied--
	}
	if err := tx.Rooms().Update(room); err != nil {
		return err
	}

	releaseMember(member)
	if err := tx.Members().Update(member); err != nil {
		return err
	}
	return recomputeProperty(tx, room.PropertyID)
}

// releaseMember clears the member's assignment and payment obligation. Both
// payment dates go with the room; a later assignment starts a fresh cycle as
// Pending, and full payment history stays in the payments table.
func releaseMember(member *models.Member) {
	member.RoomID = nil
	member.PropertyID = nil
	member.LastPaidDate = nil
	member.NextPaymentDate = nil
	member.PaymentStatus = models.PaymentNotApplicable
}

// recomputeProperty refolds the property aggregates from its current rooms.
// The fold is idempotent and the only writer of these fields.
func recomputeProperty(tx repositories.Store, propertyID uint) error {
	property, err := tx.Properties().GetByID(propertyID)
	if err != nil {
		return err
	}
	rooms, err := tx.Rooms().ListByProperty(propertyID)
	if err != nil {
		return err
	}

	property.TotalRooms = len(rooms)
	property.TotalBeds = 0
	property.OccupiedRooms = 0
	property.OccupiedBeds = 0
	property.MonthlyRevenue = 0
	property.MinPrice = 0
	property.MaxPrice = 0
	for _, room := range rooms {
		property.TotalBeds += room.Beds
		property.OccupiedBeds += room.Occupied
		property.MonthlyRevenue += room.Rent * float64(room.Occupied)
		if room.Occupied > 0 {
			property.OccupiedRooms++
		}
		if property.MinPrice == 0 || room.Rent < property.MinPrice {
			property.MinPrice = room.Rent
		}
		if room.Rent > property.MaxPrice {
			property.MaxPrice = room.Rent
		}
	}
	return tx.Properties().Update(property)
}

func (s *service) ownedProperty(merchantID, propertyID uint) (*models.Property, error) {
	property, err := s.store.Properties().GetByID(propertyID)
	if err != nil {
		return nil, err
	}
	// merchantID 0 is the admin view; merchants only see their own records.
	if merchantID != 0 && property.MerchantID != merchantID {
		return nil, errors.ErrNotFound.WithDetail("property")
	}
	return property, nil
}
