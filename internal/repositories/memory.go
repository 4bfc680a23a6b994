package repositories

import (
	"sync"
	"time"

	"roost/internal/errors"
	"roost/internal/models"

	"github.com/lib/pq"
)

// MemoryStore is a Store backed by process memory. It powers the test suite
// and the demo seed mode, and defines the reference semantics the GORM store
// must match: insertion-ordered lists, copies on read and write (callers
// never alias stored entities), and snapshot-rollback transactions so a
// failed operation leaves nothing half-applied.
type MemoryStore struct {
	mu   sync.Mutex
	inTx bool
	data *memData
}

type memData struct {
	users      *table[*models.User]
	properties *table[*models.Property]
	rooms      *table[*models.Room]
	members    *table[*models.Member]
	kyc        *table[*models.KYCVerification]
	payments   *table[*models.Payment]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: &memData{
			users:      newTable(cloneUser),
			properties: newTable(cloneProperty),
			rooms:      newTable(cloneRoom),
			members:    newTable(cloneMember),
			kyc:        newTable(cloneKYC),
			payments:   newTable(clonePayment),
		},
	}
}

func (s *MemoryStore) Users() UserRepository          { return &memUsers{s} }
func (s *MemoryStore) Properties() PropertyRepository { return &memProperties{s} }
func (s *MemoryStore) Rooms() RoomRepository          { return &memRooms{s} }
func (s *MemoryStore) Members() MemberRepository      { return &memMembers{s} }
func (s *MemoryStore) KYC() KYCRepository             { return &memKYC{s} }
func (s *MemoryStore) Payments() PaymentRepository    { return &memPayments{s} }

// InTransaction snapshots the dataset, runs fn against it and restores the
// snapshot if fn fails.
func (s *MemoryStore) InTransaction(fn func(Store) error) error {
	unlock := s.lock()
	defer unlock()

	snapshot := s.data.snapshot()
	if err := fn(&MemoryStore{inTx: true, data: s.data}); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (d *memData) snapshot() *memData {
	return &memData{
		users:      d.users.snapshot(),
		properties: d.properties.snapshot(),
		rooms:      d.rooms.snapshot(),
		members:    d.members.snapshot(),
		kyc:        d.kyc.snapshot(),
		payments:   d.payments.snapshot(),
	}
}

// table holds one entity collection with stable insertion order.
type table[T any] struct {
	rows  map[uint]T
	order []uint
	next  uint
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[uint]T), clone: clone}
}

func (t *table[T]) nextID() uint {
	t.next++
	return t.next
}

func (t *table[T]) put(id uint, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(v)
}

func (t *table[T]) get(id uint) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(v), true
}

func (t *table[T]) remove(id uint) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

func (t *table[T]) snapshot() *table[T] {
	rows := make(map[uint]T, len(t.rows))
	for id, v := range t.rows {
		rows[id] = t.clone(v)
	}
	order := make([]uint, len(t.order))
	copy(order, t.order)
	return &table[T]{rows: rows, order: order, next: t.next, clone: t.clone}
}

func cloneStrings(src pq.StringArray) pq.StringArray {
	if src == nil {
		return nil
	}
	out := make(pq.StringArray, len(src))
	copy(out, src)
	return out
}

func cloneTimePtr(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	t := *src
	return &t
}

func cloneUintPtr(src *uint) *uint {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

func cloneUser(u *models.User) *models.User {
	out := *u
	return &out
}

func cloneProperty(p *models.Property) *models.Property {
	out := *p
	out.Amenities = cloneStrings(p.Amenities)
	return &out
}

func cloneRoom(r *models.Room) *models.Room {
	out := *r
	return &out
}

func cloneMember(m *models.Member) *models.Member {
	out := *m
	out.PropertyID = cloneUintPtr(m.PropertyID)
	out.RoomID = cloneUintPtr(m.RoomID)
	out.LastPaidDate = cloneTimePtr(m.LastPaidDate)
	out.NextPaymentDate = cloneTimePtr(m.NextPaymentDate)
	out.Documents = cloneStrings(m.Documents)
	return &out
}

func cloneKYC(k *models.KYCVerification) *models.KYCVerification {
	out := *k
	out.Documents = cloneStrings(k.Documents)
	return &out
}

func clonePayment(p *models.Payment) *models.Payment {
	out := *p
	return &out
}

type memUsers struct{ s *MemoryStore }

func (r *memUsers) Create(user *models.User) error {
	unlock := r.s.lock()
	defer unlock()
	user.ID = r.s.data.users.nextID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.data.users.put(user.ID, user)
	return nil
}

func (r *memUsers) GetByID(id uint) (*models.User, error) {
	unlock := r.s.lock()
	defer unlock()
	user, ok := r.s.data.users.get(id)
	if !ok {
		return nil, errors.ErrNotFound.WithDetail("user")
	}
	return user, nil
}

func (r *memUsers) GetByPhone(phone string) (*models.User, error) {
	unlock := r.s.lock()
	defer unlock()
	for _, user := range r.s.data.users.list() {
		if user.Phone == phone {
			return user, nil
		}
	}
	return nil, errors.ErrNotFound.WithDetail("user")
}

func (r *memUsers) Update(user *models.User) error {
	unlock := r.s.lock()
	defer unlock()
	if _, ok := r.s.data.users.get(user.ID); !ok {
		return errors.ErrNotFound.WithDetail("user")
	}
	user.UpdatedAt = time.Now()
	r.s.data.users.put(user.ID, user)
	return nil
}

func (r *memUsers) List() ([]models.User, error) {
	unlock := r.s.lock()
	defer unlock()
	rows := r.s.data.users.list()
	out := make([]models.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

type memProperties struct{ s *MemoryStore }

func (r *memProperties) Create(property *models.Property) error {
	unlock := r.s.lock()
	defer unlock()
	property.ID = r.s.data.properties.nextID()
	property.CreatedAt = time.Now()
	property.UpdatedAt = property.CreatedAt
	r.s.data.properties.put(property.ID, property)
	return nil
}

func (r *memProperties) GetByID(id uint) (*models.Property, error) {
	unlock := r.s.lock()
	defer unlock()
	property, ok := r.s.data.properties.get(id)
	if !ok {
		return nil, errors.ErrNotFound.WithDetail("property")
	}
	return property, nil
}

func (r *memProperties) Update(property *models.Property) error {
	unlock := r.s.lock()
	defer unlock()
	if _, ok := r.s.data.properties.get(property.ID); !ok {
		return errors.ErrNotFound.WithDetail("property")
	}
	property.UpdatedAt = time.Now()
	r.s.data.properties.put(property.ID, property)
	return nil
}

func (r *memProperties) List() ([]models.Property, error) {
	unlock := r.s.lock()
	defer unlock()
	rows := r.s.data.properties.list()
	out := make([]models.Property, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (r *memProperties) ListByMerchant(merchantID uint) ([]models.Property, error) {
	all, _ := r.List()
	out := all[:0:0]
	for _, property := range all {
		if property.MerchantID == merchantID {
			out = append(out, property)
		}
	}
	return out, nil
}

type memRooms struct{ s *MemoryStore }

func (r *memRooms) Create(room *models.Room) error {
	unlock := r.s.lock()
	defer unlock()
	room.ID = r.s.data.rooms.nextID()
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	r.s.data.rooms.put(room.ID, room)
	return nil
}

func (r *memRooms) GetByID(id uint) (*models.Room, error) {
	unlock := r.s.lock()
	defer unlock()
	room, ok := r.s.data.rooms.get(id)
	if !ok {
		return nil, errors.ErrNotFound.WithDetail("room")
	}
	return room, nil
}

func (r *memRooms) Update(room *models.Room) error {
	unlock := r.s.lock()
	defer unlock()
	if _, ok := r.s.data.rooms.get(room.ID); !ok {
		return errors.ErrNotFound.WithDetail("room")
	}
	room.UpdatedAt = time.Now()
	r.s.data.rooms.put(room.ID, room)
	return nil
}

func (r *memRooms) Delete(id uint) error {
	unlock := r.s.lock()
	defer unlock()
	if !r.s.data.rooms.remove(id) {
		return errors.ErrNotFound.WithDetail("room")
	}
	return nil
}

func (r *memRooms) ListByProperty(propertyID uint) ([]models.Room, error) {
	unlock := r.s.lock()
	defer unlock()
	rows := r.s.data.rooms.list()
	out := make([]models.Room, 0, len(rows))
	for _, row := range rows {
		if row.PropertyID == propertyID {
			out = append(out, *row)
		}
	}
	return out, nil
}

type memMembers struct{ s *MemoryStore }

func (r *memMembers) Create(member *models.Member) error {
	unlock := r.s.lock()
	defer unlock()
	member.ID = r.s.data.members.nextID()
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	r.s.data.members.put(member.ID, member)
	return nil
}

func (r *memMembers) GetByID(id uint) (*models.Member, error) {
	unlock := r.s.lock()
	defer unlock()
	member, ok := r.s.data.members.get(id)
	if !ok {
		return nil, errors.ErrNotFound.WithDetail("member")
	}
	return member, nil
}

func (r *memMembers) Update(member *models.Member) error {
	unlock := r.s.lock()
	defer unlock()
	if _, ok := r.s.data.members.get(member.ID); !ok {
		return errors.ErrNotFound.WithDetail("member")
	}
	member.UpdatedAt = time.Now()
	r.s.data.members.put(member.ID, member)
	return nil
}

func (r *memMembers) List() ([]models.Member, error) {
	unlock := r.s.lock()
	defer unlock()
	rows := r.s.data.members.list()
	out := make([]models.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (r *memMembers) ListByMerchant(merchantID uint) ([]models.Member, error) {
	all, _ := r.List()
	out := all[:0:0]
	for _, member := range all {
		if member.MerchantID == merchantID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (r *memMembers) ListByRoom(roomID uint) ([]models.Member, error) {
	all, _ := r.List()
	out := all[:0:0]
	for _, member := range all {
		if member.RoomID != nil && *member.RoomID == roomID {
			out = append(out, member)
		}
	}
	return out, nil
}

type memKYC struct{ s *MemoryStore }

func (r *memKYC) Create(kyc *models.KYCVerification) error {
	unlock := r.s.lock()
	defer unlock()
	kyc.ID = r.s.data.kyc.nextID()
	kyc.CreatedAt = time.Now()
	kyc.UpdatedAt = kyc.CreatedAt
	r.s.data.kyc.put(kyc.ID, kyc)
	return nil
}

func (r *memKYC) GetByID(id uint) (*models.KYCVerification, error) {
	unlock := r.s.lock()
	defer unlock()
	kyc, ok := r.s.data.kyc.get(id)
	if !ok {
		return nil, errors.ErrNotFound.WithDetail("kyc record")
	}
	return kyc, nil
}

func (r *memKYC) Update(kyc *models.KYCVerification) error {
	unlock := r.s.lock()
	defer unlock()
	if _, ok := r.s.data.kyc.get(kyc.ID); !ok {
		return errors.ErrNotFound.WithDetail("kyc record")
	}
	kyc.UpdatedAt = time.Now()
	r.s.data.kyc.put(kyc.ID, kyc)
	return nil
}

func (r *memKYC) LatestByMerchant(merchantID uint) (*models.KYCVerification, error) {
	unlock := r.s.lock()
	defer unlock()
	rows := r.s.data.kyc.list()
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].MerchantID == merchantID {
			return rows[i], nil
		}
	}
	return nil, errors.ErrNotFound.WithDetail("kyc record")
}

func (r *memKYC) List() ([]models.KYCVerification, error) {
	unlock := r.s.lock()
	defer unlock()
	rows := r.s.data.kyc.list()
	out := make([]models.KYCVerification, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

type memPayments struct{ s *MemoryStore }

func (r *memPayments) Create(payment *models.Payment) error {
	unlock := r.s.lock()
	defer unlock()
	payment.ID = r.s.data.payments.nextID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	r.s.data.payments.put(payment.ID, payment)
	return nil
}

func (r *memPayments) ListByMember(memberID uint) ([]models.Payment, error) {
	unlock := r.s.lock()
	defer unlock()
	rows := r.s.data.payments.list()
	out := make([]models.Payment, 0, len(rows))
	for _, row := range rows {
		if row.MemberID == memberID {
			out = append(out, *row)
		}
	}
	return out, nil
}
