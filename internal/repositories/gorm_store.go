package repositories

import (
	"fmt"

	"roost/internal/errors"
	"roost/internal/models"

	"gorm.io/gorm"
)

// NewGormStore wraps a gorm connection in the Store interface. Transactions
// map onto database transactions, so a failed operation rolls back cleanly.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Users() UserRepository         { return &gormUsers{db: s.db} }
func (s *gormStore) Properties() PropertyRepository { return &gormProperties{db: s.db} }
func (s *gormStore) Rooms() RoomRepository         { return &gormRooms{db: s.db} }
func (s *gormStore) Members() MemberRepository     { return &gormMembers{db: s.db} }
func (s *gormStore) KYC() KYCRepository            { return &gormKYC{db: s.db} }
func (s *gormStore) Payments() PaymentRepository   { return &gormPayments{db: s.db} }

func (s *gormStore) InTransaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error, what string) error {
	if err == gorm.ErrRecordNotFound {
		return errors.ErrNotFound.WithDetail("%s", what)
	}
	return fmt.Errorf("failed to access %s: %w", what, err)
}

type gormUsers struct{ db *gorm.DB }

func (r *gormUsers) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gormUsers) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *gormUsers) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *gormUsers) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *gormUsers) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

type gormProperties struct{ db *gorm.DB }

func (r *gormProperties) Create(property *models.Property) error {
	if err := r.db.Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *gormProperties) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := r.db.First(&property, id).Error; err != nil {
		return nil, translate(err, "property")
	}
	return &property, nil
}

func (r *gormProperties) Update(property *models.Property) error {
	if err := r.db.Save(property).Error; err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

func (r *gormProperties) List() ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.Order("id").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (r *gormProperties) ListByMerchant(merchantID uint) ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.Where("merchant_id = ?", merchantID).Order("id").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

type gormRooms struct{ db *gorm.DB }

func (r *gormRooms) Create(room *models.Room) error {
	if err := r.db.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (r *gormRooms) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, id).Error; err != nil {
		return nil, translate(err, "room")
	}
	return &room, nil
}

func (r *gormRooms) Update(room *models.Room) error {
	if err := r.db.Save(room).Error; err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	return nil
}

func (r *gormRooms) Delete(id uint) error {
	result := r.db.Delete(&models.Room{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithDetail("room")
	}
	return nil
}

func (r *gormRooms) ListByProperty(propertyID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.Where("property_id = ?", propertyID).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

type gormMembers struct{ db *gorm.DB }

func (r *gormMembers) Create(member *models.Member) error {
	if err := r.db.Create(member).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *gormMembers) GetByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, translate(err, "member")
	}
	return &member, nil
}

func (r *gormMembers) Update(member *models.Member) error {
	if err := r.db.Save(member).Error; err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

func (r *gormMembers) List() ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Order("id").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (r *gormMembers) ListByMerchant(merchantID uint) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Where("merchant_id = ?", merchantID).Order("id").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (r *gormMembers) ListByRoom(roomID uint) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Where("room_id = ?", roomID).Order("id").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

type gormKYC struct{ db *gorm.DB }

func (r *gormKYC) Create(kyc *models.KYCVerification) error {
	if err := r.db.Create(kyc).Error; err != nil {
		return fmt.Errorf("failed to create kyc record: %w", err)
	}
	return nil
}

func (r *gormKYC) GetByID(id uint) (*models.KYCVerification, error) {
	var kyc models.KYCVerification
	if err := r.db.First(&kyc, id).Error; err != nil {
		return nil, translate(err, "kyc record")
	}
	return &kyc, nil
}

func (r *gormKYC) Update(kyc *models.KYCVerification) error {
	if err := r.db.Save(kyc).Error; err != nil {
		return fmt.Errorf("failed to update kyc record: %w", err)
	}
	return nil
}

func (r *gormKYC) LatestByMerchant(merchantID uint) (*models.KYCVerification, error) {
	var kyc models.KYCVerification
	if err := r.db.Where("merchant_id = ?", merchantID).Order("id desc").First(&kyc).Error; err != nil {
		return nil, translate(err, "kyc record")
	}
	return &kyc, nil
}

func (r *gormKYC) List() ([]models.KYCVerification, error) {
	var records []models.KYCVerification
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list kyc records: %w", err)
	}
	return records, nil
}

type gormPayments struct{ db *gorm.DB }

func (r *gormPayments) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *gormPayments) ListByMember(memberID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("member_id = ?", memberID).Order("id").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
