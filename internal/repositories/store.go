// Package repositories provides the data access layer. Services mutate
// entities only through these interfaces; both the GORM-backed store and the
// in-memory store used by tests and the demo seed satisfy them.
package repositories

import "roost/internal/models"

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Update(user *models.User) error
	List() ([]models.User, error)
}

type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	Update(property *models.Property) error
	List() ([]models.Property, error)
	ListByMerchant(merchantID uint) ([]models.Property, error)
}

type RoomRepository interface {
	Create(room *models.Room) error
	GetByID(id uint) (*models.Room, error)
	Update(room *models.Room) error
	Delete(id uint) error
	ListByProperty(propertyID uint) ([]models.Room, error)
}

type MemberRepository interface {
	Create(member *models.Member) error
	GetByID(id uint) (*models.Member, error)
	Update(member *models.Member) error
	List() ([]models.Member, error)
	ListByMerchant(merchantID uint) ([]models.Member, error)
	ListByRoom(roomID uint) ([]models.Member, error)
}

type KYCRepository interface {
	Create(kyc *models.KYCVerification) error
	GetByID(id uint) (*models.KYCVerification, error)
	Update(kyc *models.KYCVerification) error
	LatestByMerchant(merchantID uint) (*models.KYCVerification, error)
	List() ([]models.KYCVerification, error)
}

type PaymentRepository interface {
	Create(payment *models.Payment) error
	ListByMember(memberID uint) ([]models.Payment, error)
}

// Store bundles the entity repositories. InTransaction runs fn atomically:
// if fn returns an error no mutation it performed is visible afterwards.
// List results are ordered by insertion (ascending id).
type Store interface {
	Users() UserRepository
	Properties() PropertyRepository
	Rooms() RoomRepository
	Members() MemberRepository
	KYC() KYCRepository
	Payments() PaymentRepository
	InTransaction(fn func(Store) error) error
}
