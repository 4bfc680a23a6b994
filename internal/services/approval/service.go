package approval

import (
	"context"
	"time"

	"roost/internal/errors"
	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/repositories/cache"
	"roost/internal/services/notification"

	"github.com/lib/pq"
)

// Service exposes the two workflow instances plus KYC submission. Property
// submission lives with property creation in the portfolio service.
type Service interface {
	ApproveProperty(ctx context.Context, id uint) (*models.Property, error)
	RejectProperty(ctx context.Context, id uint, reason string) (*models.Property, error)
	RequestPropertyChanges(ctx context.Context, id uint, note string) (*models.Property, error)

	SubmitKYC(ctx context.Context, merchantID uint, documents []string) (*models.KYCVerification, error)
	ApproveKYC(ctx context.Context, id uint) (*models.KYCVerification, error)
	RejectKYC(ctx context.Context, id uint, reason string) (*models.KYCVerification, error)
	RequestMoreDocuments(ctx context.Context, id uint, note string) (*models.KYCVerification, error)
}

type service struct {
	store      repositories.Store
	notifier   notification.Service
	cache      *cache.CacheService
	properties *Workflow[*models.Property]
	kyc        *Workflow[*models.KYCVerification]
}

// NewService creates the approval service. cacheService may be nil.
func NewService(store repositories.Store, notifier notification.Service, cacheService *cache.CacheService) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{
		store:      store,
		notifier:   notifier,
		cache:      cacheService,
		properties: NewWorkflow("property", store.Properties().GetByID, store.Properties().Update, notifier),
		kyc:        NewWorkflow("kyc", store.KYC().GetByID, store.KYC().Update, notifier),
	}
}

func (s *service) ApproveProperty(ctx context.Context, id uint) (*models.Property, error) {
	property, err := s.properties.Approve(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return property, nil
}

func (s *service) RejectProperty(ctx context.Context, id uint, reason string) (*models.Property, error) {
	property, err := s.properties.Reject(ctx, id, reason)
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return property, nil
}

func (s *service) RequestPropertyChanges(ctx context.Context, id uint, note string) (*models.Property, error) {
	return s.properties.RequestChanges(ctx, id, note)
}

// SubmitKYC opens a new review cycle for the merchant. Only one Pending
// cycle may exist at a time; a rejected merchant resubmits freely. KYC
// approval is review context for the merchant's properties, it never
// approves them.
func (s *service) SubmitKYC(ctx context.Context, merchantID uint, documents []string) (*models.KYCVerification, error) {
	if len(documents) == 0 {
		return nil, errors.ErrValidation.WithDetail("at least one document is required")
	}
	merchant, err := s.store.Users().GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if merchant.Role != models.RoleMerchant {
		return nil, errors.ErrValidation.WithDetail("only merchants submit KYC")
	}

	if latest, err := s.store.KYC().LatestByMerchant(merchantID); err == nil {
		if latest.Status == models.StatusPending {
			return nil, errors.ErrInvalidTransition.WithDetail("a KYC review is already in progress")
		}
	}

	kyc := &models.KYCVerification{
		MerchantID:  merchantID,
		Documents:   pq.StringArray(documents),
		Status:      models.StatusPending,
		SubmittedAt: time.Now(),
	}
	err = s.store.InTransaction(func(tx repositories.Store) error {
		if err := tx.KYC().Create(kyc); err != nil {
			return err
		}
		merchant.KYCStatus = models.StatusPending
		return tx.Users().Update(merchant)
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return kyc, nil
}

func (s *service) ApproveKYC(ctx context.Context, id uint) (*models.KYCVerification, error) {
	return s.decideKYC(ctx, func(wf *Workflow[*models.KYCVerification]) (*models.KYCVerification, error) {
		return wf.Approve(ctx, id)
	})
}

func (s *service) RejectKYC(ctx context.Context, id uint, reason string) (*models.KYCVerification, error) {
	return s.decideKYC(ctx, func(wf *Workflow[*models.KYCVerification]) (*models.KYCVerification, error) {
		return wf.Reject(ctx, id, reason)
	})
}

func (s *service) RequestMoreDocuments(ctx context.Context, id uint, note string) (*models.KYCVerification, error) {
	return s.kyc.RequestChanges(ctx, id, note)
}

// decideKYC runs a KYC decision and the merchant-status mirror as one
// transaction, so the record and the merchant's displayed KYCStatus never
// diverge.
func (s *service) decideKYC(ctx context.Context, decide func(*Workflow[*models.KYCVerification]) (*models.KYCVerification, error)) (*models.KYCVerification, error) {
	var kyc *models.KYCVerification
	err := s.store.InTransaction(func(tx repositories.Store) error {
		record, err := decide(NewWorkflow("kyc", tx.KYC().GetByID, tx.KYC().Update, s.notifier))
		if err != nil {
			return err
		}
		merchant, err := tx.Users().GetByID(record.MerchantID)
		if err != nil {
			return err
		}
		merchant.KYCStatus = record.Status
		if err := tx.Users().Update(merchant); err != nil {
			return err
		}
		kyc = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboards(ctx, s.cache)
	return kyc, nil
}
