// Package dashboard aggregates the headline metrics behind the merchant and
// admin home screens. Metrics are folds over the store, cached briefly in
// redis for display.
package dashboard

import (
	"context"
	"time"

	"roost/internal/models"
	"roost/internal/repositories"
	"roost/internal/repositories/cache"
	"roost/internal/services/payment"
)

type MerchantMetrics struct {
	TotalProperties    int     `json:"total_properties"`
	ApprovedProperties int     `json:"approved_properties"`
	PendingProperties  int     `json:"pending_properties"`
	TotalRooms         int     `json:"total_rooms"`
	TotalBeds          int     `json:"total_beds"`
	OccupiedBeds       int     `json:"occupied_beds"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	MonthlyRevenue     float64 `json:"monthly_revenue"`
	TotalMembers       int     `json:"total_members"`
	UnassignedMembers  int     `json:"unassigned_members"`
	OverdueMembers     int     `json:"overdue_members"`
}

type AdminMetrics struct {
	TotalMerchants    int `json:"total_merchants"`
	TotalProperties   int `json:"total_properties"`
	PendingProperties int `json:"pending_properties"`
	PendingKYC        int `json:"pending_kyc"`
	TotalMembers      int `json:"total_members"`
}

type Service interface {
	ForMerchant(ctx context.Context, merchantID uint) (*MerchantMetrics, error)
	ForAdmin(ctx context.Context) (*AdminMetrics, error)
}

const metricsTTL = 5 * time.Minute

type service struct {
	store repositories.Store
	cache *cache.CacheService
	now   func() time.Time
}

// NewService creates the dashboard service. cache may be nil; metrics are
// then computed on every call.
func NewService(store repositories.Store, cacheService *cache.CacheService) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store, cache: cacheService, now: time.Now}
}

func (s *service) ForMerchant(ctx context.Context, merchantID uint) (*MerchantMetrics, error) {
	var cached MerchantMetrics
	key := ""
	if s.cache != nil {
		key = s.cache.GenerateKey("dashboard", "merchant", merchantID)
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	properties, err := s.store.Properties().ListByMerchant(merchantID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.Members().ListByMerchant(merchantID)
	if err != nil {
		return nil, err
	}

	metrics := &MerchantMetrics{}
	for _, property := range properties {
		metrics.TotalProperties++
		switch property.Status {
		case models.StatusApproved:
			metrics.ApprovedProperties++
		case models.StatusPending:
			metrics.PendingProperties++
		}
		metrics.TotalRooms += property.TotalRooms
		metrics.TotalBeds += property.TotalBeds
		metrics.OccupiedBeds += property.OccupiedBeds
		metrics.MonthlyRevenue += property.MonthlyRevenue
	}
	if metrics.TotalBeds > 0 {
		metrics.OccupancyRate = float64(metrics.OccupiedBeds) / float64(metrics.TotalBeds) * 100
	}

	now := s.now()
	for _, member := range members {
		if !member.Active {
			continue
		}
		metrics.TotalMembers++
		if !member.Assigned() {
			metrics.UnassignedMembers++
		} else if payment.Resolve(member.LastPaidDate, member.NextPaymentDate, now) == models.PaymentOverdue {
			metrics.OverdueMembers++
		}
	}

	if s.cache != nil {
		_ = s.cache.SetWithTTL(ctx, key, metrics, metricsTTL)
	}
	return metrics, nil
}

func (s *service) ForAdmin(ctx context.Context) (*AdminMetrics, error) {
	var cached AdminMetrics
	key := ""
	if s.cache != nil {
		key = s.cache.GenerateKey("dashboard", "admin", "global")
		if ok, err := s.cache.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	users, err := s.store.Users().List()
	if err != nil {
		return nil, err
	}
	properties, err := s.store.Properties().List()
	if err != nil {
		return nil, err
	}
	kycRecords, err := s.store.KYC().List()
	if err != nil {
		return nil, err
	}
	members, err := s.store.Members().List()
	if err != nil {
		return nil, err
	}

	metrics := &AdminMetrics{TotalMembers: len(members)}
	for _, user := range users {
		if user.Role == models.RoleMerchant {
			metrics.TotalMerchants++
		}
	}
	for _, property := range properties {
		metrics.TotalProperties++
		if property.Status == models.StatusPending {
			metrics.PendingProperties++
		}
	}
	for _, kyc := range kycRecords {
		if kyc.Status == models.StatusPending {
			metrics.PendingKYC++
		}
	}

	if s.cache != nil {
		_ = s.cache.SetWithTTL(ctx, key, metrics, metricsTTL)
	}
	return metrics, nil
}
