package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gigflow/api/internal/model"
)

type BidStore struct {
	db *gorm.DB
}

func NewBidStore(db *gorm.DB) *BidStore {
	return &BidStore{db: db}
}

func (s *BidStore) Create(ctx context.Context, bid *model.Bid) error {
	if err := s.db.WithContext(ctx).Create(bid).Error; err != nil {
		return fmt.Errorf("store: create bid: %w", err)
	}
	return nil
}

// GetByID returns the bid, or gorm.ErrRecordNotFound.
func (s *BidStore) GetByID(ctx context.Context, id string) (*model.Bid, error) {
	var bid model.Bid
	if err := s.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bid, nil
}

// GetDetail returns the bid with freelancer and gig loaded, or
// gorm.ErrRecordNotFound.
func (s *BidStore) GetDetail(ctx context.Context, id string) (*model.Bid, error) {
	var bid model.Bid
	err := s.db.WithContext(ctx).
		Preload("Freelancer").
		Preload("Gig").
		First(&bid, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// ExistsForGigAndFreelancer reports whether the freelancer already
// placed a bid on the gig.
func (s *BidStore) ExistsForGigAndFreelancer(ctx context.Context, gigID, freelancerID string) (bool, error) {
	var bid model.Bid
	err := s.db.WithContext(ctx).
		Select("id").
		First(&bid, "gig_id = ? AND freelancer_id = ?", gigID, freelancerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("store: check existing bid: %w", err)
	}
	return true, nil
}

// ListByGig returns all bids on a gig with freelancers loaded, newest
// first.
func (s *BidStore) ListByGig(ctx context.Context, gigID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := s.db.WithContext(ctx).Preload("Freelancer").
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("store: list bids for gig: %w", err)
	}
	return bids, nil
}

// ListByFreelancer returns all bids placed by a user with their gigs
// loaded, newest first.
func (s *BidStore) ListByFreelancer(ctx context.Context, freelancerID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := s.db.WithContext(ctx).
		Preload("Freelancer").
		Preload("Gig").
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("store: list bids for freelancer: %w", err)
	}
	return bids, nil
}

// HireIfPending atomically flips the bid from pending to hired. It
// returns false when the bid had already been processed through a
// concurrent path.
func (s *BidStore) HireIfPending(ctx context.Context, bidID string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Bid{}).
		Where("id = ? AND status = ?", bidID, model.BidStatusPending).
		Update("status", model.BidStatusHired)
	if result.Error != nil {
		return false, fmt.Errorf("store: hire bid %s: %w", bidID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RejectIfPending atomically flips the bid from pending to rejected,
// recording the reason and timestamp. It returns false when the bid
// was no longer pending.
func (s *BidStore) RejectIfPending(ctx context.Context, bidID string, reason *string) (bool, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&model.Bid{}).
		Where("id = ? AND status = ?", bidID, model.BidStatusPending).
		Updates(map[string]interface{}{
			"status":           model.BidStatusRejected,
			"rejection_reason": reason,
			"rejected_at":      now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("store: reject bid %s: %w", bidID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RejectOtherPending marks every still-pending bid on the gig as
// rejected, excluding the hired one. The status = pending condition
// makes repeated application idempotent; a bid already hired or
// rejected is untouched. Not atomic with the hire itself.
func (s *BidStore) RejectOtherPending(ctx context.Context, gigID, excludeBidID string) (int64, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&model.Bid{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, excludeBidID, model.BidStatusPending).
		Updates(map[string]interface{}{
			"status":      model.BidStatusRejected,
			"rejected_at": now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("store: reject other bids for gig %s: %w", gigID, result.Error)
	}
	return result.RowsAffected, nil
}
