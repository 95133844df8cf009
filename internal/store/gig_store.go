package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gigflow/api/internal/model"
)

type GigStore struct {
	db *gorm.DB
}

func NewGigStore(db *gorm.DB) *GigStore {
	return &GigStore{db: db}
}

func (s *GigStore) Create(ctx context.Context, gig *model.Gig) error {
	if err := s.db.WithContext(ctx).Create(gig).Error; err != nil {
		return fmt.Errorf("store: create gig: %w", err)
	}
	return nil
}

// GetByID returns the gig with its owner loaded, or
// gorm.ErrRecordNotFound.
func (s *GigStore) GetByID(ctx context.Context, id string) (*model.Gig, error) {
	var gig model.Gig
	err := s.db.WithContext(ctx).Preload("Owner").First(&gig, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &gig, nil
}

// ListOpen returns open gigs, newest first, optionally filtered by a
// case-insensitive title substring.
func (s *GigStore) ListOpen(ctx context.Context, search string) ([]model.Gig, error) {
	q := s.db.WithContext(ctx).Preload("Owner").
		Where("status = ?", model.GigStatusOpen).
		Order("created_at DESC")
	if search != "" {
		pattern := strings.NewReplacer("%", `\%`, "_", `\_`).Replace(strings.ToLower(search))
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+pattern+"%")
	}

	var gigs []model.Gig
	if err := q.Find(&gigs).Error; err != nil {
		return nil, fmt.Errorf("store: list open gigs: %w", err)
	}
	return gigs, nil
}

// ListByOwner returns all gigs posted by a user, newest first.
func (s *GigStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Gig, error) {
	var gigs []model.Gig
	err := s.db.WithContext(ctx).Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&gigs).Error
	if err != nil {
		return nil, fmt.Errorf("store: list gigs by owner: %w", err)
	}
	return gigs, nil
}

// AssignIfOpen atomically flips the gig from open to assigned. It
// returns false when the gig was no longer open, i.e. a concurrent
// hire already claimed it. This conditional update is the sole
// concurrency guard between competing hires on the same gig.
func (s *GigStore) AssignIfOpen(ctx context.Context, gigID string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Gig{}).
		Where("id = ? AND status = ?", gigID, model.GigStatusOpen).
		Update("status", model.GigStatusAssigned)
	if result.Error != nil {
		return false, fmt.Errorf("store: assign gig %s: %w", gigID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Reopen reverts an assigned gig to open. Used only by the hire
// workflow's compensation path when the bid update loses a race after
// the gig was already flipped.
func (s *GigStore) Reopen(ctx context.Context, gigID string) error {
	err := s.db.WithContext(ctx).Model(&model.Gig{}).
		Where("id = ?", gigID).
		Update("status", model.GigStatusOpen).Error
	if err != nil {
		return fmt.Errorf("store: reopen gig %s: %w", gigID, err)
	}
	return nil
}
