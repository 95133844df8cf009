package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gigflow/api/internal/model"
	"github.com/gigflow/api/internal/store"
)

// GigService handles gig creation and listing.
type GigService struct {
	gigs *store.GigStore
}

func NewGigService(gigs *store.GigStore) *GigService {
	return &GigService{gigs: gigs}
}

func (s *GigService) CreateGig(ctx context.Context, ownerID string, req *model.CreateGigRequest) (*model.Gig, error) {
	gig := &model.Gig{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		OwnerID:     ownerID,
		Status:      model.GigStatusOpen,
	}
	if err := s.gigs.Create(ctx, gig); err != nil {
		return nil, err
	}

	// Read back with the owner loaded for the response.
	return s.gigs.GetByID(ctx, gig.ID)
}

// ListOpen returns open gigs, optionally filtered by a title search.
func (s *GigService) ListOpen(ctx context.Context, search string) ([]model.Gig, error) {
	return s.gigs.ListOpen(ctx, search)
}

// ListByOwner returns all gigs posted by the user.
func (s *GigService) ListByOwner(ctx context.Context, ownerID string) ([]model.Gig, error) {
	return s.gigs.ListByOwner(ctx, ownerID)
}

func (s *GigService) GetByID(ctx context.Context, gigID string) (*model.Gig, error) {
	if _, err := uuid.Parse(gigID); err != nil {
		return nil, ErrInvalidID
	}

	gig, err := s.gigs.GetByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return gig, nil
}
