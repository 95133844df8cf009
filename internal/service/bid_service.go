package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gigflow/api/internal/model"
	"github.com/gigflow/api/internal/store"
)

// Notifier is the push channel used to tell a freelancer they were
// hired. Delivery is best-effort: implementations must never block the
// hire and must swallow their own failures.
type Notifier interface {
	NotifyHired(userID string, payload model.WSHiredMessage)
}

// BidService handles bid creation, listing, and the hire/reject state
// transitions. The service holds no state between requests; all
// concurrency control is delegated to the store's conditional updates.
type BidService struct {
	bids     *store.BidStore
	gigs     *store.GigStore
	notifier Notifier

	// afterGigLock runs between the gig and bid conditional updates.
	// Nil outside tests; tests use it to interleave a racing write.
	afterGigLock func()
}

func NewBidService(bids *store.BidStore, gigs *store.GigStore, notifier Notifier) *BidService {
	return &BidService{bids: bids, gigs: gigs, notifier: notifier}
}

// CreateBid places a bid on an open gig. The caller must not own the
// gig and must not have bid on it before.
func (s *BidService) CreateBid(ctx context.Context, freelancerID string, req *model.CreateBidRequest) (*model.BidDetail, error) {
	gig, err := s.gigs.GetByID(ctx, req.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}

	if gig.Status != model.GigStatusOpen {
		return nil, ErrGigNotOpen
	}
	if gig.OwnerID == freelancerID {
		return nil, ErrOwnGigBid
	}

	exists, err := s.bids.ExistsForGigAndFreelancer(ctx, gig.ID, freelancerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBid
	}

	bid := &model.Bid{
		ID:           uuid.New().String(),
		GigID:        gig.ID,
		FreelancerID: freelancerID,
		Message:      req.Message,
		Price:        req.Price,
		Status:       model.BidStatusPending,
	}
	if err := s.bids.Create(ctx, bid); err != nil {
		return nil, err
	}

	return s.bidDetail(ctx, bid.ID)
}

// ListForGig returns all bids on a gig. Only the gig owner may see
// them.
func (s *BidService) ListForGig(ctx context.Context, gigID, requestingUserID string) ([]model.BidDetail, error) {
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
	if gig.OwnerID != requestingUserID {
		return nil, ErrNotGigOwner
	}

	bids, err := s.bids.ListByGig(ctx, gigID)
	if err != nil {
		return nil, err
	}

	details := make([]model.BidDetail, 0, len(bids))
	for i := range bids {
		details = append(details, mapBid(&bids[i], bids[i].Freelancer.Summary(), gig.Summary()))
	}
	return details, nil
}

// ListForFreelancer returns all bids the user has placed.
func (s *BidService) ListForFreelancer(ctx context.Context, freelancerID string) ([]model.BidDetail, error) {
	bids, err := s.bids.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, err
	}

	details := make([]model.BidDetail, 0, len(bids))
	for i := range bids {
		details = append(details, mapBid(&bids[i], bids[i].Freelancer.Summary(), bids[i].Gig.Summary()))
	}
	return details, nil
}

// Hire selects a bid for a gig: the gig moves open -> assigned, the
// bid moves pending -> hired, and every other pending bid on the gig
// is rejected. Only the gig owner may hire.
//
// The gig and bid transitions are two separate conditional updates,
// not one transaction. The gig update is the single total-order point
// among concurrent hires on the same gig: whoever flips open ->
// assigned wins, everyone else gets a conflict before touching the
// bid. If the bid update then finds the bid no longer pending, the gig
// is reverted to open so a lost race never strands it assigned with no
// hired bid.
func (s *BidService) Hire(ctx context.Context, bidID, requestingUserID string) (*model.BidDetail, error) {
	if _, err := uuid.Parse(bidID); err != nil {
		return nil, ErrInvalidID
	}

	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}

	// Advisory read-then-check; the conditional updates below are the
	// authoritative guards.
	if bid.Status != model.BidStatusPending {
		return nil, fmt.Errorf("%w: already %s", ErrBidAlreadyProcessed, bid.Status)
	}

	gig, err := s.gigs.GetByID(ctx, bid.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}

	if gig.OwnerID != requestingUserID {
		return nil, ErrNotGigOwner
	}
	if gig.Status != model.GigStatusOpen {
		return nil, ErrGigAlreadyAssigned
	}

	// Gig lock: open -> assigned, atomic per gig.
	won, err := s.gigs.AssignIfOpen(ctx, gig.ID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrGigAlreadyAssigned
	}

	if s.afterGigLock != nil {
		s.afterGigLock()
	}

	// Bid lock: pending -> hired. Losing here means the bid was
	// concurrently processed after our read, so undo the gig flip.
	hired, err := s.bids.HireIfPending(ctx, bidID)
	if err != nil {
		if rbErr := s.gigs.Reopen(ctx, gig.ID); rbErr != nil {
			log.Printf("hire %s: compensation failed, gig %s stuck assigned: %v", bidID, gig.ID, rbErr)
		}
		return nil, err
	}
	if !hired {
		if rbErr := s.gigs.Reopen(ctx, gig.ID); rbErr != nil {
			log.Printf("hire %s: compensation failed, gig %s stuck assigned: %v", bidID, gig.ID, rbErr)
		}
		return nil, fmt.Errorf("%w: bid was already processed", ErrBidAlreadyProcessed)
	}

	// Fan-out rejection of the losing bids. Best-effort: the hire is
	// already committed, and the pending-only condition makes a rerun
	// harmless. A crash here leaves some bids pending on an assigned
	// gig, which is a known, non-corrupting inconsistency.
	if _, err := s.bids.RejectOtherPending(ctx, gig.ID, bidID); err != nil {
		log.Printf("hire %s: fan-out rejection on gig %s incomplete: %v", bidID, gig.ID, err)
	}

	detail, err := s.bidDetail(ctx, bidID)
	if err != nil {
		return nil, err
	}

	// Post-commit notification, outside any lock. Never fails the hire.
	s.notifier.NotifyHired(bid.FreelancerID, model.WSHiredMessage{
		Type:     model.WSMessageTypeHired,
		Message:  fmt.Sprintf("You have been hired for %q", gig.Title),
		GigID:    gig.ID,
		GigTitle: gig.Title,
		BidID:    bidID,
	})

	return detail, nil
}

// Reject marks a single pending bid as rejected with an optional
// reason. Only the gig owner may reject. Single conditional update, no
// compensation needed.
func (s *BidService) Reject(ctx context.Context, bidID, requestingUserID, reason string) (*model.BidDetail, error) {
	if _, err := uuid.Parse(bidID); err != nil {
		return nil, ErrInvalidID
	}

	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}

	if bid.Status != model.BidStatusPending {
		return nil, fmt.Errorf("%w: already %s", ErrBidAlreadyProcessed, bid.Status)
	}

	gig, err := s.gigs.GetByID(ctx, bid.GigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	if gig.OwnerID != requestingUserID {
		return nil, ErrNotGigOwner
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	rejected, err := s.bids.RejectIfPending(ctx, bidID, reasonPtr)
	if err != nil {
		return nil, err
	}
	if !rejected {
		return nil, fmt.Errorf("%w: bid was already processed", ErrBidAlreadyProcessed)
	}

	return s.bidDetail(ctx, bidID)
}

// bidDetail reads a bid back with its freelancer and gig joined.
func (s *BidService) bidDetail(ctx context.Context, bidID string) (*model.BidDetail, error) {
	bid, err := s.bids.GetDetail(ctx, bidID)
	if err != nil {
		return nil, err
	}
	detail := mapBid(bid, bid.Freelancer.Summary(), bid.Gig.Summary())
	return &detail, nil
}

func mapBid(bid *model.Bid, freelancer model.UserSummary, gig model.GigSummary) model.BidDetail {
	return model.BidDetail{
		ID:              bid.ID,
		GigID:           bid.GigID,
		Message:         bid.Message,
		Price:           bid.Price,
		Status:          bid.Status,
		RejectionReason: bid.RejectionReason,
		RejectedAt:      bid.RejectedAt,
		Freelancer:      freelancer,
		Gig:             gig,
		CreatedAt:       bid.CreatedAt,
		UpdatedAt:       bid.UpdatedAt,
	}
}
