package model

import "time"

// Bid status
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusHired    BidStatus = "hired"
	BidStatusRejected BidStatus = "rejected"
)

// Bid is a freelancer's proposal against a gig. At most one bid per
// (gig, freelancer) pair, enforced by a unique composite index. At
// most one bid per gig ever reaches "hired"; the hire workflow's
// conditional updates are the authority for that invariant.
type Bid struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	GigID           string     `gorm:"size:36;not null;index;uniqueIndex:idx_bids_gig_freelancer" json:"gigId"`
	FreelancerID    string     `gorm:"size:36;not null;index;uniqueIndex:idx_bids_gig_freelancer" json:"freelancerId"`
	Message         string     `gorm:"type:text;not null" json:"message"`
	Price           float64    `gorm:"not null" json:"price"`
	Status          BidStatus  `gorm:"size:16;not null;default:pending;index" json:"status"`
	RejectionReason *string    `gorm:"size:500" json:"rejectionReason,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Freelancer User `gorm:"foreignKey:FreelancerID" json:"freelancer"`
	Gig        Gig  `gorm:"foreignKey:GigID" json:"-"`
}

// BidDetail is a bid joined with freelancer and gig summaries, the
// shape returned by bid endpoints.
type BidDetail struct {
	ID              string      `json:"id"`
	GigID           string      `json:"gigId"`
	Message         string      `json:"message"`
	Price           float64     `json:"price"`
	Status          BidStatus   `json:"status"`
	RejectionReason *string     `json:"rejectionReason,omitempty"`
	RejectedAt      *time.Time  `json:"rejectedAt,omitempty"`
	Freelancer      UserSummary `json:"freelancer"`
	Gig             GigSummary  `json:"gig"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CreateBidRequest represents the body of POST /api/bids
type CreateBidRequest struct {
	GigID   string  `json:"gigId" validate:"required,uuid"`
	Message string  `json:"message" validate:"required,min=10,max=1000"`
	Price   float64 `json:"price" validate:"required,gte=1"`
}

// RejectBidRequest represents the body of PATCH /api/bids/:bidId/reject
type RejectBidRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"omitempty,max=500"`
}

// BidListResponse wraps bid collections.
type BidListResponse struct {
	Count int         `json:"count"`
	Bids  []BidDetail `json:"bids"`
}
