package model

import "time"

// Gig status
type GigStatus string

const (
	GigStatusOpen     GigStatus = "open"
	GigStatusAssigned GigStatus = "assigned"
)

// Gig is a posted project owned by a client user. Status only moves
// open -> assigned through the hire workflow; the workflow's
// compensation path is the single place that reverts it.
type Gig struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Budget      float64   `gorm:"not null" json:"budget"`
	OwnerID     string    `gorm:"size:36;not null;index" json:"ownerId"`
	Status      GigStatus `gorm:"size:16;not null;default:open;index" json:"status"`
	CreatedAt   time.Time `gorm:"index:,sort:desc" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Owner User `gorm:"foreignKey:OwnerID" json:"owner"`
}

// GigSummary is the gig slice embedded in bid responses.
type GigSummary struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Budget float64   `json:"budget"`
	Status GigStatus `json:"status"`
}

func (g *Gig) Summary() GigSummary {
	return GigSummary{ID: g.ID, Title: g.Title, Budget: g.Budget, Status: g.Status}
}

// CreateGigRequest represents the body of POST /api/gigs
type CreateGigRequest struct {
	Title       string  `json:"title" validate:"required,min=5,max=100"`
	Description string  `json:"description" validate:"required,min=20,max=2000"`
	Budget      float64 `json:"budget" validate:"required,gte=1"`
}

// GigListResponse wraps gig collections.
type GigListResponse struct {
	Count int   `json:"count"`
	Gigs  []Gig `json:"gigs"`
}
