package service

import "errors"

// Sentinel errors surfaced to handlers, which map them onto HTTP
// status codes. Conflict errors are wrapped with the current status so
// the caller sees what the bid or gig already became.
var (
	ErrInvalidID          = errors.New("invalid id")
	ErrUserNotFound       = errors.New("user not found")
	ErrGigNotFound        = errors.New("gig not found")
	ErrBidNotFound        = errors.New("bid not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotGigOwner  = errors.New("only the gig owner can perform this action")
	ErrOwnGigBid    = errors.New("you cannot bid on your own gig")
	ErrGigNotOpen   = errors.New("cannot bid on a gig that is not open")
	ErrDuplicateBid = errors.New("you have already placed a bid on this gig")

	ErrGigAlreadyAssigned  = errors.New("gig has already been assigned")
	ErrBidAlreadyProcessed = errors.New("bid has already been processed")
)
