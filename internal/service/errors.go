package service

import "errors"

var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrArtworkNotFound = errors.New("artwork not found")

	ErrAuctionEnded     = errors.New("this auction has ended")
	ErrInvalidBidAmount = errors.New("invalid bid amount")
	ErrBidTooLow        = errors.New("bid must be higher than the current bid")

	ErrNotArtworkOwner     = errors.New("only the artwork owner can perform this action")
	ErrAuctionNotReady     = errors.New("auction cannot be finalized yet")
	ErrActiveAuctionExists = errors.New("artwork already has an active auction")
	ErrInvalidStartingBid  = errors.New("starting bid must be a positive amount")

	ErrInvalidSession = errors.New("invalid or expired session")
)
