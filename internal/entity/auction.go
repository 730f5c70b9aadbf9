package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Auction struct {
	Id            uuid.UUID           `json:"id" db:"id"`
	ArtworkId     uuid.UUID           `json:"artworkId" db:"artwork_id"`
	StartingBid   decimal.Decimal     `json:"startingBid" db:"starting_bid"`
	CurrentBid    decimal.NullDecimal `json:"currentBid" db:"current_bid"`
	CurrentBidder uuid.NullUUID       `json:"currentBidder" db:"current_bidder"`
	EndTime       time.Time           `json:"endTime" db:"end_time"`
	Status        string              `json:"status" db:"status"`
	BuyNowPrice   decimal.NullDecimal `json:"buyNowPrice" db:"buy_now_price"`
	SettledAt     sql.NullTime        `json:"-" db:"settled_at"`
	CreatedAt     string              `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateAuctionInput struct {
	ArtworkId   string          // given
	StartingBid decimal.Decimal // given
	BuyNowPrice  decimal.NullDecimal
	DurationDays int       // given
	EndTime      time.Time // computed by the service from the duration
	// Status is set to "active"
	// Id and CreatedAt set automatically
}

// controller model
type AuctionOutputModel struct {
	Id            string  `json:"id"`
	ArtworkId     string  `json:"artworkId"`
	StartingBid   string  `json:"startingBid"`
	CurrentBid    *string `json:"currentBid"`
	CurrentBidder *string `json:"currentBidder"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	BuyNowPrice   *string `json:"buyNowPrice"`
	CreatedAt     string  `json:"createdAt"`
}

// Result of one finalization attempt. Completed reports whether this call
// flipped the status; a repeated call returns Completed=false and
// Transferred=false for an auction that was already fully settled.
type FinalizeResult struct {
	AuctionId   uuid.UUID
	ArtworkId   uuid.UUID
	Transferred bool
	WinnerId    uuid.NullUUID
	Completed   bool
}

// controller model for the bid endpoint response
type BidOutputModel struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ArtworkId  string              `json:"artworkId"`
	CurrentBid string              `json:"currentBid"`
	Artwork    *ArtworkOutputModel `json:"artwork"`
}
