package entity

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model
type Artwork struct {
	Id           uuid.UUID           `json:"id" db:"id"`
	OwnerId      uuid.UUID           `json:"ownerId" db:"owner_id"`
	Title        string              `json:"title" db:"title"`
	Description  string              `json:"description" db:"description"`
	ImageUrl     string              `json:"imageUrl" db:"image_url"`
	CategoryName string              `json:"category" db:"category_name"`
	Price        decimal.NullDecimal `json:"price" db:"price"`
	CreatedAt    string              `json:"createdAt" db:"created_at"`
}

// controller model
type ArtworkOutputModel struct {
	Id          string  `json:"id"`
	OwnerId     string  `json:"ownerId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageUrl    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Price       *string `json:"price"`
	CreatedAt   string  `json:"createdAt"`
}

// db model for the auction listing endpoints: one artwork joined with its
// active auction and the display names the clients render.
type AuctionListing struct {
	ArtworkId     uuid.UUID           `db:"artwork_id"`
	Title         string              `db:"title"`
	Description   string              `db:"description"`
	ImageUrl      string              `db:"image_url"`
	OwnerId       uuid.UUID           `db:"owner_id"`
	OwnerName     string              `db:"owner_name"`
	CategoryName  string              `db:"category_name"`
	StartingBid   decimal.Decimal     `db:"starting_bid"`
	CurrentBid    decimal.NullDecimal `db:"current_bid"`
	CurrentBidder uuid.NullUUID       `db:"current_bidder"`
	BidderName    sql.NullString      `db:"bidder_name"`
	BuyNowPrice   decimal.NullDecimal `db:"buy_now_price"`
	EndTime       string              `db:"end_time"`
	Status        string              `db:"status"`
}

// controller model
type AuctionListingOutputModel struct {
	Id            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	ImageUrl      string      `json:"image_url"`
	OwnerId       string      `json:"user_id"`
	OwnerName     string      `json:"owner_name"`
	Category      string      `json:"category"`
	StartingBid   string      `json:"starting_bid"`
	CurrentBid    *string     `json:"current_bid"`
	CurrentBidder *BidderInfo `json:"current_bidder"`
	BuyNowPrice   *string     `json:"buy_now_price"`
	AuctionEnd    string      `json:"auction_end"`
}

type BidderInfo struct {
	FullName string `json:"full_name"`
}
