package entity

import (
	"github.com/shopspring/decimal"
)

// service + repo input model; rows are written once and never mutated.
type CreateTransactionInput struct {
	ArtworkId string
	SellerId  string
	BuyerId   string
	Amount    decimal.Decimal
}

// Payment-processor event as the webhook hands it to the service layer,
// already stripped down to the fields the marketplace acts on.
type CheckoutEvent struct {
	EventId   string
	ArtworkId string
	SellerId  string
	BuyerId   string
	Amount    decimal.Decimal
	Paid      bool
}
