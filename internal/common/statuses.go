package common

// Auction lifecycle statuses. Completed is terminal.
const (
	AuctionActive    = "active"
	AuctionCompleted = "completed"
)
