package model

import "time"

type List struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item lifecycle states. "removed" is a soft-delete tombstone: it is
// filtered from every read path and never physically purged.
const (
	ItemStatusActive    = "active"
	ItemStatusPurchased = "purchased"
	ItemStatusRemoved   = "removed"
)

// Item provenance.
const (
	ItemSourceManual     = "manual"
	ItemSourceWhiteboard = "whiteboard"
	ItemSourceReceipt    = "receipt"
)

type ListItem struct {
	ID         int64     `json:"id"`
	ListID     int64     `json:"list_id"`
	Name       string    `json:"name"`
	Quantity   *float64  `json:"quantity"`
	Unit       *string   `json:"unit"`
	Category   *string   `json:"category"`
	Status     string    `json:"status"`
	Confidence *float64  `json:"confidence"`
	Source     string    `json:"source"`
	ClaimedBy  *int64    `json:"claimed_by"`
	AddedBy    *int64    `json:"added_by"`
	CreatedAt  time.Time `json:"created_at"`
}
