package realtime

import "github.com/jdparks/larder/internal/model"

// EventKind tags the change-stream event union. Consumers must handle every
// kind; applying an event by item ID is idempotent (insert-or-replace for
// created/updated, filter-out for deleted), so duplicate or out-of-order
// delivery is tolerated.
type EventKind string

const (
	EventItemCreated EventKind = "item_created"
	EventItemUpdated EventKind = "item_updated"
	EventItemDeleted EventKind = "item_deleted"
)

// Event is one entry in a list's change stream. Item is present for created
// and updated events and absent for deletions, where only the identifier is
// needed to drop the row.
type Event struct {
	Kind   EventKind       `json:"kind"`
	ListID int64           `json:"list_id"`
	ItemID int64           `json:"item_id"`
	Item   *model.ListItem `json:"item,omitempty"`
}

func ItemCreated(item *model.ListItem) Event {
	return Event{Kind: EventItemCreated, ListID: item.ListID, ItemID: item.ID, Item: item}
}

func ItemUpdated(item *model.ListItem) Event {
	return Event{Kind: EventItemUpdated, ListID: item.ListID, ItemID: item.ID, Item: item}
}

func ItemDeleted(listID, itemID int64) Event {
	return Event{Kind: EventItemDeleted, ListID: listID, ItemID: itemID}
}
