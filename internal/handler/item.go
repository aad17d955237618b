package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jdparks/larder/internal/auth"
	"github.com/jdparks/larder/internal/grocery"
	"github.com/jdparks/larder/internal/model"
	"github.com/jdparks/larder/internal/realtime"
	"github.com/jdparks/larder/internal/store"
)

type ItemHandler struct {
	listStore *store.ListStore
	itemStore *store.ItemStore
	hub       *realtime.Hub
	logger    *slog.Logger
}

func NewItemHandler(ls *store.ListStore, is *store.ItemStore, hub *realtime.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		listStore: ls,
		itemStore: is,
		hub:       hub,
		logger:    logger,
	}
}

// authorizedList resolves the {list_id} path parameter and checks it belongs
// to the caller's current household. Writes the error response itself when the
// check fails.
func (h *ItemHandler) authorizedList(w http.ResponseWriter, r *http.Request) (*model.List, *auth.AuthContext, bool) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, nil, false
	}

	listID, err := parseListIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list ID")
		return nil, nil, false
	}

	list, err := h.listStore.GetByID(listID)
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, nil, false
	}
	if list == nil || list.HouseholdID != ac.HouseholdID {
		writeError(w, http.StatusNotFound, "list not found")
		return nil, nil, false
	}

	return list, &ac, true
}

// visibleItem resolves the {id} path parameter within an authorized list.
// Removed items are tombstones and behave as if they do not exist.
func (h *ItemHandler) visibleItem(w http.ResponseWriter, r *http.Request, list *model.List) (*model.ListItem, bool) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return nil, false
	}

	item, err := h.itemStore.GetByID(id)
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if item == nil || item.ListID != list.ID || item.Status == model.ItemStatusRemoved {
		writeError(w, http.StatusNotFound, "item not found")
		return nil, false
	}
	return item, true
}

// List returns the non-removed items of a list in insertion order.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	list, _, ok := h.authorizedList(w, r)
	if !ok {
		return
	}

	items, err := h.itemStore.ListActive(list.ID)
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []model.ListItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type itemRequest struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Category *string  `json:"category"`
}

// Create adds one item. When no category is supplied the local keyword
// categorizer fills one in so the item lands in a section immediately.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	list, ac, ok := h.authorizedList(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "item name is required")
		return
	}

	category := req.Category
	if category == nil || strings.TrimSpace(*category) == "" {
		c := grocery.Categorize(name)
		category = &c
	}

	item, err := h.itemStore.Create(list.ID, store.NewItem{
		Name:     name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: category,
		Source:   model.ItemSourceManual,
		AddedBy:  &ac.UserID,
	})
	if err != nil {
		h.logger.Error("create item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(list.HouseholdID, realtime.ItemCreated(item))
	writeJSON(w, http.StatusCreated, item)
}

type bulkItemRequest struct {
	Name       string   `json:"name"`
	Quantity   *float64 `json:"quantity"`
	Unit       *string  `json:"unit"`
	Category   *string  `json:"category"`
	Confidence *float64 `json:"confidence"`
}

// BulkCreate inserts several items at once, typically the output of a
// whiteboard extraction. Items without a name are skipped; a single bad entry
// does not fail the batch.
func (h *ItemHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	list, ac, ok := h.authorizedList(w, r)
	if !ok {
		return
	}

	var req struct {
		Items  []bulkItemRequest `json:"items"`
		Source string            `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items array is required")
		return
	}

	source := req.Source
	if source != model.ItemSourceWhiteboard && source != model.ItemSourceReceipt {
		source = model.ItemSourceManual
	}

	inserted := make([]model.ListItem, 0, len(req.Items))
	for _, entry := range req.Items {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}

		category := entry.Category
		if category == nil || strings.TrimSpace(*category) == "" {
			c := grocery.Categorize(name)
			category = &c
		}

		item, err := h.itemStore.Create(list.ID, store.NewItem{
			Name:       name,
			Quantity:   entry.Quantity,
			Unit:       entry.Unit,
			Category:   category,
			Source:     source,
			Confidence: entry.Confidence,
			AddedBy:    &ac.UserID,
		})
		if err != nil {
			h.logger.Error("bulk create item", "name", name, "error", err)
			continue
		}

		h.hub.Broadcast(list.HouseholdID, realtime.ItemCreated(item))
		inserted = append(inserted, *item)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"inserted": inserted})
}

// Update edits an item's name, quantity, unit, and category.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	list, _, ok := h.authorizedList(w, r)
	if !ok {
		return
	}
	existing, ok := h.visibleItem(w, r, list)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "item name is required")
		return
	}

	item, err := h.itemStore.Update(existing.ID, name, req.Quantity, req.Unit, req.Category)
	if err != nil {
		h.logger.Error("update item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(list.HouseholdID, realtime.ItemUpdated(item))
	writeJSON(w, http.StatusOK, item)
}

// Toggle flips an item between active and purchased.
func (h *ItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	list, _, ok := h.authorizedList(w, r)
	if !ok {
		return
	}
	existing, ok := h.visibleItem(w, r, list)
	if !ok {
		return
	}

	item, err := h.itemStore.ToggleStatus(existing.ID)
	if err != nil {
		h.logger.Error("toggle item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(list.HouseholdID, realtime.ItemUpdated(item))
	writeJSON(w, http.StatusOK, item)
}

// Delete soft-deletes an item. The row remains as a tombstone so realtime
// consumers can drop it by ID.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	list, _, ok := h.authorizedList(w, r)
	if !ok {
		return
	}
	existing, ok := h.visibleItem(w, r, list)
	if !ok {
		return
	}

	if err := h.itemStore.SoftDelete(existing.ID); err != nil {
		h.logger.Error("delete item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(list.HouseholdID, realtime.ItemDeleted(list.ID, existing.ID))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Claim marks the caller as the one picking up this item. Last write wins:
// concurrent claims silently overwrite each other.
func (h *ItemHandler) Claim(w http.ResponseWriter, r *http.Request) {
	list, ac, ok := h.authorizedList(w, r)
	if !ok {
		return
	}
	existing, ok := h.visibleItem(w, r, list)
	if !ok {
		return
	}

	item, err := h.itemStore.Claim(existing.ID, ac.UserID)
	if err != nil {
		h.logger.Error("claim item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(list.HouseholdID, realtime.ItemUpdated(item))
	writeJSON(w, http.StatusOK, item)
}

// Unclaim clears the claim regardless of who holds it.
func (h *ItemHandler) Unclaim(w http.ResponseWriter, r *http.Request) {
	list, _, ok := h.authorizedList(w, r)
	if !ok {
		return
	}
	existing, ok := h.visibleItem(w, r, list)
	if !ok {
		return
	}

	item, err := h.itemStore.Unclaim(existing.ID)
	if err != nil {
		h.logger.Error("unclaim item", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.hub.Broadcast(list.HouseholdID, realtime.ItemUpdated(item))
	writeJSON(w, http.StatusOK, item)
}
