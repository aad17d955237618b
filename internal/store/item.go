package store

import (
	"database/sql"
	"fmt"

	"github.com/jdparks/larder/internal/model"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

// NewItem holds the writable fields of a list item at insert time.
type NewItem struct {
	Name       string
	Quantity   *float64
	Unit       *string
	Category   *string
	Source     string
	Confidence *float64
	AddedBy    *int64
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.ListItem, error) {
	var item model.ListItem
	var quantity, confidence sql.NullFloat64
	var unit, category sql.NullString
	var claimedBy, addedBy sql.NullInt64

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Name, &quantity, &unit,
		&category, &item.Status, &confidence, &item.Source,
		&claimedBy, &addedBy, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if quantity.Valid {
		item.Quantity = &quantity.Float64
	}
	if unit.Valid {
		item.Unit = &unit.String
	}
	if category.Valid {
		item.Category = &category.String
	}
	if confidence.Valid {
		item.Confidence = &confidence.Float64
	}
	if claimedBy.Valid {
		item.ClaimedBy = &claimedBy.Int64
	}
	if addedBy.Valid {
		item.AddedBy = &addedBy.Int64
	}
	return &item, nil
}

const itemCols = `id, list_id, name, quantity, unit, category, status, confidence, source, claimed_by, added_by, created_at`

func (s *ItemStore) GetByID(id int64) (*model.ListItem, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM list_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) Create(listID int64, n NewItem) (*model.ListItem, error) {
	source := n.Source
	if source == "" {
		source = model.ItemSourceManual
	}

	result, err := s.db.Exec(
		`INSERT INTO list_items (list_id, name, quantity, unit, category, confidence, source, added_by) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		listID, n.Name, nullFloat(n.Quantity), nullString(n.Unit), nullString(n.Category),
		nullFloat(n.Confidence), source, nullInt(n.AddedBy),
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// ListActive returns all non-removed items of a list in stable insertion
// order. Soft-deleted items never appear here.
func (s *ItemStore) ListActive(listID int64) ([]model.ListItem, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM list_items WHERE list_id = ? AND status != ? ORDER BY created_at ASC, id ASC`,
		listID, model.ItemStatusRemoved,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.ListItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Update(id int64, name string, quantity *float64, unit, category *string) (*model.ListItem, error) {
	_, err := s.db.Exec(
		`UPDATE list_items SET name = ?, quantity = ?, unit = ?, category = ? WHERE id = ?`,
		name, nullFloat(quantity), nullString(unit), nullString(category), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(id)
}

// ToggleStatus flips an item between active and purchased. Removed items are
// left untouched (they are tombstones and unreachable from any view).
func (s *ItemStore) ToggleStatus(id int64) (*model.ListItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var newStatus string
	switch item.Status {
	case model.ItemStatusActive:
		newStatus = model.ItemStatusPurchased
	case model.ItemStatusPurchased:
		newStatus = model.ItemStatusActive
	default:
		return item, nil
	}

	_, err = s.db.Exec(`UPDATE list_items SET status = ? WHERE id = ?`, newStatus, id)
	if err != nil {
		return nil, fmt.Errorf("toggle status: %w", err)
	}
	return s.GetByID(id)
}

// SoftDelete marks an item removed. The row stays in place so realtime
// consumers can be told which identifier to drop.
func (s *ItemStore) SoftDelete(id int64) error {
	_, err := s.db.Exec(
		`UPDATE list_items SET status = ? WHERE id = ?`,
		model.ItemStatusRemoved, id,
	)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	return nil
}

// Claim sets claimed_by unconditionally. Last write wins: two members racing
// to claim the same item silently overwrite each other.
func (s *ItemStore) Claim(id, userID int64) (*model.ListItem, error) {
	_, err := s.db.Exec(`UPDATE list_items SET claimed_by = ? WHERE id = ?`, userID, id)
	if err != nil {
		return nil, fmt.Errorf("claim item: %w", err)
	}
	return s.GetByID(id)
}

func (s *ItemStore) Unclaim(id int64) (*model.ListItem, error) {
	_, err := s.db.Exec(`UPDATE list_items SET claimed_by = NULL WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("unclaim item: %w", err)
	}
	return s.GetByID(id)
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}
