package store

import (
	"database/sql"
	"fmt"

	"github.com/jdparks/larder/internal/model"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.List, error) {
	var l model.List
	var createdBy sql.NullInt64
	err := scanner.Scan(&l.ID, &l.HouseholdID, &l.Title, &l.Status, &createdBy, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		l.CreatedBy = &createdBy.Int64
	}
	return &l, nil
}

const listCols = `id, household_id, title, status, created_by, created_at`

func (s *ListStore) Create(householdID int64, title string, createdBy int64) (*model.List, error) {
	result, err := s.db.Exec(
		`INSERT INTO lists (household_id, title, created_by) VALUES (?, ?, ?)`,
		householdID, title, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ListStore) GetByID(id int64) (*model.List, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM lists WHERE id = ?`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

func (s *ListStore) ListByHousehold(householdID int64) ([]model.List, error) {
	rows, err := s.db.Query(
		`SELECT `+listCols+` FROM lists WHERE household_id = ? ORDER BY created_at ASC, id ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}
