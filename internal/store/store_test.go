package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jdparks/larder/internal/database"
	"github.com/jdparks/larder/internal/model"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, email string) *model.User {
	t.Helper()
	u, err := NewUserStore(db).Create(email, "Test User")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedHousehold(t *testing.T, db *sql.DB, name string, ownerID int64) *model.Household {
	t.Helper()
	hs := NewHouseholdStore(db)
	h, err := hs.Create(name, ownerID)
	if err != nil {
		t.Fatalf("seed household: %v", err)
	}
	if _, err := hs.AddMember(h.ID, ownerID, model.RoleOwner); err != nil {
		t.Fatalf("seed owner member: %v", err)
	}
	return h
}

func seedList(t *testing.T, db *sql.DB, householdID, createdBy int64) *model.List {
	t.Helper()
	l, err := NewListStore(db).Create(householdID, "Groceries", createdBy)
	if err != nil {
		t.Fatalf("seed list: %v", err)
	}
	return l
}
