package store

import "testing"

func TestUserCreateAndGet(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	u, err := us.Create("alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", u.Email)
	}

	byEmail, err := us.GetByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Errorf("get by email returned %+v, want ID %d", byEmail, u.ID)
	}
}

func TestUserGetMissing(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	u, err := us.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}

	u, err = us.GetByID(9999)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	if _, err := us.Create("bob@example.com", "Bob"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := us.Create("bob@example.com", "Bob Again"); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestUserUpdate(t *testing.T) {
	db := testDB(t)
	us := NewUserStore(db)

	u, err := us.Create("carol@example.com", "Carol")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	updated, err := us.Update(u.ID, "carol@example.com", "Caroline")
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Name != "Caroline" {
		t.Errorf("name = %q, want Caroline", updated.Name)
	}
}
