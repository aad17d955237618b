package store

import "testing"

func TestAuthCodeCreate(t *testing.T) {
	db := testDB(t)
	acs := NewAuthCodeStore(db)

	code, err := acs.Create("alice@example.com", "login", nil)
	if err != nil {
		t.Fatalf("create code: %v", err)
	}
	if len(code.Code) != 6 {
		t.Errorf("code length = %d, want 6", len(code.Code))
	}
	if code.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", code.Attempts)
	}
	if code.UsedAt != nil {
		t.Error("expected used_at to be nil")
	}
}

func TestAuthCodeCreateInvalidatesPrevious(t *testing.T) {
	db := testDB(t)
	acs := NewAuthCodeStore(db)

	first, err := acs.Create("alice@example.com", "login", nil)
	if err != nil {
		t.Fatalf("create first code: %v", err)
	}
	second, err := acs.Create("alice@example.com", "login", nil)
	if err != nil {
		t.Fatalf("create second code: %v", err)
	}

	latest, err := acs.GetLatestByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest == nil {
		t.Fatal("expected a pending code")
	}
	if latest.ID != second.ID {
		t.Errorf("latest = %d, want %d (first code %d should be invalidated)", latest.ID, second.ID, first.ID)
	}
}

func TestAuthCodeIncrementAttempts(t *testing.T) {
	db := testDB(t)
	acs := NewAuthCodeStore(db)

	code, err := acs.Create("alice@example.com", "login", nil)
	if err != nil {
		t.Fatalf("create code: %v", err)
	}

	for want := 1; want <= 3; want++ {
		got, err := acs.IncrementAttempts(code.ID)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got != want {
			t.Errorf("attempts = %d, want %d", got, want)
		}
	}
}

func TestAuthCodeMarkUsed(t *testing.T) {
	db := testDB(t)
	acs := NewAuthCodeStore(db)

	code, err := acs.Create("alice@example.com", "login", nil)
	if err != nil {
		t.Fatalf("create code: %v", err)
	}
	if err := acs.MarkUsed(code.ID); err != nil {
		t.Fatalf("mark used: %v", err)
	}

	latest, err := acs.GetLatestByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if latest != nil {
		t.Errorf("expected no pending code after mark used, got %+v", latest)
	}
}

func TestAuthCodeHouseholdScope(t *testing.T) {
	db := testDB(t)
	owner := seedUser(t, db, "owner@example.com")
	h := seedHousehold(t, db, "Our Place", owner.ID)
	acs := NewAuthCodeStore(db)

	code, err := acs.Create("invitee@example.com", "invite", &h.ID)
	if err != nil {
		t.Fatalf("create code: %v", err)
	}
	if code.HouseholdID == nil || *code.HouseholdID != h.ID {
		t.Errorf("household_id = %v, want %d", code.HouseholdID, h.ID)
	}
	if code.Purpose != "invite" {
		t.Errorf("purpose = %q, want invite", code.Purpose)
	}
}
