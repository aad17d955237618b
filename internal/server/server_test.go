package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/jdparks/larder/internal/ai"
	"github.com/jdparks/larder/internal/database"
	"github.com/jdparks/larder/internal/email"
	"github.com/jdparks/larder/internal/model"
	"github.com/jdparks/larder/internal/store"
)

func testServer(t *testing.T) (*httptest.Server, *store.AuthCodeStore) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	emailSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(emailSrv.Close)

	logger := slog.New(slog.DiscardHandler)
	srv := New(db, logger,
		ai.NewClient(""),
		email.NewClient("test-token", "hello@larder.app", email.WithAPIURL(emailSrv.URL)),
	)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, store.NewAuthCodeStore(db)
}

func newCookieJar(t *testing.T) http.CookieJar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return jar
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	resp, err := client.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/api/lists")
	if err != nil {
		t.Fatalf("GET /api/lists: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

// TestFullFlow walks the register, verify, and list flow through the real
// routing table with cookies.
func TestFullFlow(t *testing.T) {
	ts, authCodes := testServer(t)

	jar := newCookieJar(t)
	client := &http.Client{Jar: jar}

	// Register
	resp := postJSON(t, client, ts.URL+"/api/auth/register", map[string]string{
		"email":          "alice@example.com",
		"household_name": "Our Place",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register status = %d", resp.StatusCode)
	}

	code, err := authCodes.GetLatestByEmail("alice@example.com")
	if err != nil || code == nil {
		t.Fatalf("auth code missing: %v", err)
	}

	// Verify, which sets the session cookie
	resp = postJSON(t, client, ts.URL+"/api/auth/verify", map[string]string{
		"email": "alice@example.com",
		"code":  code.Code,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status = %d", resp.StatusCode)
	}

	// The default list exists
	listResp, err := client.Get(ts.URL + "/api/lists")
	if err != nil {
		t.Fatalf("GET /api/lists: %v", err)
	}
	defer listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("lists status = %d", listResp.StatusCode)
	}
	var lists []model.List
	if err := json.NewDecoder(listResp.Body).Decode(&lists); err != nil {
		t.Fatalf("decode lists: %v", err)
	}
	if len(lists) != 1 || lists[0].Title != "Groceries" {
		t.Fatalf("lists = %+v, want one Groceries list", lists)
	}

	// Add an item and read it back
	itemsURL := ts.URL + "/api/lists/" + itoa(lists[0].ID) + "/items"
	resp = postJSON(t, client, itemsURL, map[string]string{"name": "milk"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item status = %d", resp.StatusCode)
	}

	itemsResp, err := client.Get(itemsURL)
	if err != nil {
		t.Fatalf("GET items: %v", err)
	}
	defer itemsResp.Body.Close()
	var items []model.ListItem
	if err := json.NewDecoder(itemsResp.Body).Decode(&items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 || items[0].Name != "milk" {
		t.Errorf("items = %+v, want one milk entry", items)
	}

	// Logout invalidates the session
	resp = postJSON(t, client, ts.URL+"/api/auth/logout", nil)
	resp.Body.Close()

	after, err := client.Get(ts.URL + "/api/lists")
	if err != nil {
		t.Fatalf("GET /api/lists after logout: %v", err)
	}
	defer after.Body.Close()
	if after.StatusCode != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", after.StatusCode)
	}
}
