package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jdparks/larder/internal/auth"
	"github.com/jdparks/larder/internal/database"
	"github.com/jdparks/larder/internal/email"
	"github.com/jdparks/larder/internal/model"
	"github.com/jdparks/larder/internal/realtime"
	"github.com/jdparks/larder/internal/store"
)

type env struct {
	db             *sql.DB
	userStore      *store.UserStore
	householdStore *store.HouseholdStore
	listStore      *store.ListStore
	itemStore      *store.ItemStore
	sessionStore   *store.SessionStore
	authCodeStore  *store.AuthCodeStore
	hub            *realtime.Hub
	emailClient    *email.Client
	logger         *slog.Logger
}

func newEnv(t *testing.T) *env {
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
	return &env{
		db:             db,
		userStore:      store.NewUserStore(db),
		householdStore: store.NewHouseholdStore(db),
		listStore:      store.NewListStore(db),
		itemStore:      store.NewItemStore(db),
		sessionStore:   store.NewSessionStore(db),
		authCodeStore:  store.NewAuthCodeStore(db),
		hub:            realtime.NewHub(slog.New(slog.DiscardHandler)),
		emailClient:    email.NewClient("test-token", "hello@larder.app", email.WithAPIURL(emailSrv.URL)),
		logger:         logger,
	}
}

func (e *env) authHandler() *AuthHandler {
	return NewAuthHandler(e.userStore, e.householdStore, e.listStore, e.sessionStore, e.authCodeStore, e.emailClient, e.logger)
}

func (e *env) householdHandler() *HouseholdHandler {
	return NewHouseholdHandler(e.householdStore, e.listStore, e.userStore, e.authCodeStore, e.emailClient, e.logger)
}

func (e *env) itemHandler() *ItemHandler {
	return NewItemHandler(e.listStore, e.itemStore, e.hub, e.logger)
}

// seedMember creates a user with an owned household and default list.
func (e *env) seedMember(t *testing.T, emailAddr string) (*model.User, *model.Household, *model.List) {
	t.Helper()
	u, err := e.userStore.Create(emailAddr, "Test User")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	h, err := e.householdStore.Create("Our Place", u.ID)
	if err != nil {
		t.Fatalf("seed household: %v", err)
	}
	if _, err := e.householdStore.AddMember(h.ID, u.ID, model.RoleOwner); err != nil {
		t.Fatalf("seed member: %v", err)
	}
	l, err := e.listStore.Create(h.ID, "Groceries", u.ID)
	if err != nil {
		t.Fatalf("seed list: %v", err)
	}
	return u, h, l
}

// authedRequest builds a request carrying an owner AuthContext for the given
// user and household.
func authedRequest(method, target string, body any, userID, householdID int64) *http.Request {
	return authedRequestAs(method, target, body, userID, householdID, model.RoleOwner)
}

func authedRequestAs(method, target string, body any, userID, householdID int64, role string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	ctx := auth.WithAuth(context.Background(), auth.AuthContext{
		UserID:      userID,
		HouseholdID: householdID,
		Role:        role,
		SessionID:   1,
	})
	return r.WithContext(ctx)
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	return httptest.NewRequest(method, target, &buf)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
