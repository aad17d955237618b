package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jdparks/larder/internal/auth"
	"github.com/jdparks/larder/internal/email"
	"github.com/jdparks/larder/internal/model"
	"github.com/jdparks/larder/internal/store"
)

const (
	sessionCookieName = "larder_session"
	maxCodeAttempts   = 5
)

type AuthHandler struct {
	userStore      *store.UserStore
	householdStore *store.HouseholdStore
	listStore      *store.ListStore
	sessionStore   *store.SessionStore
	authCodeStore  *store.AuthCodeStore
	emailClient    *email.Client
	logger         *slog.Logger
}

func NewAuthHandler(
	us *store.UserStore,
	hs *store.HouseholdStore,
	ls *store.ListStore,
	ss *store.SessionStore,
	acs *store.AuthCodeStore,
	ec *email.Client,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userStore:      us,
		householdStore: hs,
		listStore:      ls,
		sessionStore:   ss,
		authCodeStore:  acs,
		emailClient:    ec,
		logger:         logger,
	}
}

// Login emails a sign-in code to an existing user. The response is identical
// whether or not the email is registered, to prevent user enumeration.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	emailAddr := strings.TrimSpace(strings.ToLower(req.Email))
	if emailAddr == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	// Always report success to prevent user enumeration
	defer writeJSON(w, http.StatusOK, map[string]string{"status": "code_sent"})

	user, err := h.userStore.GetByEmail(emailAddr)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		return
	}
	if user == nil {
		return // user doesn't exist, but we still report code_sent
	}

	households, err := h.householdStore.ListHouseholdsForUser(user.ID)
	if err != nil || len(households) == 0 {
		h.logger.Error("login households", "error", err)
		return
	}

	code, err := h.authCodeStore.Create(emailAddr, "login", nil)
	if err != nil {
		h.logger.Error("create auth code", "error", err)
		return
	}

	if err := h.emailClient.SendAuthCode(emailAddr, code.Code, "login", ""); err != nil {
		h.logger.Error("send auth code", "error", err)
	}
}

// Register creates a user together with their first household, owner
// membership, and default "Groceries" list, then emails a sign-in code.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email         string `json:"email"`
		HouseholdName string `json:"household_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	emailAddr := strings.TrimSpace(strings.ToLower(req.Email))
	householdName := strings.TrimSpace(req.HouseholdName)

	if emailAddr == "" || householdName == "" {
		writeError(w, http.StatusBadRequest, "email and household name are required")
		return
	}

	existing, err := h.userStore.GetByEmail(emailAddr)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		// Report code_sent even if the user exists (prevent enumeration)
		writeJSON(w, http.StatusOK, map[string]string{"status": "code_sent"})
		return
	}

	user, err := h.userStore.Create(emailAddr, "")
	if err != nil {
		h.logger.Error("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	household, err := h.createHouseholdWithDefaults(householdName, user.ID)
	if err != nil {
		h.logger.Error("create household", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	code, err := h.authCodeStore.Create(emailAddr, "register", &household.ID)
	if err != nil {
		h.logger.Error("create auth code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.emailClient.SendAuthCode(emailAddr, code.Code, "register", householdName); err != nil {
		h.logger.Error("send auth code", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "code_sent"})
}

// createHouseholdWithDefaults performs the household, membership, and default
// list writes in sequence. A default-list failure is logged but does not roll
// back the household or membership.
func (h *AuthHandler) createHouseholdWithDefaults(name string, ownerID int64) (*model.Household, error) {
	household, err := h.householdStore.Create(name, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := h.householdStore.AddMember(household.ID, ownerID, model.RoleOwner); err != nil {
		return nil, err
	}

	if _, err := h.listStore.Create(household.ID, "Groceries", ownerID); err != nil {
		h.logger.Error("create default list", "household_id", household.ID, "error", err)
	}

	return household, nil
}

// validateCode checks the code for the given email, handling attempts and
// expiry. Returns the auth code on success, or an error message on failure.
func (h *AuthHandler) validateCode(emailAddr, code string) (*model.AuthCode, string) {
	if emailAddr == "" || code == "" {
		return nil, "email and code are required"
	}

	latest, err := h.authCodeStore.GetLatestByEmail(emailAddr)
	if err != nil {
		h.logger.Error("validate code lookup", "error", err)
		return nil, "internal error"
	}
	if latest == nil {
		return nil, "code has expired or already been used, request a new one"
	}

	if latest.Attempts >= maxCodeAttempts {
		h.authCodeStore.MarkUsed(latest.ID)
		return nil, "too many incorrect attempts, request a new code"
	}

	if latest.Code != code {
		newAttempts, err := h.authCodeStore.IncrementAttempts(latest.ID)
		if err != nil {
			h.logger.Error("increment attempts", "error", err)
		}
		if newAttempts >= maxCodeAttempts {
			h.authCodeStore.MarkUsed(latest.ID)
			return nil, "too many incorrect attempts, request a new code"
		}
		return nil, "incorrect code"
	}

	if err := h.authCodeStore.MarkUsed(latest.ID); err != nil {
		h.logger.Error("mark used", "error", err)
		return nil, "internal error"
	}

	return latest, ""
}

// Verify exchanges a valid email+code pair for a session cookie.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	emailAddr := strings.TrimSpace(strings.ToLower(req.Email))
	code := strings.TrimSpace(req.Code)

	ac, errMsg := h.validateCode(emailAddr, code)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	user, err := h.userStore.GetByEmail(ac.Email)
	if err != nil {
		h.logger.Error("verify user lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		// An invited address may not have an account yet
		if ac.Purpose != "invite" {
			writeError(w, http.StatusBadRequest, "user not found")
			return
		}
		user, err = h.userStore.Create(ac.Email, "")
		if err != nil {
			h.logger.Error("create invited user", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	if ac.Purpose == "invite" && ac.HouseholdID != nil {
		existing, err := h.householdStore.GetMember(*ac.HouseholdID, user.ID)
		if err != nil {
			h.logger.Error("verify invite member", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if existing == nil {
			if _, err := h.householdStore.AddMember(*ac.HouseholdID, user.ID, model.RoleMember); err != nil {
				h.logger.Error("add invited member", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}
	}

	households, err := h.householdStore.ListHouseholdsForUser(user.ID)
	if err != nil || len(households) == 0 {
		h.logger.Error("verify households", "error", err)
		writeError(w, http.StatusBadRequest, "no household found")
		return
	}

	// Use the code's household if specified, otherwise the first household
	householdID := households[0].ID
	if ac.HouseholdID != nil {
		householdID = *ac.HouseholdID
	}

	sess, err := h.sessionStore.Create(user.ID, householdID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   90 * 24 * 60 * 60, // 90 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user":         user,
		"household_id": householdID,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if sess, err := h.sessionStore.GetByToken(cookie.Value); err == nil && sess != nil {
			h.sessionStore.Delete(sess.ID)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// SwitchHousehold re-points the session at another household the user
// belongs to.
func (h *AuthHandler) SwitchHousehold(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		HouseholdID int64 `json:"household_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.HouseholdID == 0 {
		writeError(w, http.StatusBadRequest, "household_id is required")
		return
	}

	member, err := h.householdStore.GetMember(req.HouseholdID, ac.UserID)
	if err != nil || member == nil {
		writeError(w, http.StatusForbidden, "not a member of this household")
		return
	}

	if err := h.sessionStore.UpdateHouseholdID(ac.SessionID, req.HouseholdID); err != nil {
		h.logger.Error("switch household", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"household_id": req.HouseholdID})
}
