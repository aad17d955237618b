package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jdparks/larder/internal/auth"
	"github.com/jdparks/larder/internal/email"
	"github.com/jdparks/larder/internal/model"
	"github.com/jdparks/larder/internal/store"
)

type HouseholdHandler struct {
	householdStore *store.HouseholdStore
	listStore      *store.ListStore
	userStore      *store.UserStore
	authCodeStore  *store.AuthCodeStore
	emailClient    *email.Client
	logger         *slog.Logger
}

func NewHouseholdHandler(
	hs *store.HouseholdStore,
	ls *store.ListStore,
	us *store.UserStore,
	acs *store.AuthCodeStore,
	ec *email.Client,
	logger *slog.Logger,
) *HouseholdHandler {
	return &HouseholdHandler{
		householdStore: hs,
		listStore:      ls,
		userStore:      us,
		authCodeStore:  acs,
		emailClient:    ec,
		logger:         logger,
	}
}

// List returns every household the caller belongs to.
func (h *HouseholdHandler) List(w http.ResponseWriter, r *http.Request) {
	households, err := h.householdStore.ListHouseholdsForUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list households", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if households == nil {
		households = []model.Household{}
	}
	writeJSON(w, http.StatusOK, households)
}

// Create makes a new household with the caller as owner and seeds the default
// "Groceries" list. A default-list failure is logged but not rolled back.
func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "household name is required")
		return
	}

	household, err := h.householdStore.Create(name, userID)
	if err != nil {
		h.logger.Error("create household", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := h.householdStore.AddMember(household.ID, userID, model.RoleOwner); err != nil {
		h.logger.Error("add owner member", "household_id", household.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if _, err := h.listStore.Create(household.ID, "Groceries", userID); err != nil {
		h.logger.Error("create default list", "household_id", household.ID, "error", err)
	}

	writeJSON(w, http.StatusCreated, household)
}

// Join adds the caller to the household behind an invite code.
func (h *HouseholdHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InviteCode string `json:"invite_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	code := strings.TrimSpace(req.InviteCode)
	if code == "" {
		writeError(w, http.StatusBadRequest, "invite code is required")
		return
	}

	household, err := h.householdStore.Join(code, auth.UserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInviteNotFound):
			writeError(w, http.StatusNotFound, "invalid invite code")
		case errors.Is(err, store.ErrAlreadyMember):
			writeError(w, http.StatusConflict, "already a member of this household")
		default:
			h.logger.Error("join household", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, household)
}

// Invite emails a sign-in code that, when verified, makes the recipient a
// member of the household. Owner only.
func (h *HouseholdHandler) Invite(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid household ID")
		return
	}

	// The session carries the role for its current household; for any other
	// household the membership row is the authority.
	if id == auth.HouseholdID(r.Context()) {
		if !auth.IsOwner(r.Context()) {
			writeError(w, http.StatusForbidden, "only the owner can send invites")
			return
		}
	} else {
		member, err := h.householdStore.GetMember(id, auth.UserID(r.Context()))
		if err != nil {
			h.logger.Error("get member", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if member == nil || member.Role != model.RoleOwner {
			writeError(w, http.StatusForbidden, "only the owner can send invites")
			return
		}
	}

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

	household, err := h.householdStore.GetByID(id)
	if err != nil || household == nil {
		h.logger.Error("get household", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	code, err := h.authCodeStore.Create(emailAddr, "invite", &household.ID)
	if err != nil {
		h.logger.Error("create invite code", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.emailClient.SendAuthCode(emailAddr, code.Code, "invite", household.Name); err != nil {
		h.logger.Error("send invite", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "code_sent"})
}

type memberResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Members lists the members of a household the caller belongs to.
func (h *HouseholdHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid household ID")
		return
	}

	caller, err := h.householdStore.GetMember(id, auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get member", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if caller == nil {
		writeError(w, http.StatusForbidden, "not a member of this household")
		return
	}

	members, err := h.householdStore.ListMembers(id)
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		entry := memberResponse{UserID: m.UserID, Role: m.Role}
		if u, err := h.userStore.GetByID(m.UserID); err == nil && u != nil {
			entry.Email = u.Email
			entry.Name = u.Name
		}
		resp = append(resp, entry)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Lists returns the current household's lists.
func (h *HouseholdHandler) Lists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.listStore.ListByHousehold(auth.HouseholdID(r.Context()))
	if err != nil {
		h.logger.Error("list lists", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if lists == nil {
		lists = []model.List{}
	}
	writeJSON(w, http.StatusOK, lists)
}
