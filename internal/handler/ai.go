package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jdparks/larder/internal/ai"
)

const maxCategorizeItems = 100

type AIHandler struct {
	client *ai.Client
	logger *slog.Logger
}

func NewAIHandler(client *ai.Client, logger *slog.Logger) *AIHandler {
	return &AIHandler{client: client, logger: logger}
}

func (h *AIHandler) requireConfigured(w http.ResponseWriter) bool {
	if !h.client.Configured() {
		writeError(w, http.StatusServiceUnavailable, "AI features are not configured")
		return false
	}
	return true
}

// Categorize assigns a category to each item name via the model. An empty
// list short-circuits without a model call.
func (h *AIHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []string `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Items == nil {
		writeError(w, http.StatusBadRequest, "items array is required")
		return
	}
	if len(req.Items) > maxCategorizeItems {
		writeError(w, http.StatusBadRequest, "too many items, maximum is 100")
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusOK, ai.CategorizeResult{Categorized: []ai.CategorizedItem{}})
		return
	}
	if !h.requireConfigured(w) {
		return
	}

	result, err := h.client.CategorizeItems(r.Context(), req.Items)
	if err != nil {
		h.logger.Error("categorize items", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExtractWhiteboard runs the vision model over a base64 whiteboard photo and
// returns structured items for review.
func (h *AIHandler) ExtractWhiteboard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		writeError(w, http.StatusBadRequest, "image data is required")
		return
	}
	if len(req.Image) > ai.MaxImageBytes {
		writeError(w, http.StatusBadRequest, "Image too large. Maximum size is 10MB")
		return
	}
	if !h.requireConfigured(w) {
		return
	}

	result, err := h.client.ExtractWhiteboard(r.Context(), req.Image)
	if err != nil {
		h.logger.Error("extract whiteboard", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GenerateMealPlan builds a 3-day meal plan from the given item names and
// free-form preferences.
func (h *AIHandler) GenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
		Preferences map[string]any `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	names := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if name := strings.TrimSpace(item.Name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		writeError(w, http.StatusBadRequest, "items array is required")
		return
	}
	if !h.requireConfigured(w) {
		return
	}

	result, err := h.client.GenerateMealPlan(r.Context(), names, req.Preferences)
	if err != nil {
		h.logger.Error("generate meal plan", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
