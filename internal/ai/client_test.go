package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeCompletion starts a chat-completions endpoint that returns the given
// content string as the model's message.
func fakeCompletion(t *testing.T, content string, capture *completionRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCategorizeItems(t *testing.T) {
	var captured completionRequest
	srv := fakeCompletion(t, `{"categorized":[{"name":"milk","category":"Dairy"},{"name":"apples","category":"Produce"}]}`, &captured)
	c := NewClient("test-key", WithBaseURL(srv.URL))

	result, err := c.CategorizeItems(context.Background(), []string{"milk", "apples"})
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}
	if len(result.Categorized) != 2 {
		t.Fatalf("got %d categorized items, want 2", len(result.Categorized))
	}
	if result.Categorized[0].Category != "Dairy" {
		t.Errorf("category = %q, want Dairy", result.Categorized[0].Category)
	}

	if captured.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %q, want json_object", captured.ResponseFormat.Type)
	}
	if captured.MaxTokens != 500 {
		t.Errorf("max_tokens = %d, want 500", captured.MaxTokens)
	}
}

func TestCategorizeItemsRejectsBadShape(t *testing.T) {
	srv := fakeCompletion(t, `{"something_else": []}`, nil)
	c := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := c.CategorizeItems(context.Background(), []string{"milk"})
	if err == nil {
		t.Fatal("expected error for output missing categorized array")
	}
	if !strings.Contains(err.Error(), "invalid response format") {
		t.Errorf("err = %v, want invalid response format", err)
	}
}

func TestExtractWhiteboard(t *testing.T) {
	var captured completionRequest
	srv := fakeCompletion(t, `{"items":[{"name":"eggs","quantity":12,"unit":null,"category":"Dairy","confidence":0.9,"notes":null}],"warnings":["glare on left edge"]}`, &captured)
	c := NewClient("test-key", WithBaseURL(srv.URL))

	result, err := c.ExtractWhiteboard(context.Background(), "data:image/jpeg;base64,abc123")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Name != "eggs" {
		t.Fatalf("items = %+v, want one eggs entry", result.Items)
	}
	if result.Items[0].Quantity == nil || *result.Items[0].Quantity != 12 {
		t.Errorf("quantity = %v, want 12", result.Items[0].Quantity)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want one entry", result.Warnings)
	}
	if captured.MaxTokens != 1000 {
		t.Errorf("max_tokens = %d, want 1000", captured.MaxTokens)
	}
}

func TestExtractWhiteboardDefaultsWarnings(t *testing.T) {
	srv := fakeCompletion(t, `{"items":[]}`, nil)
	c := NewClient("test-key", WithBaseURL(srv.URL))

	result, err := c.ExtractWhiteboard(context.Background(), "data:image/jpeg;base64,abc123")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if result.Warnings == nil {
		t.Error("warnings should default to an empty slice")
	}
}

func TestGenerateMealPlan(t *testing.T) {
	var captured completionRequest
	srv := fakeCompletion(t, `{"days":[{"day":1,"meals":[{"title":"Omelette","time_minutes":15,"ingredients_used":[{"name":"eggs","amount":"3"}],"optional_staples":["salt"],"steps":["whisk","cook"]}]}],"shopping_additions":[]}`, &captured)
	c := NewClient("test-key", WithBaseURL(srv.URL))

	result, err := c.GenerateMealPlan(context.Background(), []string{"eggs", "cheese"}, map[string]any{"vegetarian": true})
	if err != nil {
		t.Fatalf("mealplan: %v", err)
	}
	if len(result.Days) != 1 || result.Days[0].Day != 1 {
		t.Fatalf("days = %+v, want one day", result.Days)
	}
	if result.Days[0].Meals[0].Title != "Omelette" {
		t.Errorf("title = %q, want Omelette", result.Days[0].Meals[0].Title)
	}
	if captured.MaxTokens != 1500 {
		t.Errorf("max_tokens = %d, want 1500", captured.MaxTokens)
	}
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limit exceeded"},
		})
	}))
	defer srv.Close()
	c := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := c.CategorizeItems(context.Background(), []string{"milk"})
	if err == nil {
		t.Fatal("expected error from API failure")
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("err = %v, want rate limit exceeded", err)
	}
}

func TestClientNotConfigured(t *testing.T) {
	c := NewClient("")
	if c.Configured() {
		t.Error("client without key should not report configured")
	}
	if _, err := c.CategorizeItems(context.Background(), []string{"milk"}); err == nil {
		t.Error("expected error when API key is missing")
	}
}
