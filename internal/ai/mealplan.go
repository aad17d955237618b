package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const mealPlanPromptFmt = `Generate a 3-day meal plan based on the following available ingredients and preferences.

Available Ingredients: %s
Preferences: %s

Rules:
- Use purchased items first.
- "shopping_additions" should be minimal.
- 3 days only.

Output JSON format:
{
  "days": [
    {
      "day": 1,
      "meals": [
        {
          "title": "string",
          "time_minutes": number,
          "ingredients_used": [{"name":"string","amount":"string|null"}],
          "optional_staples": ["string"],
          "steps": ["string"]
        }
      ]
    }
  ],
  "shopping_additions": ["string"]
}`

type MealIngredient struct {
	Name   string  `json:"name"`
	Amount *string `json:"amount"`
}

type Meal struct {
	Title           string           `json:"title"`
	TimeMinutes     int              `json:"time_minutes"`
	IngredientsUsed []MealIngredient `json:"ingredients_used"`
	OptionalStaples []string         `json:"optional_staples"`
	Steps           []string         `json:"steps"`
}

type MealPlanDay struct {
	Day   int    `json:"day"`
	Meals []Meal `json:"meals"`
}

type MealPlanResult struct {
	Days              []MealPlanDay `json:"days"`
	ShoppingAdditions []string      `json:"shopping_additions"`
}

// GenerateMealPlan asks the model for a 3-day plan built around the given
// ingredient names and free-form preferences.
func (c *Client) GenerateMealPlan(ctx context.Context, ingredients []string, preferences map[string]any) (*MealPlanResult, error) {
	prefs, err := json.Marshal(preferences)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	if preferences == nil {
		prefs = []byte("{}")
	}

	prompt := fmt.Sprintf(mealPlanPromptFmt, strings.Join(ingredients, ", "), prefs)

	content, err := c.complete(ctx, []message{
		{Role: "system", Content: "You are a helpful meal planner AI."},
		{Role: "user", Content: prompt},
	}, 1500)
	if err != nil {
		return nil, err
	}

	var result MealPlanResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	if result.Days == nil {
		return nil, fmt.Errorf("invalid response format from model: missing days array")
	}
	if result.ShoppingAdditions == nil {
		result.ShoppingAdditions = []string{}
	}
	return &result, nil
}
