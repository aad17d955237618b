package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Categories is the taxonomy every categorization path uses, local or
// model-backed.
const Categories = "Produce, Meat, Seafood, Dairy, Bakery, Pantry, Frozen, Snacks, Beverages, Household, Personal Care, Other"

const categorizePromptFmt = `Categorize the following grocery items into one of these categories:
%s

Items:
%s

Output JSON format:
{
  "categorized": [
    {"name": "string", "category": "string"}
  ]
}`

type CategorizedItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type CategorizeResult struct {
	Categorized []CategorizedItem `json:"categorized"`
}

// CategorizeItems asks the model to assign a category to each item name. The
// model's JSON output is decoded into the typed result and rejected if the
// top-level shape does not match.
func (c *Client) CategorizeItems(ctx context.Context, items []string) (*CategorizeResult, error) {
	prompt := fmt.Sprintf(categorizePromptFmt, Categories, strings.Join(items, "\n"))

	content, err := c.complete(ctx, []message{
		{Role: "system", Content: "You are a grocery categorization AI."},
		{Role: "user", Content: prompt},
	}, 500)
	if err != nil {
		return nil, err
	}

	var result CategorizeResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	if result.Categorized == nil {
		return nil, fmt.Errorf("invalid response format from model: missing categorized array")
	}
	return &result, nil
}
