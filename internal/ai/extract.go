package ai

import (
	"context"
	"encoding/json"
	"fmt"
)

// MaxImageBytes is the ceiling on the base64 data-URL payload, roughly 10MB
// of decoded image.
const MaxImageBytes = 13_500_000

const extractPrompt = `You are an AI that extracts grocery items from valid whiteboard photos.
Extract items into a structured JSON list.

Rules:
- Normalize item names (e.g. "tomatos" -> "tomatoes")
- Split combined items ("eggs milk bread" -> 3 items)
- If quantity unclear, set null and lower confidence
- Detect category from standard list: ` + Categories + `
- Never invent items not seen

Output JSON format:
{
  "items": [
    {"name": "string", "quantity": number|null, "unit": "string|null", "category": "string|null", "confidence": number (0-1), "notes": "string|null"}
  ],
  "warnings": ["string"]
}`

type ExtractedItem struct {
	Name       string   `json:"name"`
	Quantity   *float64 `json:"quantity"`
	Unit       *string  `json:"unit"`
	Category   *string  `json:"category"`
	Confidence float64  `json:"confidence"`
	Notes      *string  `json:"notes"`
}

type ExtractResult struct {
	Items    []ExtractedItem `json:"items"`
	Warnings []string        `json:"warnings"`
}

// ExtractWhiteboard sends a whiteboard photo (as a data URL) to the vision
// model and returns the structured item list. Output that does not carry an
// items array is rejected rather than forwarded.
func (c *Client) ExtractWhiteboard(ctx context.Context, image string) (*ExtractResult, error) {
	content, err := c.complete(ctx, []message{
		{Role: "system", Content: extractPrompt},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: "Extract grocery items from this whiteboard."},
			{Type: "image_url", ImageURL: &imageURL{URL: image}},
		}},
	}, 1000)
	if err != nil {
		return nil, err
	}

	var result ExtractResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	if result.Items == nil {
		return nil, fmt.Errorf("invalid response format from model: missing items array")
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	return &result, nil
}
