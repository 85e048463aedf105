package suggest

import (
	"context"
	"testing"
)

func TestDegradedClientWithoutCredential(t *testing.T) {
	client, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("client without credential reports Enabled()")
	}

	items, err := client.MenuIdeas(context.Background(), "italian", 5)
	if err != nil {
		t.Errorf("MenuIdeas() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("MenuIdeas() returned %d items without a credential, want 0", len(items))
	}

	summary, err := client.SummarizeFeedback(context.Background(), []string{"too salty"})
	if err != nil {
		t.Errorf("SummarizeFeedback() error: %v", err)
	}
	if summary == "" {
		t.Error("SummarizeFeedback() should return a placeholder, not an empty string")
	}
}

func TestParseIdeas(t *testing.T) {
	raw := "```json\n" + `[
		{"name": "Minestrone", "description": "Hearty vegetable soup", "category": "soup", "calories": 220, "dietaryTags": ["vegetarian"]},
		{"name": "Mystery Dish", "description": "", "category": "brunch", "calories": 100},
		{"name": "Tiramisu", "description": "Classic dessert", "category": "dessert", "calories": 450, "dietaryTags": ["vegetarian"]}
	]` + "\n```"

	items, err := parseIdeas(raw)
	if err != nil {
		t.Fatalf("parseIdeas() error: %v", err)
	}
	// the unknown "brunch" category is dropped
	if len(items) != 2 {
		t.Fatalf("parseIdeas() returned %d items, want 2", len(items))
	}
	if items[0].Name != "Minestrone" || items[0].Calories != 220 {
		t.Errorf("first idea = %+v", items[0])
	}
	if items[1].Category != "dessert" {
		t.Errorf("second idea category = %s, want dessert", items[1].Category)
	}
}

func TestParseIdeas_Malformed(t *testing.T) {
	if _, err := parseIdeas("the chef suggests pasta"); err == nil {
		t.Error("parseIdeas() accepted non-JSON output")
	}
}
