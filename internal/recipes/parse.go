package recipes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SplitItems parses free-form grocery list text into item names.
// Items may be separated by commas or newlines; blanks are dropped.
func SplitItems(text string) []string {
	var items []string
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// FormatText renders a Suggestion as plain text for chat channels.
func FormatText(s *Suggestion) string {
	var sb strings.Builder

	sb.WriteString("Food items: ")
	sb.WriteString(strings.Join(s.FilteredFoodItems, ", "))
	sb.WriteString("\n")

	if len(s.NonFoodItems) > 0 {
		sb.WriteString("Non-food items: ")
		sb.WriteString(strings.Join(s.NonFoodItems, ", "))
		sb.WriteString("\n")
	}

	if len(s.Recipes) > 0 {
		sb.WriteString("\nRecipes:\n")
		for i, raw := range s.Recipes {
			sb.WriteString(strings.TrimRight(renderRecipe(i+1, raw), "\n"))
			sb.WriteString("\n")
		}
	}

	if len(s.AdditionalIngredients) > 0 {
		sb.WriteString("\nYou would also need: ")
		sb.WriteString(strings.Join(s.AdditionalIngredients, ", "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderRecipe formats a single raw recipe. The model may return recipes
// as plain strings or as structured objects; both are handled, and
// anything else falls back to the raw JSON.
func renderRecipe(n int, raw json.RawMessage) string {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return itemLine(n, name)
	}

	var obj struct {
		Name         string `json:"name"`
		Instructions string `json:"instructions"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		line := itemLine(n, obj.Name)
		if obj.Instructions != "" {
			line += "\n   " + obj.Instructions
		}
		return line
	}

	return itemLine(n, string(raw))
}

func itemLine(n int, text string) string {
	return fmt.Sprintf(" %d. %s", n, text)
}
