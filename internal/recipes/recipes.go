// Package recipes implements the grocery-list suggestion flow.
//
// The flow is two sequential LLM calls wrapped in light validation:
//  1. CLASSIFY - sort the submitted items into food and non-food
//  2. FETCH    - generate recipe suggestions from the food items
//
// The second call depends on the first call's output, so there is no
// fan-out. All intermediate state is local to one Suggest call.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/DakshC17/reciperecommendation/llm"
)

// ErrNoFoodItems is returned by Suggest when the classifier finds nothing
// edible in the submitted list. The HTTP layer maps it to a 400.
var ErrNoFoodItems = errors.New("No food-related items found.")

// Classification is the classifier's verdict on a grocery list.
type Classification struct {
	FoodItems    []string `json:"food_items"`
	NonFoodItems []string `json:"non_food_items"`
}

// RecipeSet is the fetcher's output: recipe suggestions plus any
// ingredients the recipes need that were not on the original list.
// Recipes are kept as raw JSON and passed through to the caller verbatim;
// the service never re-shapes the model's recipe objects.
type RecipeSet struct {
	Recipes               []json.RawMessage `json:"recipes"`
	AdditionalIngredients []string          `json:"additional_ingredients"`
}

// Suggestion is the assembled result of one suggestion request.
type Suggestion struct {
	FilteredFoodItems     []string          `json:"filtered_food_items"`
	NonFoodItems          []string          `json:"non_food_items"`
	Recipes               []json.RawMessage `json:"recipes"`
	AdditionalIngredients []string          `json:"additional_ingredients"`
}

// Suggester sequences the classify and fetch calls against an LLM.
type Suggester struct {
	llm llm.Client
}

// New creates a Suggester with the given LLM client.
func New(client llm.Client) *Suggester {
	return &Suggester{llm: client}
}

// Classify sends the grocery list to the LLM and parses the returned
// classification. The list may be empty; the model is expected to return
// empty sequences in that case. LLM and parse errors propagate unchanged.
func (s *Suggester) Classify(ctx context.Context, items []string) (*Classification, error) {
	user := fmt.Sprintf(classifyPromptFmt, strings.Join(items, ", "))

	response, err := s.llm.Complete(ctx, classifierSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var cls Classification
	if err := parseJSONObject(response, &cls); err != nil {
		return nil, err
	}
	return &cls, nil
}

// Recipes asks the LLM for recipe suggestions built from the food items.
// An empty input short-circuits to an empty result without an LLM call.
func (s *Suggester) Recipes(ctx context.Context, foodItems []string) (*RecipeSet, error) {
	if len(foodItems) == 0 {
		return &RecipeSet{
			Recipes:               []json.RawMessage{},
			AdditionalIngredients: []string{},
		}, nil
	}

	user := fmt.Sprintf(recipePromptFmt, strings.Join(foodItems, ", "))

	response, err := s.llm.Complete(ctx, chefSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var set RecipeSet
	if err := parseJSONObject(response, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// Suggest runs the full flow: classify, validate, fetch, assemble.
//
// Missing fields in either LLM result default to empty sequences. If the
// classifier finds no food items, Suggest fails with ErrNoFoodItems before
// the fetch call is made. Any other error aborts the request and surfaces
// as-is, so callers see the failing call's own message.
func (s *Suggester) Suggest(ctx context.Context, items []string) (*Suggestion, error) {
	cls, err := s.Classify(ctx, items)
	if err != nil {
		return nil, err
	}

	foodItems := cls.FoodItems
	nonFoodItems := cls.NonFoodItems
	if nonFoodItems == nil {
		nonFoodItems = []string{}
	}

	if len(foodItems) == 0 {
		return nil, ErrNoFoodItems
	}

	set, err := s.Recipes(ctx, foodItems)
	if err != nil {
		return nil, err
	}

	recipeList := set.Recipes
	if recipeList == nil {
		recipeList = []json.RawMessage{}
	}
	additional := set.AdditionalIngredients
	if additional == nil {
		additional = []string{}
	}

	return &Suggestion{
		FilteredFoodItems:     foodItems,
		NonFoodItems:          nonFoodItems,
		Recipes:               recipeList,
		AdditionalIngredients: additional,
	}, nil
}

// --- System Prompts ---

const classifierSystemPrompt = `You are an expert in classifying grocery items.`

const classifyPromptFmt = `Classify these grocery items into food-related and non-food items: %s

Rules:
- Food-related: edible ingredients, cooking essentials.
- Non-food: household items, medicines, toiletries.

Output JSON format (no extra text!):
{
    "food_items": ["food1", "food2"],
    "non_food_items": ["nonfood1", "nonfood2"]
}`

const chefSystemPrompt = `You are an expert chef providing detailed recipes.`

const recipePromptFmt = `Generate 3 recipes using these ingredients: %s

Each recipe must have:
- Name
- Ingredients with quantity
- Cooking instructions
- Missing ingredients

Output JSON format:
{
  "recipes": [
    {
      "name": "Recipe 1",
      "ingredients": [
        {"name": "ingredient_1", "quantity": "X unit"},
        {"name": "ingredient_2", "quantity": "Y unit"}
      ],
      "instructions": "Step 1: ... Step 2: ...",
      "missing_ingredients": ["ingredient_x"]
    }
  ],
  "additional_ingredients": ["ingredient_x", "ingredient_y"]
}`
