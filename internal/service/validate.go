package service

import (
	"fmt"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/types"
)

var difficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// validateDraft checks a full submission: every field required except
// difficulty, diet_tags and image.
func validateDraft(draft *types.RecipeDraft) error {
	ve := NewValidationError()

	if draft.Title == "" {
		ve.Add("title", "The recipe title is required.")
	}
	if len(draft.Title) > 255 {
		ve.Add("title", "The recipe title must not exceed 255 characters.")
	}
	if draft.Description == "" {
		ve.Add("description", "The recipe description is required.")
	}
	if len(draft.Ingredients) == 0 {
		ve.Add("ingredients", "The ingredients list is required.")
	}
	validateIngredients(draft.Ingredients, ve)
	if len(draft.Steps) == 0 {
		ve.Add("steps", "The cooking steps are required.")
	}
	validateSteps(draft.Steps, ve)
	if draft.Cuisine == "" {
		ve.Add("cuisine", "The cuisine type is required.")
	}
	validateDifficulty(draft.Difficulty, ve)
	if draft.CookingTime < 1 {
		ve.Add("cooking_time", "The cooking time must be at least 1 minute.")
	}
	if len(draft.Categories) == 0 {
		ve.Add("categories", "At least one category is required.")
	}

	if ve.Empty() {
		return nil
	}
	return ve
}

// validatePatch checks only the fields present. A present field follows
// the same rules it has on create.
func validatePatch(patch *types.RecipePatch) error {
	ve := NewValidationError()

	if patch.Title != nil {
		if *patch.Title == "" {
			ve.Add("title", "The recipe title is required.")
		}
		if len(*patch.Title) > 255 {
			ve.Add("title", "The recipe title must not exceed 255 characters.")
		}
	}
	if patch.Description != nil && *patch.Description == "" {
		ve.Add("description", "The recipe description is required.")
	}
	if patch.Ingredients != nil {
		if len(*patch.Ingredients) == 0 {
			ve.Add("ingredients", "The ingredients list is required.")
		}
		validateIngredients(*patch.Ingredients, ve)
	}
	if patch.Steps != nil {
		if len(*patch.Steps) == 0 {
			ve.Add("steps", "The cooking steps are required.")
		}
		validateSteps(*patch.Steps, ve)
	}
	if patch.Cuisine != nil && *patch.Cuisine == "" {
		ve.Add("cuisine", "The cuisine type is required.")
	}
	if patch.Difficulty != nil {
		validateDifficulty(*patch.Difficulty, ve)
	}
	if patch.CookingTime != nil && *patch.CookingTime < 1 {
		ve.Add("cooking_time", "The cooking time must be at least 1 minute.")
	}
	if patch.Categories != nil && len(*patch.Categories) == 0 {
		ve.Add("categories", "At least one category is required.")
	}

	if ve.Empty() {
		return nil
	}
	return ve
}

func validateIngredients(ingredients []models.Ingredient, ve *ValidationError) {
	for i, ing := range ingredients {
		if ing.Name == "" {
			ve.Add(fmt.Sprintf("ingredients.%d.name", i), "Each ingredient must have a name.")
		}
		if ing.Amount < 0 {
			ve.Add(fmt.Sprintf("ingredients.%d.amount", i), "Ingredient amount must be at least 0.")
		}
		if ing.Unit == "" {
			ve.Add(fmt.Sprintf("ingredients.%d.unit", i), "Each ingredient must have a unit.")
		}
	}
}

func validateSteps(steps []models.Step, ve *ValidationError) {
	for i, st := range steps {
		if st.Step < 1 {
			ve.Add(fmt.Sprintf("steps.%d.step", i), "Step number must be at least 1.")
		}
		if st.Instruction == "" {
			ve.Add(fmt.Sprintf("steps.%d.instruction", i), "Each step must have instructions.")
		}
	}
}

func validateDifficulty(difficulty string, ve *ValidationError) {
	if difficulty != "" && !difficulties[difficulty] {
		ve.Add("difficulty", "Difficulty must be one of easy, medium or hard.")
	}
}
