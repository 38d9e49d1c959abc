package domain

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError collects every problem found in caller-supplied input.
// The engine itself never validates; callers run these checks first.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// ValidateIngredients checks that a recipe name and an ingredient batch are
// fit to merge: non-blank names and finite, positive amounts.
func ValidateIngredients(recipeName string, ingredients []Ingredient) error {
	verr := &ValidationError{}
	if NormalizeName(recipeName) == "" {
		verr.add("recipe name is blank")
	}
	checkIngredients(verr, ingredients)
	return verr.orNil()
}

// ValidateRecipe checks a recipe definition before it enters a catalog.
func ValidateRecipe(r Recipe) error {
	verr := &ValidationError{}
	if NormalizeName(r.Name) == "" {
		verr.add("recipe %d: name is blank", r.ID)
	}
	if !ValidAmount(r.Portions) {
		verr.add("recipe %q: portions must be a positive number, got %v", r.Name, r.Portions)
	}
	checkIngredients(verr, r.Ingredients)
	return verr.orNil()
}

// ValidAmount reports whether v is finite and strictly positive.
func ValidAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func checkIngredients(verr *ValidationError, ingredients []Ingredient) {
	for i, ing := range ingredients {
		if NormalizeName(ing.Name) == "" {
			verr.add("ingredient %d: name is blank", i)
		}
		if !ValidAmount(ing.Amount) {
			verr.add("ingredient %d (%s): amount must be a positive number, got %v", i, ing.Name, ing.Amount)
		}
	}
}
