package domain

// Recipe is a named ingredient list written for a base number of portions.
type Recipe struct {
	ID          int          `json:"id" yaml:"id" toml:"id"`
	Name        string       `json:"name" yaml:"name" toml:"name"`
	Portions    float64      `json:"portions" yaml:"portions" toml:"portions"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients" toml:"ingredients"`
}

// Multiplier returns selectedPortions / Portions. A recipe without a usable
// base portion count scales 1:1.
func (r Recipe) Multiplier(selectedPortions float64) float64 {
	if r.Portions <= 0 || selectedPortions <= 0 {
		return 1
	}
	return selectedPortions / r.Portions
}

// Scale returns a copy of the ingredient list with every amount multiplied by
// the portion multiplier. The recipe itself is not modified.
func (r Recipe) Scale(selectedPortions float64) []Ingredient {
	m := r.Multiplier(selectedPortions)
	out := make([]Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ing.Amount *= m
		out[i] = ing
	}
	return out
}
