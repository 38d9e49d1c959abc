package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeScale(t *testing.T) {
	t.Parallel()

	r := Recipe{
		ID:       3,
		Name:     "Vegetable Soup",
		Portions: 6,
		Ingredients: []Ingredient{
			{Name: "Carrot", Amount: 2, Units: "medium"},
			{Name: "Vegetable Broth", Amount: 1, Units: "L"},
		},
	}

	scaled := r.Scale(3)
	require.Len(t, scaled, 2)
	assert.InDelta(t, 1.0, scaled[0].Amount, 1e-9)
	assert.InDelta(t, 0.5, scaled[1].Amount, 1e-9)
	assert.Equal(t, "medium", scaled[0].Units)

	// original untouched
	assert.Equal(t, 2.0, r.Ingredients[0].Amount)
}

func TestRecipeMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     float64
		selected float64
		want     float64
	}{
		{name: "double", base: 4, selected: 8, want: 2},
		{name: "half step", base: 4, selected: 2, want: 0.5},
		{name: "zero base scales one to one", base: 0, selected: 8, want: 1},
		{name: "zero selection scales one to one", base: 4, selected: 0, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := Recipe{Portions: tc.base}
			assert.InDelta(t, tc.want, r.Multiplier(tc.selected), 1e-9)
		})
	}
}
