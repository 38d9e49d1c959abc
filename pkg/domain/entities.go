// Package domain defines the shopping list data model, the normalization rules
// used to key it, and the persistence contract backends implement.
package domain

// Ingredient is one scaled ingredient line supplied by a recipe. Amount is
// expected to be finite and positive; an empty Units means the ingredient is
// counted without a unit (e.g. "2 eggs").
type Ingredient struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Amount float64 `json:"amount" yaml:"amount" toml:"amount"`
	Units  string  `json:"units,omitempty" yaml:"units,omitempty" toml:"units,omitempty"`
}

// UnitGroup is a homogeneous quantity bucket within an Entry.
type UnitGroup struct {
	Amount float64 `json:"amount"`
	Units  string  `json:"units"`
}

// Entry is the consolidated shopping list record for one normalized
// ingredient name.
type Entry struct {
	// Name is the normalized ingredient name and the collection's primary key.
	Name string `json:"name"`
	// DisplayName is the trimmed name as first contributed.
	DisplayName string `json:"displayName"`
	// UnitGroups lists quantity buckets in the order they were introduced.
	UnitGroups []UnitGroup `json:"unitGroups"`
	// TotalAmount is the raw sum of UnitGroups, unless ManualOverride is set.
	TotalAmount float64 `json:"totalAmount"`
	// Recipes is a multiset of normalized recipe names, one per contribution.
	Recipes []string `json:"recipes"`
	// ManualOverride marks a TotalAmount set directly by the user that no
	// longer derives from UnitGroups.
	ManualOverride bool `json:"manualOverride"`
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	cp := e
	if e.UnitGroups != nil {
		cp.UnitGroups = make([]UnitGroup, len(e.UnitGroups))
		copy(cp.UnitGroups, e.UnitGroups)
	}
	if e.Recipes != nil {
		cp.Recipes = make([]string, len(e.Recipes))
		copy(cp.Recipes, e.Recipes)
	}
	return cp
}

// GroupTotal sums the entry's unit groups.
func (e Entry) GroupTotal() float64 {
	var total float64
	for _, g := range e.UnitGroups {
		total += g.Amount
	}
	return total
}

// ContributionCount returns how many times recipe (normalized) contributed.
func (e Entry) ContributionCount(recipe string) int {
	key := NormalizeName(recipe)
	n := 0
	for _, r := range e.Recipes {
		if r == key {
			n++
		}
	}
	return n
}
