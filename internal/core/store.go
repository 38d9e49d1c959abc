package core

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"shoplist/pkg/domain"
)

// entryStore is the ordered collection of consolidated entries. It is not
// safe for concurrent use; Service serializes access.
type entryStore struct {
	entries  []domain.Entry
	collator *collate.Collator
}

func newEntryStore(tag language.Tag) *entryStore {
	return &entryStore{collator: collate.New(tag)}
}

func (st *entryStore) index(name string) int {
	for i := range st.entries {
		if st.entries[i].Name == name {
			return i
		}
	}
	return -1
}

func (st *entryStore) removeAt(i int) {
	st.entries = slices.Delete(st.entries, i, i+1)
}

// less orders names by locale collation, falling back to byte order for
// names the collator considers equal.
func (st *entryStore) less(a, b string) bool {
	if c := st.collator.CompareString(a, b); c != 0 {
		return c < 0
	}
	return a < b
}

func (st *entryStore) sort() {
	slices.SortStableFunc(st.entries, func(a, b domain.Entry) int {
		switch {
		case st.less(a.Name, b.Name):
			return -1
		case st.less(b.Name, a.Name):
			return 1
		default:
			return 0
		}
	})
}

func (st *entryStore) snapshot() []domain.Entry {
	out := make([]domain.Entry, len(st.entries))
	for i, e := range st.entries {
		out[i] = e.Clone()
	}
	return out
}

// merge folds one contribution into the store. Matching is by normalized
// name, then by normalized units within the entry.
func (st *entryStore) merge(recipe string, ing domain.Ingredient) {
	name := domain.NormalizeName(ing.Name)
	units := domain.NormalizeUnits(ing.Units)

	i := st.index(name)
	if i < 0 {
		if ing.Amount <= 0 {
			return
		}
		st.entries = append(st.entries, domain.Entry{
			Name:        name,
			DisplayName: strings.TrimSpace(ing.Name),
			UnitGroups:  []domain.UnitGroup{{Amount: ing.Amount, Units: units}},
			TotalAmount: ing.Amount,
			Recipes:     []string{recipe},
		})
		return
	}

	e := &st.entries[i]
	if g := groupIndex(e.UnitGroups, units); g >= 0 {
		e.UnitGroups[g].Amount += ing.Amount
	} else {
		e.UnitGroups = append(e.UnitGroups, domain.UnitGroup{Amount: ing.Amount, Units: units})
	}
	e.TotalAmount = e.GroupTotal()
	e.ManualOverride = false
	e.Recipes = append(e.Recipes, recipe)
	if e.TotalAmount <= 0 {
		st.removeAt(i)
	}
}

// withdraw removes one occurrence of recipe from every entry it contributed
// to. Remaining amounts shrink by remaining/original contributor count, which
// assumes each contributor added an equal share.
func (st *entryStore) withdraw(recipe string) (changed, removed int) {
	kept := st.entries[:0]
	for _, e := range st.entries {
		at := slices.Index(e.Recipes, recipe)
		if at < 0 {
			kept = append(kept, e)
			continue
		}
		changed++
		before := len(e.Recipes)
		e.Recipes = slices.Delete(e.Recipes, at, at+1)
		if len(e.Recipes) == 0 {
			removed++
			continue
		}
		ratio := float64(len(e.Recipes)) / float64(before)
		e.TotalAmount *= ratio
		for g := range e.UnitGroups {
			e.UnitGroups[g].Amount *= ratio
		}
		if e.TotalAmount <= 0 {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	clear(st.entries[len(kept):])
	st.entries = kept
	return changed, removed
}

func (st *entryStore) remove(name string) bool {
	i := st.index(name)
	if i < 0 {
		return false
	}
	st.removeAt(i)
	return true
}

// setAmount overrides TotalAmount without touching unit groups. A
// non-positive amount removes the entry.
func (st *entryStore) setAmount(name string, amount float64) bool {
	i := st.index(name)
	if i < 0 {
		return false
	}
	if amount <= 0 {
		st.removeAt(i)
		return true
	}
	st.entries[i].TotalAmount = amount
	st.entries[i].ManualOverride = true
	return true
}

func (st *entryStore) reset(entries []domain.Entry) {
	st.entries = entries
	st.sort()
}

func groupIndex(groups []domain.UnitGroup, units string) int {
	for i := range groups {
		if groups[i].Units == units {
			return i
		}
	}
	return -1
}
