package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"shoplist/pkg/domain"
)

// documentEntry is the persisted shape of one entry. Amount and Units keep the
// flat fields older documents used; Units mirrors the first unit group.
type documentEntry struct {
	Name           string             `json:"name"`
	DisplayName    string             `json:"displayName,omitempty"`
	Amount         float64            `json:"amount"`
	Units          string             `json:"units,omitempty"`
	UnitGroups     []domain.UnitGroup `json:"unitGroups,omitempty"`
	Recipes        []string           `json:"recipes"`
	ManualOverride bool               `json:"manualOverride,omitempty"`
}

// encodeDocument serializes the whole collection as a JSON array.
func encodeDocument(entries []domain.Entry) ([]byte, error) {
	docs := make([]documentEntry, 0, len(entries))
	for _, e := range entries {
		d := documentEntry{
			Name:           e.Name,
			DisplayName:    e.DisplayName,
			Amount:         e.TotalAmount,
			UnitGroups:     e.UnitGroups,
			Recipes:        e.Recipes,
			ManualOverride: e.ManualOverride,
		}
		if len(e.UnitGroups) > 0 {
			d.Units = e.UnitGroups[0].Units
		}
		if d.Recipes == nil {
			d.Recipes = []string{}
		}
		docs = append(docs, d)
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode shopping list: %w", err)
	}
	return b, nil
}

// decodeDocument parses a persisted document. Invalid JSON is an error; valid
// JSON is repaired into a collection that satisfies the entry invariants:
// keys are re-normalized, entries without contributors or quantities are
// dropped and duplicate names are folded together. The result is unsorted.
func decodeDocument(b []byte) ([]domain.Entry, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	var docs []documentEntry
	if err := json.Unmarshal(b, &docs); err != nil {
		return nil, fmt.Errorf("decode shopping list: %w", err)
	}

	entries := make([]domain.Entry, 0, len(docs))
	index := make(map[string]int, len(docs))
	for _, d := range docs {
		e, ok := entryFromDocument(d)
		if !ok {
			continue
		}
		if i, dup := index[e.Name]; dup {
			entries[i] = foldEntries(entries[i], e)
			continue
		}
		index[e.Name] = len(entries)
		entries = append(entries, e)
	}
	return entries, nil
}

func entryFromDocument(d documentEntry) (domain.Entry, bool) {
	name := domain.NormalizeName(d.Name)
	if name == "" {
		return domain.Entry{}, false
	}

	var groups []domain.UnitGroup
	for _, g := range d.UnitGroups {
		units := domain.NormalizeUnits(g.Units)
		if i := groupIndex(groups, units); i >= 0 {
			groups[i].Amount += g.Amount
			continue
		}
		groups = append(groups, domain.UnitGroup{Amount: g.Amount, Units: units})
	}
	if len(groups) == 0 && d.Amount > 0 {
		groups = []domain.UnitGroup{{Amount: d.Amount, Units: domain.NormalizeUnits(d.Units)}}
	}

	recipes := make([]string, 0, len(d.Recipes))
	for _, r := range d.Recipes {
		if r = domain.NormalizeName(r); r != "" {
			recipes = append(recipes, r)
		}
	}
	if len(groups) == 0 || len(recipes) == 0 {
		return domain.Entry{}, false
	}

	e := domain.Entry{
		Name:           name,
		DisplayName:    strings.TrimSpace(d.DisplayName),
		UnitGroups:     groups,
		Recipes:        recipes,
		ManualOverride: d.ManualOverride,
	}
	if e.DisplayName == "" {
		e.DisplayName = strings.TrimSpace(d.Name)
	}
	if e.ManualOverride {
		e.TotalAmount = d.Amount
	} else {
		e.TotalAmount = e.GroupTotal()
	}
	if e.TotalAmount <= 0 {
		return domain.Entry{}, false
	}
	return e, true
}

func foldEntries(into, from domain.Entry) domain.Entry {
	for _, g := range from.UnitGroups {
		if i := groupIndex(into.UnitGroups, g.Units); i >= 0 {
			into.UnitGroups[i].Amount += g.Amount
			continue
		}
		into.UnitGroups = append(into.UnitGroups, g)
	}
	into.Recipes = append(into.Recipes, from.Recipes...)
	into.TotalAmount = into.GroupTotal()
	into.ManualOverride = false
	return into
}
