package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shoplist/pkg/domain"
)

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quantity renders an entry's amounts: one "amount units" part per unit
// group, or the overridden total when the user set it by hand.
func quantity(e domain.Entry) string {
	if e.ManualOverride {
		return formatAmount(roundAmount(e.TotalAmount)) + warningStyle.Render(" (set)")
	}
	parts := make([]string, 0, len(e.UnitGroups))
	for _, g := range e.UnitGroups {
		p := formatAmount(roundAmount(g.Amount))
		if g.Units != "" {
			p += " " + g.Units
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " + ")
}

func roundAmount(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

func displayName(e domain.Entry) string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Name
}

func renderEntries(w io.Writer, entries []domain.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Shopping list is empty."))
		return
	}
	nameWidth := len("Ingredient")
	qtyWidth := len("Quantity")
	for _, e := range entries {
		nameWidth = max(nameWidth, lipgloss.Width(displayName(e)))
		qtyWidth = max(qtyWidth, lipgloss.Width(quantity(e)))
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth + 2)
	qtyCol := lipgloss.NewStyle().Width(qtyWidth + 2)

	fmt.Fprintln(w, titleStyle.Render(nameCol.Render("Ingredient")+qtyCol.Render("Quantity")+"Recipes"))
	for _, e := range entries {
		fmt.Fprintln(w, nameCol.Render(displayName(e))+qtyCol.Render(quantity(e))+mutedStyle.Render(strings.Join(e.Recipes, ", ")))
	}
}

func renderRecipes(w io.Writer, recipes []domain.Recipe) {
	for _, r := range recipes {
		fmt.Fprintf(w, "%s %s %s\n",
			mutedStyle.Render(fmt.Sprintf("%3d", r.ID)),
			titleStyle.Render(r.Name),
			mutedStyle.Render(fmt.Sprintf("(%s portions, %d ingredients)", formatAmount(r.Portions), len(r.Ingredients))),
		)
	}
}
