// Package recipes holds the recipe book callers scale and merge into the
// shopping list.
package recipes

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"shoplist/pkg/domain"
)

//go:embed default_recipes.yaml
var defaultBook []byte

// Format is a recipe book encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// book is the on-disk shape shared by every format.
type book struct {
	Recipes []domain.Recipe `json:"recipes" yaml:"recipes" toml:"recipes"`
}

// Catalog is an ordered, validated recipe book.
type Catalog struct {
	recipes []domain.Recipe
}

// New validates recipes and builds a catalog. Recipes without an id get the
// next free one; ids and normalized names must be unique.
func New(recipes []domain.Recipe) (*Catalog, error) {
	verr := &domain.ValidationError{}
	next := 1
	for _, r := range recipes {
		if r.ID >= next {
			next = r.ID + 1
		}
	}

	out := make([]domain.Recipe, 0, len(recipes))
	ids := make(map[int]bool, len(recipes))
	seen := make(map[string]bool, len(recipes))
	for _, r := range recipes {
		if err := domain.ValidateRecipe(r); err != nil {
			var rerr *domain.ValidationError
			if errors.As(err, &rerr) {
				verr.Problems = append(verr.Problems, rerr.Problems...)
			}
			continue
		}
		if r.ID <= 0 {
			r.ID = next
			next++
		}
		key := domain.NormalizeName(r.Name)
		if ids[r.ID] {
			verr.Problems = append(verr.Problems, fmt.Sprintf("recipe %q: duplicate id %d", r.Name, r.ID))
			continue
		}
		if seen[key] {
			verr.Problems = append(verr.Problems, fmt.Sprintf("recipe %q: duplicate name", r.Name))
			continue
		}
		ids[r.ID], seen[key] = true, true
		r.Ingredients = append([]domain.Ingredient(nil), r.Ingredients...)
		out = append(out, r)
	}
	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return &Catalog{recipes: out}, nil
}

// Default returns the built-in recipe book.
func Default() *Catalog {
	c, err := Parse(defaultBook, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded recipe book: %v", err))
	}
	return c
}

// Parse decodes a recipe book in the given format.
func Parse(data []byte, format Format) (*Catalog, error) {
	var b book
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &b)
	case FormatTOML:
		err = toml.Unmarshal(data, &b)
	case FormatJSON:
		err = json.Unmarshal(data, &b)
	default:
		return nil, fmt.Errorf("unsupported recipe book format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing recipe book %s: %w", strings.ToUpper(string(format)), err)
	}
	return New(b.Recipes)
}

// LoadFile reads a recipe book, inferring the format from the extension
// (.yaml, .yml, .toml or .json).
func LoadFile(path string) (*Catalog, error) {
	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe book: %w", err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func formatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported recipe book extension %q", filepath.Ext(path))
	}
}

// Recipes returns the catalog in book order.
func (c *Catalog) Recipes() []domain.Recipe {
	out := make([]domain.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Len returns the number of recipes.
func (c *Catalog) Len() int { return len(c.recipes) }

// Find looks a recipe up by numeric id or by case-insensitive name.
func (c *Catalog) Find(idOrName string) (domain.Recipe, bool) {
	if id, err := strconv.Atoi(strings.TrimSpace(idOrName)); err == nil {
		if r, ok := c.ByID(id); ok {
			return r, true
		}
	}
	key := domain.NormalizeName(idOrName)
	for _, r := range c.recipes {
		if domain.NormalizeName(r.Name) == key {
			return r, true
		}
	}
	return domain.Recipe{}, false
}

// ByID looks a recipe up by id.
func (c *Catalog) ByID(id int) (domain.Recipe, bool) {
	for _, r := range c.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Recipe{}, false
}
