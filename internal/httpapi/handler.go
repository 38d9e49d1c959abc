// Package httpapi exposes the shopping list over a JSON REST API.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shoplist/internal/core"
	"shoplist/internal/recipes"
	"shoplist/pkg/domain"
)

// Handler serves shopping list and recipe endpoints.
type Handler struct {
	svc     *core.Service
	catalog *recipes.Catalog
}

// NewHandler wires a handler to the engine and the recipe book used for
// portion-scaled merges.
func NewHandler(svc *core.Service, catalog *recipes.Catalog) *Handler {
	if catalog == nil {
		catalog = recipes.Default()
	}
	return &Handler{svc: svc, catalog: catalog}
}

type mergeRequest struct {
	Recipe      string              `json:"recipe"`
	RecipeID    int                 `json:"recipeId"`
	Portions    float64             `json:"portions"`
	Ingredients []domain.Ingredient `json:"ingredients"`
}

type amountRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) respondEntries(c *gin.Context, status int) {
	c.JSON(status, gin.H{"entries": h.svc.Entries()})
}

// GET /api/v1/shopping-list
func (h *Handler) ListEntries(c *gin.Context) {
	h.respondEntries(c, http.StatusOK)
}

// POST /api/v1/shopping-list/recipes
//
// Either an explicit, already-scaled ingredient batch for a named recipe, or a
// catalog recipe (by recipeId or recipe name) scaled to portions.
func (h *Handler) MergeRecipe(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	recipeName, ingredients := req.Recipe, req.Ingredients
	if len(req.Ingredients) == 0 {
		recipe, ok := h.lookup(req)
		if !ok {
			respondError(c, http.StatusNotFound, fmt.Errorf("recipe %q not found", describe(req)))
			return
		}
		if req.Portions != 0 && !domain.ValidAmount(req.Portions) {
			respondError(c, http.StatusBadRequest, fmt.Errorf("portions must be a positive number"))
			return
		}
		portions := req.Portions
		if portions == 0 {
			portions = recipe.Portions
		}
		recipeName, ingredients = recipe.Name, recipe.Scale(portions)
	}

	if err := domain.ValidateIngredients(recipeName, ingredients); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	h.svc.MergeRecipeIngredients(c.Request.Context(), recipeName, ingredients)
	h.respondEntries(c, http.StatusOK)
}

func (h *Handler) lookup(req mergeRequest) (domain.Recipe, bool) {
	if req.RecipeID > 0 {
		return h.catalog.ByID(req.RecipeID)
	}
	if req.Recipe != "" {
		return h.catalog.Find(req.Recipe)
	}
	return domain.Recipe{}, false
}

func describe(req mergeRequest) string {
	if req.RecipeID > 0 {
		return fmt.Sprint(req.RecipeID)
	}
	return req.Recipe
}

// DELETE /api/v1/shopping-list/recipes/:recipe
func (h *Handler) WithdrawRecipe(c *gin.Context) {
	recipe := c.Param("recipe")
	if domain.NormalizeName(recipe) == "" {
		respondError(c, http.StatusBadRequest, errors.New("recipe name is blank"))
		return
	}
	h.svc.WithdrawRecipeContribution(c.Request.Context(), recipe)
	h.respondEntries(c, http.StatusOK)
}

// DELETE /api/v1/shopping-list/entries/:name
func (h *Handler) RemoveEntry(c *gin.Context) {
	name := c.Param("name")
	if !h.svc.RemoveEntry(c.Request.Context(), name) {
		respondError(c, http.StatusNotFound, fmt.Errorf("entry %q not found", name))
		return
	}
	h.respondEntries(c, http.StatusOK)
}

// PUT /api/v1/shopping-list/entries/:name
func (h *Handler) SetAmount(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	// zero or negative removes the entry
	name := c.Param("name")
	if !h.svc.SetAbsoluteAmount(c.Request.Context(), name, *req.Amount) {
		respondError(c, http.StatusNotFound, fmt.Errorf("entry %q not found", name))
		return
	}
	h.respondEntries(c, http.StatusOK)
}

// DELETE /api/v1/shopping-list
func (h *Handler) Clear(c *gin.Context) {
	h.svc.ClearAll(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// GET /api/v1/recipes
func (h *Handler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recipes": h.catalog.Recipes()})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
