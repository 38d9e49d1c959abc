package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"shoplist/pkg/domain"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the shopping list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(a *app) error {
				renderEntries(cmd.OutOrStdout(), a.svc.Entries())
				return nil
			})
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var portions float64
	cmd := &cobra.Command{
		Use:   "add <recipe>",
		Short: "Add a recipe's ingredients, scaled to a number of portions",
		Long: `Add a recipe from the recipe book by id or name. Ingredient amounts are
scaled by portions / recipe portions before being merged. Adding the same
recipe twice counts as two contributions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("portions") && !domain.ValidAmount(portions) {
				return fmt.Errorf("--portions must be a positive number")
			}
			return withApp(cmd, opts, func(a *app) error {
				recipe, ok := a.catalog.Find(args[0])
				if !ok {
					return fmt.Errorf("recipe %q not found (see 'shoplist recipes')", args[0])
				}
				selected := recipe.Portions
				if cmd.Flags().Changed("portions") {
					selected = portions
				}
				ingredients := recipe.Scale(selected)
				if err := domain.ValidateIngredients(recipe.Name, ingredients); err != nil {
					return err
				}
				a.svc.MergeRecipeIngredients(cmd.Context(), recipe.Name, ingredients)
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ ")+fmt.Sprintf("Added %s (%s portions)", recipe.Name, formatAmount(selected)))
				return nil
			})
		},
	}
	cmd.Flags().Float64VarP(&portions, "portions", "p", 0, "portions to shop for (default: the recipe's own)")
	return cmd
}

func newWithdrawCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "withdraw <recipe>",
		Aliases: []string{"rm-recipe"},
		Short:   "Withdraw one contribution of a recipe",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				name := args[0]
				if r, ok := a.catalog.Find(name); ok {
					name = r.Name
				}
				a.svc.WithdrawRecipeContribution(cmd.Context(), name)
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ ")+"Withdrew "+name)
				return nil
			})
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check <ingredient>",
		Aliases: []string{"remove"},
		Short:   "Check an ingredient off the list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if !a.svc.RemoveEntry(cmd.Context(), args[0]) {
					fmt.Fprintln(cmd.OutOrStdout(), warningStyle.Render(fmt.Sprintf("%q is not on the list", args[0])))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ ")+"Checked off "+args[0])
				return nil
			})
		},
	}
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <ingredient> <amount>",
		Short: "Override an ingredient's total amount (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			return withApp(cmd, opts, func(a *app) error {
				if !a.svc.SetAbsoluteAmount(cmd.Context(), args[0], amount) {
					return fmt.Errorf("%q is not on the list", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ ")+fmt.Sprintf("Set %s to %s", args[0], formatAmount(amount)))
				return nil
			})
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the shopping list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(a *app) error {
				a.svc.ClearAll(cmd.Context())
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ ")+"Shopping list cleared")
				return nil
			})
		},
	}
}

func newRecipesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the recipe book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, catalog, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			renderRecipes(cmd.OutOrStdout(), catalog.Recipes())
			return nil
		},
	}
}
