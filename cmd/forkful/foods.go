package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFoodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foods [id]",
		Short: "Browse the food catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 1 {
				return showFood(cmd, a, args[0])
			}
			return listFoods(cmd, a)
		},
	}
	return cmd
}

func listFoods(cmd *cobra.Command, a *appContext) error {
	if _, err := a.visit(cmd, pageFoods); err != nil {
		return err
	}

	foods, err := a.app.API.ListFoods(cmd.Context())
	if err != nil {
		return err
	}
	if len(foods) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No foods yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRATING\tREVIEWS")
	for _, f := range foods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\n", f.ID, f.Name, f.Category, f.Rating, f.ReviewCount)
	}
	return w.Flush()
}

func showFood(cmd *cobra.Command, a *appContext, id string) error {
	if _, err := a.visit(cmd, pageFood); err != nil {
		return err
	}

	food, err := a.app.API.GetFood(cmd.Context(), id)
	if err != nil {
		return err
	}
	reviews, err := a.app.API.ListFoodReviews(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s", food.Name)
	if food.Category != "" {
		fmt.Fprintf(out, " (%s)", food.Category)
	}
	fmt.Fprintf(out, "\nRating: %.1f from %d reviews\n", food.Rating, food.ReviewCount)
	if food.Description != "" {
		fmt.Fprintf(out, "\n%s\n", food.Description)
	}

	if len(reviews) > 0 {
		fmt.Fprintln(out, "\nReviews:")
		for _, r := range reviews {
			name := r.UserName
			if name == "" {
				name = "anonymous"
			}
			fmt.Fprintf(out, "  %d/5 by %s", r.Rating, name)
			if r.Comment != "" {
				fmt.Fprintf(out, ": %s", r.Comment)
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}
