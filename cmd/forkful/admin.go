package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-cli/internal/domain/model"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Platform administration",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()
			return adminDashboard(cmd, a)
		},
	}
	cmd.AddCommand(
		newAdminFoodsCmd(),
		newAdminReviewsCmd(),
		newAdminUsersCmd(),
	)
	return cmd
}

// visitAdmin enters an admin page and reports whether the visitor may
// stay. A non-admin is silently moved to the public landing page.
func visitAdmin(cmd *cobra.Command, a *appContext, page string) (bool, error) {
	landed, err := a.visit(cmd, page)
	if err != nil {
		return false, err
	}
	if landed != page {
		// Redirected away; show the landing page instead of erroring.
		if landed == pageHome {
			return false, listFoods(cmd, a)
		}
		return false, nil
	}
	return true, nil
}

func adminDashboard(cmd *cobra.Command, a *appContext) error {
	ok, err := visitAdmin(cmd, a, pageAdmin)
	if err != nil || !ok {
		return err
	}

	stats, err := a.app.API.Stats(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Users:          %d\n", stats.TotalUsers)
	fmt.Fprintf(out, "Foods:          %d\n", stats.TotalFoods)
	fmt.Fprintf(out, "Reviews:        %d\n", stats.TotalReviews)
	fmt.Fprintf(out, "Average rating: %.1f\n", stats.AverageRating)

	feed, err := a.app.API.RecentActivity(cmd.Context())
	if err != nil {
		return err
	}
	if len(feed) > 0 {
		fmt.Fprintln(out, "\nRecent activity:")
		for _, entry := range feed {
			fmt.Fprintf(out, "  %s  %s\n", entry.OccurredAt.Format("2006-01-02 15:04"), entry.Summary)
		}
	}
	return nil
}

func newAdminFoodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foods",
		Short: "Manage the food catalog",
	}
	cmd.AddCommand(newAdminFoodAddCmd(), newAdminFoodUpdateCmd(), newAdminFoodDeleteCmd())
	return cmd
}

func newAdminFoodAddCmd() *cobra.Command {
	var req model.CreateFoodRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := visitAdmin(cmd, a, pageAdminFoods)
			if err != nil || !ok {
				return err
			}

			food, err := a.app.API.CreateFood(cmd.Context(), req)
			if err != nil {
				return describeAuthError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s).\n", food.Name, food.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Food name (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	cmd.Flags().StringVar(&req.Category, "category", "", "Category")
	cmd.Flags().Float64Var(&req.Price, "price", 0, "Price")
	cmd.Flags().StringVar(&req.ImageURL, "image-url", "", "Image URL")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAdminFoodUpdateCmd() *cobra.Command {
	var (
		name        string
		description string
		category    string
		price       float64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a food",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := visitAdmin(cmd, a, pageAdminFoods)
			if err != nil || !ok {
				return err
			}

			// Only flags the caller set become part of the update.
			var req model.UpdateFoodRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("category") {
				req.Category = &category
			}
			if cmd.Flags().Changed("price") {
				req.Price = &price
			}

			food, err := a.app.API.UpdateFood(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", food.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Food name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().Float64Var(&price, "price", 0, "Price")
	return cmd
}

func newAdminFoodDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a food and its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := visitAdmin(cmd, a, pageAdminFoods)
			if err != nil || !ok {
				return err
			}

			if err := a.app.API.DeleteFood(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
			return nil
		},
	}
}

func newAdminReviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Moderate reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := visitAdmin(cmd, a, pageAdminReviews)
			if err != nil || !ok {
				return err
			}

			reviews, err := a.app.API.ListReviews(cmd.Context())
			if err != nil {
				return err
			}
			if len(reviews) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reviews.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFOOD\tUSER\tRATING\tCOMMENT")
			for _, r := range reviews {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.FoodID, r.UserName, r.Rating, r.Comment)
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := visitAdmin(cmd, a, pageAdminReviews)
			if err != nil || !ok {
				return err
			}

			if err := a.app.API.DeleteReview(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted review %s.\n", args[0])
			return nil
		},
	})
	return cmd
}

func newAdminUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ok, err := visitAdmin(cmd, a, pageAdminUsers)
			if err != nil || !ok {
				return err
			}

			users, err := a.app.API.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
			}
			return w.Flush()
		},
	}
}
