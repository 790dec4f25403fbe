package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-cli/internal/domain/model"
)

func newReviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Post a review",
	}
	cmd.AddCommand(newReviewAddCmd())
	return cmd
}

func newReviewAddCmd() *cobra.Command {
	var (
		rating  int
		comment string
	)

	cmd := &cobra.Command{
		Use:   "add <food-id>",
		Short: "Review a food as the signed-in user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			page, err := a.visit(cmd, pageReviewNew)
			if err != nil {
				return err
			}
			if page != pageReviewNew {
				// Sign-in failed or was redirected; nothing to post.
				return nil
			}

			review, err := a.app.API.CreateReview(cmd.Context(), model.CreateReviewRequest{
				FoodID:  args[0],
				Rating:  rating,
				Comment: comment,
			})
			if err != nil {
				return describeAuthError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted review %s: %d/5.\n", review.ID, review.Rating)
			return nil
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "Rating from 1 to 5 (required)")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "Optional comment")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your account and review activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			page, err := a.visit(cmd, pageProfile)
			if err != nil {
				return err
			}
			if page != pageProfile {
				return nil
			}

			profile, err := a.app.API.Profile(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:    %s\n", profile.Name)
			fmt.Fprintf(out, "Email:   %s\n", profile.Email)
			fmt.Fprintf(out, "Role:    %s\n", profile.Role)
			fmt.Fprintf(out, "Reviews: %d\n", profile.ReviewCount)
			if !profile.JoinedAt.IsZero() {
				fmt.Fprintf(out, "Joined:  %s\n", profile.JoinedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}
