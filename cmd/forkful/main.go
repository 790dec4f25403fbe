// Package main provides the forkful binary entry point.
// Forkful is a terminal client for the food-review service: browse the
// catalog, post reviews, and manage the platform from the admin pages.
// The signed-in session is shared with every other forkful process on
// the machine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forkful/forkful-cli/internal/bootstrap"
)

const (
	Version = "0.1.0"
	appName = "forkful"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Food-review terminal client",
		Long: `Forkful is a terminal client for the food-review service.

Browse foods and reviews without signing in; post reviews and view your
profile once signed in. Admin accounts get the dashboard, catalog
management, review moderation, and the user list.

The session is shared across processes: sign in once and every forkful
command (and any concurrently running forkful watch) sees it.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newFoodsCmd(),
		newReviewsCmd(),
		newProfileCmd(),
		newAdminCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	}
}

// buildApp loads configuration and wires the application for one command
// invocation.
func buildApp() (*appContext, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := bootstrap.InitLogger(cfg.IsDev)

	app, err := bootstrap.BuildApp(cfg, logger)
	if err != nil {
		return nil, err
	}
	return newAppContext(app), nil
}
