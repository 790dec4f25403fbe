package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	domainauth "github.com/forkful/forkful-cli/internal/domain/auth"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow session changes made by other processes",
		Long: `Watch prints a line whenever the shared session changes, whether the
change came from this machine's other forkful processes or from this
one. Sign in or out in another terminal to see it. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if sess, ok := a.app.Sessions.Get(ctx); ok {
				fmt.Fprintf(out, "%s signed in as %s\n", timestamp(), sess.Identity.Name)
			} else {
				fmt.Fprintf(out, "%s not signed in\n", timestamp())
			}

			unsubscribe := a.app.Sessions.OnChange(func(sess *domainauth.Session) {
				if sess == nil {
					fmt.Fprintf(out, "%s signed out\n", timestamp())
					return
				}
				fmt.Fprintf(out, "%s signed in as %s (%s)\n", timestamp(), sess.Identity.Name, sess.Identity.Role)
			})
			defer unsubscribe()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return a.app.Sessions.Sync(ctx, a.app.Watcher)
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
