package main

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/forkful/forkful-cli/internal/errors"
	"github.com/forkful/forkful-cli/internal/gateway"
)

func newLoginCmd() *cobra.Command {
	var (
		identifier string
		secret     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the food-review service",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			page, err := a.visit(cmd, pageLogin)
			if err != nil {
				return err
			}
			if page != pageLogin {
				// Already signed in; the guard moved us off the form.
				sess, _ := a.app.Sessions.Get(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "Already signed in as %s.\n", sess.Identity.Name)
				return nil
			}

			if identifier == "" || secret == "" {
				identity, promptErr := a.promptLogin(cmd)
				if promptErr != nil {
					return describeAuthError(promptErr)
				}
				a.guard.AfterLogin(cmd.Context(), identity)
				return nil
			}

			identity, err := a.app.Gateway.Login(cmd.Context(), identifier, secret)
			if err != nil {
				return describeAuthError(err)
			}
			a.guard.AfterLogin(cmd.Context(), identity)
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", identity.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifier, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&secret, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			page, err := a.visit(cmd, pageRegister)
			if err != nil {
				return err
			}
			if page != pageRegister {
				sess, _ := a.app.Sessions.Get(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "Already signed in as %s.\n", sess.Identity.Name)
				return nil
			}

			in, err := promptRegister(cmd)
			if err != nil {
				return err
			}
			identity, err := a.app.Gateway.Register(cmd.Context(), in)
			if err != nil {
				return describeAuthError(err)
			}
			a.guard.AfterLogin(cmd.Context(), identity)
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s. You are signed in.\n", identity.Name)
			return nil
		},
	}
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out everywhere on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.app.Gateway.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.Close()

			sess, ok := a.app.Sessions.Get(cmd.Context())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:  %s\n", sess.Identity.Name)
			fmt.Fprintf(out, "Email: %s\n", sess.Identity.Email)
			fmt.Fprintf(out, "Role:  %s\n", sess.Identity.Role)
			return nil
		},
	}
}

func promptRegister(cmd *cobra.Command) (gateway.RegisterInput, error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	read := func(label string) (string, error) {
		fmt.Fprint(out, label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	name, err := read("Name: ")
	if err != nil {
		return gateway.RegisterInput{}, err
	}
	identifier, err := read("Email: ")
	if err != nil {
		return gateway.RegisterInput{}, err
	}
	secret, err := read("Password: ")
	if err != nil {
		return gateway.RegisterInput{}, err
	}
	confirmation, err := read("Confirm password: ")
	if err != nil {
		return gateway.RegisterInput{}, err
	}

	return gateway.RegisterInput{
		Name:               strings.TrimSpace(name),
		Identifier:         strings.TrimSpace(identifier),
		Secret:             secret,
		SecretConfirmation: confirmation,
	}, nil
}

// describeAuthError turns field-level validation errors into a readable
// multi-line message; other errors pass through.
func describeAuthError(err error) error {
	fields := apperrors.FieldErrors(err)
	if len(fields) == 0 {
		return err
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("invalid input:")
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %s: %s", name, fields[name])
	}
	return fmt.Errorf("%s", b.String())
}
