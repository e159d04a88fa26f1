package main

import (
	"fmt"
	"time"

	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var (
		password string
		remember bool
		google   string
	)
	cmd := &cobra.Command{
		Use:   "login [usuario-ou-email]",
		Short: "Log in and store the session token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if google != "" {
				token, err := a.api.LoginWithGoogle(ctx, google)
				if err != nil {
					return &client.UserError{Message: client.LoginMessage(err), Err: err}
				}
				if err := a.tokens.Set(token, remember); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Login com Google realizado."))
				return nil
			}

			if len(args) == 0 || password == "" {
				return &client.UserError{Message: client.MsgFillAllFields}
			}
			if err := a.auth.Login(ctx, args[0], password, remember); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Login realizado."))
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().BoolVar(&remember, "remember", true, "keep the token after this terminal session")
	cmd.Flags().StringVar(&google, "google-id-token", "", "log in with a Google ID token instead")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var name, user, email, birthday, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; a confirmation link is sent by e-mail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			p := client.NewRegisterPayload(name, user, email, birthday, password, time.Now())
			msg, err := a.auth.Register(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(msg))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&user, "user", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "e-mail")
	cmd.Flags().StringVar(&birthday, "birthday", "", "birthday as YYYY-MM-DD")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	for _, f := range []string{"name", "user", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func confirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <token>",
		Short: "Activate the account with the token from the confirmation e-mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			token, err := a.auth.ConfirmAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if token != "" {
				if err := a.tokens.Set(token, true); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Conta confirmada."))
			return nil
		},
	}
}

func forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Send a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			msg, err := a.auth.ForgotPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(msg))
			return nil
		},
	}
}

func resetPasswordCmd() *cobra.Command {
	var password, confirm string
	cmd := &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Choose a new password with the token from the reset e-mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			msg, err := a.auth.ChangePassword(cmd.Context(), args[0], password, confirm)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(msg))
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "new password again")
	return cmd
}
