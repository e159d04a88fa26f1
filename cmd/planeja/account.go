package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/spf13/cobra"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show or change your account",
		RunE:  runAccountShow,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the account profile",
		Args:  cobra.NoArgs,
		RunE:  runAccountShow,
	})
	cmd.AddCommand(accountUpdateCmd())
	cmd.AddCommand(accountDeleteCmd())
	return cmd
}

func runAccountShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	acc, err := a.api.MyAccount(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Nome\t%s\n", acc.Name)
	fmt.Fprintf(w, "Usuário\t%s\n", acc.User)
	fmt.Fprintf(w, "E-mail\t%s\n", acc.Email)
	if !acc.Birthday.IsZero() {
		fmt.Fprintf(w, "Nascimento\t%s\n", acc.Birthday.UTC().Format("02/01/2006"))
	}
	status := "ativa"
	if !acc.IsActive {
		status = "aguardando confirmação"
	}
	fmt.Fprintf(w, "Conta\t%s\n", status)
	return w.Flush()
}

func accountUpdateCmd() *cobra.Command {
	var (
		p        client.UpdatePayload
		birthday string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; changing the e-mail requires a new confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			if birthday != "" {
				b := client.BirthdayUTC(birthday, time.Now())
				p.Birthday = &b
			}
			acc, err := a.api.UpdateUser(cmd.Context(), p)
			if err != nil {
				return err
			}
			msg := "Conta atualizada."
			if !acc.IsActive {
				msg += " Confirme o novo e-mail para voltar a entrar."
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(msg))
			return nil
		},
	}
	cmd.Flags().StringVar(&p.Name, "name", "", "full name")
	cmd.Flags().StringVar(&p.User, "user", "", "username")
	cmd.Flags().StringVar(&p.Email, "email", "", "e-mail")
	cmd.Flags().StringVar(&birthday, "birthday", "", "birthday as YYYY-MM-DD")
	cmd.Flags().StringVarP(&p.PasswordHash, "password", "p", "", "new password")
	return cmd
}

func accountDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account with its transactions and goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete the account without --yes")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := a.api.DeleteUser(cmd.Context()); err != nil {
				return err
			}
			if err := a.tokens.Clear(); err != nil {
				a.logger.Warn("Failed to clear token", "error", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Conta excluída.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}
