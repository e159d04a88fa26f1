package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/spf13/cobra"
)

func homeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Balance, this month's savings and spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.loadSession(cmd.Context()); err != nil {
				return err
			}
			h := a.session.Home(a.target.Get())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Saldo\t%s\n", money(h.Balance))
			fmt.Fprintf(w, "Guardado no mês\t%s de %s (%d%%)\n", money(h.SavedThisMonth), money(h.MonthlyTarget), h.TargetPercent)
			fmt.Fprintf(w, "Gasto no mês\t%s\n", ErrorStyle.Render(money(h.SpentThisMonth)))
			return w.Flush()
		},
	}
	cmd.AddCommand(homeTargetCmd())
	return cmd
}

func homeTargetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "target <valor>",
		Short: "Set the monthly savings target shown on home",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, ok := ledger.ParseInput(args[0])
			if !ok || !amount.IsPositive() {
				return fmt.Errorf("valor inválido %q", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.target.Set(amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Meta mensal: %s\n", ledger.FormatUnsigned(amount))
			return nil
		},
	}
}
