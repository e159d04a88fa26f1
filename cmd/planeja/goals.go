package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/spf13/cobra"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"metas"},
		Short:   "Follow and create savings goals",
		RunE:    runGoalsList,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every goal with its progress",
		Args:  cobra.NoArgs,
		RunE:  runGoalsList,
	})
	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsEditCmd())
	cmd.AddCommand(goalsDeleteCmd())
	return cmd
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.loadSession(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	progress := a.session.GoalProgress()
	if len(progress) == 0 {
		fmt.Fprintln(out, SubtleStyle.Render("Nenhuma meta cadastrada. Use 'planeja goals add'."))
		return nil
	}

	total, annual, monthly := a.session.GoalCounts()
	fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("%d metas (%d anuais, %d mensais)", total, annual, monthly)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tMeta\tPeríodo\tAlvo\tGuardado\tFalta\t%")
	for i, p := range progress {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d%%\n",
			i,
			p.Title,
			ledger.PeriodDescription(p.Goal.Month, p.Goal.Year),
			money(ledger.FormatUnsigned(p.Goal.Target)),
			money(ledger.FormatUnsigned(p.Saved)),
			money(ledger.FormatUnsigned(p.Remaining)),
			p.Percent,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, SubtleStyle.Render("Para guardar para uma meta, use a categoria com o título ou "+ledger.GoalToken(progress[0].Goal)+"."))
	return nil
}

func goalsAddCmd() *cobra.Command {
	var in ledger.GoalInput
	cmd := &cobra.Command{
		Use:   "add <titulo>",
		Short: "Create a monthly or annual goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.loadSession(cmd.Context()); err != nil {
				return err
			}
			goal, err := a.session.CreateGoal(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) · alvo %s\n",
				SuccessStyle.Render("Meta criada:"), goal.DisplayTitle(),
				ledger.PeriodDescription(goal.Month, goal.Year), money(ledger.FormatUnsigned(goal.Target)))
			return nil
		},
	}
	now := time.Now()
	cmd.Flags().IntVar(&in.Year, "year", now.Year(), "year")
	cmd.Flags().IntVar(&in.Month, "month", int(now.Month()), "month, 1 to 12")
	cmd.Flags().BoolVar(&in.Annual, "annual", false, "goal for the whole year")
	cmd.Flags().Float64Var(&in.Target, "target", 0, "amount to save")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func goalsEditCmd() *cobra.Command {
	var in ledger.GoalInput
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit the goal at index; omitted flags keep the current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.loadSession(ctx); err != nil {
				return err
			}

			form, err := a.session.GoalForm(index)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				form.Title = in.Title
			}
			if flags.Changed("year") {
				form.Year = in.Year
			}
			if flags.Changed("month") {
				form.Month = in.Month
				form.Annual = false
			}
			if flags.Changed("annual") {
				form.Annual = in.Annual
			}
			if flags.Changed("target") {
				form.Target = in.Target
			}

			goal, err := a.session.UpdateGoal(ctx, index, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) · alvo %s\n",
				SuccessStyle.Render("Meta atualizada:"), goal.DisplayTitle(),
				ledger.PeriodDescription(goal.Month, goal.Year), money(ledger.FormatUnsigned(goal.Target)))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "title")
	cmd.Flags().IntVar(&in.Year, "year", 0, "year")
	cmd.Flags().IntVar(&in.Month, "month", 0, "month, 1 to 12")
	cmd.Flags().BoolVar(&in.Annual, "annual", false, "goal for the whole year")
	cmd.Flags().Float64Var(&in.Target, "target", 0, "amount to save")
	return cmd
}

func goalsDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the goal at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("refusing to delete goal %d without --yes", index)
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.loadSession(ctx); err != nil {
				return err
			}
			if err := a.session.DeleteGoal(ctx, index); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Meta excluída."))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}
