package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/planejamais/planeja_mais/internal/dashboard"
	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transacoes"},
		Short:   "List and manage transactions",
	}
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txEditCmd())
	cmd.AddCommand(txDeleteCmd())
	cmd.AddCommand(txTotalCmd())
	return cmd
}

// listPatches turns the list flags into the toggles the search box would emit.
func listPatches(categories, types []string, lo, hi *float64) ([]ledger.FilterPatch, error) {
	var patches []ledger.FilterPatch
	for _, c := range categories {
		if p, ok := dashboard.BuildSearch(dashboard.SearchCategory, c, nil, nil); ok {
			patches = append(patches, p)
		}
	}
	for _, t := range types {
		p, ok := dashboard.BuildSearch(dashboard.SearchType, t, nil, nil)
		if !ok {
			return nil, fmt.Errorf("tipo inválido %q: use entrada ou saida", t)
		}
		patches = append(patches, p)
	}
	if lo != nil || hi != nil {
		p, ok := dashboard.BuildSearch(dashboard.SearchValue, "", lo, hi)
		if !ok {
			return nil, fmt.Errorf("faixa de valor inválida")
		}
		patches = append(patches, p)
	}
	return patches, nil
}

func optionalFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func txListCmd() *cobra.Command {
	var (
		categories []string
		types      []string
		all        bool
		page       int
		pageSize   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List this month's transactions, optionally filtered",
		Long: `List transactions of the current month. Filters combine: categories and
types match any of the given values, --min/--max bound the absolute value.

With --all the whole history is shown in pages instead. The index in the
first column is what edit and delete expect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patches, err := listPatches(categories, types, optionalFloat(cmd, "min"), optionalFloat(cmd, "max"))
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

			var rows []dashboard.Row
			if all {
				rows = a.session.Page(page-1, pageSize)
			} else {
				if err := a.applyPatches(ctx, patches); err != nil {
					return err
				}
				rows = a.session.Visible()
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, SubtleStyle.Render("Nenhuma transação encontrada."))
				return nil
			}
			if err := printRows(out, rows, time.Now()); err != nil {
				return err
			}

			s := a.session.Summary()
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%d de %d transações · %d entradas · %d saídas · total filtrado %s\n",
				s.FilteredCount, s.Count, s.Entradas, s.Saidas, money(ledger.FormatSigned(s.FilteredTotal)))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "category to match (repeatable)")
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "entrada or saida (repeatable)")
	cmd.Flags().Float64("min", 0, "minimum absolute value")
	cmd.Flags().Float64("max", 0, "maximum absolute value")
	cmd.Flags().BoolVar(&all, "all", false, "page through the whole history, ignoring filters")
	cmd.Flags().IntVar(&page, "page", 1, "page number with --all")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "rows per page with --all")
	return cmd
}

// printRows groups rows under their day label, newest list order preserved.
func printRows(out io.Writer, rows []dashboard.Row, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	lastGroup := ""
	for _, r := range rows {
		v := r.Display(now)
		if v.GroupLabel != lastGroup {
			if _, err := fmt.Fprintln(w, TitleStyle.Render(v.GroupLabel)); err != nil {
				return err
			}
			lastGroup = v.GroupLabel
		}
		if _, err := fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\n",
			r.Index,
			v.Description,
			strings.Join(v.Tags, ", "),
			amountStyle(r.Transaction).Render(money(v.Value)),
			SubtleStyle.Render(string(v.Icon)),
		); err != nil {
			return err
		}
	}
	return w.Flush()
}

func txInputFlags(cmd *cobra.Command, in *dashboard.TxInput, kind *string) {
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "description")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "category (defaults to the description)")
	cmd.Flags().StringVarP(&in.Value, "value", "v", "", `amount, e.g. "1.234,50"`)
	cmd.Flags().StringVarP(kind, "type", "t", "saida", "entrada or saida")
}

func parseKind(kind string) (ledger.TxType, error) {
	t, ok := ledger.ParseTypeKeyword(kind)
	if !ok {
		return "", fmt.Errorf("tipo inválido %q: use entrada ou saida", kind)
	}
	return t, nil
}

func txAddCmd() *cobra.Command {
	var (
		in   dashboard.TxInput
		kind string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseKind(kind)
			if err != nil {
				return err
			}
			in.Type = t

			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			created, err := a.session.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				SuccessStyle.Render("Transação criada:"), created.Description, ledger.FormatSigned(created.Amount))
			if !created.HasID() {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("A API não devolveu o id; edição e exclusão ficam disponíveis após recarregar."))
			}
			return nil
		},
	}
	txInputFlags(cmd, &in, &kind)
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("índice inválido %q", arg)
	}
	return i, nil
}

func txEditCmd() *cobra.Command {
	var (
		in   dashboard.TxInput
		kind string
	)
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit the transaction at index; omitted flags keep the current values",
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

			form, err := a.session.EditForm(index)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				form.Description = in.Description
			}
			if cmd.Flags().Changed("category") {
				form.Category = in.Category
			}
			if cmd.Flags().Changed("value") {
				form.Value = in.Value
			}
			if cmd.Flags().Changed("type") {
				if form.Type, err = parseKind(kind); err != nil {
					return err
				}
			}

			updated, err := a.session.Edit(ctx, index, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				SuccessStyle.Render("Transação atualizada:"), updated.Description, ledger.FormatSigned(updated.Amount))
			return nil
		},
	}
	txInputFlags(cmd, &in, &kind)
	return cmd
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete the transaction at index",
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
			if err := a.session.Delete(ctx, index); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Transação excluída."))
			return nil
		},
	}
}

func txTotalCmd() *cobra.Command {
	var (
		q          client.ExpenseQuery
		kind       string
		start, end string
	)
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Ask the API for the signed sum of matching transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if kind != "" {
				t, err := parseKind(kind)
				if err != nil {
					return err
				}
				q.Type = t
			}
			var err error
			if q.StartDate, err = parseDay(start, false); err != nil {
				return err
			}
			if q.EndDate, err = parseDay(end, true); err != nil {
				return err
			}
			if v := optionalFloat(cmd, "min"); v != nil {
				d := decimal.NewFromFloat(*v)
				q.MinValue = &d
			}
			if v := optionalFloat(cmd, "max"); v != nil {
				d := decimal.NewFromFloat(*v)
				q.MaxValue = &d
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireLogin(); err != nil {
				return err
			}
			total, err := a.api.AllValues(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), money(ledger.FormatSigned(total)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "category substring")
	cmd.Flags().StringVarP(&q.Description, "description", "d", "", "description substring")
	cmd.Flags().StringVarP(&kind, "type", "t", "", "entrada or saida")
	cmd.Flags().StringVar(&start, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().Float64("min", 0, "minimum absolute value")
	cmd.Flags().Float64("max", 0, "maximum absolute value")
	return cmd
}

// parseDay reads a local calendar day; endOfDay moves to its last instant.
func parseDay(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q: use AAAA-MM-DD", raw)
	}
	if endOfDay {
		d = d.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return &d, nil
}
