package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/wakutore/internal/logging"
	"github.com/sadopc/wakutore/internal/progression"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C63FF"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Width(14)
)

func labelValue(label string, v any) string {
	return labelStyle.Render(label) + fmt.Sprint(v)
}

func newStatusCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show rank, XP and coins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := openApp(g.cfg, g.log, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			st := env.sess.Snapshot()
			eng := env.sess.Engine()
			ranks := eng.Ranks()
			idx := eng.RankIndex(st.TotalXP)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headingStyle.Render("Player status"))
			fmt.Fprintln(out, labelValue("Rank", fmt.Sprintf("%s (%d/%d)", ranks.At(idx).Name, idx+1, ranks.Len())))
			fmt.Fprintln(out, labelValue("Total XP", strconv.FormatFloat(st.TotalXP, 'f', -1, 64)))
			if toNext := eng.XPToNextRank(st.TotalXP); toNext > 0 {
				fmt.Fprintln(out, labelValue("Next rank", fmt.Sprintf("%s in %s XP",
					ranks.At(idx+1).Name, strconv.FormatFloat(toNext, 'f', -1, 64))))
			} else {
				fmt.Fprintln(out, labelValue("Next rank", "max rank reached"))
			}
			fmt.Fprintln(out, labelValue("Coins", st.Currency))
			fmt.Fprintln(out, labelValue("Click power", st.ClickPower))
			fmt.Fprintln(out, labelValue("Idle XP/s", strconv.FormatFloat(st.AutoRatePerSecond, 'f', -1, 64)))

			owned := 0
			for _, n := range st.Owned {
				owned += n
			}
			fmt.Fprintln(out, labelValue("Upgrades", owned))
			return nil
		},
	}
}

func newShopCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List upgrades with their next price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := openApp(g.cfg, g.log, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			st := env.sess.Snapshot()
			eng := env.sess.Engine()
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Name", "Effect", "Owned", "Next cost")
			for _, u := range eng.Catalog().Items() {
				owned := st.OwnedCount(u.ID)
				price := "sold out"
				if !u.Unique || owned == 0 {
					cost, err := eng.NextCost(st, u.ID)
					if err != nil {
						return err
					}
					price = strconv.FormatInt(cost, 10)
				}
				t.Row(u.ID, u.Name, effectLabel(u.Effect), strconv.Itoa(owned), price)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			fmt.Fprintln(cmd.OutOrStdout(), labelValue("Coins", st.Currency))
			return nil
		},
	}
	cmd.AddCommand(newBuyCmd(g))
	return cmd
}

func newBuyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <upgrade-id>",
		Short: "Buy one copy of an upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := openApp(g.cfg, g.log, logging.NewEventLogger(g.log))
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := env.sess.Purchase(args[0])
			if err != nil {
				return err
			}
			if res != progression.Purchased {
				return fmt.Errorf("%s: %s", args[0], res)
			}
			u, _ := env.sess.Engine().Catalog().Lookup(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Bought %s, %d coins left\n", u.Name, env.sess.Snapshot().Currency)
			return nil
		},
	}
}

func effectLabel(e progression.Effect) string {
	v := strconv.FormatFloat(e.Amount, 'f', -1, 64)
	if e.Kind == progression.EffectAuto {
		return "+" + v + " XP/s"
	}
	return "+" + v + " /click"
}
