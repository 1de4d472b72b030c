package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/wakutore/internal/board"
	"github.com/sadopc/wakutore/internal/export"
	"github.com/sadopc/wakutore/internal/store"
)

func newImportCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot>",
		Short: "Replace the local board with a JSON or YAML snapshot",
		Long: "Replace the stored lists and cards with a board snapshot. " +
			"Assignments, pins and memos are kept for cards that still exist.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := board.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			s, err := store.New(g.cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ReplaceBoard(snap); err != nil {
				return err
			}
			g.log.Info("board imported",
				zap.String("file", args[0]),
				zap.Int("lists", len(snap.Lists)),
				zap.Int("cards", len(snap.Cards)))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d lists and %d cards from %s\n",
				len(snap.Lists), len(snap.Cards), filepath.Base(args[0]))
			return nil
		},
	}
}

func newExportCmd(g *globals) *cobra.Command {
	var (
		format string
		out    string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board as CSV or JSON using the saved filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if out == "" {
				out = fmt.Sprintf("wakutore-board-%s.%s", time.Now().Format("2006-01-02"), format)
			}

			s, err := store.New(g.cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			cols, err := filteredColumns(s, all)
			if err != nil {
				return err
			}
			if format == "csv" {
				err = export.ToCSV(cols, out)
			} else {
				err = export.ToJSON(cols, out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default wakutore-board-DATE.FORMAT)")
	cmd.Flags().BoolVar(&all, "all", false, "ignore the saved filter")
	return cmd
}

// filteredColumns reproduces the board view: the saved filter, or only the
// saved sort when all is set.
func filteredColumns(s *store.Store, all bool) ([]board.Column, error) {
	t, err := s.LoadTunables()
	if err != nil {
		return nil, err
	}
	f, err := s.LoadFilter(board.FilterConfig{SortMode: t.DefaultSort})
	if err != nil {
		return nil, err
	}
	if all {
		f = board.FilterConfig{SortMode: f.SortMode}
	}
	lists, err := s.ListLists()
	if err != nil {
		return nil, err
	}
	cards, err := s.ListCards()
	if err != nil {
		return nil, err
	}
	return board.View(cards, lists, f), nil
}
