// Package cmd is the wakutore command line. The bare command opens the
// TUI; subcommands work on the same database without it.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sadopc/wakutore/internal/board"
	"github.com/sadopc/wakutore/internal/config"
	"github.com/sadopc/wakutore/internal/logging"
	"github.com/sadopc/wakutore/internal/tui"
)

const Version = "0.3.0"

// globals holds what PersistentPreRunE resolves for every subcommand.
type globals struct {
	configPath string
	dbPath     string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "wakutore",
		Short:         "Board triage with an idle RPG on the side",
		Long:          "wakutore shows a Kanban board snapshot with filters and assignments, and pays XP for working it.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.log != nil {
				_ = g.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}
	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.config/wakutore/config.yaml)")
	root.PersistentFlags().StringVar(&g.dbPath, "db", "", "database file, overrides the config")

	root.AddCommand(
		newImportCmd(g),
		newStatusCmd(g),
		newExportCmd(g),
		newShopCmd(g),
		newConfigCmd(g),
	)
	return root
}

func (g *globals) setup() error {
	path := g.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("locate config: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if g.dbPath != "" {
		cfg.DBPath = g.dbPath
	}
	g.configPath = path
	g.cfg = cfg

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	g.log = log
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, g *globals) error {
	feed := tui.NewEventFeed()
	env, cleanup, err := openApp(g.cfg, g.log, logging.Fanout{feed, logging.NewEventLogger(g.log)})
	if err != nil {
		return err
	}
	defer cleanup()

	if err := env.grantLoginBonus(); err != nil {
		g.log.Warn("login bonus", zap.Error(err))
	}

	filter, err := env.store.LoadFilter(board.FilterConfig{SortMode: env.tunables.DefaultSort})
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Store:            env.store,
		Session:          env.sess,
		Feed:             feed,
		Log:              g.log,
		Tunables:         env.tunables,
		Filter:           filter,
		Seed:             g.cfg.Seed,
		TickInterval:     g.cfg.TickInterval,
		AutosaveInterval: g.cfg.AutosaveInterval,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	g.log.Info("tui started", zap.String("db", g.cfg.DBPath))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
