package cmd

import (
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/wakutore/internal/config"
	"github.com/sadopc/wakutore/internal/progression"
	"github.com/sadopc/wakutore/internal/store"
)

// appEnv is an opened database with the player's session loaded.
type appEnv struct {
	store    *store.Store
	sess     *progression.Session
	tunables store.Tunables
	log      *zap.Logger
	now      func() time.Time
}

// openApp opens the database and restores the session. The cleanup func
// writes a final checkpoint and closes the store.
func openApp(cfg *config.Config, log *zap.Logger, n progression.Notifier) (*appEnv, func(), error) {
	s, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	env, err := loadEnv(s, log, n)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := s.Checkpoint(env.sess, env.now()); err != nil {
			log.Error("final save", zap.Error(err))
		}
		if err := s.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}
	return env, cleanup, nil
}

func loadEnv(s *store.Store, log *zap.Logger, n progression.Notifier) (*appEnv, error) {
	t, err := s.LoadTunables()
	if err != nil {
		return nil, err
	}
	engine := progression.NewDefaultEngine(t.Engine)
	st, ok, err := s.LoadProgression()
	if err != nil {
		return nil, err
	}
	if !ok {
		st = engine.NewState()
		log.Info("new player", zap.Int64("currency", st.Currency))
	}
	return &appEnv{
		store:    s,
		sess:     progression.NewSession(engine, st, n),
		tunables: t,
		log:      log,
		now:      time.Now,
	}, nil
}

// grantLoginBonus pays the first-login reward once ever and the daily login
// reward once per local calendar day.
func (e *appEnv) grantLoginBonus() error {
	first, newDay, err := e.store.RecordLogin(e.now().Format("2006-01-02"))
	if err != nil {
		return err
	}
	switch {
	case first:
		return e.sess.RewardAction(progression.ActionFirstLogin)
	case newDay:
		return e.sess.RewardAction(progression.ActionLogin)
	}
	return nil
}
