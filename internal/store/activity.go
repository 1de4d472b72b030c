package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/wakutore/internal/progression"
)

// opTimeLayout has a fixed-width fraction so the text column sorts in time order.
const opTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// LogOperation appends an entry to the operation log and returns its id.
func (s *Store) LogOperation(cardID, action, detail string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO operation_logs (id, card_id, action, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, cardID, action, detail, time.Now().UTC().Format(opTimeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("log operation: %w", err)
	}
	return id, nil
}

// ListOperations returns the newest entries first. An empty cardID lists all.
func (s *Store) ListOperations(cardID string, limit int) ([]OperationLog, error) {
	query := `SELECT id, card_id, action, detail, created_at FROM operation_logs`
	var args []any
	if cardID != "" {
		query += ` WHERE card_id = ?`
		args = append(args, cardID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var logs []OperationLog
	for rows.Next() {
		var l OperationLog
		var createdAt string
		if err := rows.Scan(&l.ID, &l.CardID, &l.Action, &l.Detail, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// AddDailyXP adds per-source earnings to the bucket for day.
func (s *Store) AddDailyXP(day time.Time, earnings map[progression.Source]float64) error {
	date := day.Format("2006-01-02")
	return s.withTx(func(tx *sql.Tx) error {
		for src, xp := range earnings {
			if xp <= 0 {
				continue
			}
			_, err := tx.Exec(`
				INSERT INTO xp_daily (day, source, xp) VALUES (?, ?, ?)
				ON CONFLICT(day, source) DO UPDATE SET xp = xp + excluded.xp`,
				date, string(src), xp,
			)
			if err != nil {
				return fmt.Errorf("add daily xp: %w", err)
			}
		}
		return nil
	})
}

// DailyXPRange returns buckets for days in [from, to], oldest first.
func (s *Store) DailyXPRange(from, to time.Time) ([]DailyXP, error) {
	rows, err := s.db.Query(
		`SELECT day, source, xp FROM xp_daily WHERE day >= ? AND day <= ? ORDER BY day, source`,
		from.Format("2006-01-02"), to.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("daily xp: %w", err)
	}
	defer rows.Close()

	var out []DailyXP
	for rows.Next() {
		var d DailyXP
		if err := rows.Scan(&d.Date, &d.Source, &d.XP); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) RecordGacha(r GachaRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO gacha_history (prize_id, name, rarity, kind, amount, cost, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.PrizeID, r.Name, r.Rarity, r.Kind, r.Amount, r.Cost, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("record gacha: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) RecentGacha(limit int) ([]GachaRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, prize_id, name, rarity, kind, amount, cost, created_at FROM gacha_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent gacha: %w", err)
	}
	defer rows.Close()

	var out []GachaRecord
	for rows.Next() {
		var r GachaRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.PrizeID, &r.Name, &r.Rarity, &r.Kind, &r.Amount, &r.Cost, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) RecordBet(b BetRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO race_bets (id, race_id, bet_type, picks, stake, placed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.RaceID, b.Type, joinInts(b.Picks), b.Stake, b.PlacedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record bet: %w", err)
	}
	return nil
}

// SettleBet stores the payout and finishing order for a bet.
func (s *Store) SettleBet(id string, payout int64, finish []int) error {
	res, err := s.db.Exec(
		`UPDATE race_bets SET payout = ?, finish = ?, settled_at = ? WHERE id = ? AND payout IS NULL`,
		payout, joinInts(finish), time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("settle bet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("settle bet %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// RecentBets returns the newest bets first; pendingOnly restricts the result
// to unsettled ones. A limit <= 0 returns every match.
func (s *Store) RecentBets(limit int, pendingOnly bool) ([]BetRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, race_id, bet_type, picks, stake, payout, finish, placed_at, settled_at FROM race_bets`
	if pendingOnly {
		query += ` WHERE payout IS NULL`
	}
	query += ` ORDER BY placed_at DESC, rowid DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent bets: %w", err)
	}
	defer rows.Close()

	var out []BetRecord
	for rows.Next() {
		var b BetRecord
		var picks, finish, placedAt string
		var payout sql.NullInt64
		var settledAt sql.NullString
		if err := rows.Scan(&b.ID, &b.RaceID, &b.Type, &picks, &b.Stake, &payout, &finish, &placedAt, &settledAt); err != nil {
			return nil, err
		}
		b.Picks = splitInts(picks)
		b.Finish = splitInts(finish)
		if payout.Valid {
			b.Payout = &payout.Int64
		}
		b.PlacedAt, _ = time.Parse(time.RFC3339, placedAt)
		if settledAt.Valid {
			t, _ := time.Parse(time.RFC3339, settledAt.String)
			b.SettledAt = &t
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, p := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}
