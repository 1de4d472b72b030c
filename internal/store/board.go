package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/wakutore/internal/board"
)

const cardTimeLayout = time.RFC3339Nano

// ReplaceBoard swaps the stored lists and cards for snap. Assignments are
// keyed by card id and survive the swap; a snapshot assignment is only
// stored for cards that have none yet.
func (s *Store) ReplaceBoard(snap board.Snapshot) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM cards`); err != nil {
			return fmt.Errorf("clear cards: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM lists`); err != nil {
			return fmt.Errorf("clear lists: %w", err)
		}
		for _, l := range snap.Lists {
			_, err := tx.Exec(`INSERT INTO lists (id, name, closed, pos) VALUES (?, ?, ?, ?)`,
				l.ID, l.Name, boolInt(l.Closed), l.Pos)
			if err != nil {
				return fmt.Errorf("insert list %q: %w", l.ID, err)
			}
		}
		for i, c := range snap.Cards {
			labels, err := json.Marshal(c.Labels)
			if err != nil {
				return fmt.Errorf("encode labels for %q: %w", c.ID, err)
			}
			var due *string
			if c.Due != nil {
				v := c.Due.UTC().Format(cardTimeLayout)
				due = &v
			}
			_, err = tx.Exec(
				`INSERT INTO cards (id, seq, list_id, name, description, pos, due, due_complete, labels, last_activity, url)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				c.ID, i, c.ListID, c.Name, c.Description, c.Pos, due, boolInt(c.DueComplete),
				string(labels), c.LastActivity.UTC().Format(cardTimeLayout), c.URL,
			)
			if err != nil {
				return fmt.Errorf("insert card %q: %w", c.ID, err)
			}
			if a := c.Assignment; a != nil {
				// local edits win over the snapshot
				_, err = tx.Exec(`
					INSERT INTO card_assignments
						(card_id, construction, system, sales, meeting, system_type, link, memo1, memo2, memo3, is_pinned)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
					ON CONFLICT(card_id) DO NOTHING`,
					c.ID, a.Construction, a.System, a.Sales, a.Meeting, a.SystemType,
					a.Link, a.Memo1, a.Memo2, a.Memo3, boolInt(a.Pinned),
				)
				if err != nil {
					return fmt.Errorf("seed assignment %q: %w", c.ID, err)
				}
			}
		}
		return nil
	})
}

func (s *Store) ListLists() ([]board.List, error) {
	rows, err := s.db.Query(`SELECT id, name, closed, pos FROM lists ORDER BY pos, id`)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []board.List
	for rows.Next() {
		var l board.List
		var closed int
		if err := rows.Scan(&l.ID, &l.Name, &closed, &l.Pos); err != nil {
			return nil, err
		}
		l.Closed = closed == 1
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

const assignmentColumns = `a.card_id, a.construction, a.system, a.sales, a.meeting, a.system_type,
	a.link, a.memo1, a.memo2, a.memo3, a.is_pinned, a.updated_at`

// ListCards returns the cards in snapshot order with their assignments.
func (s *Store) ListCards() ([]board.Card, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.list_id, c.name, c.description, c.pos, c.due, c.due_complete,
		       c.labels, c.last_activity, c.url, ` + assignmentColumns + `
		FROM cards c
		LEFT JOIN card_assignments a ON a.card_id = c.id
		ORDER BY c.seq`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []board.Card
	for rows.Next() {
		var c board.Card
		var due sql.NullString
		var dueComplete int
		var labels, lastActivity string
		var ar assignmentRow
		dest := append([]any{&c.ID, &c.ListID, &c.Name, &c.Description, &c.Pos, &due, &dueComplete,
			&labels, &lastActivity, &c.URL}, ar.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		c.DueComplete = dueComplete == 1
		if due.Valid {
			t, _ := time.Parse(cardTimeLayout, due.String)
			c.Due = &t
		}
		c.LastActivity, _ = time.Parse(cardTimeLayout, lastActivity)
		if err := json.Unmarshal([]byte(labels), &c.Labels); err != nil {
			return nil, fmt.Errorf("decode labels for %q: %w", c.ID, err)
		}
		c.Assignment = ar.assignment()
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetAssignment returns the stored assignment for a card, nil when none.
func (s *Store) GetAssignment(cardID string) (*board.Assignment, error) {
	var ar assignmentRow
	err := s.db.QueryRow(`SELECT `+assignmentColumns+` FROM card_assignments a WHERE a.card_id = ?`, cardID).
		Scan(ar.dest()...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment %q: %w", cardID, err)
	}
	return ar.assignment(), nil
}

// SetAssignment upserts the full assignment for a card.
func (s *Store) SetAssignment(cardID string, a board.Assignment) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO card_assignments
			(card_id, construction, system, sales, meeting, system_type, link, memo1, memo2, memo3, is_pinned, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(card_id) DO UPDATE SET
			construction = excluded.construction,
			system       = excluded.system,
			sales        = excluded.sales,
			meeting      = excluded.meeting,
			system_type  = excluded.system_type,
			link         = excluded.link,
			memo1        = excluded.memo1,
			memo2        = excluded.memo2,
			memo3        = excluded.memo3,
			is_pinned    = excluded.is_pinned,
			updated_at   = excluded.updated_at`,
		cardID, a.Construction, a.System, a.Sales, a.Meeting, a.SystemType,
		a.Link, a.Memo1, a.Memo2, a.Memo3, boolInt(a.Pinned), now,
	)
	if err != nil {
		return fmt.Errorf("set assignment %q: %w", cardID, err)
	}
	return nil
}

// SetPinned flips only the pin flag, creating an empty assignment if needed.
func (s *Store) SetPinned(cardID string, pinned bool) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO card_assignments (card_id, is_pinned, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(card_id) DO UPDATE SET is_pinned = excluded.is_pinned, updated_at = excluded.updated_at`,
		cardID, boolInt(pinned), now,
	)
	if err != nil {
		return fmt.Errorf("set pinned %q: %w", cardID, err)
	}
	return nil
}

// assignmentRow scans the nullable assignment columns of a LEFT JOIN.
type assignmentRow struct {
	cardID                                sql.NullString
	construction, system, sales, meeting  sql.NullString
	systemType, link, memo1, memo2, memo3 sql.NullString
	pinned                                sql.NullInt64
	updatedAt                             sql.NullString
}

func (r *assignmentRow) dest() []any {
	return []any{&r.cardID, &r.construction, &r.system, &r.sales, &r.meeting, &r.systemType,
		&r.link, &r.memo1, &r.memo2, &r.memo3, &r.pinned, &r.updatedAt}
}

func (r *assignmentRow) assignment() *board.Assignment {
	if !r.cardID.Valid {
		return nil
	}
	a := &board.Assignment{
		Construction: nullString(r.construction),
		System:       nullString(r.system),
		Sales:        nullString(r.sales),
		Meeting:      nullString(r.meeting),
		SystemType:   nullString(r.systemType),
		Link:         nullString(r.link),
		Memo1:        nullString(r.memo1),
		Memo2:        nullString(r.memo2),
		Memo3:        nullString(r.memo3),
		Pinned:       r.pinned.Valid && r.pinned.Int64 == 1,
	}
	if r.updatedAt.Valid {
		t, _ := time.Parse(time.RFC3339, r.updatedAt.String)
		a.UpdatedAt = &t
	}
	return a
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
