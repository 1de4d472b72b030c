package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/wakutore/internal/board"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Lists      []jsonColumn `json:"lists"`
}

type jsonColumn struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Cards []jsonCard `json:"cards"`
}

type jsonCard struct {
	ID         string            `json:"id"`
	Position   int               `json:"position"`
	Name       string            `json:"name"`
	Due        string            `json:"due,omitempty"`
	Done       bool              `json:"done"`
	Labels     []string          `json:"labels"`
	Pinned     bool              `json:"pinned"`
	Staff      map[string]string `json:"staff,omitempty"`
	SystemType string            `json:"system_type,omitempty"`
	URL        string            `json:"url,omitempty"`
}

// ToJSON writes the columns as an indented document.
func ToJSON(columns []board.Column, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Lists:      make([]jsonColumn, 0, len(columns)),
	}

	for _, col := range columns {
		jc := jsonColumn{ID: col.List.ID, Name: col.List.Name, Cards: make([]jsonCard, 0, len(col.Cards))}
		for i, c := range col.Cards {
			card := jsonCard{
				ID:         c.ID,
				Position:   i + 1,
				Name:       c.Name,
				Due:        formatDue(c.Due),
				Done:       c.DueComplete,
				Labels:     make([]string, len(c.Labels)),
				Pinned:     c.Pinned(),
				SystemType: c.SystemType(),
				URL:        c.URL,
			}
			for j, l := range c.Labels {
				card.Labels[j] = l.Name
			}
			for _, r := range board.Roles {
				if v := c.Assignment.Staff(r); v != nil && *v != "" {
					if card.Staff == nil {
						card.Staff = map[string]string{}
					}
					card.Staff[string(r)] = *v
				}
			}
			jc.Cards = append(jc.Cards, card)
		}
		export.Count += len(jc.Cards)
		export.Lists = append(export.Lists, jc)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
