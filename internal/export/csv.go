package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/wakutore/internal/board"
)

var csvHeader = []string{"List", "Position", "Card", "Due", "Done", "Labels", "Pinned",
	"Construction", "System", "Sales", "Meeting", "System type", "URL"}

// ToCSV writes one row per card, in column then display order.
func ToCSV(columns []board.Column, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, col := range columns {
		for i, c := range col.Cards {
			row := []string{
				col.List.Name,
				fmt.Sprintf("%d", i+1),
				c.Name,
				formatDue(c.Due),
				yesNo(c.DueComplete),
				labelNames(c.Labels),
				yesNo(c.Pinned()),
			}
			for _, r := range board.Roles {
				row = append(row, board.StringOr(c.Assignment.Staff(r), ""))
			}
			row = append(row, c.SystemType(), c.URL)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}

func labelNames(labels []board.Label) string {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
	}
	return strings.Join(names, "; ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
