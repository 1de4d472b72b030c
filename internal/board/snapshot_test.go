package board

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const jsonSnapshot = `{
  "lists": [
    {"id": "l1", "name": "営業中", "closed": false, "pos": 1},
    {"id": "l2", "name": "アーカイブ", "closed": true, "pos": 2}
  ],
  "cards": [
    {
      "id": "c1", "name": "A社 HP制作", "desc": "初回ヒアリング済み", "idList": "l1",
      "pos": 16384, "due": "2024-05-01T09:00:00.000Z", "dueComplete": false,
      "dateLastActivity": "2024-04-20T12:30:00Z",
      "labels": [{"id": "lb1", "name": "至急", "color": "red"}],
      "shortUrl": "https://example.invalid/c/c1"
    },
    {"id": "c2", "name": "closed card", "idList": "l1", "closed": true},
    {
      "id": "c3", "name": "B社 保守", "idList": "l1", "due": null,
      "dateLastActivity": "2024-04-18T00:00:00Z",
      "assignment": {"sales": "sato", "systemType": "web", "pinned": true}
    }
  ]
}`

const yamlSnapshot = `
lists:
  - id: l1
    name: 営業中
    pos: 1
cards:
  - id: c1
    name: A社 HP制作
    idList: l1
    due: 2024-05-01
    dateLastActivity: "2024-04-20T12:30:00Z"
    labels:
      - {id: lb1, name: 至急, color: red}
`

// ============================================================
// Decoding
// ============================================================

func TestDecodeSnapshotJSON(t *testing.T) {
	snap, err := DecodeSnapshot(strings.NewReader(jsonSnapshot), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Lists) != 2 {
		t.Fatalf("lists = %d, want 2", len(snap.Lists))
	}
	if diff := cmp.Diff([]string{"A社 HP制作", "B社 保守"}, names(snap.Cards)); diff != "" {
		t.Fatalf("closed card should be skipped (-want +got):\n%s", diff)
	}

	c1 := snap.Cards[0]
	if c1.Due == nil || c1.Due.Format("2006-01-02 15:04") != "2024-05-01 09:00" {
		t.Fatalf("due = %v", c1.Due)
	}
	if c1.URL != "https://example.invalid/c/c1" {
		t.Fatalf("url fallback = %q", c1.URL)
	}
	if c1.Assignment != nil {
		t.Fatal("card without assignment should decode to nil")
	}

	c3 := snap.Cards[1]
	if c3.Due != nil {
		t.Fatal("null due should stay nil")
	}
	if !c3.Pinned() || c3.SystemType() != "web" || StringOr(c3.Assignment.Sales, "") != "sato" {
		t.Fatalf("assignment = %+v", c3.Assignment)
	}
	if c3.Assignment.Construction != nil {
		t.Fatal("absent role should be nil")
	}
}

func TestDecodeSnapshotYAML(t *testing.T) {
	snap, err := DecodeSnapshot(strings.NewReader(yamlSnapshot), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Cards) != 1 {
		t.Fatalf("cards = %d", len(snap.Cards))
	}
	c := snap.Cards[0]
	if c.Due == nil || c.Due.Format("2006-01-02") != "2024-05-01" {
		t.Fatalf("due = %v", c.Due)
	}
	if len(c.Labels) != 1 || c.Labels[0].Name != "至急" {
		t.Fatalf("labels = %+v", c.Labels)
	}
}

func TestDecodeSnapshotErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"bad json", "{", FormatJSON},
		{"duplicate list", `{"lists":[{"id":"a"},{"id":"a"}]}`, FormatJSON},
		{"card without id", `{"cards":[{"name":"x"}]}`, FormatJSON},
		{"bad due", `{"cards":[{"id":"x","due":"tomorrow"}]}`, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSnapshot(strings.NewReader(tt.input), tt.format); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := DecodeSnapshot(strings.NewReader("{}"), "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadSnapshotByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yml")
	if err := os.WriteFile(path, []byte(yamlSnapshot), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Lists) != 1 {
		t.Fatalf("lists = %d", len(snap.Lists))
	}

	if _, err := LoadSnapshot(filepath.Join(dir, "board.txt")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
