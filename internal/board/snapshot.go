package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown snapshot format")

// Snapshot is a point-in-time copy of a board's lists and cards.
type Snapshot struct {
	Lists []List
	Cards []Card
}

// The wire records follow the board provider's export field names. Optional
// values stay pointers so absence survives decoding.
type wireSnapshot struct {
	Lists []wireList `json:"lists" yaml:"lists"`
	Cards []wireCard `json:"cards" yaml:"cards"`
}

type wireList struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Closed bool    `json:"closed" yaml:"closed"`
	Pos    float64 `json:"pos" yaml:"pos"`
}

type wireLabel struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

type wireCard struct {
	ID               string          `json:"id" yaml:"id"`
	Name             string          `json:"name" yaml:"name"`
	Desc             string          `json:"desc" yaml:"desc"`
	IDList           string          `json:"idList" yaml:"idList"`
	Pos              float64         `json:"pos" yaml:"pos"`
	Due              *string         `json:"due" yaml:"due"`
	DueComplete      bool            `json:"dueComplete" yaml:"dueComplete"`
	Closed           bool            `json:"closed" yaml:"closed"`
	DateLastActivity string          `json:"dateLastActivity" yaml:"dateLastActivity"`
	Labels           []wireLabel     `json:"labels" yaml:"labels"`
	URL              string          `json:"url" yaml:"url"`
	ShortURL         string          `json:"shortUrl" yaml:"shortUrl"`
	Assignment       *wireAssignment `json:"assignment" yaml:"assignment"`
}

type wireAssignment struct {
	Construction *string `json:"construction" yaml:"construction"`
	System       *string `json:"system" yaml:"system"`
	Sales        *string `json:"sales" yaml:"sales"`
	Meeting      *string `json:"meeting" yaml:"meeting"`
	SystemType   *string `json:"systemType" yaml:"systemType"`
	Link         *string `json:"link" yaml:"link"`
	Memo1        *string `json:"memo1" yaml:"memo1"`
	Memo2        *string `json:"memo2" yaml:"memo2"`
	Memo3        *string `json:"memo3" yaml:"memo3"`
	Pinned       bool    `json:"pinned" yaml:"pinned"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// LoadSnapshot reads a snapshot file, choosing the decoder by extension.
func LoadSnapshot(path string) (Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Snapshot{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return DecodeSnapshot(f, format)
}

// DecodeSnapshot parses a snapshot. Archived cards are skipped.
func DecodeSnapshot(r io.Reader, format Format) (Snapshot, error) {
	var w wireSnapshot
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&w); err != nil {
			return Snapshot{}, fmt.Errorf("decode json snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&w); err != nil {
			return Snapshot{}, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return w.toSnapshot()
}

func (w wireSnapshot) toSnapshot() (Snapshot, error) {
	snap := Snapshot{
		Lists: make([]List, 0, len(w.Lists)),
		Cards: make([]Card, 0, len(w.Cards)),
	}
	seen := make(map[string]bool, len(w.Lists))
	for _, l := range w.Lists {
		if l.ID == "" {
			return Snapshot{}, errors.New("snapshot list without id")
		}
		if seen[l.ID] {
			return Snapshot{}, fmt.Errorf("duplicate list id %q", l.ID)
		}
		seen[l.ID] = true
		snap.Lists = append(snap.Lists, List(l))
	}
	for _, wc := range w.Cards {
		if wc.Closed {
			continue
		}
		c, err := wc.toCard()
		if err != nil {
			return Snapshot{}, fmt.Errorf("card %q: %w", wc.ID, err)
		}
		snap.Cards = append(snap.Cards, c)
	}
	return snap, nil
}

func (wc wireCard) toCard() (Card, error) {
	if wc.ID == "" {
		return Card{}, errors.New("missing id")
	}
	c := Card{
		ID:          wc.ID,
		Name:        wc.Name,
		Description: wc.Desc,
		ListID:      wc.IDList,
		Pos:         wc.Pos,
		DueComplete: wc.DueComplete,
		URL:         wc.URL,
		Labels:      make([]Label, len(wc.Labels)),
	}
	if c.URL == "" {
		c.URL = wc.ShortURL
	}
	for i, l := range wc.Labels {
		c.Labels[i] = Label(l)
	}
	if wc.Due != nil && *wc.Due != "" {
		t, err := parseTime(*wc.Due)
		if err != nil {
			return Card{}, fmt.Errorf("due: %w", err)
		}
		c.Due = &t
	}
	if wc.DateLastActivity != "" {
		t, err := parseTime(wc.DateLastActivity)
		if err != nil {
			return Card{}, fmt.Errorf("dateLastActivity: %w", err)
		}
		c.LastActivity = t
	}
	if a := wc.Assignment; a != nil {
		c.Assignment = &Assignment{
			Construction: a.Construction,
			System:       a.System,
			Sales:        a.Sales,
			Meeting:      a.Meeting,
			SystemType:   a.SystemType,
			Link:         a.Link,
			Memo1:        a.Memo1,
			Memo2:        a.Memo2,
			Memo3:        a.Memo3,
			Pinned:       a.Pinned,
		}
	}
	return c, nil
}

// parseTime accepts RFC 3339 timestamps and bare dates.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.UTC(), nil
}
