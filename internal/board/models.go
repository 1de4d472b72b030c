package board

import "time"

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type List struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Closed bool    `json:"closed"`
	Pos    float64 `json:"pos"`
}

// Role is one of the four staff slots on an assignment.
type Role string

const (
	RoleConstruction Role = "construction"
	RoleSystem       Role = "system"
	RoleSales        Role = "sales"
	RoleMeeting      Role = "meeting"
)

var Roles = []Role{RoleConstruction, RoleSystem, RoleSales, RoleMeeting}

func (r Role) Label() string {
	switch r {
	case RoleConstruction:
		return "構築"
	case RoleSystem:
		return "システム"
	case RoleSales:
		return "商談"
	case RoleMeeting:
		return "MTG"
	}
	return string(r)
}

// Assignment is the locally stored metadata layered on a card. Every field
// is optional; an absent value never matches a filter.
type Assignment struct {
	Construction *string    `json:"construction,omitempty"`
	System       *string    `json:"system,omitempty"`
	Sales        *string    `json:"sales,omitempty"`
	Meeting      *string    `json:"meeting,omitempty"`
	SystemType   *string    `json:"system_type,omitempty"`
	Link         *string    `json:"link,omitempty"`
	Memo1        *string    `json:"memo1,omitempty"`
	Memo2        *string    `json:"memo2,omitempty"`
	Memo3        *string    `json:"memo3,omitempty"`
	Pinned       bool       `json:"pinned"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Staff returns the value held for role, nil when unset.
func (a *Assignment) Staff(r Role) *string {
	if a == nil {
		return nil
	}
	switch r {
	case RoleConstruction:
		return a.Construction
	case RoleSystem:
		return a.System
	case RoleSales:
		return a.Sales
	case RoleMeeting:
		return a.Meeting
	}
	return nil
}

// SetStaff assigns name to role. An empty name clears the slot.
func (a *Assignment) SetStaff(r Role, name string) {
	var v *string
	if name != "" {
		v = &name
	}
	switch r {
	case RoleConstruction:
		a.Construction = v
	case RoleSystem:
		a.System = v
	case RoleSales:
		a.Sales = v
	case RoleMeeting:
		a.Meeting = v
	}
}

type Card struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	ListID       string      `json:"list_id"`
	Pos          float64     `json:"pos"`
	Due          *time.Time  `json:"due,omitempty"`
	DueComplete  bool        `json:"due_complete"`
	Labels       []Label     `json:"labels"`
	LastActivity time.Time   `json:"last_activity"`
	URL          string      `json:"url,omitempty"`
	Assignment   *Assignment `json:"assignment,omitempty"`
}

// Pinned reports whether the card carries a pinned assignment.
func (c Card) Pinned() bool {
	return c.Assignment != nil && c.Assignment.Pinned
}

// SystemType returns the assigned system type, "" when absent.
func (c Card) SystemType() string {
	if c.Assignment == nil || c.Assignment.SystemType == nil {
		return ""
	}
	return *c.Assignment.SystemType
}

// Overdue reports whether the due date has passed without completion.
func (c Card) Overdue(now time.Time) bool {
	return c.Due != nil && !c.DueComplete && c.Due.Before(now)
}

// Column is one rendered list with its cards in display order.
type Column struct {
	List  List
	Cards []Card
}

// StringOr dereferences p, returning def when nil.
func StringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
