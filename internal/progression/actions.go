package progression

// Action is a board interaction that earns XP.
type Action string

const (
	ActionLogin      Action = "login"
	ActionFirstLogin Action = "first_login"
	ActionDailyBonus Action = "daily_bonus"
	ActionMove       Action = "move"
	ActionAssign     Action = "assign"
	ActionMemo       Action = "memo"
	ActionCreate     Action = "create"
	ActionComplete   Action = "complete"
	ActionPin        Action = "pin"
)

var actionRewards = map[Action]float64{
	ActionLogin:      50,
	ActionFirstLogin: 200,
	ActionDailyBonus: 50,
	ActionMove:       20,
	ActionAssign:     30,
	ActionMemo:       15,
	ActionCreate:     25,
	ActionComplete:   100,
	ActionPin:        10,
}

// ActionReward returns the XP granted for an action, false if unknown.
func ActionReward(a Action) (float64, bool) {
	xp, ok := actionRewards[a]
	return xp, ok
}
