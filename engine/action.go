package engine

// Action is a player decision. Actions form a closed set; the round state
// machine matches them exhaustively.
type Action int

const (
	ActionStand Action = iota
	ActionHit
	ActionDouble
	ActionSplit
	ActionSurrender
	ActionTakeInsurance
	ActionSkipInsurance
)

// String returns the protocol string for an Action.
func (a Action) String() string {
	switch a {
	case ActionStand:
		return "stand"
	case ActionHit:
		return "hit"
	case ActionDouble:
		return "double"
	case ActionSplit:
		return "split"
	case ActionSurrender:
		return "surrender"
	case ActionTakeInsurance:
		return "take_insurance"
	case ActionSkipInsurance:
		return "skip_insurance"
	default:
		return "unknown"
	}
}

// ParseAction maps a protocol string to an Action. The second return is
// false for unknown input.
func ParseAction(s string) (Action, bool) {
	switch s {
	case "stand":
		return ActionStand, true
	case "hit":
		return ActionHit, true
	case "double":
		return ActionDouble, true
	case "split":
		return ActionSplit, true
	case "surrender":
		return ActionSurrender, true
	case "take_insurance":
		return ActionTakeInsurance, true
	case "skip_insurance":
		return ActionSkipInsurance, true
	default:
		return ActionStand, false
	}
}
