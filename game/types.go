package game

// Street is a betting round tied to a board stage.
type Street uint8

const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
)

func (s Street) String() string {
	switch s {
	case StreetPreflop:
		return "pre-flop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	}
	return "unknown"
}

// ActionKind enumerates the player actions accepted by the betting machine.
type ActionKind uint8

const (
	ActionFold ActionKind = iota
	ActionCheck
	ActionCall
	ActionRaise
)

func (a ActionKind) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionRaise:
		return "raise"
	}
	return "unknown"
}

// ParseActionKind maps the wire form of an action to its kind.
func ParseActionKind(s string) (ActionKind, bool) {
	switch s {
	case "fold":
		return ActionFold, true
	case "check":
		return ActionCheck, true
	case "call":
		return ActionCall, true
	case "raise":
		return ActionRaise, true
	}
	return 0, false
}
