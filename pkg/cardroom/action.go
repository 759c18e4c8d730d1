package cardroom

// ActionType is an action a player can take during a betting street
type ActionType string

// action constants
const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionBet   ActionType = "bet"
	ActionRaise ActionType = "raise"
)

var validActions = map[ActionType]bool{
	ActionFold:  true,
	ActionCheck: true,
	ActionCall:  true,
	ActionBet:   true,
	ActionRaise: true,
}

// ActionFromString parses an action name
func ActionFromString(name string) (ActionType, error) {
	action := ActionType(name)
	if !validActions[action] {
		return "", validationError("%s is not a valid action", name)
	}

	return action, nil
}
