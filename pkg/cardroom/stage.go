package cardroom

import "encoding/json"

// Stage represents where a table is in the hand lifecycle
type Stage int

// constants for Stage
const (
	StageIdle Stage = iota
	StagePreFlop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StagePreFlop:
		return "preflop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	}

	return ""
}

// StageFromString returns the stage matching the name, if any
func StageFromString(name string) (Stage, bool) {
	for _, s := range []Stage{StageIdle, StagePreFlop, StageFlop, StageTurn, StageRiver, StageShowdown} {
		if s.String() == name {
			return s, true
		}
	}

	return 0, false
}

// IsBetting returns true for the four betting streets
func (s Stage) IsBetting() bool {
	return s == StagePreFlop || s == StageFlop || s == StageTurn || s == StageRiver
}

// MarshalJSON encodes JSON
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}
