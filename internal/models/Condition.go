package models

import "fmt"

// Condition is the closed weather vocabulary shared by every display
// component. Provider codes never travel past the normalizer.
type Condition uint8

const (
	ConditionClear Condition = iota
	ConditionOvercast
	ConditionRain
	ConditionSnow
	ConditionNight
	ConditionStorm

	// NumConditions sizes lookup tables indexed by Condition.
	NumConditions
)

var conditionNames = [NumConditions]string{
	ConditionClear:    "clear",
	ConditionOvercast: "overcast",
	ConditionRain:     "rain",
	ConditionSnow:     "snow",
	ConditionNight:    "night",
	ConditionStorm:    "storm",
}

func (c Condition) String() string {
	if c >= NumConditions {
		return fmt.Sprintf("Condition(%d)", uint8(c))
	}
	return conditionNames[c]
}

func (c Condition) Valid() bool {
	return c < NumConditions
}

func (c Condition) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid condition %d", uint8(c))
	}
	return []byte(conditionNames[c]), nil
}

func (c *Condition) UnmarshalText(text []byte) error {
	parsed, err := ParseCondition(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCondition accepts the wire name of a condition.
func ParseCondition(s string) (Condition, error) {
	for i, name := range conditionNames {
		if name == s {
			return Condition(i), nil
		}
	}
	return ConditionClear, fmt.Errorf("unknown condition %q", s)
}

// Conditions lists every condition in declaration order.
func Conditions() []Condition {
	all := make([]Condition, 0, NumConditions)
	for c := Condition(0); c < NumConditions; c++ {
		all = append(all, c)
	}
	return all
}
