package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondition_JSONUsesWireNames(t *testing.T) {
	snapshot := WeatherSnapshot{Temp: 20, Condition: ConditionStorm, City: "Київ"}

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"condition":"storm"`)

	var decoded WeatherSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ConditionStorm, decoded.Condition)
}

func TestCondition_RejectsUnknownValues(t *testing.T) {
	_, err := ParseCondition("sunny")
	assert.Error(t, err)

	_, err = json.Marshal(ForecastDay{Condition: NumConditions})
	assert.Error(t, err)

	assert.False(t, Condition(42).Valid())
	assert.Equal(t, "Condition(42)", Condition(42).String())
}

func TestConditions_AreClosedSet(t *testing.T) {
	all := Conditions()
	require.Len(t, all, 6)

	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{"clear", "overcast", "rain", "snow", "night", "storm"}, names)
}
