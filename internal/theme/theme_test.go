package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weather-display/internal/models"
)

func TestEveryConditionHasAssets(t *testing.T) {
	for _, c := range models.Conditions() {
		a := For(c)
		assert.NotEmpty(t, a.Background, c.String())
		assert.NotEmpty(t, a.Icon, c.String())
	}
}

func TestAssets(t *testing.T) {
	assert.Equal(t, "moon", Icon(models.ConditionNight))
	assert.Equal(t, "cloud-lightning", Icon(models.ConditionStorm))
	assert.Contains(t, Background(models.ConditionNight), "starry_night")
	assert.Contains(t, Background(models.ConditionSnow), "snowy")
	assert.NotEqual(t, UtilityBackground, Background(models.ConditionClear))
}

func TestInvalidConditionFallsBackToClear(t *testing.T) {
	assert.Equal(t, Icon(models.ConditionClear), Icon(models.NumConditions))
	assert.Equal(t, Background(models.ConditionClear), Background(models.Condition(200)))
}
