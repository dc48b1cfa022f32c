// Package theme maps weather conditions to their visual assets.
package theme

import "weather-display/internal/models"

const assetPrefix = "/assets/backgrounds/"

// UtilityBackground is shown behind the outage schedule pages.
const UtilityBackground = assetPrefix + "electric_utility_repair_background.png"

var backgrounds = [...]string{
	models.ConditionClear:    assetPrefix + "sunny_day_sky_background.png",
	models.ConditionOvercast: assetPrefix + "sunny_day_sky_background.png",
	models.ConditionRain:     assetPrefix + "rainy_weather_background.png",
	models.ConditionSnow:     assetPrefix + "snowy_weather_background.png",
	models.ConditionNight:    assetPrefix + "starry_night_sky_background.png",
	models.ConditionStorm:    assetPrefix + "rainy_weather_background.png",
}

var icons = [...]string{
	models.ConditionClear:    "sun",
	models.ConditionOvercast: "cloud",
	models.ConditionRain:     "cloud-drizzle",
	models.ConditionSnow:     "cloud-snow",
	models.ConditionNight:    "moon",
	models.ConditionStorm:    "cloud-lightning",
}

// Both tables must have exactly one entry per condition.
var (
	_ = [1]struct{}{}[len(backgrounds)-int(models.NumConditions)]
	_ = [1]struct{}{}[len(icons)-int(models.NumConditions)]
)

// Asset is the visual pairing for one condition.
type Asset struct {
	Condition  models.Condition `json:"condition"`
	Background string           `json:"background"`
	Icon       string           `json:"icon"`
}

func Background(c models.Condition) string {
	if !c.Valid() {
		return backgrounds[models.ConditionClear]
	}
	return backgrounds[c]
}

func Icon(c models.Condition) string {
	if !c.Valid() {
		return icons[models.ConditionClear]
	}
	return icons[c]
}

func For(c models.Condition) Asset {
	return Asset{Condition: c, Background: Background(c), Icon: Icon(c)}
}
