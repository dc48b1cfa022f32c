package models

// ForecastDay is one entry of the 7-day forecast.
type ForecastDay struct {
	Day        string    `json:"day" example:"Сьогодні"`
	Date       string    `json:"date" example:"2025-07-25"`
	Temp       int       `json:"temp" example:"27"`
	Condition  Condition `json:"condition" swaggertype:"string" example:"rain"`
	WindSpeed  int       `json:"wind_speed" example:"12"`
	PrecipProb int       `json:"precip_prob" example:"40"`
}

// WeatherReport is what the normalizer hands to callers: a snapshot plus the
// forecast in chronological order. A failed fetch yields a degraded report
// with an empty forecast.
type WeatherReport struct {
	Current  WeatherSnapshot `json:"current"`
	Forecast []ForecastDay   `json:"forecast"`
	Degraded bool            `json:"degraded"`
}
