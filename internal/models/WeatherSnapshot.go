package models

// WeatherSnapshot is the current-conditions record. It is replaced as a whole
// on every fetch.
type WeatherSnapshot struct {
	Temp        int       `json:"temp" example:"20"`
	Condition   Condition `json:"condition" swaggertype:"string" example:"clear"`
	Description string    `json:"description" example:"Чисте небо"`
	City        string    `json:"city" example:"Київ"`
	WindSpeed   int       `json:"wind_speed" example:"4"`
	Humidity    int       `json:"humidity" example:"65"`
	IsDay       bool      `json:"is_day" example:"true"`
}
