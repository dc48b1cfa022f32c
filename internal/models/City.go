package models

// City is a geocoding match.
type City struct {
	Name string  `json:"name" example:"Львів"`
	Lat  float64 `json:"lat" example:"49.8397"`
	Lon  float64 `json:"lon" example:"24.0297"`
}
