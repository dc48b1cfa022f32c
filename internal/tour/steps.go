// Package tour drives the three-step onboarding walkthrough: which anchor is
// highlighted, where its tooltip goes, and when the walkthrough ends.
package tour

// Step is one stop of the walkthrough, pinned to a UI anchor id.
type Step struct {
	Target      string `json:"target"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var steps = [...]Step{
	{
		Target:      "button-location",
		Title:       "📍 Локація",
		Description: "Натисніть на назву міста, щоб змінити його або знайти своє поточне розташування.",
	},
	{
		Target:      "button-light-page",
		Title:       "💡 Графіки відключень",
		Description: "Натисніть на лампочку, щоб перевірити актуальні графіки відключень світла.",
	},
	{
		Target:      "forecast-list",
		Title:       "📅 Прогноз на тиждень",
		Description: "Прокрутіть вниз, щоб побачити детальний прогноз погоди на найближчі дні.",
	},
}

// NumSteps is the length of the walkthrough.
const NumSteps = len(steps)

// Steps returns a copy of the walkthrough in order.
func Steps() []Step {
	out := make([]Step, NumSteps)
	copy(out, steps[:])
	return out
}
