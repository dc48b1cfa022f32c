package weather

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-display/internal/models"
	"weather-display/internal/repositories"
)

const (
	// FallbackCity labels the degraded snapshot.
	FallbackCity = "Київ"

	DescriptionFailed  = "Помилка оновлення"
	DescriptionLoading = "Завантаження..."
	DescriptionUnknown = "Невідомо"

	TodayLabel = "Сьогодні"

	dateLayout = "2006-01-02"
)

var descriptions = map[int]string{
	0:  "Чисте небо",
	1:  "Переважно ясно",
	2:  "Мінлива хмарність",
	3:  "Похмуро",
	45: "Туман",
	48: "Туман паморозь",
	51: "Слабка мряка",
	53: "Помірна мряка",
	55: "Густа мряка",
	56: "Крижана мряка",
	57: "Густа крижана мряка",
	61: "Слабкий дощ",
	63: "Помірний дощ",
	65: "Сильний дощ",
	66: "Крижаний дощ",
	67: "Сильний крижаний дощ",
	71: "Слабкий сніг",
	73: "Помірний сніг",
	75: "Сильний сніг",
	77: "Сніжні зерна",
	80: "Слабка злива",
	81: "Помірна злива",
	82: "Сильна злива",
	85: "Слабкий снігопад",
	86: "Сильний снігопад",
	95: "Гроза",
	96: "Гроза з градом",
	99: "Сильна гроза з градом",
}

var weekdays = [7]string{
	time.Sunday:    "неділя",
	time.Monday:    "понеділок",
	time.Tuesday:   "вівторок",
	time.Wednesday: "середа",
	time.Thursday:  "четвер",
	time.Friday:    "пʼятниця",
	time.Saturday:  "субота",
}

var upper = cases.Upper(language.Ukrainian)

// ConditionFor maps a WMO weather code to the display vocabulary. At night
// every code maps to ConditionNight.
func ConditionFor(code int, isDay bool) models.Condition {
	if !isDay {
		return models.ConditionNight
	}

	switch code {
	case 0, 1:
		return models.ConditionClear
	case 2, 3, 45, 48:
		return models.ConditionOvercast
	case 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82:
		return models.ConditionRain
	case 71, 73, 75, 77, 85, 86:
		return models.ConditionSnow
	case 95, 96, 99:
		return models.ConditionStorm
	default:
		return models.ConditionClear
	}
}

// Describe returns the Ukrainian phrase for a WMO code.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return DescriptionUnknown
}

// round rounds half-up, so -2.5 becomes -2.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// DayLabel is the capitalized weekday name of date, or TodayLabel when date
// falls on the same calendar day as now.
func DayLabel(date, now time.Time) string {
	if sameDay(date, now.In(date.Location())) {
		return TodayLabel
	}

	name := weekdays[date.Weekday()]
	_, size := utf8.DecodeRuneInString(name)
	return upper.String(name[:size]) + name[size:]
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Normalize converts a validated provider payload into the display model.
func Normalize(resp *repositories.OpenMeteoResponse, city string, now time.Time) (models.WeatherReport, error) {
	if resp == nil {
		return models.WeatherReport{}, repositories.ErrMalformedPayload
	}
	if err := repositories.ValidateForecast(resp); err != nil {
		return models.WeatherReport{}, err
	}

	cur := resp.Current
	isDay := cur.IsDay != 0

	report := models.WeatherReport{
		Current: models.WeatherSnapshot{
			Temp:        round(cur.Temperature2m),
			Condition:   ConditionFor(cur.WeatherCode, isDay),
			Description: Describe(cur.WeatherCode),
			City:        city,
			WindSpeed:   round(cur.WindSpeed10m),
			Humidity:    int(cur.RelativeHumidity2m),
			IsDay:       isDay,
		},
	}

	daily := resp.Daily
	loc := resp.Location()
	report.Forecast = make([]models.ForecastDay, 0, len(daily.Time))

	for i, dateStr := range daily.Time {
		date, err := time.ParseInLocation(dateLayout, dateStr, loc)
		if err != nil {
			return models.WeatherReport{}, fmt.Errorf("%w: bad date %q", repositories.ErrMalformedPayload, dateStr)
		}

		precip := 0
		if p := daily.PrecipitationProbabilityMax[i]; p != nil {
			precip = int(*p)
		}

		report.Forecast = append(report.Forecast, models.ForecastDay{
			Day:        DayLabel(date, now),
			Date:       dateStr,
			Temp:       round(daily.Temperature2mMax[i]),
			Condition:  ConditionFor(daily.WeatherCode[i], true),
			WindSpeed:  round(daily.WindSpeed10mMax[i]),
			PrecipProb: precip,
		})
	}

	return report, nil
}

// Degraded is the report returned when a fetch fails.
func Degraded() models.WeatherReport {
	return models.WeatherReport{
		Current: models.WeatherSnapshot{
			Condition:   models.ConditionClear,
			Description: DescriptionFailed,
			City:        FallbackCity,
			IsDay:       true,
		},
		Forecast: []models.ForecastDay{},
		Degraded: true,
	}
}

// Loading is shown until the first fetch completes.
func Loading(city string) models.WeatherReport {
	return models.WeatherReport{
		Current: models.WeatherSnapshot{
			Condition:   models.ConditionClear,
			Description: DescriptionLoading,
			City:        city,
			IsDay:       true,
		},
		Forecast: []models.ForecastDay{},
	}
}
