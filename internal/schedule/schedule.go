// Package schedule produces the outage schedules shown on the light page.
// Both the queue table and the weekly grid are mock data.
package schedule

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Block is one outage window, "HH:MM" to "HH:MM". An end of "24:00" means
// midnight.
type Block struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// QueueSchedule is the outage plan of one consumer queue.
type QueueSchedule struct {
	ID         string  `json:"id"`
	Blocks     []Block `json:"blocks"`
	TotalHours int     `json:"total_hours"`
}

var queueIDs = []string{"1.1", "1.2", "2.1", "2.2", "3.1", "3.2", "4.1", "4.2", "5.1", "5.2", "6.1", "6.2"}

// patterns rotate by the queue's numeric id modulo 3.
var patterns = [3][]Block{
	{{"02:00", "04:00"}, {"08:00", "12:00"}, {"14:00", "18:00"}, {"20:00", "24:00"}},
	{{"00:00", "02:00"}, {"06:00", "10:00"}, {"12:00", "16:00"}, {"18:00", "22:00"}},
	{{"04:00", "08:00"}, {"10:00", "14:00"}, {"16:00", "20:00"}, {"22:00", "24:00"}},
}

// Queues returns the schedules for every queue, in queue order.
func Queues() []QueueSchedule {
	out := make([]QueueSchedule, 0, len(queueIDs))
	for _, id := range queueIDs {
		n, _ := strconv.Atoi(strings.ReplaceAll(id, ".", ""))
		blocks := append([]Block(nil), patterns[n%3]...)

		out = append(out, QueueSchedule{
			ID:         id,
			Blocks:     blocks,
			TotalHours: totalHours(blocks),
		})
	}
	return out
}

func totalHours(blocks []Block) int {
	minutes := 0
	for _, b := range blocks {
		minutes += clockMinutes(b.End) - clockMinutes(b.Start)
	}
	return (minutes + 30) / 60
}

func clockMinutes(hhmm string) int {
	h, m, _ := strings.Cut(hhmm, ":")
	hours, _ := strconv.Atoi(h)
	mins, _ := strconv.Atoi(m)
	return hours*60 + mins
}

// HourStatus is the supply state for one hour of the weekly grid.
type HourStatus string

const (
	StatusOn       HourStatus = "on"
	StatusOff      HourStatus = "off"
	StatusPossible HourStatus = "possible"
)

type DaySchedule struct {
	Day   string       `json:"day"`
	Hours []HourStatus `json:"hours"`
}

var weekdayLabels = [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Нд"}

const (
	offThreshold      = 0.6
	possibleThreshold = 0.8
)

// Week generates a Monday-first 7×24 grid. About 40% of hours are off and
// 12% possible.
func Week(rng *rand.Rand) []DaySchedule {
	week := make([]DaySchedule, 0, len(weekdayLabels))
	for _, label := range weekdayLabels {
		hours := make([]HourStatus, 24)
		for h := range hours {
			switch {
			case rng.Float64() > offThreshold:
				hours[h] = StatusOff
			case rng.Float64() > possibleThreshold:
				hours[h] = StatusPossible
			default:
				hours[h] = StatusOn
			}
		}
		week = append(week, DaySchedule{Day: label, Hours: hours})
	}
	return week
}

// Slot addresses one cell of the weekly grid.
type Slot struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

// CurrentSlot maps t to the grid, Monday being day 0.
func CurrentSlot(t time.Time) Slot {
	day := int(t.Weekday()+6) % 7
	return Slot{Day: day, Hour: t.Hour()}
}
