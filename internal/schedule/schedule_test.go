package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueues(t *testing.T) {
	queues := Queues()
	require.Len(t, queues, 12)

	assert.Equal(t, "1.1", queues[0].ID)
	assert.Equal(t, "6.2", queues[11].ID)

	for _, q := range queues {
		assert.Len(t, q.Blocks, 4, q.ID)
		assert.Equal(t, 14, q.TotalHours, q.ID)
	}

	// 11 % 3 == 2, 12 % 3 == 0, 21 % 3 == 0, 22 % 3 == 1
	assert.Equal(t, Block{"04:00", "08:00"}, queues[0].Blocks[0])
	assert.Equal(t, Block{"02:00", "04:00"}, queues[1].Blocks[0])
	assert.Equal(t, Block{"02:00", "04:00"}, queues[2].Blocks[0])
	assert.Equal(t, Block{"00:00", "02:00"}, queues[3].Blocks[0])
}

func TestQueues_ReturnsIndependentCopies(t *testing.T) {
	first := Queues()
	first[0].Blocks[0].Start = "99:99"

	assert.Equal(t, "04:00", Queues()[0].Blocks[0].Start)
}

func TestWeek(t *testing.T) {
	week := Week(rand.New(rand.NewSource(42)))
	require.Len(t, week, 7)

	assert.Equal(t, "Пн", week[0].Day)
	assert.Equal(t, "Нд", week[6].Day)

	counts := map[HourStatus]int{}
	for _, d := range week {
		require.Len(t, d.Hours, 24)
		for _, h := range d.Hours {
			counts[h]++
		}
	}
	assert.Equal(t, 168, counts[StatusOn]+counts[StatusOff]+counts[StatusPossible])
	assert.Greater(t, counts[StatusOff], 0)
	assert.Greater(t, counts[StatusOn], 0)
}

func TestWeek_IsDeterministicForSeed(t *testing.T) {
	assert.Equal(t, Week(rand.New(rand.NewSource(7))), Week(rand.New(rand.NewSource(7))))
}

func TestCurrentSlot(t *testing.T) {
	monday := time.Date(2025, 7, 21, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, Slot{Day: 0, Hour: 14}, CurrentSlot(monday))

	sunday := time.Date(2025, 7, 27, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Slot{Day: 6, Hour: 23}, CurrentSlot(sunday))
}
