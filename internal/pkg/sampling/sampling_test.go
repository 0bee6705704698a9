package sampling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var la = mustLoadLocation("America/Los_Angeles")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestOptimizePicksBestScoreForPastDays(t *testing.T) {
	now := at(t, "2025-08-20T12:00:00-07:00")
	events := []Event{
		{AccountID: "a", CreatedAt: at(t, "2025-08-10T09:00:00-07:00"), Elo: 1000},
		{AccountID: "a", CreatedAt: at(t, "2025-08-10T12:00:00-07:00"), Elo: 1200},
		{AccountID: "a", CreatedAt: at(t, "2025-08-10T18:00:00-07:00"), Elo: 1100},
	}

	out := Optimize(events, now, la, 50)
	require.Len(t, out, 1)
	assert.Equal(t, 1200, out[0].Elo)
}

func TestOptimizePicksLatestForToday(t *testing.T) {
	now := at(t, "2025-08-20T20:00:00-07:00")
	events := []Event{
		{AccountID: "a", CreatedAt: at(t, "2025-08-20T10:00:00-07:00"), Elo: 1000},
		{AccountID: "a", CreatedAt: at(t, "2025-08-20T15:00:00-07:00"), Elo: 900},
	}

	out := Optimize(events, now, la, 50)
	require.Len(t, out, 1)
	// the freshest event wins for the current day even when it scores lower
	assert.Equal(t, 900, out[0].Elo)
}

func TestOptimizeTieBreaksPastDayByEarliestTimestamp(t *testing.T) {
	now := at(t, "2025-08-20T12:00:00-07:00")
	early := at(t, "2025-08-10T09:00:00-07:00")
	late := at(t, "2025-08-10T18:00:00-07:00")
	events := []Event{
		{AccountID: "a", CreatedAt: late, Elo: 1200},
		{AccountID: "a", CreatedAt: early, Elo: 1200},
	}

	out := Optimize(events, now, la, 50)
	require.Len(t, out, 1)
	assert.True(t, out[0].CreatedAt.Equal(early))
}

func TestOptimizeBucketsInReferenceTimezone(t *testing.T) {
	now := at(t, "2025-08-20T12:00:00-07:00")
	// 2025-08-11T02:00Z is still 2025-08-10 in America/Los_Angeles, so both events
	// share a single day bucket there.
	events := []Event{
		{AccountID: "a", CreatedAt: at(t, "2025-08-10T20:00:00Z"), Elo: 1000},
		{AccountID: "a", CreatedAt: at(t, "2025-08-11T02:00:00Z"), Elo: 1100},
	}

	out := Optimize(events, now, la, 50)
	assert.Len(t, out, 1)
}

func TestOptimizeCapsSamplesPerAccount(t *testing.T) {
	now := at(t, "2025-08-20T12:00:00-07:00")
	base := at(t, "2024-01-01T12:00:00-08:00")

	var events []Event
	for i := 0; i < 80; i++ {
		events = append(events, Event{
			AccountID: "a",
			CreatedAt: base.AddDate(0, 0, i),
			Elo:       1000 + i,
		})
	}
	// a second account must not be affected by the first account's cap
	events = append(events, Event{AccountID: "b", CreatedAt: base, Elo: 500})

	out := Optimize(events, now, la, 50)

	perAccount := map[string]int{}
	for _, e := range out {
		perAccount[e.AccountID]++
	}
	assert.Equal(t, 50, perAccount["a"])
	assert.Equal(t, 1, perAccount["b"])

	// the newest 50 day-samples survive, the oldest 30 are dropped
	for _, e := range out {
		if e.AccountID == "a" {
			assert.GreaterOrEqual(t, e.Elo, 1030)
		}
	}
}

func TestOptimizeOutputChronological(t *testing.T) {
	now := at(t, "2025-08-20T12:00:00-07:00")
	events := []Event{
		{AccountID: "b", CreatedAt: at(t, "2025-08-12T12:00:00-07:00"), Elo: 700},
		{AccountID: "a", CreatedAt: at(t, "2025-08-10T12:00:00-07:00"), Elo: 1000},
		{AccountID: "a", CreatedAt: at(t, "2025-08-14T12:00:00-07:00"), Elo: 1050},
	}

	out := Optimize(events, now, la, 50)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].CreatedAt.Before(out[i-1].CreatedAt))
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	now := at(t, "2025-08-20T12:00:00-07:00")
	events := []Event{
		{AccountID: "b", CreatedAt: at(t, "2025-08-12T12:00:00-07:00"), Elo: 700, Wins: 3, Losses: 1},
		{AccountID: "a", CreatedAt: at(t, "2025-08-10T09:00:00-07:00"), Elo: 1000, Wins: 10, Losses: 5},
		{AccountID: "a", CreatedAt: at(t, "2025-08-10T18:00:00-07:00"), Elo: 1000, Wins: 10, Losses: 5},
		{AccountID: "a", CreatedAt: at(t, "2025-08-20T10:00:00-07:00"), Elo: 1100, Wins: 11, Losses: 5},
	}

	first := Optimize(events, now, la, 50)

	// shuffle the input order; the output must be byte-identical
	shuffled := []Event{events[2], events[0], events[3], events[1]}
	second := Optimize(shuffled, now, la, 50)

	assert.Equal(t, first, second)
}

func TestOptimizeSkipsMalformedTimestamps(t *testing.T) {
	now := at(t, "2025-08-20T12:00:00-07:00")
	events := []Event{
		{AccountID: "a", CreatedAt: time.Time{}, Elo: 9999},
		{AccountID: "a", CreatedAt: at(t, "2025-08-10T12:00:00-07:00"), Elo: 1000},
	}

	out := Optimize(events, now, la, 50)
	require.Len(t, out, 1)
	assert.Equal(t, 1000, out[0].Elo)
}

func TestOptimizeEmptyInput(t *testing.T) {
	out := Optimize(nil, time.Now(), la, 50)
	assert.Empty(t, out)
}
