// Package sampling reduces a raw per-account rank event series into one representative
// sample per account per calendar day, bounded per account.
//
// Day buckets are computed in a single reference timezone for every account. For past
// days the highest score of the day is kept, so a progress chart never regresses within
// a finished day; for the current day the freshest observation is kept, so an in-progress
// session is reflected live.
package sampling

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

// DefaultPerAccountCap bounds the number of retained day-samples per account.
const DefaultPerAccountCap = 50

type Event struct {
	AccountID string
	CreatedAt time.Time
	Elo       int
	Wins      int
	Losses    int
}

type bucketKey struct {
	accountID string
	date      string
}

// Optimize is pure: identical events and an identical now always yield an identical
// sample list, regardless of input order within a bucket's timestamp ties.
func Optimize(events []Event, now time.Time, loc *time.Location, perAccountCap int) []Event {
	if perAccountCap <= 0 {
		perAccountCap = DefaultPerAccountCap
	}
	today := now.In(loc).Format(dateLayout)

	buckets := map[bucketKey][]Event{}
	for _, e := range events {
		if e.CreatedAt.IsZero() {
			log.Warn().Str("accountId", e.AccountID).Msg("skipping rank event with invalid timestamp")
			continue
		}
		k := bucketKey{accountID: e.AccountID, date: e.CreatedAt.In(loc).Format(dateLayout)}
		buckets[k] = append(buckets[k], e)
	}

	selected := make([]Event, 0, len(buckets))
	for k, dayEvents := range buckets {
		if k.date == today {
			selected = append(selected, pickLatest(dayEvents))
		} else {
			selected = append(selected, pickBest(dayEvents))
		}
	}

	perAccount := lo.GroupBy(selected, func(e Event) string { return e.AccountID })

	retained := make([]Event, 0, len(selected))
	for _, samples := range perAccount {
		sort.Slice(samples, func(i, j int) bool {
			return samples[i].CreatedAt.After(samples[j].CreatedAt)
		})
		if len(samples) > perAccountCap {
			samples = samples[:perAccountCap]
		}
		retained = append(retained, samples...)
	}

	sort.Slice(retained, func(i, j int) bool {
		if !retained[i].CreatedAt.Equal(retained[j].CreatedAt) {
			return retained[i].CreatedAt.Before(retained[j].CreatedAt)
		}
		if retained[i].AccountID != retained[j].AccountID {
			return retained[i].AccountID < retained[j].AccountID
		}
		return retained[i].Elo < retained[j].Elo
	})

	return retained
}

// pickLatest selects the freshest event of the bucket. Among identical timestamps the
// highest score wins to keep the choice deterministic.
func pickLatest(events []Event) Event {
	best := events[0]
	for _, e := range events[1:] {
		if e.CreatedAt.After(best.CreatedAt) {
			best = e
		} else if e.CreatedAt.Equal(best.CreatedAt) && e.Elo > best.Elo {
			best = e
		}
	}
	return best
}

// pickBest selects the highest-scored event of the bucket, tie-broken by the earliest
// timestamp among the maxima.
func pickBest(events []Event) Event {
	best := events[0]
	for _, e := range events[1:] {
		if e.Elo > best.Elo {
			best = e
		} else if e.Elo == best.Elo && e.CreatedAt.Before(best.CreatedAt) {
			best = e
		}
	}
	return best
}
