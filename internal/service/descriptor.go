package service

import (
	"strings"

	"github.com/laddertrack/backend/internal/pkg/rank"
	"github.com/laddertrack/backend/internal/pkg/riot"
)

const unranked = "UNRANKED"

// descriptorOf derives the score and the denormalized rank string from a league entry.
// Every path that turns a provider entry into a score goes through here, so worker,
// ingestion and live overlay can never diverge.
func descriptorOf(e riot.LeagueEntry) (int, string) {
	if e.IsTurbo() {
		if e.RatedTier == "" || strings.EqualFold(e.RatedTier, unranked) {
			return 0, unranked
		}
		return rank.TurboScore(e.RatedTier), rank.FormatTurbo(e.RatedTier)
	}
	if e.Tier == "" || strings.EqualFold(e.Tier, unranked) {
		return 0, unranked
	}
	return rank.Score(e.Tier, e.Rank, e.LeaguePoints), rank.Format(e.Tier, e.Rank, e.LeaguePoints)
}
