package service

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/laddertrack/backend/internal/app/appconfig"
	"github.com/laddertrack/backend/internal/model"
	"github.com/laddertrack/backend/internal/model/cache"
	v1 "github.com/laddertrack/backend/internal/model/v1"
	"github.com/laddertrack/backend/internal/pkg/riot"
	"github.com/laddertrack/backend/internal/pkg/sampling"
)

// GroupStore is the read-only group/membership surface; implemented by repo.Group.
type GroupStore interface {
	GetGroupByID(ctx context.Context, groupID int) (*model.Group, error)
	GetGroups(ctx context.Context) ([]*model.Group, error)
	GetMembers(ctx context.Context, groupID int) ([]*model.Account, error)
}

// LiveFetcher is the provider surface used for never-cached live overlays;
// implemented by riot.Client.
type LiveFetcher interface {
	LeagueEntries(ctx context.Context, accountID, region string) ([]riot.LeagueEntry, error)
}

type MemberStats struct {
	conf   *appconfig.Config
	groups GroupStore
	events RankEventStore
	live   LiveFetcher
	loc    *time.Location
}

func NewMemberStats(conf *appconfig.Config, groups GroupStore, events RankEventStore, live LiveFetcher) (*MemberStats, error) {
	loc, err := time.LoadLocation(conf.StatsTimezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid stats timezone %q", conf.StatsTimezone)
	}

	return &MemberStats{
		conf:   conf,
		groups: groups,
		events: events,
		live:   live,
		loc:    loc,
	}, nil
}

func statsKey(groupID int) string {
	return strconv.Itoa(groupID)
}

// GetMemberStats serves a group's aggregated rank history. A cache-layer failure of
// any kind degrades to direct recomputation from the durable store and never fails
// the request; compute failures propagate.
func (s *MemberStats) GetMemberStats(ctx context.Context, groupID int, includeLive, forceRefresh bool) (*v1.MemberStats, error) {
	group, err := s.groups.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var stats v1.MemberStats
	if forceRefresh {
		refreshed, err := s.RefreshMemberStats(ctx, group.GroupID)
		if err != nil {
			return nil, err
		}
		stats = *refreshed
	} else {
		valueFunc := func() (v1.MemberStats, error) {
			return s.compute(ctx, group.GroupID)
		}
		_, err := cache.MemberStatsByGroupID.MutexGetSet(statsKey(group.GroupID), &stats, valueFunc, s.conf.CacheDefaultTTL)
		if err != nil {
			log.Warn().Err(err).Int("groupId", group.GroupID).Msg("cache path failed; recomputing member stats directly")
			stats, err = s.compute(ctx, group.GroupID)
			if err != nil {
				return nil, err
			}
		}
	}

	if includeLive {
		stats.LiveData = s.liveOverlay(ctx, group.GroupID)
	}

	return &stats, nil
}

// RefreshMemberStats unconditionally recomputes a group's stats and overwrites the
// cache entry regardless of any remaining TTL, with the longer refresh TTL.
func (s *MemberStats) RefreshMemberStats(ctx context.Context, groupID int) (*v1.MemberStats, error) {
	stats, err := s.compute(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := cache.MemberStatsByGroupID.Set(statsKey(groupID), stats, s.conf.CacheRefreshTTL); err != nil {
		log.Warn().Err(err).Int("groupId", groupID).Msg("failed to overwrite member stats cache entry")
	}
	if err := cache.LastRefreshedAt.Set(statsKey(groupID), stats.CachedAt, 0); err != nil {
		log.Warn().Err(err).Int("groupId", groupID).Msg("failed to record member stats refresh time")
	}

	return &stats, nil
}

func (s *MemberStats) InvalidateMemberStats(groupID int) error {
	return cache.MemberStatsByGroupID.Delete(statsKey(groupID))
}

func (s *MemberStats) InvalidateAllMemberStats() error {
	return cache.MemberStatsByGroupID.Flush()
}

// WarmAll refreshes every group's cache entry; used by the sync worker at the end of a
// roster pass. Per-group failures are logged and do not stop the warm pass.
func (s *MemberStats) WarmAll(ctx context.Context) {
	groups, err := s.groups.GetGroups(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list groups for cache warm pass")
		return
	}

	for _, g := range groups {
		if _, err := s.RefreshMemberStats(ctx, g.GroupID); err != nil {
			log.Warn().Err(err).Int("groupId", g.GroupID).Msg("failed to warm member stats cache")
			continue
		}
	}
}

func (s *MemberStats) compute(ctx context.Context, groupID int) (v1.MemberStats, error) {
	members, err := s.groups.GetMembers(ctx, groupID)
	if err != nil {
		return v1.MemberStats{}, err
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.AccountID] = m.SummonerName
	}

	events, err := s.events.GetByAccountIDs(ctx, lo.Keys(names))
	if err != nil {
		return v1.MemberStats{}, err
	}

	raw := lo.Map(events, func(e *model.RankEvent, _ int) sampling.Event {
		return sampling.Event{
			AccountID: e.AccountID,
			CreatedAt: e.CreatedAt,
			Elo:       e.Elo,
			Wins:      e.Wins,
			Losses:    e.Losses,
		}
	})

	now := time.Now()
	samples := lo.Map(
		sampling.Optimize(raw, now, s.loc, s.conf.MaxSamplesPerAccount),
		func(e sampling.Event, _ int) v1.Sample {
			return v1.Sample{
				AccountID:    e.AccountID,
				SummonerName: names[e.AccountID],
				CreatedAt:    e.CreatedAt,
				Elo:          e.Elo,
				Wins:         e.Wins,
				Losses:       e.Losses,
			}
		})

	return v1.MemberStats{
		Samples:     samples,
		MemberNames: names,
		CachedAt:    now.UTC(),
	}, nil
}

// liveOverlay fetches the current provider standing of every member. The result is
// attached to the response only and never cached; per-member failures shrink the
// overlay instead of failing the request.
func (s *MemberStats) liveOverlay(ctx context.Context, groupID int) map[string]v1.LiveEntry {
	members, err := s.groups.GetMembers(ctx, groupID)
	if err != nil {
		log.Warn().Err(err).Int("groupId", groupID).Msg("failed to list members for live overlay")
		return map[string]v1.LiveEntry{}
	}

	overlay := make(map[string]v1.LiveEntry, len(members))
	for _, m := range members {
		entries, err := s.live.LeagueEntries(ctx, m.AccountID, m.Region)
		if err != nil {
			log.Debug().Err(err).Str("accountId", m.AccountID).Msg("skipping live overlay entry")
			continue
		}
		entry, ok := riot.Preferred(entries)
		if !ok {
			continue
		}
		elo, rankStr := descriptorOf(entry)
		overlay[m.SummonerName] = v1.LiveEntry{
			Rank:   rankStr,
			Elo:    elo,
			Wins:   entry.Wins,
			Losses: entry.Losses,
		}
	}
	return overlay
}
