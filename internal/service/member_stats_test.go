package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laddertrack/backend/internal/app/appconfig"
	"github.com/laddertrack/backend/internal/model"
	"github.com/laddertrack/backend/internal/model/cache"
	v1 "github.com/laddertrack/backend/internal/model/v1"
	"github.com/laddertrack/backend/internal/pkg/lterr"
	"github.com/laddertrack/backend/internal/pkg/riot"
)

type fakeGroupStore struct {
	groups  []*model.Group
	members map[int][]*model.Account
}

func (f *fakeGroupStore) GetGroupByID(ctx context.Context, groupID int) (*model.Group, error) {
	for _, g := range f.groups {
		if g.GroupID == groupID {
			return g, nil
		}
	}
	return nil, lterr.ErrNotFound
}

func (f *fakeGroupStore) GetGroups(ctx context.Context) ([]*model.Group, error) {
	return f.groups, nil
}

func (f *fakeGroupStore) GetMembers(ctx context.Context, groupID int) ([]*model.Account, error) {
	return f.members[groupID], nil
}

type fakeLiveFetcher struct {
	entries map[string][]riot.LeagueEntry
	calls   int
}

func (f *fakeLiveFetcher) LeagueEntries(ctx context.Context, accountID, region string) ([]riot.LeagueEntry, error) {
	f.calls++
	if entries, ok := f.entries[accountID]; ok {
		return entries, nil
	}
	return nil, riot.ErrNotFound
}

func statsTestConfig() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			StatsTimezone:        "America/Los_Angeles",
			MaxSamplesPerAccount: 50,
			CacheDefaultTTL:      time.Minute,
			CacheRefreshTTL:      2 * time.Hour,
		},
	}
}

func newStatsFixture(t *testing.T) (*MemberStats, *fakeGroupStore, *fakeRankEventStore, *fakeLiveFetcher) {
	t.Helper()
	cache.InitializeForTesting()

	groups := &fakeGroupStore{
		groups: []*model.Group{{GroupID: 1, Name: "the lobby"}},
		members: map[int][]*model.Account{
			1: {
				{AccountID: "acc-1", SummonerName: "Alice", Region: "na1"},
				{AccountID: "acc-2", SummonerName: "Bob", Region: "na1"},
			},
		},
	}
	events := &fakeRankEventStore{}
	live := &fakeLiveFetcher{entries: map[string][]riot.LeagueEntry{}}

	svc, err := NewMemberStats(statsTestConfig(), groups, events, live)
	require.NoError(t, err)
	return svc, groups, events, live
}

func seedEvent(store *fakeRankEventStore, accountID string, createdAt time.Time, elo, wins, losses int) {
	store.nextID++
	store.events = append(store.events, &model.RankEvent{
		EventID:   store.nextID,
		AccountID: accountID,
		CreatedAt: createdAt,
		Elo:       elo,
		Wins:      wins,
		Losses:    losses,
	})
}

// brokenStatsStore fails every operation, standing in for an unreachable redis.
type brokenStatsStore struct{}

var errStoreDown = errors.New("redis: connection refused")

func (brokenStatsStore) Get(key string, dest *v1.MemberStats) error { return errStoreDown }

func (brokenStatsStore) Set(key string, value v1.MemberStats, expire time.Duration) error {
	return errStoreDown
}

func (brokenStatsStore) MutexGetSet(key string, dest *v1.MemberStats, valueFunc func() (v1.MemberStats, error), expire time.Duration) (bool, error) {
	return false, errStoreDown
}

func (brokenStatsStore) Delete(key string) error { return errStoreDown }

func (brokenStatsStore) Flush() error { return errStoreDown }

func TestGetMemberStatsUnknownGroup(t *testing.T) {
	svc, _, _, _ := newStatsFixture(t)

	_, err := svc.GetMemberStats(context.Background(), 42, false, false)
	require.ErrorIs(t, err, lterr.ErrNotFound)
}

func TestGetMemberStatsServesCachedEntry(t *testing.T) {
	svc, _, events, _ := newStatsFixture(t)
	ctx := context.Background()

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)

	first, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)
	require.Len(t, first.Samples, 1)

	// new rows do not surface until the entry expires or is refreshed
	seedEvent(events, "acc-2", time.Now().UTC().Add(-48*time.Hour), 900, 5, 5)

	second, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)
	assert.Len(t, second.Samples, 1)
	assert.Equal(t, first.CachedAt, second.CachedAt)
}

func TestGetMemberStatsForceRefreshBypassesCache(t *testing.T) {
	svc, _, events, _ := newStatsFixture(t)
	ctx := context.Background()

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)

	_, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)

	seedEvent(events, "acc-2", time.Now().UTC().Add(-48*time.Hour), 900, 5, 5)

	refreshed, err := svc.GetMemberStats(ctx, 1, false, true)
	require.NoError(t, err)
	assert.Len(t, refreshed.Samples, 2)
}

func TestRefreshMemberStatsOverwritesUnexpiredEntry(t *testing.T) {
	svc, _, events, _ := newStatsFixture(t)
	ctx := context.Background()

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)

	_, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)

	seedEvent(events, "acc-2", time.Now().UTC().Add(-48*time.Hour), 900, 5, 5)

	_, err = svc.RefreshMemberStats(ctx, 1)
	require.NoError(t, err)

	// the organic read now observes the refreshed entry despite the remaining TTL
	after, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)
	assert.Len(t, after.Samples, 2)
}

func TestGetMemberStatsDegradesWhenCacheFails(t *testing.T) {
	svc, _, events, _ := newStatsFixture(t)
	cache.MemberStatsByGroupID = brokenStatsStore{}
	ctx := context.Background()

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)

	// the organic read recomputes directly from the store instead of failing
	stats, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)
	require.Len(t, stats.Samples, 1)
	assert.Equal(t, 1400, stats.Samples[0].Elo)
}

func TestRefreshMemberStatsToleratesCacheWriteFailure(t *testing.T) {
	svc, _, events, _ := newStatsFixture(t)
	cache.MemberStatsByGroupID = brokenStatsStore{}
	ctx := context.Background()

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)

	stats, err := svc.RefreshMemberStats(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stats.Samples, 1)
}

func TestRefreshMemberStatsRecordsRefreshTime(t *testing.T) {
	svc, _, events, _ := newStatsFixture(t)
	ctx := context.Background()

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)

	stats, err := svc.RefreshMemberStats(ctx, 1)
	require.NoError(t, err)

	var refreshedAt time.Time
	require.NoError(t, cache.LastRefreshedAt.Get(statsKey(1), &refreshedAt))
	assert.Equal(t, stats.CachedAt, refreshedAt)
}

func TestInvalidateMemberStatsDropsEntry(t *testing.T) {
	svc, _, events, _ := newStatsFixture(t)
	ctx := context.Background()

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)

	_, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)

	seedEvent(events, "acc-2", time.Now().UTC().Add(-48*time.Hour), 900, 5, 5)

	require.NoError(t, svc.InvalidateMemberStats(1))

	after, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)
	assert.Len(t, after.Samples, 2)
}

func TestLiveOverlayAttachedButNeverCached(t *testing.T) {
	svc, _, events, live := newStatsFixture(t)
	ctx := context.Background()

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)
	live.entries["acc-1"] = []riot.LeagueEntry{{
		QueueType:    riot.QueueRanked,
		Tier:         "GOLD",
		Rank:         "II",
		LeaguePoints: 40,
		Wins:         31,
		Losses:       20,
	}}

	withLive, err := svc.GetMemberStats(ctx, 1, true, false)
	require.NoError(t, err)
	require.Contains(t, withLive.LiveData, "Alice")
	assert.Equal(t, 1440, withLive.LiveData["Alice"].Elo)
	assert.Equal(t, "GOLD II 40LP", withLive.LiveData["Alice"].Rank)
	// acc-2 has no provider entry; the overlay shrinks instead of failing
	assert.NotContains(t, withLive.LiveData, "Bob")

	withoutLive, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)
	assert.Nil(t, withoutLive.LiveData)
}

func TestWarmAllRefreshesEveryGroup(t *testing.T) {
	svc, groups, events, _ := newStatsFixture(t)
	ctx := context.Background()

	groups.groups = append(groups.groups, &model.Group{GroupID: 2, Name: "duo"})
	groups.members[2] = []*model.Account{{AccountID: "acc-3", SummonerName: "Carol", Region: "euw1"}}

	seedEvent(events, "acc-1", time.Now().UTC().Add(-48*time.Hour), 1400, 30, 20)
	seedEvent(events, "acc-3", time.Now().UTC().Add(-48*time.Hour), 2900, 100, 80)

	svc.WarmAll(ctx)

	one, err := svc.GetMemberStats(ctx, 1, false, false)
	require.NoError(t, err)
	assert.Len(t, one.Samples, 1)

	two, err := svc.GetMemberStats(ctx, 2, false, false)
	require.NoError(t, err)
	require.Len(t, two.Samples, 1)
	assert.Equal(t, 2900, two.Samples[0].Elo)
	assert.Equal(t, "Carol", two.Samples[0].SummonerName)
}
