package cache

import (
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	v1 "github.com/laddertrack/backend/internal/model/v1"
	"github.com/laddertrack/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	// MemberStatsByGroupID memoizes the aggregated member stats per group. Declared as
	// the Store interface so tests can substitute an in-process implementation.
	MemberStatsByGroupID cache.Store[v1.MemberStats]

	// LastRefreshedAt records when a group's member stats were last explicitly refreshed.
	LastRefreshedAt cache.Store[time.Time]

	once sync.Once

	SetMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		cache.Initialize(client)
		initializeCaches()
	})
}

// Delete flushes the named cache set; used by the admin invalidation surface.
func Delete(name string) error {
	if flush, ok := SetMap[name]; ok {
		return flush()
	}
	return nil
}

func initializeCaches() {
	SetMap = make(map[string]Flusher)

	// member_stats
	memberStats := cache.NewSet[v1.MemberStats]("memberStats#groupId")
	MemberStatsByGroupID = memberStats
	SetMap["memberStats#groupId"] = memberStats.Flush

	// others
	lastRefreshed := cache.NewSet[time.Time]("lastRefreshedAt#groupId")
	LastRefreshedAt = lastRefreshed
	SetMap["lastRefreshedAt#groupId"] = lastRefreshed.Flush
}

// InitializeForTesting swaps every cache set for an in-process store. Only tests may
// call this.
func InitializeForTesting() {
	SetMap = make(map[string]Flusher)

	memberStats := cache.NewMemory[v1.MemberStats]()
	MemberStatsByGroupID = memberStats
	SetMap["memberStats#groupId"] = memberStats.Flush

	lastRefreshed := cache.NewMemory[time.Time]()
	LastRefreshedAt = lastRefreshed
	SetMap["lastRefreshedAt#groupId"] = lastRefreshed.Flush
}
