package v1

import "time"

// Sample is one retained day-sample of one account, chart-ready.
type Sample struct {
	AccountID    string    `json:"accountId"`
	SummonerName string    `json:"summonerName"`
	CreatedAt    time.Time `json:"createdAt"`
	Elo          int       `json:"elo"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
}

// LiveEntry is a provider-fetched snapshot of an account's current standing.
type LiveEntry struct {
	Rank   string `json:"rank"`
	Elo    int    `json:"elo"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// MemberStats is the aggregated view served per group. LiveData is attached on request
// and is explicitly excluded from the cached form, so cache entries stay valid across
// provider polling intervals.
type MemberStats struct {
	Samples     []Sample             `json:"samples"`
	MemberNames map[string]string    `json:"memberNames"`
	LiveData    map[string]LiveEntry `json:"liveData,omitempty" msgpack:"-"`
	CachedAt    time.Time            `json:"cachedAt"`
}
