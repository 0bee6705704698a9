// Package riot is the provider client for TFT league entries.
package riot

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/laddertrack/backend/internal/app/appconfig"
)

const (
	QueueRanked = "RANKED_TFT"
	QueueTurbo  = "RANKED_TFT_TURBO"
)

var (
	// ErrNotFound indicates the provider knows of no league entries for the account.
	ErrNotFound = errors.New("riot: league entries not found")

	// ErrRateLimited indicates the provider rejected the call due to rate limiting.
	ErrRateLimited = errors.New("riot: rate limited")
)

type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	RatedTier    string `json:"ratedTier"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

func (e LeagueEntry) IsTurbo() bool {
	return e.QueueType == QueueTurbo
}

type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewClient(conf *appconfig.Config) *Client {
	return &Client{
		client: &http.Client{
			Timeout: conf.RiotAPITimeout,
		},
		baseURL: conf.RiotAPIBaseURL,
		apiKey:  conf.RiotAPIKey,
	}
}

// LeagueEntries fetches every league entry of an account. Errors are classified so
// callers can treat not-found and rate-limited distinctly from transport failures.
func (c *Client) LeagueEntries(ctx context.Context, accountID, region string) ([]LeagueEntry, error) {
	u := fmt.Sprintf(c.baseURL, region) + "/tft/league/v1/by-puuid/" + accountID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "riot: failed to create request")
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "riot: failed to fetch league entries")
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, errors.Errorf("riot: unexpected status %d fetching league entries", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "riot: failed to read response body")
	}

	var entries []LeagueEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, errors.Wrap(err, "riot: malformed league entries response")
	}

	return entries, nil
}

// Preferred selects the entry an account's rank is derived from: the primary ranked
// queue when present, otherwise the turbo queue. The second return value is false when
// the account has neither.
func Preferred(entries []LeagueEntry) (LeagueEntry, bool) {
	for _, e := range entries {
		if e.QueueType == QueueRanked {
			return e, true
		}
	}
	for _, e := range entries {
		if e.QueueType == QueueTurbo {
			return e, true
		}
	}
	return LeagueEntry{}, false
}
