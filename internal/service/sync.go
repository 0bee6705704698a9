package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/laddertrack/backend/internal/app/appconfig"
	"github.com/laddertrack/backend/internal/model"
	"github.com/laddertrack/backend/internal/pkg/riot"
)

// AccountStore is the account roster surface; implemented by repo.Account.
type AccountStore interface {
	GetAccounts(ctx context.Context) ([]*model.Account, error)
	UpdateRank(ctx context.Context, accountID string, rank string, lastUpdate time.Time) error
}

type Sync struct {
	conf     *appconfig.Config
	accounts AccountStore
	events   *RankEvent
	provider LiveFetcher
}

func NewSync(conf *appconfig.Config, accounts AccountStore, events *RankEvent, provider LiveFetcher) *Sync {
	return &Sync{
		conf:     conf,
		accounts: accounts,
		events:   events,
		provider: provider,
	}
}

// SyncStats reports the outcome of one roster pass. It is logged, not consumed
// programmatically.
type SyncStats struct {
	Attempted int
	Succeeded int
	Skipped   int
	Failed    int
}

type syncOutcome int

const (
	outcomeSynced syncOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// SyncRoster polls the provider for every tracked account, sequentially, in fixed-size
// batches with a delay in-between as rate-limit courtesy. A failure on one account
// never aborts the remaining roster.
func (s *Sync) SyncRoster(ctx context.Context) (SyncStats, error) {
	roster, err := s.accounts.GetAccounts(ctx)
	if err != nil {
		return SyncStats{}, errors.Wrap(err, "failed to load account roster")
	}

	var stats SyncStats
	batches := lo.Chunk(roster, s.conf.SyncBatchSize)
	for i, batch := range batches {
		for _, account := range batch {
			stats.Attempted++
			switch s.syncAccount(ctx, account) {
			case outcomeSynced:
				stats.Succeeded++
			case outcomeSkipped:
				stats.Skipped++
			case outcomeFailed:
				stats.Failed++
			}
		}
		if i < len(batches)-1 {
			time.Sleep(s.conf.SyncBatchDelay)
		}
	}

	log.Info().
		Int("attempted", stats.Attempted).
		Int("succeeded", stats.Succeeded).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Msg("roster sync pass finished")

	return stats, nil
}

func (s *Sync) syncAccount(ctx context.Context, account *model.Account) syncOutcome {
	entries, err := s.provider.LeagueEntries(ctx, account.AccountID, account.Region)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) || errors.Is(err, riot.ErrRateLimited) {
			log.Warn().Err(err).Str("accountId", account.AccountID).Msg("skipping account")
			return outcomeSkipped
		}
		log.Error().Err(err).Str("accountId", account.AccountID).Msg("failed to fetch league entries")
		return outcomeFailed
	}

	entry, ok := riot.Preferred(entries)
	if !ok {
		log.Debug().Str("accountId", account.AccountID).Msg("account has no ranked or turbo entry; skipping")
		return outcomeSkipped
	}

	elo, rankStr := descriptorOf(entry)
	now := time.Now().UTC()

	if err := s.events.Append(ctx, account.AccountID, elo, entry.Wins, entry.Losses, now); err != nil {
		log.Error().Err(err).Str("accountId", account.AccountID).Msg("failed to append rank event")
		return outcomeFailed
	}

	// the denormalized rank is refreshed whenever an entry was found, regardless of
	// whether the ledger grew or collapsed
	if err := s.accounts.UpdateRank(ctx, account.AccountID, rankStr, now); err != nil {
		log.Error().Err(err).Str("accountId", account.AccountID).Msg("failed to update denormalized rank")
		return outcomeFailed
	}

	return outcomeSynced
}
