package service

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/laddertrack/backend/internal/constant"
	"github.com/laddertrack/backend/internal/model"
	"github.com/laddertrack/backend/internal/model/types"
	"github.com/laddertrack/backend/internal/pkg/lterr"
)

// RankEventStore is the durable ledger surface the service depends on; implemented by
// repo.RankEvent and substituted with fakes in tests.
type RankEventStore interface {
	GetLatestByAccountID(ctx context.Context, accountID string) (*model.RankEvent, error)
	GetByAccountIDs(ctx context.Context, accountIDs []string) ([]*model.RankEvent, error)
	CreateRankEvent(ctx context.Context, event *model.RankEvent) error
	UpdateObservation(ctx context.Context, eventID int, elo int, observedAt time.Time) error
	CreateDeduplicated(ctx context.Context, event *model.RankEvent) error
}

type RankEvent struct {
	store   RankEventStore
	redsync *redsync.Redsync
}

func NewRankEvent(store RankEventStore, rs *redsync.Redsync) *RankEvent {
	return &RankEvent{
		store:   store,
		redsync: rs,
	}
}

// Append records an observation for an account. The ledger only grows when the
// (wins, losses) pair changed, i.e. a game finished; an unchanged pair collapses into
// the newest row, refreshing its timestamp and score in place.
func (s *RankEvent) Append(ctx context.Context, accountID string, elo, wins, losses int, now time.Time) error {
	// The read-latest/decide/write sequence below is not atomic on its own; a
	// per-account mutex serializes concurrent syncs for the same account.
	if s.redsync != nil {
		mutex := s.redsync.NewMutex(
			constant.RankEventAppendLockPrefix+accountID,
			redsync.WithExpiry(constant.RankEventAppendLockExpiry),
		)
		if err := mutex.LockContext(ctx); err != nil {
			log.Warn().Err(err).Str("accountId", accountID).Msg("failed to acquire append lock; proceeding unlocked")
		} else {
			defer func() {
				if _, err := mutex.UnlockContext(ctx); err != nil {
					log.Warn().Err(err).Str("accountId", accountID).Msg("failed to release append lock")
				}
			}()
		}
	}

	latest, err := s.store.GetLatestByAccountID(ctx, accountID)
	if err != nil && !errors.Is(err, lterr.ErrNotFound) {
		return err
	}

	if latest != nil && latest.Wins == wins && latest.Losses == losses {
		return s.store.UpdateObservation(ctx, latest.EventID, elo, now)
	}

	return s.store.CreateRankEvent(ctx, &model.RankEvent{
		AccountID: accountID,
		CreatedAt: now,
		Elo:       elo,
		Wins:      wins,
		Losses:    losses,
	})
}

// Ingest handles an externally supplied observation: the same-day duplicate guard
// removes rows with an identical (wins, losses) pair on the same UTC calendar date,
// then the new row is inserted. Returns the created row.
func (s *RankEvent) Ingest(ctx context.Context, req *types.CreateRankEventRequest) (*model.RankEvent, error) {
	event := &model.RankEvent{
		AccountID: req.AccountID,
		CreatedAt: time.Now().UTC(),
		Elo:       req.Elo,
		Wins:      req.Wins,
		Losses:    req.Losses,
	}

	if err := s.store.CreateDeduplicated(ctx, event); err != nil {
		log.Error().Err(err).Str("accountId", req.AccountID).Msg("failed to ingest rank event")
		return nil, lterr.ErrInternalError.Msg("failed to store rank event")
	}

	return event, nil
}
