package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"github.com/laddertrack/backend/internal/model"
	"github.com/laddertrack/backend/internal/pkg/storeretry"
	"github.com/laddertrack/backend/internal/repo/selector"
)

type RankEvent struct {
	db  *bun.DB
	sel selector.S[model.RankEvent]
}

func NewRankEvent(db *bun.DB) *RankEvent {
	return &RankEvent{
		db:  db,
		sel: selector.New[model.RankEvent](db),
	}
}

// GetLatestByAccountID returns the most recent event of an account, or
// lterr.ErrNotFound when the account has no events yet.
func (r *RankEvent) GetLatestByAccountID(ctx context.Context, accountID string) (*model.RankEvent, error) {
	var event *model.RankEvent
	err := storeretry.Do(ctx, "rankEvent.latest", func() error {
		var err error
		event, err = r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("account_id = ?", accountID).
				Order("created_at DESC").
				Limit(1)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// GetByAccountIDs returns every event of the given accounts, ascending by time,
// which is the input order the aggregator expects.
func (r *RankEvent) GetByAccountIDs(ctx context.Context, accountIDs []string) ([]*model.RankEvent, error) {
	if len(accountIDs) == 0 {
		return []*model.RankEvent{}, nil
	}
	var events []*model.RankEvent
	err := storeretry.Do(ctx, "rankEvent.listByAccounts", func() error {
		events = events[:0]
		return r.db.NewSelect().
			Model(&events).
			Where("account_id IN (?)", bun.In(accountIDs)).
			Order("created_at ASC", "event_id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *RankEvent) CreateRankEvent(ctx context.Context, event *model.RankEvent) error {
	return storeretry.Do(ctx, "rankEvent.create", func() error {
		_, err := r.db.NewInsert().
			Model(event).
			Returning("event_id").
			Exec(ctx)
		return err
	})
}

// UpdateObservation is the collapse write: the newest row of an account is refreshed
// in place instead of growing the ledger.
func (r *RankEvent) UpdateObservation(ctx context.Context, eventID int, elo int, observedAt time.Time) error {
	return storeretry.Do(ctx, "rankEvent.updateObservation", func() error {
		_, err := r.db.NewUpdate().
			Model((*model.RankEvent)(nil)).
			Set("elo = ?", elo).
			Set("created_at = ?", observedAt).
			Where("event_id = ?", eventID).
			Exec(ctx)
		return err
	})
}

// CreateDeduplicated applies the same-day duplicate guard and inserts, as one
// transaction so no reader can observe the window between delete and insert.
func (r *RankEvent) CreateDeduplicated(ctx context.Context, event *model.RankEvent) error {
	day := event.CreatedAt.UTC().Format("2006-01-02")
	return storeretry.Do(ctx, "rankEvent.createDeduplicated", func() error {
		return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewDelete().
				Model((*model.RankEvent)(nil)).
				Where("account_id = ?", event.AccountID).
				Where("wins = ?", event.Wins).
				Where("losses = ?", event.Losses).
				Where("DATE(created_at AT TIME ZONE 'UTC') = ?", day).
				Exec(ctx)
			if err != nil {
				return err
			}

			_, err = tx.NewInsert().
				Model(event).
				Returning("event_id").
				Exec(ctx)
			return err
		})
	})
}
