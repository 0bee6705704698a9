package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"

	"github.com/laddertrack/backend/internal/model"
	"github.com/laddertrack/backend/internal/pkg/storeretry"
	"github.com/laddertrack/backend/internal/repo/selector"
)

type Account struct {
	db  *bun.DB
	sel selector.S[model.Account]
}

func NewAccount(db *bun.DB) *Account {
	return &Account{
		db:  db,
		sel: selector.New[model.Account](db),
	}
}

func (r *Account) GetAccountByID(ctx context.Context, accountID string) (*model.Account, error) {
	var account *model.Account
	err := storeretry.Do(ctx, "account.byId", func() error {
		var err error
		account, err = r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("account_id = ?", accountID)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccounts returns the full tracked roster, in stable order so sync batches are
// reproducible across passes.
func (r *Account) GetAccounts(ctx context.Context) ([]*model.Account, error) {
	var accounts []*model.Account
	err := storeretry.Do(ctx, "account.list", func() error {
		accounts = accounts[:0]
		return r.db.NewSelect().
			Model(&accounts).
			Order("account_id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// UpdateRank overwrites the denormalized rank fields after a successful provider fetch.
func (r *Account) UpdateRank(ctx context.Context, accountID string, rank string, lastUpdate time.Time) error {
	return storeretry.Do(ctx, "account.updateRank", func() error {
		_, err := r.db.NewUpdate().
			Model((*model.Account)(nil)).
			Set("rank = ?", null.StringFrom(rank)).
			Set("last_update = ?", lastUpdate).
			Where("account_id = ?", accountID).
			Exec(ctx)
		return err
	})
}
