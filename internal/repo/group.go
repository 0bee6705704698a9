package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/laddertrack/backend/internal/model"
	"github.com/laddertrack/backend/internal/pkg/storeretry"
	"github.com/laddertrack/backend/internal/repo/selector"
)

type Group struct {
	db  *bun.DB
	sel selector.S[model.Group]
}

func NewGroup(db *bun.DB) *Group {
	return &Group{
		db:  db,
		sel: selector.New[model.Group](db),
	}
}

func (r *Group) GetGroupByID(ctx context.Context, groupID int) (*model.Group, error) {
	var group *model.Group
	err := storeretry.Do(ctx, "group.byId", func() error {
		var err error
		group, err = r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("group_id = ?", groupID)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *Group) GetGroups(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	err := storeretry.Do(ctx, "group.list", func() error {
		groups = groups[:0]
		return r.db.NewSelect().
			Model(&groups).
			Order("group_id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// GetMembers returns the accounts belonging to a group.
func (r *Group) GetMembers(ctx context.Context, groupID int) ([]*model.Account, error) {
	var accounts []*model.Account
	err := storeretry.Do(ctx, "group.members", func() error {
		accounts = accounts[:0]
		return r.db.NewSelect().
			Model(&accounts).
			Join("JOIN group_members AS gm ON gm.account_id = acc.account_id").
			Where("gm.group_id = ?", groupID).
			Order("acc.account_id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
