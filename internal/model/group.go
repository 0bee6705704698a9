package model

import (
	"github.com/uptrace/bun"
)

// Group is a set of tracked accounts whose aggregated rank history is served together.
// Group and membership management happens outside this service; both tables are
// read-only here.
type Group struct {
	bun.BaseModel `bun:"groups,alias:g"`

	GroupID int    `bun:"group_id,pk,autoincrement" json:"id"`
	Name    string `bun:"group_name" json:"name"`
}

type GroupMember struct {
	bun.BaseModel `bun:"group_members,alias:gm"`

	GroupID   int    `json:"groupId"`
	AccountID string `json:"accountId"`
}
