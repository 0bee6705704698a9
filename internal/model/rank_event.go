package model

import (
	"time"

	"github.com/uptrace/bun"
)

// RankEvent is one row of the append-mostly rank ledger. Rows are appended when an
// account's (wins, losses) pair changes; otherwise the newest row for the account is
// collapsed in place so idle polling does not grow the ledger.
type RankEvent struct {
	bun.BaseModel `bun:"rank_events,alias:re"`

	EventID   int       `bun:"event_id,pk,autoincrement" json:"id"`
	AccountID string    `json:"accountId"`
	CreatedAt time.Time `json:"createdAt"`
	Elo       int       `json:"elo"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
}
