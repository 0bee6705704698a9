package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Account is a tracked player. AccountID is the provider's opaque identifier (puuid).
// Rank and LastUpdate are denormalized from the latest successful provider fetch and
// are only written by the sync worker.
type Account struct {
	bun.BaseModel `bun:"accounts,alias:acc"`

	AccountID    string      `bun:"account_id,pk" json:"accountId"`
	SummonerName string      `json:"summonerName"`
	Region       string      `json:"region"`
	Rank         null.String `json:"rank" swaggertype:"string"`
	LastUpdate   *time.Time  `json:"lastUpdate"`
}
