package types

// CreateRankEventRequest is the ingestion write call accepted from trusted external
// suppliers. The same-day duplicate guard applies before the row is inserted.
type CreateRankEventRequest struct {
	AccountID string `json:"accountId" validate:"required" required:"true"`
	Elo       int    `json:"elo" validate:"gte=0"`
	Wins      int    `json:"wins" validate:"gte=0"`
	Losses    int    `json:"losses" validate:"gte=0"`
}
