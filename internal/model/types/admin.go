package types

type PurgeCacheRequest struct {
	Name string `json:"name" validate:"required" example:"memberStats#groupId"`
}
