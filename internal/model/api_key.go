package model

import "time"

type APIKey struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	KeyPreview string     `json:"keyPreview"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
	CreatedBy  *User      `json:"createdBy"`
}

type GetListAPIKeysRequest struct{}

type GetListAPIKeysResponse struct {
	Keys []APIKey `json:"keys"`
}

type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

// CreateAPIKeyResponse carries the full secret. It is returned exactly once,
// at creation; every later listing shows only a masked preview.
type CreateAPIKeyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CreateAPIKeyResponse) StatusCode() int {
	return 201
}

type ToggleAPIKeyRequest struct {
	ID       string `uri:"id" json:"-"`
	IsActive *bool  `json:"isActive"`
}

type ToggleAPIKeyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type DeleteAPIKeyRequest struct {
	ID string `uri:"id"`
}

type DeleteAPIKeyResponse struct {
	Success bool `json:"success"`
}
