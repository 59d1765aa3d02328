package model

import "time"

type Find struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	AuthorName  *string   `json:"authorName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	User        *User     `json:"user"`
	AnswerCount int64     `json:"answerCount"`
}

// CreateFindRequest is bound from a multipart form; the handler reads the
// fields and image files from the request directly.
type CreateFindRequest struct{}

type CreateFindResponse struct {
	Find Find `json:"find"`
}

func (CreateFindResponse) StatusCode() int {
	return 201
}

type GetListFindsRequest struct {
	Category string `form:"category" json:"category"`
}

type GetListFindsResponse struct {
	Finds []Find `json:"finds"`
}

type GetFindRequest struct {
	ID int64 `uri:"id"`
}

type GetFindResponse struct {
	Find    Find     `json:"find"`
	Answers []Answer `json:"answers"`
}

// UpdateFindRequest is bound from a multipart form, like CreateFindRequest.
type UpdateFindRequest struct {
	ID int64 `uri:"id"`
}

type UpdateFindResponse struct {
	Find Find `json:"find"`
}

type DeleteFindRequest struct {
	ID int64 `uri:"id"`
}

type DeleteFindResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
