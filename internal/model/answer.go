package model

import "time"

type Answer struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	Verdict    *string   `json:"verdict"`
	FindID     int64     `json:"findId"`
	AuthorName *string   `json:"authorName,omitempty"`
	User       *User     `json:"user"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateAnswerRequest struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
	Verdict    string `json:"verdict"`
	FindID     int64  `json:"findId"`
}

type CreateAnswerResponse struct {
	Answer Answer `json:"answer"`
}

func (CreateAnswerResponse) StatusCode() int {
	return 201
}

type DeleteAnswerRequest struct {
	ID int64 `uri:"id"`
}

type DeleteAnswerResponse struct {
	Success bool `json:"success"`
}
