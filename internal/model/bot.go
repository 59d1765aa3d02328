package model

type CreateBotFindRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	BotUserID   string   `json:"botUserId"`
}

type CreateBotFindResponse struct {
	Success bool `json:"success"`
	Find    Find `json:"find"`
}

func (CreateBotFindResponse) StatusCode() int {
	return 201
}

type GetBotFindRequest struct {
	ID int64 `uri:"id"`
}

type GetBotFindResponse Find

type DeleteBotFindRequest struct {
	ID int64 `uri:"id"`
}

type DeleteBotFindResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
