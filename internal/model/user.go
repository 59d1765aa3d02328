package model

type User struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

type GetUserRequest struct{}

type GetUserResponse struct {
	User User   `json:"user"`
	Role string `json:"role"`
}

type GetListUserRequest struct{}

type GetListUserResponse struct {
	Users []User `json:"users"`
}
