package model

type AccessToken struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (RegisterResponse) StatusCode() int {
	return 201
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// AccessTokenInfo lets the cookie middleware pick up the issued token.
func (r LoginResponse) AccessTokenInfo() string {
	return r.AccessToken
}

// SessionUserID lets the session middleware persist the login.
func (r LoginResponse) SessionUserID() string {
	return r.User.ID
}
