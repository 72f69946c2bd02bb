package response

import "github.com/move-academia/academy-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type SignupResponse struct {
	User    domain.User    `json:"user"`
	Profile domain.Profile `json:"profile"`
}
